package export

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// PDFService renders a one-document strategy brief (executive summary,
// benefits, stakeholders) using maroto.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

var (
	pdfAccent = &props.Color{Red: 46, Green: 116, Blue: 181}
	pdfMuted  = &props.Color{Red: 100, Green: 116, Blue: 139}
	pdfInk    = &props.Color{Red: 51, Green: 65, Blue: 85}
)

// Generate builds the .pdf buffer plus its attachment name.
func (s *PDFService) Generate(project *ProjectContent) ([]byte, string, error) {
	n := Normalize(project)

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithDefaultFont(&props.Font{
			Family: fontfamily.Arial,
			Size:   10,
		}).
		Build()

	m := maroto.New(cfg)

	s.addHeader(m, displayTitle(n))
	s.addSummary(m, n)
	s.addBenefits(m, n)
	s.addStakeholders(m, n)
	s.addFooter(m)

	document, err := m.Generate()
	if err != nil {
		return nil, "", fmt.Errorf("generate pdf: %w", err)
	}

	filename := SanitizeBaseName(projectName(project)) + "_Strategy_Brief.pdf"
	return document.GetBytes(), filename, nil
}

func (s *PDFService) addHeader(m core.Maroto, title string) {
	m.AddRow(16,
		col.New(12).Add(
			text.New(title, props.Text{
				Family: fontfamily.Arial,
				Size:   18,
				Style:  fontstyle.Bold,
				Align:  align.Center,
				Color:  pdfAccent,
			}),
		),
	)
	m.AddRow(8,
		col.New(12).Add(
			text.New("Strategy Brief", props.Text{
				Family: fontfamily.Arial,
				Size:   10,
				Align:  align.Center,
				Color:  pdfMuted,
			}),
		),
	)
	m.AddRow(5)
}

func (s *PDFService) addSectionTitle(m core.Maroto, title string) {
	m.AddRow(9,
		col.New(12).Add(
			text.New(title, props.Text{
				Family: fontfamily.Arial,
				Size:   12,
				Style:  fontstyle.Bold,
				Color:  pdfAccent,
			}),
		),
	)
}

func (s *PDFService) addParagraph(m core.Maroto, body string, height float64) {
	m.AddRow(height,
		col.New(12).Add(
			text.New(body, props.Text{
				Family: fontfamily.Arial,
				Size:   10,
				Color:  pdfInk,
			}),
		),
	)
}

func (s *PDFService) addSummary(m core.Maroto, n *NormalizedContent) {
	s.addSectionTitle(m, "Executive Summary")
	s.addParagraph(m, n.Overview, 14)
	s.addParagraph(m, n.Purpose, 14)
	if len(n.Objectives) > 0 {
		s.addParagraph(m, "Objectives: "+strings.Join(n.Objectives, "; "), 12)
	}
	m.AddRow(4)
}

func (s *PDFService) addBenefits(m core.Maroto, n *NormalizedContent) {
	if len(n.Cards) == 0 {
		return
	}
	s.addSectionTitle(m, "Key Benefits")

	// Two benefit cards per row, mirroring the deck's grid reading order.
	for i := 0; i < len(n.Cards); i += 2 {
		cols := []core.Col{}
		for j := i; j < i+2; j++ {
			if j >= len(n.Cards) {
				cols = append(cols, col.New(6))
				break
			}
			card := n.Cards[j]
			line := card.Title
			if len(card.BulletList) > 0 {
				line += ": " + strings.Join(card.BulletList, "; ")
			}
			cols = append(cols, col.New(6).Add(
				text.New(line, props.Text{
					Family: fontfamily.Arial,
					Size:   9,
					Color:  pdfInk,
				}),
			))
		}
		m.AddRow(10, cols...)
	}
	m.AddRow(4)
}

func (s *PDFService) addStakeholders(m core.Maroto, n *NormalizedContent) {
	if len(n.Rows) == 0 {
		return
	}
	s.addSectionTitle(m, "Stakeholders")

	for _, row := range n.Rows {
		name, role := splitStakeholderTitle(row.Title, geometryFor(1).NameSplitPatterns)
		if row.ProjectRole != fallbackStakeRole && role == fallbackStakeRole {
			role = row.ProjectRole
		}
		line := fmt.Sprintf("%s - %s", name, role)
		if len(row.BulletList) > 0 {
			line += " (" + strings.Join(row.BulletList, "; ") + ")"
		}
		s.addParagraph(m, line, 9)
	}
	m.AddRow(4)
}

func (s *PDFService) addFooter(m core.Maroto) {
	m.AddRow(8,
		col.New(12).Add(
			text.New("Generated by ChangePilot", props.Text{
				Family: fontfamily.Arial,
				Size:   8,
				Align:  align.Center,
				Color:  pdfMuted,
			}),
		),
	)
}
