package export

import (
	"fmt"
	"strings"

	goword "github.com/VantageDataChat/GoWord"
	"github.com/VantageDataChat/GoWord/style"
)

// WordService renders the project's communication plan (emails, video
// script, FAQs) as a Word document using GoWord (pure Go).
type WordService struct{}

func NewWordService() *WordService {
	return &WordService{}
}

// Generate builds the .docx buffer plus its attachment name.
func (s *WordService) Generate(project *ProjectContent) ([]byte, string, error) {
	n := Normalize(project)

	doc := goword.New()
	doc.Properties.Title = displayTitle(n)
	doc.Properties.Creator = "ChangePilot"
	doc.Properties.Description = "Communication plan generated by ChangePilot"

	sec := doc.AddSection()
	sec.AddTitle(displayTitle(n), 1)
	sec.AddText("Communication Plan",
		&style.FontStyle{Size: 12, Color: "64748B"},
		&style.ParagraphStyle{Alignment: style.AlignCenter})
	sec.AddTextBreak(1)

	s.addEmails(sec, n)
	s.addVideoScript(sec, n)
	s.addFAQs(sec, n)

	sec.AddTextBreak(1)
	sec.AddText("Generated by ChangePilot",
		&style.FontStyle{Size: 9, Color: "94A3B8"},
		&style.ParagraphStyle{Alignment: style.AlignCenter})

	data, err := doc.ToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("write word document: %w", err)
	}

	filename := SanitizeBaseName(projectName(project)) + "_Communication_Plan.docx"
	return data, filename, nil
}

func (s *WordService) addEmails(sec *goword.Section, n *NormalizedContent) {
	sec.AddText("Communication Emails",
		&style.FontStyle{Bold: true, Size: 14, Color: "1E40AF"}, nil)

	if len(n.Emails) == 0 {
		sec.AddText(placeholderNoEmails,
			&style.FontStyle{Size: 11, Color: "334155", Italic: true}, nil)
		sec.AddTextBreak(1)
		return
	}

	for _, email := range n.Emails {
		sec.AddText(strings.ToUpper(email.Role),
			&style.FontStyle{Bold: true, Size: 11, Color: "3B82F6"}, nil)
		sec.AddText("Subject: "+email.Subject,
			&style.FontStyle{Bold: true, Size: 11}, nil)
		for _, line := range strings.Split(email.Body, "\n") {
			if strings.TrimSpace(line) == "" {
				sec.AddTextBreak(1)
				continue
			}
			sec.AddText(line, &style.FontStyle{Size: 11, Color: "334155"}, nil)
		}
		sec.AddTextBreak(1)
	}
}

func (s *WordService) addVideoScript(sec *goword.Section, n *NormalizedContent) {
	sec.AddText("Video Script",
		&style.FontStyle{Bold: true, Size: 14, Color: "1E40AF"}, nil)

	switch n.Script.Kind {
	case ScriptStructured:
		for _, section := range n.Script.Sections {
			sec.AddText(section.Label,
				&style.FontStyle{Bold: true, Size: 11, Color: "3B82F6"}, nil)
			sec.AddText(section.Text,
				&style.FontStyle{Size: 11, Color: "334155"},
				&style.ParagraphStyle{SpaceAfter: 200})
		}
	case ScriptRaw:
		sec.AddText(n.Script.Raw,
			&style.FontStyle{Size: 11, Color: "334155"}, nil)
	default:
		sec.AddText(placeholderNoScript,
			&style.FontStyle{Size: 11, Color: "334155", Italic: true}, nil)
	}
	sec.AddTextBreak(1)
}

func (s *WordService) addFAQs(sec *goword.Section, n *NormalizedContent) {
	sec.AddText("Frequently Asked Questions",
		&style.FontStyle{Bold: true, Size: 14, Color: "1E40AF"}, nil)

	if len(n.FAQs) == 0 {
		sec.AddText(placeholderNoFAQs,
			&style.FontStyle{Size: 11, Color: "334155", Italic: true}, nil)
		return
	}

	for i, faq := range n.FAQs {
		sec.AddText(fmt.Sprintf("Q%d: %s", i+1, faq.Question),
			&style.FontStyle{Bold: true, Size: 11}, nil)
		sec.AddText(fmt.Sprintf("A%d: %s", i+1, faq.Answer),
			&style.FontStyle{Size: 11, Color: "334155"},
			&style.ParagraphStyle{SpaceAfter: 200})
	}
}

func projectName(project *ProjectContent) string {
	if project == nil {
		return ""
	}
	return project.Name
}
