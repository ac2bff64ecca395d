package export

import (
	"fmt"
	"regexp"
)

// MIME types of the produced artifacts.
const (
	MIMEPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MIMEWord         = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEExcel        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEPDF          = "application/pdf"
	MIMEZip          = "application/zip"
)

// defaultBaseName is used whenever the project has no name.
const defaultBaseName = "Change_Management_Project"

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeBaseName replaces every non-alphanumeric character with an
// underscore, falling back to the fixed default for empty names.
func SanitizeBaseName(name string) string {
	if name == "" {
		return defaultBaseName
	}
	return nonAlphanumeric.ReplaceAllString(name, "_")
}

// PresentationService generates the slide deck for a project. It is
// stateless: every call is an independent, synchronous computation, so
// concurrent requests need no coordination.
type PresentationService struct {
	writer SlideWriter
}

func NewPresentationService() *PresentationService {
	return &PresentationService{}
}

// WithWriter overrides the serializer boundary (tests use this).
func (s *PresentationService) WithWriter(writer SlideWriter) *PresentationService {
	s.writer = writer
	return s
}

// Generate renders a project into a pptx buffer plus its attachment name.
// Content problems never fail generation; only the serializer boundary can.
func (s *PresentationService) Generate(project *ProjectContent) ([]byte, string, error) {
	themeID := 1
	name := ""
	if project != nil {
		themeID = ResolveThemeID(project.TemplateID)
		name = project.Name
	}

	normalized := Normalize(project)
	style := ResolveStyle(themeID)
	slides := PlanSlides(themeID, normalized, style)

	writer := s.writer
	if writer == nil {
		writer = NewGoPPTWriter(displayTitle(normalized))
	}
	data, err := writer.Write(slides, CanvasFor(themeID))
	if err != nil {
		return nil, "", fmt.Errorf("write presentation: %w", err)
	}

	filename := fmt.Sprintf("%s_Change_Management_Strategy_Template_%d.pptx", SanitizeBaseName(name), themeID)
	return data, filename, nil
}

func displayTitle(n *NormalizedContent) string {
	if n.ProjectName != "" {
		return n.ProjectName + " - Change Management Strategy"
	}
	return "Change Management Strategy"
}
