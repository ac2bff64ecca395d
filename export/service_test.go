package export

import (
	"strings"
	"testing"
)

// stubWriter captures the serializer boundary input and returns fixed bytes.
type stubWriter struct {
	slides []Slide
	canvas Canvas
	data   []byte
	err    error
}

func (w *stubWriter) Write(slides []Slide, canvas Canvas) ([]byte, error) {
	w.slides = slides
	w.canvas = canvas
	if w.err != nil {
		return nil, w.err
	}
	if w.data == nil {
		return []byte("pptx-bytes"), nil
	}
	return w.data, nil
}

func TestSanitizeBaseName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Q4 Rollout!!", "Q4_Rollout__"},
		{"", defaultBaseName},
		{"Already_Clean123", "Already_Clean123"},
		{"hello world", "hello_world"},
		{"a/b\\c:d", "a_b_c_d"},
		{"...", "___"},
	}
	for _, tt := range tests {
		if got := SanitizeBaseName(tt.name); got != tt.want {
			t.Errorf("SanitizeBaseName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGenerateFilename(t *testing.T) {
	tests := []struct {
		name     string
		project  *ProjectContent
		wantName string
	}{
		{
			name:     "sanitized name and template id",
			project:  &ProjectContent{Name: "Q4 Rollout!!", TemplateID: 2},
			wantName: "Q4_Rollout___Change_Management_Strategy_Template_2.pptx",
		},
		{
			name:     "default base name",
			project:  &ProjectContent{},
			wantName: defaultBaseName + "_Change_Management_Strategy_Template_1.pptx",
		},
		{
			name:     "nil project",
			project:  nil,
			wantName: defaultBaseName + "_Change_Management_Strategy_Template_1.pptx",
		},
		{
			name:     "unknown template collapses to 1",
			project:  &ProjectContent{Name: "Apollo", TemplateID: 9},
			wantName: "Apollo_Change_Management_Strategy_Template_1.pptx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &stubWriter{}
			service := NewPresentationService().WithWriter(writer)

			data, filename, err := service.Generate(tt.project)
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if filename != tt.wantName {
				t.Errorf("filename = %q, want %q", filename, tt.wantName)
			}
			if len(data) == 0 {
				t.Error("empty document buffer")
			}
			if len(writer.slides) != slideCount {
				t.Errorf("writer received %d slides, want %d", len(writer.slides), slideCount)
			}
		})
	}
}

func TestGenerateWriterCanvas(t *testing.T) {
	writer := &stubWriter{}
	service := NewPresentationService().WithWriter(writer)

	if _, _, err := service.Generate(&ProjectContent{TemplateID: 2}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if writer.canvas != CanvasWidescreen {
		t.Errorf("canvas = %v, want widescreen for theme 2", writer.canvas)
	}

	if _, _, err := service.Generate(&ProjectContent{TemplateID: 1}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if writer.canvas != CanvasLegacy {
		t.Errorf("canvas = %v, want legacy for theme 1", writer.canvas)
	}
}

func TestDisplayTitle(t *testing.T) {
	withName := displayTitle(&NormalizedContent{ProjectName: "Apollo"})
	if withName != "Apollo - Change Management Strategy" {
		t.Errorf("displayTitle = %q", withName)
	}
	without := displayTitle(&NormalizedContent{})
	if without != "Change Management Strategy" {
		t.Errorf("displayTitle = %q", without)
	}
}

func TestWordServiceFilename(t *testing.T) {
	data, filename, err := NewWordService().Generate(&ProjectContent{Name: "Q4 Rollout!!"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(filename, "Q4_Rollout__") || !strings.HasSuffix(filename, ".docx") {
		t.Errorf("filename = %q", filename)
	}
	if len(data) == 0 {
		t.Error("empty document buffer")
	}
}

func TestExcelServiceFilename(t *testing.T) {
	data, filename, err := NewExcelService().Generate(nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(filename, defaultBaseName) || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}
	if len(data) == 0 {
		t.Error("empty workbook buffer")
	}
}

func TestPDFServiceFilename(t *testing.T) {
	data, filename, err := NewPDFService().Generate(&ProjectContent{Name: "Apollo"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(filename, "Apollo") || !strings.HasSuffix(filename, ".pdf") {
		t.Errorf("filename = %q", filename)
	}
	if len(data) == 0 {
		t.Error("empty pdf buffer")
	}
}
