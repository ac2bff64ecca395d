package export

import (
	"bytes"
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

const emuPerInch = 914400

// SlideWriter is the document-serializer boundary: it turns an ordered
// slide sequence into a binary presentation buffer. The writer composites
// in write order with no z-index, so callers must hand it primitives in
// paint order (background, fills, then text).
type SlideWriter interface {
	Write(slides []Slide, canvas Canvas) ([]byte, error)
}

// GoPPTWriter serializes slides with the GoPPT OOXML writer.
//
// Mapping notes: TextBox, Rect and Ellipse all become rich-text shapes
// (GoPPT's single shape type); Ellipse keeps only its bounding-box fill.
// Table rows become a stacked fill shape plus one text shape per cell.
// The writer's page is fixed widescreen, so a legacy 4:3 theme canvas is
// scaled uniformly and centered horizontally, which preserves geometry
// ratios and determinism.
type GoPPTWriter struct {
	Title   string
	Creator string
}

func NewGoPPTWriter(title string) *GoPPTWriter {
	return &GoPPTWriter{Title: title, Creator: "ChangePilot"}
}

// canvasTransform maps theme-space inches onto the writer's page.
type canvasTransform struct {
	scale float64
	offX  float64
}

func transformFor(canvas Canvas) canvasTransform {
	if canvas.H <= CanvasWidescreen.H || canvas.H == 0 {
		return canvasTransform{scale: 1}
	}
	scale := CanvasWidescreen.H / canvas.H
	return canvasTransform{
		scale: scale,
		offX:  (CanvasWidescreen.W - canvas.W*scale) / 2,
	}
}

func (t canvasTransform) emuX(v float64) int64 {
	return int64((t.offX + v*t.scale) * emuPerInch)
}

func (t canvasTransform) emuY(v float64) int64 {
	return int64(v * t.scale * emuPerInch)
}

func (t canvasTransform) emuLen(v float64) int64 {
	return int64(v * t.scale * emuPerInch)
}

func (w *GoPPTWriter) Write(slides []Slide, canvas Canvas) ([]byte, error) {
	if len(slides) == 0 {
		return nil, fmt.Errorf("no slides to serialize")
	}

	p := ppt.New()
	p.GetDocumentProperties().Title = w.Title
	p.GetDocumentProperties().Creator = w.Creator

	t := transformFor(canvas)
	for i, slide := range slides {
		var target *ppt.Slide
		if i == 0 {
			target = p.GetActiveSlide()
		} else {
			target = p.CreateSlide()
		}
		w.writeSlide(target, slide, canvas, t)
	}

	writer, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("create pptx writer: %w", err)
	}
	var buf bytes.Buffer
	if err := writer.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize pptx: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *GoPPTWriter) writeSlide(target *ppt.Slide, slide Slide, canvas Canvas, t canvasTransform) {
	// Implicit background fill paints first.
	if slide.Background != "" && slide.Background != fillWhite {
		bg := target.CreateRichTextShape()
		bg.SetOffsetX(0).SetOffsetY(0)
		bg.SetWidth(int64(CanvasWidescreen.W * emuPerInch)).SetHeight(int64(CanvasWidescreen.H * emuPerInch))
		bg.SetFill(solidFill(slide.Background))
	}

	for _, primitive := range slide.Primitives {
		switch shape := primitive.(type) {
		case Rect:
			w.writeBox(target, t, shape.X, shape.Y, shape.W, shape.H, shape.FillColor)
		case Ellipse:
			w.writeBox(target, t, shape.X, shape.Y, shape.W, shape.H, shape.FillColor)
		case TextBox:
			w.writeText(target, t, shape)
		case Table:
			w.writeTable(target, t, shape)
		}
	}
}

func (w *GoPPTWriter) writeBox(target *ppt.Slide, t canvasTransform, x, y, width, height float64, fill string) {
	shape := target.CreateRichTextShape()
	shape.SetOffsetX(t.emuX(x)).SetOffsetY(t.emuY(y))
	shape.SetWidth(t.emuLen(width)).SetHeight(t.emuLen(height))
	if fill != "" {
		shape.SetFill(solidFill(fill))
	}
}

func (w *GoPPTWriter) writeText(target *ppt.Slide, t canvasTransform, box TextBox) {
	shape := target.CreateRichTextShape()
	shape.SetOffsetX(t.emuX(box.X)).SetOffsetY(t.emuY(box.Y))
	shape.SetWidth(t.emuLen(box.W)).SetHeight(t.emuLen(box.H))

	for i, line := range strings.Split(box.Text, "\n") {
		if i > 0 {
			shape.CreateParagraph()
		}
		if line == "" {
			line = " "
		}
		run := shape.CreateTextRun(line)
		font := run.GetFont().SetSize(box.FontSize).SetColor(ppt.NewColor(box.Color))
		if box.Bold {
			font.SetBold(true)
		}
		applyAlign(shape.GetActiveParagraph(), box.Align)
	}
}

func (w *GoPPTWriter) writeTable(target *ppt.Slide, t canvasTransform, table Table) {
	y := table.Y
	for _, row := range table.Rows {
		x := table.X
		for i, cell := range row.Cells {
			colW := 0.0
			if i < len(table.ColWidths) {
				colW = table.ColWidths[i]
			}
			if cell.FillColor != "" {
				w.writeBox(target, t, x, y, colW, row.Height, cell.FillColor)
			}
			if cell.Text != "" {
				w.writeText(target, t, TextBox{
					X: x + 0.1, Y: y + 0.06, W: colW - 0.2, H: row.Height - 0.12,
					Text: cell.Text, FontSize: cell.FontSize, Color: cell.Color,
					Bold: cell.Bold, Align: cell.Align,
				})
			}
			x += colW
		}
		y += row.Height
	}
}

func applyAlign(paragraph *ppt.Paragraph, align Align) {
	switch align {
	case AlignCenter:
		paragraph.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
	case AlignRight:
		paragraph.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
	}
}

func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}
