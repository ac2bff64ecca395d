package export

// SlideKind identifies one of the six canonical slides. The slice returned
// by PlanSlides is always ordered Title, Agenda, ExecutiveSummary,
// Benefits, Stakeholders, Strategy; every theme and every consumer relies
// on that order.
type SlideKind int

const (
	SlideTitle SlideKind = iota
	SlideAgenda
	SlideExecutiveSummary
	SlideBenefits
	SlideStakeholders
	SlideStrategy
)

const slideCount = 6

func (k SlideKind) String() string {
	switch k {
	case SlideTitle:
		return "title"
	case SlideAgenda:
		return "agenda"
	case SlideExecutiveSummary:
		return "executive_summary"
	case SlideBenefits:
		return "benefits"
	case SlideStakeholders:
		return "stakeholders"
	case SlideStrategy:
		return "strategy"
	}
	return "unknown"
}

// Canvas is the fixed theme-space coordinate system, in inches.
type Canvas struct {
	W float64
	H float64
}

var (
	// CanvasWidescreen is the 16:9 page used by themes 2 and 3.
	CanvasWidescreen = Canvas{W: 10.0, H: 5.625}
	// CanvasLegacy is the 4:3 page the default theme was designed on.
	CanvasLegacy = Canvas{W: 10.0, H: 7.5}
)

// Align is horizontal text alignment within a text box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Primitive is one positioned visual instruction. Primitives are immutable
// once emitted; a slide is an ordered sequence and later entries paint over
// earlier ones, so the planner emits in paint order: fills first, text last.
type Primitive interface {
	primitive()
}

// TextBox is a positioned run of text. Text is never empty by the time a
// planner emits it; all content passes through the normalizer first.
type TextBox struct {
	X, Y, W, H float64
	Text       string
	FontSize   int
	Color      string
	Bold       bool
	Align      Align
}

// Rect is a filled rectangle, optionally bordered.
type Rect struct {
	X, Y, W, H  float64
	FillColor   string
	BorderColor string
}

// Ellipse is a filled ellipse bounded by its box.
type Ellipse struct {
	X, Y, W, H float64
	FillColor  string
}

// Table is a positioned cell grid. Row heights are already computed by the
// planner (dynamic rows included), so serialization is purely mechanical.
type Table struct {
	X, Y      float64
	ColWidths []float64
	Rows      []TableRow
}

type TableRow struct {
	Height float64
	Cells  []TableCell
}

type TableCell struct {
	Text      string
	FontSize  int
	Color     string
	FillColor string
	Bold      bool
	Align     Align
}

func (TextBox) primitive() {}
func (Rect) primitive()    {}
func (Ellipse) primitive() {}
func (Table) primitive()   {}

// Slide is an ordered primitive sequence plus an implicit background fill.
type Slide struct {
	Kind       SlideKind
	Background string
	Primitives []Primitive
}

func (s *Slide) add(p Primitive) {
	s.Primitives = append(s.Primitives, p)
}
