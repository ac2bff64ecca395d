package export

import "regexp"

// Per-theme layout families. New themes are additive table entries, not new
// planner code.
type execStrategy int

const (
	execTable execStrategy = iota
	execProse
)

type stakeholderLayout int

const (
	stakeDynamicTable stakeholderLayout = iota
	stakeCardGrid
	stakeArrowList
)

type strategyLayout int

const (
	stratApproachTable strategyLayout = iota
	stratPillars
	stratNumbered
)

// gridSpec is a precomputed N-up placement table: fixed capacity, row-major
// slot order. Cards beyond capacity are dropped (stable truncation).
type gridSpec struct {
	Cols, Rows int
	X, Y       float64
	CellW      float64
	CellH      float64
	GapX, GapY float64
}

func (g gridSpec) capacity() int {
	return g.Cols * g.Rows
}

// slot returns the top-left corner for card index i (row-major).
func (g gridSpec) slot(i int) (float64, float64) {
	col := i % g.Cols
	row := i / g.Cols
	x := g.X + float64(col)*(g.CellW+g.GapX)
	y := g.Y + float64(row)*(g.CellH+g.GapY)
	return x, y
}

// Stakeholder name/role split patterns. The exact rule differs per theme
// upstream, so it is configuration, not a global.
var (
	nameParenPattern = regexp.MustCompile(`^(.+?)\s*\(([^)]+)\)\s*$`)
	nameCommaPattern = regexp.MustCompile(`^([^,]+),\s*(.+)$`)
)

// themeGeometry is the geometry+capacity table for one theme. All
// coordinates are theme-space inches on the theme's canvas.
type themeGeometry struct {
	Canvas Canvas

	// Heuristic wrap estimate: ceil(len(text)/CharsPerLine) lines. This is
	// a deliberate approximation, not font metrics; the row-height contract
	// is monotonic in text length and rows never overlap.
	CharsPerLine int
	LineHeight   float64
	MinRowHeight float64
	RowPadding   float64

	ExecSummary execStrategy

	BenefitsGrid gridSpec
	// Bullets rendered per card before truncation.
	BenefitsBulletCap int
	// When > 0, synthesize generic placeholder cards up to this count
	// (theme designs that show a full top row).
	BenefitsPlaceholderMin int

	Stakeholders    stakeholderLayout
	StakeholderGrid gridSpec

	Strategy strategyLayout

	NameSplitPatterns []*regexp.Regexp
}

var themeGeometries = map[int]themeGeometry{
	// Theme 1: the default, designed on the legacy 4:3 canvas. Tabular
	// executive summary, 3x2 benefits, dynamic-height stakeholder table,
	// two-column activity/approach strategy table.
	1: {
		Canvas:       CanvasLegacy,
		CharsPerLine: 35,
		LineHeight:   0.24,
		MinRowHeight: 0.5,
		RowPadding:   0.12,
		ExecSummary:  execTable,
		BenefitsGrid: gridSpec{
			Cols: 3, Rows: 2,
			X: 0.5, Y: 1.5,
			CellW: 2.9, CellH: 2.5,
			GapX: 0.15, GapY: 0.3,
		},
		BenefitsBulletCap: 3,
		Stakeholders:      stakeDynamicTable,
		Strategy:          stratApproachTable,
		NameSplitPatterns: []*regexp.Regexp{nameParenPattern},
	},

	// Theme 2: widescreen, prose executive summary, dense 2x4 benefits
	// grid, stakeholder card grid, four fixed strategy pillars.
	2: {
		Canvas:       CanvasWidescreen,
		CharsPerLine: 40,
		LineHeight:   0.22,
		MinRowHeight: 0.45,
		RowPadding:   0.1,
		ExecSummary:  execProse,
		BenefitsGrid: gridSpec{
			Cols: 4, Rows: 2,
			X: 0.4, Y: 1.35,
			CellW: 2.2, CellH: 1.9,
			GapX: 0.13, GapY: 0.25,
		},
		BenefitsBulletCap: 2,
		Stakeholders:      stakeCardGrid,
		StakeholderGrid: gridSpec{
			Cols: 3, Rows: 2,
			X: 0.4, Y: 1.35,
			CellW: 3.0, CellH: 1.9,
			GapX: 0.1, GapY: 0.25,
		},
		Strategy:          stratPillars,
		NameSplitPatterns: []*regexp.Regexp{nameParenPattern},
	},

	// Theme 3: widescreen, tabular executive summary, 3x2 benefits grid,
	// two-column arrow list for stakeholders, numbered strategy steps with
	// an accent panel.
	3: {
		Canvas:       CanvasWidescreen,
		CharsPerLine: 38,
		LineHeight:   0.22,
		MinRowHeight: 0.45,
		RowPadding:   0.1,
		ExecSummary:  execTable,
		BenefitsGrid: gridSpec{
			Cols: 3, Rows: 2,
			X: 0.4, Y: 1.35,
			CellW: 3.0, CellH: 1.9,
			GapX: 0.1, GapY: 0.25,
		},
		BenefitsBulletCap: 2,
		Stakeholders:      stakeArrowList,
		StakeholderGrid: gridSpec{
			Cols: 2, Rows: 3,
			X: 0.4, Y: 1.35,
			CellW: 4.55, CellH: 1.25,
			GapX: 0.1, GapY: 0.12,
		},
		Strategy:          stratNumbered,
		NameSplitPatterns: []*regexp.Regexp{nameParenPattern, nameCommaPattern},
	},
}

// geometryFor returns the table for a theme, defaulting to theme 1 for any
// unrecognized id (same rule as ResolveStyle).
func geometryFor(themeID int) themeGeometry {
	if g, ok := themeGeometries[themeID]; ok {
		return g
	}
	return themeGeometries[1]
}

// CanvasFor exposes the theme's canvas to the serializer boundary.
func CanvasFor(themeID int) Canvas {
	return geometryFor(themeID).Canvas
}

// splitStakeholderTitle applies the theme's split patterns to a title that
// may encode "Name (Role)" or "Name, Role". Unmatched input keeps the whole
// string as the display name with the generic fallback role.
func splitStakeholderTitle(title string, patterns []*regexp.Regexp) (name, role string) {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(title); m != nil {
			return m[1], m[2]
		}
	}
	return title, fallbackStakeRole
}
