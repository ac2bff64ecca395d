package export

import (
	"fmt"
	"strings"
)

// Neutral fills shared across themes.
const (
	fillCard  = "FFF8FAFC"
	fillAlt   = "FFF1F5F9"
	fillWhite = "FFFFFFFF"
)

// Fixed agenda entries. The agenda is four items by design, not data-driven.
var agendaItems = [4]string{
	"Executive Summary",
	"Key Benefits",
	"Stakeholder Engagement",
	"Implementation Strategy",
}

// Default strategy pillars used when the content graph carries no strategy
// columns for a pillar-family theme.
var defaultPillars = [4]string{"Plan", "Engage", "Execute", "Sustain"}

// PlanSlides lays out the six canonical slides for a theme. The output is
// deterministic for identical inputs and always exactly six slides in the
// order Title, Agenda, Executive Summary, Benefits, Stakeholders, Strategy.
//
// A nil normalized content is a programmer error: all entry points run
// Normalize first, so the planner panics rather than guessing.
func PlanSlides(themeID int, n *NormalizedContent, style StyleTokens) []Slide {
	if n == nil {
		panic("export: PlanSlides requires normalized content")
	}
	g := geometryFor(themeID)
	return []Slide{
		planTitle(g, n, style),
		planAgenda(g, n, style),
		planExecutiveSummary(g, n, style),
		planBenefits(g, n, style),
		planStakeholders(g, n, style),
		planStrategy(g, n, style),
	}
}

// planTitle splits the canvas into a title region and a solid accent panel.
func planTitle(g themeGeometry, n *NormalizedContent, style StyleTokens) Slide {
	slide := Slide{Kind: SlideTitle, Background: style.BackgroundColor}
	c := g.Canvas

	panelX := c.W * 0.66
	slide.add(Rect{X: panelX, Y: 0, W: c.W - panelX, H: c.H, FillColor: style.AccentColor})
	slide.add(Rect{X: 0, Y: c.H - 0.18, W: panelX, H: 0.18, FillColor: style.AccentColor})

	name := n.ProjectName
	if name == "" {
		name = "Change Management Strategy"
	}
	slide.add(TextBox{
		X: 0.5, Y: c.H * 0.3, W: panelX - 0.9, H: 1.4,
		Text: name, FontSize: style.FontSize.Title, Color: style.TitleColor, Bold: true,
	})
	slide.add(TextBox{
		X: 0.5, Y: c.H*0.3 + 1.5, W: panelX - 0.9, H: 0.5,
		Text: "Change Management Strategy", FontSize: style.FontSize.Heading - 6, Color: style.TextColor,
	})
	return slide
}

// planAgenda renders the fixed four-item enumerated list: constant vertical
// stride, numbered accent badges, never paginated.
func planAgenda(g themeGeometry, _ *NormalizedContent, style StyleTokens) Slide {
	slide := Slide{Kind: SlideAgenda, Background: style.BackgroundColor}
	c := g.Canvas

	addHeading(&slide, g, style, "Agenda")

	stride := (c.H - 1.7) / float64(len(agendaItems))
	badge := 0.45
	for i, item := range agendaItems {
		y := 1.4 + float64(i)*stride
		slide.add(Ellipse{X: 0.6, Y: y, W: badge, H: badge, FillColor: style.AccentColor})
		slide.add(TextBox{
			X: 0.6, Y: y + 0.04, W: badge, H: badge - 0.08,
			Text: fmt.Sprintf("%d", i+1), FontSize: style.FontSize.Body, Color: fillWhite,
			Bold: true, Align: AlignCenter,
		})
		slide.add(TextBox{
			X: 1.25, Y: y + 0.02, W: c.W - 1.8, H: badge,
			Text: item, FontSize: style.FontSize.Heading - 6, Color: style.TextColor,
		})
	}
	return slide
}

func planExecutiveSummary(g themeGeometry, n *NormalizedContent, style StyleTokens) Slide {
	slide := Slide{Kind: SlideExecutiveSummary, Background: style.BackgroundColor}
	addHeading(&slide, g, style, "Executive Summary")

	switch g.ExecSummary {
	case execProse:
		planSummaryProse(&slide, g, n, style)
	default:
		planSummaryTable(&slide, g, n, style)
	}
	return slide
}

// planSummaryTable renders the fixed five-row label/content table. List
// content collapses into a single block with a leading bullet glyph per
// item; row height is constant by design.
func planSummaryTable(slide *Slide, g themeGeometry, n *NormalizedContent, style StyleTokens) {
	c := g.Canvas
	rows := []struct {
		label   string
		content string
	}{
		{"Overview", n.Overview},
		{"Purpose", n.Purpose},
		{"Strategic Alignment", bulletBlock(n.AlignmentBullets)},
		{"Key Benefits", bulletBlock(n.BenefitBullets)},
		{"Objectives", bulletBlock(n.Objectives)},
	}

	rowH := (c.H - 1.6) / float64(len(rows))
	table := Table{
		X: 0.5, Y: 1.3,
		ColWidths: []float64{2.2, c.W - 1.0 - 2.2},
	}
	for i, row := range rows {
		fill := fillCard
		if i%2 == 1 {
			fill = fillAlt
		}
		table.Rows = append(table.Rows, TableRow{
			Height: rowH,
			Cells: []TableCell{
				{Text: row.label, FontSize: style.FontSize.Body, Color: style.TitleColor, FillColor: fill, Bold: true},
				{Text: row.content, FontSize: style.FontSize.Bullet, Color: style.TextColor, FillColor: fill},
			},
		})
	}
	slide.add(table)
}

// planSummaryProse renders a single prose block in a tinted rectangle.
func planSummaryProse(slide *Slide, g themeGeometry, n *NormalizedContent, style StyleTokens) {
	c := g.Canvas
	boxY := 1.3
	boxH := c.H - boxY - 0.5
	slide.add(Rect{X: 0.5, Y: boxY, W: c.W - 1.0, H: boxH, FillColor: fillCard})
	slide.add(Rect{X: 0.5, Y: boxY, W: 0.08, H: boxH, FillColor: style.AccentColor})
	slide.add(TextBox{
		X: 0.85, Y: boxY + 0.25, W: c.W - 1.7, H: boxH - 0.5,
		Text: n.Overview + "\n\n" + n.Purpose,
		FontSize: style.FontSize.Body, Color: style.TextColor,
	})
}

// planBenefits places cards on the theme's N-up grid. Truncation is stable:
// the first capacity cards in input order are always the ones shown.
func planBenefits(g themeGeometry, n *NormalizedContent, style StyleTokens) Slide {
	slide := Slide{Kind: SlideBenefits, Background: style.BackgroundColor}
	addHeading(&slide, g, style, "Key Benefits")

	cards := n.Cards
	if cap := g.BenefitsGrid.capacity(); len(cards) > cap {
		cards = cards[:cap]
	}
	for len(cards) < g.BenefitsPlaceholderMin {
		cards = append(cards, BenefitCard{
			Title:      fallbackCardTitle,
			BulletList: StringList{fallbackBullet},
		})
	}

	for i, card := range cards {
		x, y := g.BenefitsGrid.slot(i)
		w, h := g.BenefitsGrid.CellW, g.BenefitsGrid.CellH

		slide.add(Rect{X: x, Y: y, W: w, H: h, FillColor: fillCard, BorderColor: style.AccentColor})
		slide.add(Rect{X: x, Y: y, W: w, H: 0.07, FillColor: style.AccentColor})
		slide.add(TextBox{
			X: x + 0.12, Y: y + 0.15, W: w - 0.24, H: 0.55,
			Text: card.Title, FontSize: style.FontSize.Body, Color: style.TitleColor, Bold: true,
		})

		bullets := card.BulletList
		if len(bullets) > g.BenefitsBulletCap {
			bullets = bullets[:g.BenefitsBulletCap]
		}
		if len(bullets) > 0 {
			slide.add(TextBox{
				X: x + 0.12, Y: y + 0.75, W: w - 0.24, H: h - 0.9,
				Text: bulletBlock(bullets), FontSize: style.FontSize.Bullet, Color: style.TextColor,
			})
		}
	}
	return slide
}

func planStakeholders(g themeGeometry, n *NormalizedContent, style StyleTokens) Slide {
	slide := Slide{Kind: SlideStakeholders, Background: style.BackgroundColor}
	addHeading(&slide, g, style, "Stakeholder Engagement")

	switch g.Stakeholders {
	case stakeCardGrid:
		planStakeholderCards(&slide, g, n, style)
	case stakeArrowList:
		planStakeholderArrows(&slide, g, n, style)
	default:
		planStakeholderTable(&slide, g, n, style)
	}
	return slide
}

// estimateLines is the documented wrap heuristic: ceil(len/charsPerLine),
// at least one line. Character counts stand in for font metrics on purpose.
func estimateLines(text string, charsPerLine int) int {
	if charsPerLine <= 0 {
		return 1
	}
	lines := (len(text) + charsPerLine - 1) / charsPerLine
	if lines < 1 {
		return 1
	}
	return lines
}

// stakeholderRowHeight derives a dynamic row height from the widest cell's
// estimated line count. Strictly monotonic in text length once above the
// minimum, which is what keeps the running cursor overlap-free.
func stakeholderRowHeight(g themeGeometry, texts ...string) float64 {
	maxLines := 1
	for _, text := range texts {
		if l := estimateLines(text, g.CharsPerLine); l > maxLines {
			maxLines = l
		}
	}
	h := float64(maxLines)*g.LineHeight + g.RowPadding
	if h < g.MinRowHeight {
		h = g.MinRowHeight
	}
	return h
}

// planStakeholderTable is the dynamic-row-height family: per-row fills
// stacked along a running Y cursor, single-line labels vertically centered
// within their row.
func planStakeholderTable(slide *Slide, g themeGeometry, n *NormalizedContent, style StyleTokens) {
	c := g.Canvas
	rows := n.Rows
	if len(rows) == 0 {
		rows = []StakeholderRow{{Title: fallbackStakeName, ProjectRole: fallbackStakeRole}}
	}

	tableX := 0.5
	tableW := c.W - 1.0
	nameW := tableW * 0.26
	roleW := tableW * 0.34
	respW := tableW - nameW - roleW

	headerH := 0.45
	y := 1.3

	slide.add(Rect{X: tableX, Y: y, W: tableW, H: headerH, FillColor: style.AccentColor})
	for i, label := range []string{"Stakeholder", "Role in Project", "Responsibilities"} {
		x := tableX + []float64{0, nameW, nameW + roleW}[i]
		slide.add(TextBox{
			X: x + 0.1, Y: y + (headerH-g.LineHeight)/2, W: []float64{nameW, roleW, respW}[i] - 0.2, H: g.LineHeight,
			Text: label, FontSize: style.FontSize.Body, Color: fillWhite, Bold: true,
		})
	}
	y += headerH

	maxY := c.H - 0.4
	for i, row := range rows {
		name, role := splitStakeholderTitle(row.Title, g.NameSplitPatterns)
		if row.ProjectRole != fallbackStakeRole && role == fallbackStakeRole {
			role = row.ProjectRole
		}
		bullets := row.BulletList
		if len(bullets) > 3 {
			bullets = bullets[:3]
		}
		resp := strings.Join(bullets, "; ")
		if resp == "" {
			resp = fallbackBullet
		}

		rowH := stakeholderRowHeight(g, name, role, resp)
		if y+rowH > maxY {
			if i > 0 {
				// Capacity is whatever fits; remaining rows are dropped, the
				// slide never overflows into a seventh slide.
				break
			}
			// The table always carries at least one row. An oversized first
			// row is clamped to the remaining space rather than dropped.
			rowH = maxY - y
		}

		fill := fillCard
		if i%2 == 1 {
			fill = fillAlt
		}
		slide.add(Rect{X: tableX, Y: y, W: tableW, H: rowH, FillColor: fill})

		// Single-line label cells are vertically centered within the row.
		slide.add(TextBox{
			X: tableX + 0.1, Y: y + (rowH-g.LineHeight)/2, W: nameW - 0.2, H: g.LineHeight,
			Text: name, FontSize: style.FontSize.Bullet, Color: style.TitleColor, Bold: true,
		})
		slide.add(TextBox{
			X: tableX + nameW + 0.1, Y: y + 0.06, W: roleW - 0.2, H: rowH - 0.12,
			Text: role, FontSize: style.FontSize.Bullet, Color: style.TextColor,
		})
		slide.add(TextBox{
			X: tableX + nameW + roleW + 0.1, Y: y + 0.06, W: respW - 0.2, H: rowH - 0.12,
			Text: resp, FontSize: style.FontSize.Bullet, Color: style.TextColor,
		})

		y += rowH
	}
}

// planStakeholderCards is the fixed N-up card family with alternating accent
// coloring by row parity.
func planStakeholderCards(slide *Slide, g themeGeometry, n *NormalizedContent, style StyleTokens) {
	rows := n.Rows
	if cap := g.StakeholderGrid.capacity(); len(rows) > cap {
		rows = rows[:cap]
	}
	if len(rows) == 0 {
		rows = []StakeholderRow{{Title: fallbackStakeName, ProjectRole: fallbackStakeRole}}
	}

	for i, row := range rows {
		x, y := g.StakeholderGrid.slot(i)
		w, h := g.StakeholderGrid.CellW, g.StakeholderGrid.CellH

		fill := fillCard
		if (i/g.StakeholderGrid.Cols)%2 == 1 {
			fill = fillAlt
		}
		slide.add(Rect{X: x, Y: y, W: w, H: h, FillColor: fill})
		slide.add(Rect{X: x, Y: y, W: 0.07, H: h, FillColor: style.AccentColor})

		name, role := splitStakeholderTitle(row.Title, g.NameSplitPatterns)
		if row.ProjectRole != fallbackStakeRole && role == fallbackStakeRole {
			role = row.ProjectRole
		}
		slide.add(TextBox{
			X: x + 0.2, Y: y + 0.12, W: w - 0.35, H: 0.35,
			Text: name, FontSize: style.FontSize.Body, Color: style.TitleColor, Bold: true,
		})
		slide.add(TextBox{
			X: x + 0.2, Y: y + 0.5, W: w - 0.35, H: 0.3,
			Text: role, FontSize: style.FontSize.Bullet, Color: style.AccentColor,
		})

		bullets := row.BulletList
		if len(bullets) > 2 {
			bullets = bullets[:2]
		}
		if len(bullets) > 0 {
			slide.add(TextBox{
				X: x + 0.2, Y: y + 0.85, W: w - 0.35, H: h - 1.0,
				Text: bulletBlock(bullets), FontSize: style.FontSize.Bullet, Color: style.TextColor,
			})
		}
	}
}

// planStakeholderArrows is the 2-column list family: constant-height cells
// with a pointed accent marker, alternating by row parity.
func planStakeholderArrows(slide *Slide, g themeGeometry, n *NormalizedContent, style StyleTokens) {
	rows := n.Rows
	if cap := g.StakeholderGrid.capacity(); len(rows) > cap {
		rows = rows[:cap]
	}
	if len(rows) == 0 {
		rows = []StakeholderRow{{Title: fallbackStakeName, ProjectRole: fallbackStakeRole}}
	}

	for i, row := range rows {
		x, y := g.StakeholderGrid.slot(i)
		w, h := g.StakeholderGrid.CellW, g.StakeholderGrid.CellH

		fill := fillCard
		if (i/g.StakeholderGrid.Cols)%2 == 1 {
			fill = fillAlt
		}
		slide.add(Rect{X: x, Y: y, W: w, H: h, FillColor: fill})
		slide.add(Ellipse{X: x + 0.15, Y: y + h/2 - 0.12, W: 0.24, H: 0.24, FillColor: style.AccentColor})

		name, role := splitStakeholderTitle(row.Title, g.NameSplitPatterns)
		if row.ProjectRole != fallbackStakeRole && role == fallbackStakeRole {
			role = row.ProjectRole
		}
		slide.add(TextBox{
			X: x + 0.55, Y: y + 0.12, W: w - 0.7, H: 0.32,
			Text: name, FontSize: style.FontSize.Body, Color: style.TitleColor, Bold: true,
		})
		slide.add(TextBox{
			X: x + 0.55, Y: y + 0.48, W: w - 0.7, H: h - 0.6,
			Text: role, FontSize: style.FontSize.Bullet, Color: style.TextColor,
		})
	}
}

func planStrategy(g themeGeometry, n *NormalizedContent, style StyleTokens) Slide {
	slide := Slide{Kind: SlideStrategy, Background: style.BackgroundColor}
	addHeading(&slide, g, style, "Implementation Strategy")

	switch g.Strategy {
	case stratPillars:
		planStrategyPillars(&slide, g, n, style)
	case stratNumbered:
		planStrategyNumbered(&slide, g, n, style)
	default:
		planStrategyTable(&slide, g, n, style)
	}
	return slide
}

// strategyPillars converts whatever strategy shape the content carries into
// exactly four pillars. Structure count is fixed by the theme; only bullet
// counts are data-driven.
func strategyPillars(n *NormalizedContent) []StrategyColumn {
	pillars := make([]StrategyColumn, 0, 4)
	for _, column := range n.StrategyColumns {
		if len(pillars) == 4 {
			break
		}
		pillars = append(pillars, column)
	}
	for i := 0; len(pillars) < 4 && i < len(n.NumberedSteps); i++ {
		pillars = append(pillars, StrategyColumn{
			Title:   fmt.Sprintf("Phase %d", len(pillars)+1),
			Bullets: StringList{n.NumberedSteps[i]},
		})
	}
	for len(pillars) < 4 {
		pillars = append(pillars, StrategyColumn{
			Title:   defaultPillars[len(pillars)],
			Bullets: StringList{fallbackBullet},
		})
	}
	return pillars
}

func planStrategyPillars(slide *Slide, g themeGeometry, n *NormalizedContent, style StyleTokens) {
	c := g.Canvas
	pillars := strategyPillars(n)

	gap := 0.15
	colW := (c.W - 0.8 - 3*gap) / 4
	colY := 1.35
	colH := c.H - colY - 0.4

	for i, pillar := range pillars {
		x := 0.4 + float64(i)*(colW+gap)
		slide.add(Rect{X: x, Y: colY, W: colW, H: colH, FillColor: fillCard})
		slide.add(Rect{X: x, Y: colY, W: colW, H: 0.5, FillColor: style.AccentColor})
		slide.add(TextBox{
			X: x + 0.1, Y: colY + 0.08, W: colW - 0.2, H: 0.36,
			Text: pillar.Title, FontSize: style.FontSize.Body, Color: fillWhite, Bold: true, Align: AlignCenter,
		})

		bullets := pillar.Bullets
		if len(bullets) > 4 {
			bullets = bullets[:4]
		}
		if len(bullets) > 0 {
			slide.add(TextBox{
				X: x + 0.12, Y: colY + 0.65, W: colW - 0.24, H: colH - 0.8,
				Text: bulletBlock(bullets), FontSize: style.FontSize.Bullet, Color: style.TextColor,
			})
		}
	}
}

// strategySteps flattens the strategy shape into at most five ordered steps.
func strategySteps(n *NormalizedContent) []string {
	steps := append([]string(nil), n.NumberedSteps...)
	for _, column := range n.StrategyColumns {
		steps = append(steps, column.Title)
	}
	for _, row := range n.ApproachRows {
		steps = append(steps, row.Activity)
	}
	if len(steps) == 0 {
		steps = []string{
			"Assess readiness and define the change vision",
			"Engage stakeholders and build sponsorship",
			"Execute communication and training plans",
			"Sustain adoption and measure outcomes",
		}
	}
	if len(steps) > 5 {
		steps = steps[:5]
	}
	return steps
}

func planStrategyNumbered(slide *Slide, g themeGeometry, n *NormalizedContent, style StyleTokens) {
	c := g.Canvas
	steps := strategySteps(n)

	panelX := c.W * 0.68
	slide.add(Rect{X: panelX, Y: 1.2, W: c.W - panelX - 0.4, H: c.H - 1.6, FillColor: style.AccentColor})
	slide.add(TextBox{
		X: panelX + 0.2, Y: 1.5, W: c.W - panelX - 0.8, H: 1.2,
		Text: "A phased approach keeps momentum visible and measurable.",
		FontSize: style.FontSize.Body, Color: fillWhite, Bold: true,
	})

	stride := (c.H - 1.7) / 5
	badge := 0.4
	for i, step := range steps {
		y := 1.35 + float64(i)*stride
		slide.add(Ellipse{X: 0.45, Y: y, W: badge, H: badge, FillColor: style.AccentColor})
		slide.add(TextBox{
			X: 0.45, Y: y + 0.04, W: badge, H: badge - 0.08,
			Text: fmt.Sprintf("%d", i+1), FontSize: style.FontSize.Bullet, Color: fillWhite,
			Bold: true, Align: AlignCenter,
		})
		slide.add(TextBox{
			X: 1.0, Y: y, W: panelX - 1.5, H: stride - 0.08,
			Text: step, FontSize: style.FontSize.Body, Color: style.TextColor,
		})
	}
}

// strategyApproachRows flattens the strategy shape into activity/approach
// pairs for the two-column table family.
func strategyApproachRows(n *NormalizedContent) []ApproachRow {
	if len(n.ApproachRows) > 0 {
		return n.ApproachRows
	}
	var rows []ApproachRow
	for _, column := range n.StrategyColumns {
		rows = append(rows, ApproachRow{
			Activity: column.Title,
			Approach: strings.Join(column.Bullets, "; "),
		})
	}
	for i, step := range n.NumberedSteps {
		rows = append(rows, ApproachRow{
			Activity: fmt.Sprintf("Step %d", i+1),
			Approach: step,
		})
	}
	if len(rows) == 0 {
		rows = []ApproachRow{{Activity: "Planned activity", Approach: fallbackBullet}}
	}
	return rows
}

func planStrategyTable(slide *Slide, g themeGeometry, n *NormalizedContent, style StyleTokens) {
	c := g.Canvas
	rows := strategyApproachRows(n)

	tableY := 1.3
	rowH := 0.55
	maxRows := int((c.H - tableY - 0.4 - 0.45) / rowH)
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}

	table := Table{
		X: 0.5, Y: tableY,
		ColWidths: []float64{(c.W - 1.0) * 0.38, (c.W - 1.0) * 0.62},
	}
	table.Rows = append(table.Rows, TableRow{
		Height: 0.45,
		Cells: []TableCell{
			{Text: "Activity", FontSize: style.FontSize.Body, Color: fillWhite, FillColor: style.AccentColor, Bold: true},
			{Text: "Approach", FontSize: style.FontSize.Body, Color: fillWhite, FillColor: style.AccentColor, Bold: true},
		},
	})
	for i, row := range rows {
		fill := fillCard
		if i%2 == 1 {
			fill = fillAlt
		}
		table.Rows = append(table.Rows, TableRow{
			Height: rowH,
			Cells: []TableCell{
				{Text: row.Activity, FontSize: style.FontSize.Bullet, Color: style.TitleColor, FillColor: fill, Bold: true},
				{Text: row.Approach, FontSize: style.FontSize.Bullet, Color: style.TextColor, FillColor: fill},
			},
		})
	}
	slide.add(table)
}

// addHeading emits the shared content-slide header: thin accent bar plus
// the slide title.
func addHeading(slide *Slide, g themeGeometry, style StyleTokens, title string) {
	c := g.Canvas
	slide.add(Rect{X: 0, Y: 0, W: c.W, H: 0.09, FillColor: style.AccentColor})
	slide.add(TextBox{
		X: 0.4, Y: 0.3, W: c.W - 0.8, H: 0.6,
		Text: title, FontSize: style.FontSize.Heading, Color: style.TitleColor, Bold: true,
	})
}

// bulletBlock joins list items into one text block with a leading bullet
// glyph per item and newline separators.
func bulletBlock(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(item)
	}
	return b.String()
}
