package export

import (
	"encoding/json"
	"sort"
	"strings"
)

// Documented fallback strings used when content is absent or malformed.
// These are rendered verbatim, so they must read like real deck copy.
const (
	fallbackOverview = "This project represents a strategic initiative to improve organizational performance and deliver lasting value."
	fallbackPurpose  = "Deliver a structured change management approach that prepares the organization for a smooth transition."
	fallbackBullet   = "Details will be confirmed during the planning phase."

	fallbackCardTitle   = "Key Benefit"
	fallbackStakeName   = "Project Team"
	fallbackStakeRole   = "Key Stakeholder"
	fallbackStrategyCol = "Implementation Focus"

	// Text-artifact placeholders (spec-visible contract).
	placeholderNoEmails = "No communication emails available for this project."
	placeholderNoScript = "No video script available for this project."
	placeholderNoFAQs   = "No FAQs available for this project."
	placeholderQuestion = "Question not available."
	placeholderAnswer   = "Answer not available."
)

// ScriptKind tags the resolved shape of the video script field.
type ScriptKind int

const (
	// ScriptMissing means no usable script content was supplied.
	ScriptMissing ScriptKind = iota
	// ScriptStructured means known sections were parsed successfully.
	ScriptStructured
	// ScriptRaw means the field was an opaque string that did not parse;
	// the whole string is carried as one raw content block.
	ScriptRaw
)

// ScriptSection is one known, present section of a structured video script,
// in canonical playback order.
type ScriptSection struct {
	Label string
	Text  string
}

// ScriptContent is the tagged union {Structured(sections) | Raw(text)},
// resolved exactly once so planners and artifact derivation never
// re-implement the parse-or-fallback logic.
type ScriptContent struct {
	Kind     ScriptKind
	Sections []ScriptSection
	Raw      string
}

// RoleEmail is an email keyed by its audience role, flattened out of the
// input map into a deterministic order.
type RoleEmail struct {
	Role    string
	Subject string
	Body    string
}

// NormalizedContent is the per-slide-ready view of a project. Every field
// is safe to render: no nils, no empty primary text.
type NormalizedContent struct {
	ProjectName string

	Overview         string
	Purpose          string
	AlignmentBullets []string
	BenefitBullets   []string
	Objectives       []string

	Cards []BenefitCard
	Rows  []StakeholderRow

	StrategyColumns []StrategyColumn
	NumberedSteps   []string
	ApproachRows    []ApproachRow

	Emails []RoleEmail
	Script ScriptContent
	FAQs   []FAQ
}

// Normalize extracts and defaults every slide's data from the loosely-typed
// content graph. It never fails: missing or malformed sub-trees degrade to
// the documented placeholders above.
func Normalize(project *ProjectContent) *NormalizedContent {
	n := &NormalizedContent{}
	if project != nil {
		n.ProjectName = strings.TrimSpace(project.Name)
	}

	var content *GeneratedContent
	if project != nil {
		content = project.GeneratedContent
	}
	if content == nil {
		content = &GeneratedContent{}
	}

	normalizeSummary(n, content.ExecutiveSummary)
	normalizeBenefits(n, content.Benefits)
	normalizeStakeholders(n, content.Stakeholders)
	normalizeStrategy(n, content.Strategy)
	normalizeEmails(n, content.Emails)
	n.Script = resolveScript(content.VideoScript)
	normalizeFAQs(n, content.FAQs)

	return n
}

func normalizeSummary(n *NormalizedContent, summary *ExecutiveSummary) {
	if summary == nil {
		summary = &ExecutiveSummary{}
	}
	n.Overview = fallbackText(summary.Overview, fallbackOverview)
	n.Purpose = fallbackText(summary.Purpose, fallbackPurpose)
	n.AlignmentBullets = fallbackList(summary.AlignmentBullets)
	n.BenefitBullets = fallbackList(summary.BenefitBullets)
	n.Objectives = fallbackList(summary.Objectives)
}

func normalizeBenefits(n *NormalizedContent, benefits *Benefits) {
	if benefits == nil {
		return
	}
	for _, card := range benefits.Cards {
		out := BenefitCard{
			Title:      fallbackText(card.Title, fallbackCardTitle),
			BulletList: cleanList(card.BulletList),
		}
		n.Cards = append(n.Cards, out)
	}
}

func normalizeStakeholders(n *NormalizedContent, stakeholders *Stakeholders) {
	if stakeholders == nil {
		return
	}
	for _, row := range stakeholders.Rows {
		out := StakeholderRow{
			Title:       fallbackText(row.Title, fallbackStakeName),
			ProjectRole: fallbackText(row.ProjectRole, fallbackStakeRole),
			BulletList:  cleanList(row.BulletList),
		}
		n.Rows = append(n.Rows, out)
	}
}

func normalizeStrategy(n *NormalizedContent, strategy *Strategy) {
	if strategy == nil {
		return
	}
	for _, column := range strategy.Columns {
		n.StrategyColumns = append(n.StrategyColumns, StrategyColumn{
			Title:   fallbackText(column.Title, fallbackStrategyCol),
			Bullets: cleanList(column.Bullets),
		})
	}
	n.NumberedSteps = cleanList(strategy.NumberedSteps)
	for _, row := range strategy.ApproachRows {
		activity := strings.TrimSpace(row.Activity)
		approach := strings.TrimSpace(row.Approach)
		if activity == "" && approach == "" {
			continue
		}
		n.ApproachRows = append(n.ApproachRows, ApproachRow{
			Activity: fallbackText(activity, "Planned activity"),
			Approach: fallbackText(approach, fallbackBullet),
		})
	}
}

func normalizeEmails(n *NormalizedContent, emails map[string]*Email) {
	roles := make([]string, 0, len(emails))
	for role, email := range emails {
		if email == nil {
			continue
		}
		if strings.TrimSpace(email.Subject) == "" && strings.TrimSpace(email.Body) == "" {
			continue
		}
		roles = append(roles, role)
	}
	// Map iteration order is random; exports must be deterministic.
	sort.Strings(roles)
	for _, role := range roles {
		email := emails[role]
		n.Emails = append(n.Emails, RoleEmail{
			Role:    role,
			Subject: fallbackText(email.Subject, "Project Update"),
			Body:    fallbackText(email.Body, "Content to be provided."),
		})
	}
}

func normalizeFAQs(n *NormalizedContent, faqs []FAQ) {
	for _, faq := range faqs {
		if strings.TrimSpace(faq.Question) == "" && strings.TrimSpace(faq.Answer) == "" {
			continue
		}
		n.FAQs = append(n.FAQs, FAQ{
			Question: fallbackText(faq.Question, placeholderQuestion),
			Answer:   fallbackText(faq.Answer, placeholderAnswer),
		})
	}
}

// scriptSectionOrder fixes the playback order of known sections.
var scriptSectionOrder = []struct {
	label string
	pick  func(videoScriptSections) string
}{
	{"OPENING", func(s videoScriptSections) string { return s.Opening }},
	{"SUPPORTING VISUALS", func(s videoScriptSections) string { return s.SupportingVisuals }},
	{"EXECUTIVE RETURN", func(s videoScriptSections) string { return s.ExecutiveReturn }},
	{"SUPPORTING VISUALS 2", func(s videoScriptSections) string { return s.SupportingVisuals2 }},
	{"CLOSING", func(s videoScriptSections) string { return s.Closing }},
	{"FADE OUT", func(s videoScriptSections) string { return s.FadeOut }},
}

// resolveScript performs the lenient parse of the video script field:
// structured object → sections; JSON string → retry parse of its contents;
// anything else non-empty → one raw block. Parse failure is never an error.
func resolveScript(raw json.RawMessage) ScriptContent {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ScriptContent{Kind: ScriptMissing}
	}

	var sections videoScriptSections
	if err := json.Unmarshal(raw, &sections); err == nil {
		if resolved, ok := structuredScript(sections); ok {
			return resolved
		}
		return ScriptContent{Kind: ScriptMissing}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		// Not an object and not a string: carry the raw JSON verbatim.
		return ScriptContent{Kind: ScriptRaw, Raw: trimmed}
	}
	if strings.TrimSpace(text) == "" {
		return ScriptContent{Kind: ScriptMissing}
	}

	var nested videoScriptSections
	if err := json.Unmarshal([]byte(text), &nested); err == nil {
		if resolved, ok := structuredScript(nested); ok {
			return resolved
		}
	}
	return ScriptContent{Kind: ScriptRaw, Raw: text}
}

func structuredScript(sections videoScriptSections) (ScriptContent, bool) {
	out := ScriptContent{Kind: ScriptStructured}
	for _, entry := range scriptSectionOrder {
		if text := strings.TrimSpace(entry.pick(sections)); text != "" {
			out.Sections = append(out.Sections, ScriptSection{Label: entry.label, Text: text})
		}
	}
	if len(out.Sections) == 0 {
		return ScriptContent{}, false
	}
	return out, true
}

func fallbackText(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

// fallbackList guarantees at least one renderable bullet.
func fallbackList(list []string) []string {
	cleaned := cleanList(list)
	if len(cleaned) == 0 {
		return []string{fallbackBullet}
	}
	return cleaned
}

func cleanList(list []string) []string {
	var out []string
	for _, item := range list {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
