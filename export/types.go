package export

import (
	"encoding/json"
	"strings"
)

// ProjectContent is the read-only input graph for document generation.
// It arrives as the JSON body of a generation request (or from the project
// store) and every nested field is optional: absence or a malformed shape
// resolves to a documented fallback in the normalizer, never an error.
type ProjectContent struct {
	Name             string            `json:"name"`
	TemplateID       int               `json:"templateId"`
	GeneratedContent *GeneratedContent `json:"generatedContent"`
}

// GeneratedContent is the AI-produced content tree for a project.
type GeneratedContent struct {
	ExecutiveSummary *ExecutiveSummary `json:"executiveSummary"`
	Benefits         *Benefits         `json:"benefits"`
	Stakeholders     *Stakeholders     `json:"stakeholders"`
	Strategy         *Strategy         `json:"strategy"`
	Emails           map[string]*Email `json:"emails"`
	// VideoScript is sometimes a structured object and sometimes an opaque
	// string; it is kept raw here and resolved once by the normalizer.
	VideoScript json.RawMessage `json:"videoScript"`
	FAQs        []FAQ           `json:"faqs"`
}

type ExecutiveSummary struct {
	Overview         string     `json:"overview"`
	Purpose          string     `json:"purpose"`
	AlignmentBullets StringList `json:"alignmentBullets"`
	BenefitBullets   StringList `json:"benefitBullets"`
	Objectives       StringList `json:"objectives"`
}

type Benefits struct {
	Cards []BenefitCard `json:"cards"`
}

type BenefitCard struct {
	Title      string     `json:"title"`
	BulletList StringList `json:"bulletList"`
}

type Stakeholders struct {
	Rows []StakeholderRow `json:"rows"`
}

// StakeholderRow describes one stakeholder. Title sometimes encodes
// "Name (Role)" or "Name, Role"; the planner splits it per theme.
type StakeholderRow struct {
	Title       string     `json:"title"`
	ProjectRole string     `json:"projectRole"`
	BulletList  StringList `json:"bulletList"`
}

type Strategy struct {
	Columns       []StrategyColumn `json:"columns"`
	NumberedSteps StringList       `json:"numberedSteps"`
	ApproachRows  []ApproachRow    `json:"approachRows"`
}

type StrategyColumn struct {
	Title   string     `json:"title"`
	Bullets StringList `json:"bullets"`
}

type ApproachRow struct {
	Activity string `json:"activity"`
	Approach string `json:"approach"`
}

type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// videoScriptSections is the structured shape of the video script field.
type videoScriptSections struct {
	Opening            string `json:"opening"`
	SupportingVisuals  string `json:"supportingVisuals"`
	ExecutiveReturn    string `json:"executiveReturn"`
	SupportingVisuals2 string `json:"supportingVisuals2"`
	Closing            string `json:"closing"`
	FadeOut            string `json:"fadeOut"`
}

// StringList is a []string that also accepts a single JSON string or a
// mixed-type array, coercing elements with fmt-free best effort. Upstream
// content generation occasionally emits a bare string where a list is
// expected; coercion here keeps the normalizer's fallback chain simple.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*s = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			*s = nil
		} else {
			*s = StringList{single}
		}
		return nil
	}

	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		// Malformed shape degrades to an empty list rather than failing
		// the whole request body.
		*s = nil
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				out = append(out, v)
			}
		case map[string]interface{}:
			// Some generators wrap bullets as {"text": "..."}.
			if txt, ok := v["text"].(string); ok && strings.TrimSpace(txt) != "" {
				out = append(out, txt)
			}
		}
	}
	*s = out
	return nil
}
