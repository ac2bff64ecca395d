package export

import (
	"fmt"
	"strings"
)

// Text artifacts use plain 7-bit ASCII banners so they read cleanly without
// any rendering engine.
const (
	bannerRule  = "========================================"
	sectionRule = "----------------------------------------"
)

func banner(title string) string {
	return bannerRule + "\n " + title + "\n" + bannerRule + "\n"
}

// RenderEmailsText derives emails.txt: a fixed banner, then one block per
// role (role header, subject, rule line, body). Roles were already sorted
// by the normalizer, so output is deterministic.
func RenderEmailsText(n *NormalizedContent) string {
	var b strings.Builder
	b.WriteString(banner("COMMUNICATION EMAILS"))
	b.WriteByte('\n')

	if len(n.Emails) == 0 {
		b.WriteString(placeholderNoEmails)
		b.WriteByte('\n')
		return b.String()
	}

	for i, email := range n.Emails {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "TO: %s\n", strings.ToUpper(email.Role))
		fmt.Fprintf(&b, "SUBJECT: %s\n", email.Subject)
		b.WriteString(sectionRule)
		b.WriteByte('\n')
		b.WriteString(email.Body)
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderVideoScriptText derives video_script.txt. Structured scripts emit
// each present section in playback order; a raw script dumps the original
// unparsed content in one block; absence emits the placeholder.
func RenderVideoScriptText(n *NormalizedContent) string {
	var b strings.Builder
	b.WriteString(banner("VIDEO SCRIPT"))
	b.WriteByte('\n')

	switch n.Script.Kind {
	case ScriptStructured:
		for i, section := range n.Script.Sections {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(section.Label)
			b.WriteByte('\n')
			b.WriteString(sectionRule)
			b.WriteByte('\n')
			b.WriteString(section.Text)
			b.WriteByte('\n')
		}
	case ScriptRaw:
		b.WriteString("RAW CONTENT\n")
		b.WriteString(sectionRule)
		b.WriteByte('\n')
		b.WriteString(n.Script.Raw)
		b.WriteByte('\n')
	default:
		b.WriteString(placeholderNoScript)
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderFAQsText derives faqs.txt as Q{n}/A{n} pairs. Missing question or
// answer text was already replaced with placeholders by the normalizer.
func RenderFAQsText(n *NormalizedContent) string {
	var b strings.Builder
	b.WriteString(banner("FREQUENTLY ASKED QUESTIONS"))
	b.WriteByte('\n')

	if len(n.FAQs) == 0 {
		b.WriteString(placeholderNoFAQs)
		b.WriteByte('\n')
		return b.String()
	}

	for i, faq := range n.FAQs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Q%d: %s\n", i+1, faq.Question)
		fmt.Fprintf(&b, "A%d: %s\n", i+1, faq.Answer)
	}
	return b.String()
}
