package narrative

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// Markdown renders a report as Markdown with one H2 per section.
func Markdown(r Report) string {
	var b strings.Builder
	for _, s := range []struct{ heading, body string }{
		{HeadingHealth, r.HealthSummary},
		{HeadingRisk, r.RiskExplanation},
		{HeadingRecommendations, r.ImprovementRecommendations},
	} {
		b.WriteString("## " + titleCase(s.heading) + "\n\n")
		b.WriteString(strings.TrimSpace(s.body) + "\n\n")
	}
	return strings.TrimSpace(b.String()) + "\n"
}

// ToHTML converts Markdown to HTML.
func ToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ParseRendered splits text produced by Render back into its sections.
// Text that lacks the headings lands entirely in HealthSummary.
func ParseRendered(text string) Report {
	idxHealth := strings.Index(text, HeadingHealth)
	idxRisk := strings.Index(text, HeadingRisk)
	idxRec := strings.Index(text, HeadingRecommendations)
	if idxHealth < 0 || idxRisk < idxHealth || idxRec < idxRisk {
		return Report{HealthSummary: strings.TrimSpace(text)}
	}
	return Report{
		HealthSummary:              strings.TrimSpace(text[idxHealth+len(HeadingHealth) : idxRisk]),
		RiskExplanation:            strings.TrimSpace(text[idxRisk+len(HeadingRisk) : idxRec]),
		ImprovementRecommendations: strings.TrimSpace(text[idxRec+len(HeadingRecommendations):]),
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
