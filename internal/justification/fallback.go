package justification

import "strings"

var (
	emergencyTerms  = []string{"critical", "urgent", "severe", "respiratory", "collapse", "shock", "life", "saving"}
	restrictedTerms = []string{"reviewing", "checking", "follow-up", "analysis", "monitor"}
)

// Fallback is the keyword classifier used when the models are absent or
// fail. Terms match as case-insensitive substrings; emergency terms win.
// Keyword results carry no Verdict.
func Fallback(text string) Classification {
	lower := strings.ToLower(text)
	c := Classification{Source: SourceFallback}
	switch {
	case strings.TrimSpace(lower) == "":
		c.Category, c.Confidence = CategoryInvalid, 0.0
		c.Source = SourceEmpty
	case containsAny(lower, emergencyTerms):
		c.Category, c.Confidence = CategoryEmergency, 0.65
	case containsAny(lower, restrictedTerms):
		c.Category, c.Confidence = CategoryRestricted, 0.55
	default:
		c.Category, c.Confidence = CategoryInvalid, 0.20
	}
	return c
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
