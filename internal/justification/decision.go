package justification

// DefaultIntentMinConfidence is the intent confidence below which every
// verdict becomes flag_review.
const DefaultIntentMinConfidence = 0.6

// Decide maps the two model outputs to a raw verdict. lowIntentConfidence
// forces flag_review regardless of the category.
func Decide(category Category, intent Intent, lowIntentConfidence bool) Verdict {
	if lowIntentConfidence {
		return VerdictFlagReview
	}
	switch {
	case category == CategoryEmergency && intent == IntentMedical:
		return VerdictEmergencyAllow
	case category == CategoryRestricted && intent == IntentMedical:
		return VerdictRestrictedAllow
	case category == CategoryInvalid:
		return VerdictDeny
	default:
		return VerdictFlagReview
	}
}

// Classification maps a raw verdict to the category and fixed confidence the
// access engine compares against its thresholds.
func (v Verdict) Classification() Classification {
	c := Classification{Verdict: v, Source: SourceModel}
	switch v {
	case VerdictEmergencyAllow:
		c.Category, c.Confidence = CategoryEmergency, 0.90
	case VerdictRestrictedAllow:
		c.Category, c.Confidence = CategoryRestricted, 0.75
	case VerdictDeny:
		c.Category, c.Confidence = CategoryInvalid, 0.20
	default:
		c.Verdict = VerdictFlagReview
		c.Category, c.Confidence = CategoryRestricted, 0.55
	}
	return c
}
