package justification

// Strength grades a justification while it is still being typed.
type Strength string

const (
	StrengthValid   Strength = "valid"
	StrengthWeak    Strength = "weak"
	StrengthInvalid Strength = "invalid"
)

// Feedback is the typing-time assessment of a justification.
type Feedback struct {
	Strength   Strength
	Message    string
	Category   Category
	Confidence float64
}

// Assess grades a classification for precheck feedback.
func Assess(c Classification) Feedback {
	f := Feedback{Category: c.Category, Confidence: c.Confidence}
	switch {
	case c.Source == SourceEmpty:
		f.Strength, f.Message = StrengthInvalid, "Enter justification..."
	case c.Category == CategoryEmergency && c.Confidence > 0.8:
		f.Strength, f.Message = StrengthValid, "Excellent justification"
	case c.Category == CategoryEmergency && c.Confidence > 0.6:
		f.Strength, f.Message = StrengthWeak, "Good, but maintain detail"
	case c.Category == CategoryEmergency:
		f.Strength, f.Message = StrengthWeak, "Weak medical context"
	case c.Category == CategoryRestricted && c.Confidence > 0.7:
		f.Strength, f.Message = StrengthValid, "Valid reason"
	case c.Category == CategoryRestricted:
		f.Strength, f.Message = StrengthWeak, "Vague reason"
	default:
		f.Strength, f.Message = StrengthInvalid, "Invalid justification"
	}
	return f
}
