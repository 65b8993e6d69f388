// Package justification scores the free-text reason a clinician gives for
// out-of-network or emergency access.
package justification

import "context"

// Category is what kind of claim a justification makes.
type Category string

const (
	CategoryEmergency  Category = "emergency"
	CategoryRestricted Category = "restricted"
	CategoryInvalid    Category = "invalid"
)

// Intent is whether the stated reason is clinically grounded.
type Intent string

const (
	IntentMedical    Intent = "medical"
	IntentAdmin      Intent = "admin"
	IntentNonMedical Intent = "non_medical"
)

// Verdict is the raw outcome of the category/intent decision table.
type Verdict string

const (
	VerdictEmergencyAllow  Verdict = "emergency_allow"
	VerdictRestrictedAllow Verdict = "restricted_allow"
	VerdictDeny            Verdict = "deny"
	VerdictFlagReview      Verdict = "flag_review"
)

// Source records which path produced a classification.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
	SourceEmpty    Source = "empty"
)

// Classification is the value handed to the access engine and copied into
// the audit trail.
type Classification struct {
	Category   Category
	Confidence float64
	Verdict    Verdict
	Source     Source
}

// LabelModel predicts a class label without a confidence.
type LabelModel interface {
	Predict(ctx context.Context, text string) (string, error)
}

// ScoredModel predicts a class label and its probability.
type ScoredModel interface {
	PredictScored(ctx context.Context, text string) (string, float64, error)
}

// IntentModel is the medical-intent classifier with its capability fixed at
// construction: it either exposes a confidence or it does not.
type IntentModel struct {
	label  LabelModel
	scored ScoredModel
}

// IntentWithConfidence wraps a model whose confidence gates the verdict.
func IntentWithConfidence(m ScoredModel) IntentModel {
	return IntentModel{scored: m}
}

// IntentWithoutConfidence wraps a label-only model.
func IntentWithoutConfidence(m LabelModel) IntentModel {
	return IntentModel{label: m}
}

// HasConfidence reports which capability the model was built with.
func (m IntentModel) HasConfidence() bool {
	return m.scored != nil
}

func (m IntentModel) valid() bool {
	return m.scored != nil || m.label != nil
}

// predict returns the intent and, for scored models, its confidence. ok is
// false for label-only models.
func (m IntentModel) predict(ctx context.Context, text string) (Intent, float64, bool, error) {
	if m.scored != nil {
		label, conf, err := m.scored.PredictScored(ctx, text)
		return Intent(label), conf, true, err
	}
	label, err := m.label.Predict(ctx, text)
	return Intent(label), 0, false, err
}
