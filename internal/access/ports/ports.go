package ports

import (
	"context"

	"medtrust/internal/audit"
	"medtrust/internal/justification"
	"medtrust/internal/patient"
)

// NetworkChecker classifies a caller address.
type NetworkChecker interface {
	IsTrusted(ip string) bool
}

// TrustScorer reads and adjusts trust scores. Implementations never fail:
// Score falls back to a default and Adjust reports false on failure.
type TrustScorer interface {
	Score(ctx context.Context, identity string) int
	Adjust(ctx context.Context, identity string, delta int) (int, bool)
}

// Classifier scores a justification. Implementations never fail.
type Classifier interface {
	Classify(ctx context.Context, text string) justification.Classification
}

// PatientStore resolves records by normalised ID.
type PatientStore interface {
	Get(ctx context.Context, id string) (*patient.Record, error)
}

// AuditPort receives one entry per access attempt. Errors are logged by the
// caller and never block a decision.
type AuditPort interface {
	Emit(ctx context.Context, entry audit.Entry) error
}
