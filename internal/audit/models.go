// Package audit records one entry per access attempt.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Action names the access path that produced an entry.
type Action string

const (
	ActionNormalInNetwork     Action = "Normal Access (In-Network)"
	ActionNormalOutside       Action = "Normal Access (Outside Network)"
	ActionRestrictedInNetwork Action = "Restricted Access (In-Network)"
	ActionRestrictedLowTrust  Action = "Restricted Access (Low Trust)"
	ActionRestrictedOutside   Action = "Restricted Access (Outside Network)"
	ActionEmergency           Action = "Emergency Access"
	ActionTemporary           Action = "Temporary Access Request"
	ActionUnknown             Action = "Unknown"
)

type Status string

const (
	StatusGranted Status = "Granted"
	StatusDenied  Status = "Denied"
	StatusFlagged Status = "Flagged"
	StatusPending Status = "Pending"
)

// Entry is a single access attempt. Justification holds sealed text when
// Sealed is set. AIConfidence is nil when no classification ran.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Actor         string    `json:"actor"`
	Role          string    `json:"role"`
	Action        Action    `json:"action"`
	Patient       string    `json:"patient,omitempty"`
	IP            string    `json:"ip"`
	Device        string    `json:"device,omitempty"`
	Status        Status    `json:"status"`
	Justification string    `json:"justification,omitempty"`
	Sealed        bool      `json:"sealed,omitempty"`
	AILabel       string    `json:"ai_label,omitempty"`
	AIConfidence  *float64  `json:"ai_confidence,omitempty"`
	AISource      string    `json:"ai_source,omitempty"`
	TrustDelta    int       `json:"trust_delta"`
	Duration      string    `json:"duration,omitempty"`
}

// Sink accepts entries. Implementations: in-memory, PostgreSQL, Kafka.
type Sink interface {
	Append(ctx context.Context, entry Entry) error
}

// Store is a Sink that can also be queried.
type Store interface {
	Sink
	ListByActor(ctx context.Context, actor string) ([]Entry, error)
	ListAll(ctx context.Context) ([]Entry, error)
}
