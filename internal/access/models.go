// Package access is the admission decision engine: it combines the network
// gate, the trust score and the justification classifier into one verdict
// per request.
package access

import (
	"time"

	"medtrust/internal/justification"
	"medtrust/internal/patient"
)

// Flow is one of the request paths a caller can take.
type Flow string

const (
	FlowNormal     Flow = "normal"
	FlowRestricted Flow = "restricted"
	FlowEmergency  Flow = "emergency"
	FlowTemporary  Flow = "temporary"
)

// Outcome is the terminal state of a flow. Rejected means the request itself
// was unacceptable and no policy decision was taken.
type Outcome string

const (
	OutcomeGranted  Outcome = "granted"
	OutcomeDenied   Outcome = "denied"
	OutcomeFlagged  Outcome = "flagged"
	OutcomeRejected Outcome = "rejected"
)

// RecordStatus is independent of the outcome: a granted request can still
// name a patient that does not exist.
type RecordStatus string

const (
	RecordNotRequested RecordStatus = ""
	RecordFound        RecordStatus = "found"
	RecordNotFound     RecordStatus = "not_found"
)

// Reason is the machine-readable cause of an outcome.
type Reason string

const (
	ReasonInNetwork             Reason = "in_network"
	ReasonOutsideNetwork        Reason = "outside_network"
	ReasonLowTrust              Reason = "low_trust"
	ReasonMissingJustification  Reason = "missing_justification"
	ReasonJustificationAccepted Reason = "justification_accepted"
	ReasonJustificationFlagged  Reason = "justification_flagged"
	ReasonGenuineEmergency      Reason = "genuine_emergency"
	ReasonSuspiciousEmergency   Reason = "suspicious_emergency"
	ReasonNotNurse              Reason = "role_not_permitted"
	ReasonPatientNotFound       Reason = "patient_not_found"
	ReasonTemporaryGranted      Reason = "temporary_access_granted"
)

// Request is the flat input every flow receives.
type Request struct {
	Identity      string
	Role          string
	PatientName   string
	Justification string
	IP            string
	UserAgent     string
}

// Decision is the typed result of one flow.
type Decision struct {
	Flow       Flow
	Outcome    Outcome
	Reason     Reason
	Message    string
	TrustDelta int

	// TrustScore is the score after the delta; TrustUpdated is false when
	// the adjustment could not be persisted.
	TrustScore   int
	TrustUpdated bool

	Classification *justification.Classification

	RecordStatus RecordStatus
	PatientID    string
	Patient      *patient.Record
	PDFLink      string

	GrantExpiresAt time.Time
}

// Success is true for a granted decision whose record, if one was
// requested, was found.
func (d Decision) Success() bool {
	return d.Outcome == OutcomeGranted && d.RecordStatus != RecordNotFound
}

// ClientEvent is an audit record submitted by a client, such as a login or
// a record view. It never touches trust and is recorded best-effort.
type ClientEvent struct {
	Identity      string
	Role          string
	PatientName   string
	Action        string
	Justification string
	Status        string
	IP            string
	UserAgent     string
}
