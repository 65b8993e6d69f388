package handler

import (
	"net/http"
	"time"

	"medtrust/internal/access"
	"medtrust/internal/justification"
)

// AccessResponse is the HTTP response of every access endpoint.
// patient_data is an empty object and pdf_link is null when no record is
// returned.
type AccessResponse struct {
	Success        bool       `json:"success"`
	Outcome        string     `json:"outcome"`
	Reason         string     `json:"reason"`
	Message        string     `json:"message"`
	PatientData    any        `json:"patient_data"`
	PDFLink        *string    `json:"pdf_link"`
	TrustScore     int        `json:"trust_score"`
	AILabel        string     `json:"ai_label,omitempty"`
	AIConfidence   *float64   `json:"ai_confidence,omitempty"`
	GrantExpiresAt *time.Time `json:"grant_expires_at,omitempty"`
}

// FromDecision converts a decision to its response body.
func FromDecision(d access.Decision) *AccessResponse {
	resp := &AccessResponse{
		Success:     d.Success(),
		Outcome:     string(d.Outcome),
		Reason:      string(d.Reason),
		Message:     d.Message,
		PatientData: struct{}{},
		TrustScore:  d.TrustScore,
	}
	if d.Patient != nil {
		resp.PatientData = d.Patient
	}
	if d.PDFLink != "" {
		link := d.PDFLink
		resp.PDFLink = &link
	}
	if d.Classification != nil {
		conf := d.Classification.Confidence
		resp.AILabel = string(d.Classification.Category)
		resp.AIConfidence = &conf
	}
	if !d.GrantExpiresAt.IsZero() {
		exp := d.GrantExpiresAt.UTC()
		resp.GrantExpiresAt = &exp
	}
	return resp
}

// StatusFor maps a decision to its HTTP status. A missing record wins over
// the access outcome.
func StatusFor(d access.Decision) int {
	switch {
	case d.RecordStatus == access.RecordNotFound:
		return http.StatusNotFound
	case d.Reason == access.ReasonNotNurse:
		return http.StatusForbidden
	case d.Reason == access.ReasonMissingJustification:
		return http.StatusBadRequest
	case d.Outcome == access.OutcomeGranted:
		return http.StatusOK
	default:
		return http.StatusForbidden
	}
}

// PrecheckResponse is the HTTP response of POST /precheck.
type PrecheckResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

func FromFeedback(f justification.Feedback) *PrecheckResponse {
	return &PrecheckResponse{
		Status:   string(f.Strength),
		Message:  f.Message,
		Score:    f.Confidence,
		Category: string(f.Category),
	}
}

// TrustScoreResponse is the HTTP response of GET /trust_score/{identity}.
type TrustScoreResponse struct {
	Identity   string `json:"identity"`
	TrustScore int    `json:"trust_score"`
}

// LogAccessResponse is the body of POST /log_access.
type LogAccessResponse struct {
	Logged  bool   `json:"logged"`
	Message string `json:"message"`
}

func FromLogged(logged bool) *LogAccessResponse {
	if logged {
		return &LogAccessResponse{Logged: true, Message: "Access logged"}
	}
	return &LogAccessResponse{Message: "Logging skipped (audit sink unavailable)"}
}
