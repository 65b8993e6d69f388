package handler

import (
	"strings"

	"medtrust/internal/access"
	dErrors "medtrust/pkg/domain-errors"
)

const (
	maxNameLength          = 200
	maxJustificationLength = 2000
	maxLabelLength         = 100
	patientNotApplicable   = "N/A"
)

// AccessRequest is the body of every access endpoint.
type AccessRequest struct {
	Name          string `json:"name"`
	Role          string `json:"role"`
	PatientName   string `json:"patient_name"`
	Justification string `json:"justification"`
}

// Validate trims the request and checks required fields. requirePatient is
// false only for emergency access, where the patient is optional. An empty
// justification is not a validation error here: its meaning differs per flow.
func (r *AccessRequest) Validate(requirePatient bool) error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if len(r.Name) > maxNameLength || len(r.PatientName) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name and patient_name must be at most 200 characters")
	}
	if len(r.Justification) > maxJustificationLength {
		return dErrors.New(dErrors.CodeValidation, "justification must be at most 2000 characters")
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.Justification = strings.TrimSpace(r.Justification)

	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if requirePatient && r.PatientName == "" {
		return dErrors.New(dErrors.CodeValidation, "patient_name is required")
	}
	return nil
}

// toDomain builds the engine request. ip and userAgent come from the
// request context, never from the body.
func (r *AccessRequest) toDomain(ip, userAgent string) access.Request {
	return access.Request{
		Identity:      r.Name,
		Role:          r.Role,
		PatientName:   r.PatientName,
		Justification: r.Justification,
		IP:            ip,
		UserAgent:     userAgent,
	}
}

// PrecheckRequest is the body of POST /precheck.
type PrecheckRequest struct {
	Justification string `json:"justification"`
}

func (r *PrecheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Justification) > maxJustificationLength {
		return dErrors.New(dErrors.CodeValidation, "justification must be at most 2000 characters")
	}
	return nil
}

// LogAccessRequest is the body of POST /log_access. The doctor_* fields are
// accepted as aliases of name and role.
type LogAccessRequest struct {
	Name          string `json:"name"`
	DoctorName    string `json:"doctor_name"`
	Role          string `json:"role"`
	DoctorRole    string `json:"doctor_role"`
	PatientName   string `json:"patient_name"`
	Action        string `json:"action"`
	Justification string `json:"justification"`
	Status        string `json:"status"`
}

func (r *LogAccessRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Name == "" {
		r.Name = r.DoctorName
	}
	if r.Role == "" {
		r.Role = r.DoctorRole
	}

	if len(r.Name) > maxNameLength || len(r.PatientName) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name and patient_name must be at most 200 characters")
	}
	if len(r.Action) > maxLabelLength || len(r.Status) > maxLabelLength || len(r.Role) > maxLabelLength {
		return dErrors.New(dErrors.CodeValidation, "role, action and status must be at most 100 characters")
	}
	if len(r.Justification) > maxJustificationLength {
		return dErrors.New(dErrors.CodeValidation, "justification must be at most 2000 characters")
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
	r.PatientName = strings.TrimSpace(r.PatientName)
	r.Action = strings.TrimSpace(r.Action)
	r.Status = strings.TrimSpace(r.Status)
	if r.PatientName == patientNotApplicable {
		r.PatientName = ""
	}

	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

func (r *LogAccessRequest) toDomain(ip, userAgent string) access.ClientEvent {
	return access.ClientEvent{
		Identity:      r.Name,
		Role:          r.Role,
		PatientName:   r.PatientName,
		Action:        r.Action,
		Justification: r.Justification,
		Status:        r.Status,
		IP:            ip,
		UserAgent:     userAgent,
	}
}
