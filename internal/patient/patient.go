// Package patient resolves patient records by the identifier derived from
// the patient's name.
package patient

import (
	"context"
	"strings"
)

// Record is the clinical record returned to a caller after a grant.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Email     string `json:"email,omitempty"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Treatment string `json:"treatment,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Store looks records up by ID. Get returns sentinel.ErrNotFound when the
// record does not exist.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
}

// ID normalises a patient name into its record identifier: trimmed,
// lowercased, with every character outside [a-z0-9_-] replaced by '_'.
// A blank name has no identifier.
func ID(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}

// PDFLink is the path the PDF renderer serves the record under.
func PDFLink(id string) string {
	return "/generate_patient_pdf/" + id
}
