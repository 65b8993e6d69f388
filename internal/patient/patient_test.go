package patient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := map[string]string{
		"John Doe":          "john_doe",
		"  Mary-Ann  ":      "mary-ann",
		"o'brien, pat":      "o_brien__pat",
		"patient_7":         "patient_7",
		"ÉLISE":             "_lise",
		"":                  "",
		"   ":               "",
		"../../etc/passwd":  "______etc_passwd",
		"Robert'); DROP --": "robert____drop_--",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ID(in))
		})
	}
}

func TestPDFLink(t *testing.T) {
	assert.Equal(t, "/generate_patient_pdf/john_doe", PDFLink(ID("John Doe")))
}
