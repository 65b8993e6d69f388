package justification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback(t *testing.T) {
	tests := []struct {
		text       string
		category   Category
		confidence float64
	}{
		{"critical respiratory collapse, needs urgent history", CategoryEmergency, 0.65},
		{"SEVERE shock", CategoryEmergency, 0.65},
		{"life saving procedure", CategoryEmergency, 0.65},
		{"reviewing labs urgently", CategoryEmergency, 0.65},
		{"reviewing last week's labs", CategoryRestricted, 0.55},
		{"Follow-up on discharge plan", CategoryRestricted, 0.55},
		{"monitoring insulin levels", CategoryRestricted, 0.55},
		{"routine checkup, no urgency", CategoryInvalid, 0.20},
		{"just curious", CategoryInvalid, 0.20},
		{"   ", CategoryInvalid, 0.0},
		{"", CategoryInvalid, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			c := Fallback(tt.text)
			assert.Equal(t, tt.category, c.Category)
			assert.InDelta(t, tt.confidence, c.Confidence, 1e-9)
			assert.Empty(t, c.Verdict)
		})
	}
}

func TestFallbackIsDeterministic(t *testing.T) {
	first := Fallback("Checking vitals after collapse")
	for range 20 {
		assert.Equal(t, first, Fallback("Checking vitals after collapse"))
	}
	assert.Equal(t, CategoryEmergency, first.Category, "emergency terms take precedence")
}
