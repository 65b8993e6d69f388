package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medtrust/internal/audit"
	"medtrust/internal/justification"
	"medtrust/internal/platform/config"
)

func classification(cat justification.Category, conf float64) justification.Classification {
	return justification.Classification{Category: cat, Confidence: conf, Source: justification.SourceModel}
}

func TestIsRestrictedGrant(t *testing.T) {
	p := config.DefaultPolicy()
	tests := []struct {
		name string
		c    justification.Classification
		want bool
	}{
		{"emergency above bar", classification(justification.CategoryEmergency, 0.65), true},
		{"restricted above bar", classification(justification.CategoryRestricted, 0.75), true},
		{"restricted at bar is not granted", classification(justification.CategoryRestricted, 0.55), false},
		{"emergency at bar is not granted", classification(justification.CategoryEmergency, 0.55), false},
		{"just above bar", classification(justification.CategoryRestricted, 0.5500001), true},
		{"invalid never granted", classification(justification.CategoryInvalid, 0.99), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRestrictedGrant(tt.c, p))
		})
	}
}

func TestIsGenuineEmergency(t *testing.T) {
	p := config.DefaultPolicy()
	tests := []struct {
		name string
		c    justification.Classification
		want bool
	}{
		{"model emergency", classification(justification.CategoryEmergency, 0.90), true},
		{"at bar is not genuine", classification(justification.CategoryEmergency, 0.70), false},
		{"keyword emergency is below bar", classification(justification.CategoryEmergency, 0.65), false},
		{"restricted above bar is not an emergency", classification(justification.CategoryRestricted, 0.95), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGenuineEmergency(tt.c, p))
		})
	}
}

func TestIsLowTrust(t *testing.T) {
	p := config.DefaultPolicy()
	assert.False(t, IsLowTrust(40, p), "threshold itself proceeds")
	assert.True(t, IsLowTrust(39, p))
	assert.False(t, IsLowTrust(100, p))
	assert.True(t, IsLowTrust(0, p))
}

func TestEvaluateNormal(t *testing.T) {
	in := evaluateNormal(true, "192.168.1.20")
	assert.Equal(t, OutcomeGranted, in.outcome)
	assert.Equal(t, DeltaNormalGranted, in.delta)
	assert.Equal(t, audit.ActionNormalInNetwork, in.action)
	assert.Equal(t, "Normal access granted from 192.168.1.20.", in.message)

	out := evaluateNormal(false, "10.0.0.1")
	assert.Equal(t, OutcomeDenied, out.outcome)
	assert.Equal(t, DeltaNormalDenied, out.delta)
	assert.Equal(t, audit.StatusDenied, out.status)
}

func TestEvaluateRestrictedGate(t *testing.T) {
	p := config.DefaultPolicy()

	v, decided := evaluateRestrictedGate(true, 0, p)
	assert.True(t, decided, "in network ignores trust entirely")
	assert.Equal(t, OutcomeGranted, v.outcome)
	assert.Equal(t, DeltaRestrictedInNetwork, v.delta)

	v, decided = evaluateRestrictedGate(false, 39, p)
	assert.True(t, decided)
	assert.Equal(t, OutcomeDenied, v.outcome)
	assert.Equal(t, ReasonLowTrust, v.reason)
	assert.Equal(t, DeltaRestrictedLowTrust, v.delta)

	_, decided = evaluateRestrictedGate(false, 40, p)
	assert.False(t, decided)
}

func TestMissingJustificationVerdicts(t *testing.T) {
	restricted := missingRestrictedJustification()
	assert.Equal(t, OutcomeRejected, restricted.outcome)
	assert.Zero(t, restricted.delta)
	assert.Empty(t, restricted.action, "validation errors are not audited")

	emergency := missingEmergencyJustification()
	assert.Equal(t, OutcomeDenied, emergency.outcome)
	assert.Equal(t, DeltaEmergencyMissing, emergency.delta)
	assert.Equal(t, audit.ActionEmergency, emergency.action)
}

func TestEvaluateTemporaryGate(t *testing.T) {
	v, decided := evaluateTemporaryGate("doctor", true)
	assert.True(t, decided)
	assert.Equal(t, OutcomeRejected, v.outcome)
	assert.Zero(t, v.delta)

	v, decided = evaluateTemporaryGate(" Nurse ", false)
	assert.True(t, decided)
	assert.Equal(t, OutcomeDenied, v.outcome)
	assert.Equal(t, DeltaTemporaryDenied, v.delta)

	_, decided = evaluateTemporaryGate("NURSE", true)
	assert.False(t, decided)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "30 minutes", HumanDuration(30*time.Minute))
	assert.Equal(t, "1 minute", HumanDuration(time.Minute))
	assert.Equal(t, "2 hours", HumanDuration(2*time.Hour))
	assert.Equal(t, "90 minutes", HumanDuration(90*time.Minute))
	assert.Equal(t, "45 seconds", HumanDuration(45*time.Second))
}
