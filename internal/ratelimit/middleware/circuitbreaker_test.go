package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker(t *testing.T) {
	cb := newCircuitBreaker(3, 2)

	assert.False(t, cb.RecordFailure())
	assert.False(t, cb.RecordFailure())
	assert.True(t, cb.RecordSuccess(), "success while closed resets the failure count")
	assert.False(t, cb.RecordFailure())
	assert.False(t, cb.RecordFailure())
	assert.True(t, cb.RecordFailure())
	assert.True(t, cb.IsOpen())

	assert.False(t, cb.RecordSuccess())
	assert.True(t, cb.RecordFailure(), "failure while open keeps it open")
	assert.False(t, cb.RecordSuccess())
	assert.True(t, cb.RecordSuccess())
	assert.False(t, cb.IsOpen())
}
