package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitKey(t *testing.T) {
	k := NewRateLimitKey(KeyPrefixIP, "2001:db8::1", ClassEmergency)
	assert.Equal(t, "ratelimit:ip:2001_db8__1:emergency", k.String())
}

func TestLimitsGet(t *testing.T) {
	limits := Limits{
		ClassNormal:   {Requests: 30, Window: time.Hour},
		ClassPrecheck: {Requests: 0, Window: time.Hour},
	}

	got, ok := limits.Get(ClassNormal)
	assert.True(t, ok)
	assert.Equal(t, 30, got.Requests)

	_, ok = limits.Get(ClassPrecheck)
	assert.False(t, ok, "zero budget counts as unconfigured")

	_, ok = limits.Get(ClassEmergency)
	assert.False(t, ok)
}

func TestEndpointClassIsValid(t *testing.T) {
	assert.True(t, ClassTemporary.IsValid())
	assert.True(t, ClassLog.IsValid())
	assert.False(t, EndpointClass("auth").IsValid())
}
