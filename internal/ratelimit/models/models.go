package models

import (
	"time"
)

// EndpointClass groups endpoints that share one hourly budget per client IP.
type EndpointClass string

const (
	ClassNormal     EndpointClass = "normal"
	ClassRestricted EndpointClass = "restricted"
	ClassEmergency  EndpointClass = "emergency"
	ClassTemporary  EndpointClass = "temporary"
	ClassPrecheck   EndpointClass = "precheck"
	ClassLog        EndpointClass = "log"
)

// IsValid checks if the endpoint class is one of the supported enum values.
func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassNormal, ClassRestricted, ClassEmergency, ClassTemporary, ClassPrecheck, ClassLog:
		return true
	}
	return false
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// Limit is the budget for one endpoint class.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Limits maps each endpoint class to its budget.
type Limits map[EndpointClass]Limit

// Get returns the budget for class. ok is false for unconfigured classes.
func (l Limits) Get(class EndpointClass) (Limit, bool) {
	limit, ok := l[class]
	if !ok || limit.Requests <= 0 || limit.Window <= 0 {
		return Limit{}, false
	}
	return limit, true
}
