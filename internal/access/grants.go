package access

import (
	"context"
	"sync"
	"time"
)

// Grant is a time-bounded permission for one identity on one patient record.
type Grant struct {
	Identity  string
	PatientID string
	GrantedAt time.Time
	ExpiresAt time.Time
}

type grantKey struct {
	identity  string
	patientID string
}

// GrantRegistry holds temporary grants in memory. Expired grants are never
// reported as active; Sweep removes them.
type GrantRegistry struct {
	mu     sync.Mutex
	grants map[grantKey]Grant
	now    func() time.Time
}

func NewGrantRegistry(now func() time.Time) *GrantRegistry {
	if now == nil {
		now = time.Now
	}
	return &GrantRegistry{grants: make(map[grantKey]Grant), now: now}
}

// Grant records or renews a grant lasting ttl.
func (r *GrantRegistry) Grant(identity, patientID string, ttl time.Duration) Grant {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	g := Grant{Identity: identity, PatientID: patientID, GrantedAt: now, ExpiresAt: now.Add(ttl)}
	r.grants[grantKey{identity, patientID}] = g
	return g
}

// Active returns the unexpired grant for the pair, if any.
func (r *GrantRegistry) Active(identity, patientID string) (Grant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.grants[grantKey{identity, patientID}]
	if !ok || !r.now().Before(g.ExpiresAt) {
		return Grant{}, false
	}
	return g, true
}

// Sweep deletes expired grants and returns how many were removed.
func (r *GrantRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for k, g := range r.grants {
		if !now.Before(g.ExpiresAt) {
			delete(r.grants, k)
			removed++
		}
	}
	return removed
}

func (r *GrantRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.grants)
}

// Run sweeps every interval until ctx is done.
func (r *GrantRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
