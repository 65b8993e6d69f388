package middleware

import "sync"

// CircuitBreaker counts consecutive limiter errors. After failureThreshold
// errors it opens and the middleware serves from the in-memory fallback; it
// closes again after successThreshold consecutive primary successes.
type CircuitBreaker struct {
	mu               sync.Mutex
	state            circuitState
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
}

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
)

func newCircuitBreaker(failures, successes int) *CircuitBreaker {
	return &CircuitBreaker{
		state:            circuitClosed,
		failureThreshold: max(1, failures),
		successThreshold: max(1, successes),
	}
}

func (c *CircuitBreaker) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == circuitOpen
}

// RecordFailure reports whether the circuit is open after the failure.
func (c *CircuitBreaker) RecordFailure() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failureCount++
	c.successCount = 0
	if c.state == circuitClosed && c.failureCount >= c.failureThreshold {
		c.state = circuitOpen
	}
	return c.state == circuitOpen
}

// RecordSuccess reports whether the circuit is closed after the success.
func (c *CircuitBreaker) RecordSuccess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == circuitClosed {
		c.failureCount = 0
		return true
	}
	c.successCount++
	if c.successCount >= c.successThreshold {
		c.state = circuitClosed
		c.failureCount = 0
		c.successCount = 0
		return true
	}
	return false
}
