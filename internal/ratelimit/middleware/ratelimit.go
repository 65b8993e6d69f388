package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"medtrust/internal/ratelimit/models"
	"medtrust/pkg/platform/httputil"
	"medtrust/pkg/platform/privacy"
	"medtrust/pkg/requestcontext"
)

type RateLimiter interface {
	CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error)
}

type Middleware struct {
	limiter  RateLimiter
	fallback RateLimiter
	breaker  *CircuitBreaker
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithFallback serves checks from fallback while the primary limiter is
// failing. Without a fallback, limiter errors let the request through.
func WithFallback(fallback RateLimiter) Option {
	return func(m *Middleware) {
		m.fallback = fallback
	}
}

// WithBreakerThresholds sets how many consecutive failures open the circuit
// and how many consecutive successes close it.
func WithBreakerThresholds(failures, successes int) Option {
	return func(m *Middleware) {
		m.breaker = newCircuitBreaker(failures, successes)
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
		breaker: newCircuitBreaker(5, 3),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

func (m *Middleware) RateLimit(class models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, degraded, err := m.check(ctx, ip, class)
			if err != nil {
				m.logger.ErrorContext(ctx, "failed to check IP rate limit", "error", err, "ip_prefix", privacy.AnonymizeIP(ip))
				next.ServeHTTP(w, r)
				return
			}

			if degraded {
				w.Header().Set("X-RateLimit-Status", "degraded")
			}
			addRateLimitHeaders(w, result)

			if !result.Allowed {
				writeRateLimitExceeded(w, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// check consults the primary limiter and switches to the fallback while the
// circuit is open. The primary is still tried so the circuit can close.
func (m *Middleware) check(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, bool, error) {
	result, err := m.limiter.CheckIP(ctx, ip, class)
	if m.fallback == nil {
		return result, false, err
	}

	if err != nil {
		wasOpen := m.breaker.IsOpen()
		if !m.breaker.RecordFailure() {
			return nil, false, err
		}
		if !wasOpen {
			m.logger.WarnContext(ctx, "rate limit circuit opened, using in-memory fallback", "error", err)
		}
		fb, fbErr := m.fallback.CheckIP(ctx, ip, class)
		return fb, true, fbErr
	}

	if m.breaker.IsOpen() {
		if !m.breaker.RecordSuccess() {
			fb, fbErr := m.fallback.CheckIP(ctx, ip, class)
			return fb, true, fbErr
		}
		m.logger.InfoContext(ctx, "rate limit circuit closed")
		return result, false, nil
	}
	m.breaker.RecordSuccess()
	return result, false, nil
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests from this IP address. Please try again later.",
		RetryAfter: result.RetryAfter,
	})
}
