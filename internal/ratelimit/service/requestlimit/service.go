package requestlimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medtrust/internal/ratelimit/metrics"
	"medtrust/internal/ratelimit/models"
	"medtrust/internal/ratelimit/ports"
	dErrors "medtrust/pkg/domain-errors"
	"medtrust/pkg/platform/privacy"
	"medtrust/pkg/requestcontext"
)

type BucketStore = ports.BucketStore

// missingLimitRetryAfter is returned when a class has no configured budget.
const missingLimitRetryAfter = 60

// Service enforces the per-IP budget of each endpoint class.
type Service struct {
	buckets BucketStore
	limits  models.Limits
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(buckets BucketStore, limits models.Limits, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}
	svc := &Service{
		buckets: buckets,
		limits:  limits,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CheckIP consumes one request from the caller's budget for class. A class
// without a configured budget is denied.
func (s *Service) CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	s.metrics.RecordCheck(string(class))

	limit, ok := s.limits.Get(class)
	if !ok {
		s.logger.WarnContext(ctx, "rate_limit_config_missing",
			"ip_prefix", privacy.AnonymizeIP(ip),
			"endpoint_class", class,
		)
		return &models.RateLimitResult{
			Allowed:    false,
			ResetAt:    requestcontext.Now(ctx),
			RetryAfter: missingLimitRetryAfter,
		}, nil
	}

	key := models.NewRateLimitKey(models.KeyPrefixIP, ip, class)
	result, err := s.buckets.Allow(ctx, key.String(), limit.Requests, limit.Window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}

	if !result.Allowed {
		s.metrics.RecordExceeded(string(class))
		s.logger.InfoContext(ctx, "ip_rate_limit_exceeded",
			"ip_prefix", privacy.AnonymizeIP(ip),
			"endpoint_class", class,
			"limit", limit.Requests,
			"window_seconds", int(limit.Window/time.Second),
		)
	}
	return result, nil
}
