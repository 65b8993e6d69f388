// Package trust keeps the bounded per-identity trust score that every access
// decision reads and adjusts.
package trust

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medtrust/pkg/platform/sentinel"
)

const (
	MinScore = 0
	MaxScore = 100
)

// Store persists raw scores. Get returns sentinel.ErrNotFound for identities
// without a stored score. Set may return sentinel.ErrNotFound when the
// backend cannot resolve the identity (for example an unknown user row).
type Store interface {
	Get(ctx context.Context, identity string) (int, error)
	Set(ctx context.Context, identity string, score int, at time.Time) error
}

// Service applies the default and clamping rules on top of a Store and never
// surfaces storage failures to the caller.
//
// Adjust is a plain read-then-write. Concurrent adjustments for one identity
// can lose updates; the score is advisory so last write wins.
type Service struct {
	store        Store
	logger       *slog.Logger
	defaultScore int
	now          func() time.Time
}

type Option func(*Service)

// WithDefaultScore overrides the score assumed for unknown identities.
func WithDefaultScore(score int) Option {
	return func(s *Service) {
		s.defaultScore = Clamp(score)
	}
}

// WithClock sets the timestamp source for last_update.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:        store,
		logger:       logger,
		defaultScore: 80,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clamp bounds v to [MinScore, MaxScore].
func Clamp(v int) int {
	return min(max(v, MinScore), MaxScore)
}

// DefaultScore is the score assumed when nothing is stored.
func (s *Service) DefaultScore() int {
	return s.defaultScore
}

// Score returns the stored score, or the default when the identity is unknown
// or the store fails.
func (s *Service) Score(ctx context.Context, identity string) int {
	if identity == "" {
		return s.defaultScore
	}
	score, err := s.store.Get(ctx, identity)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "trust score read failed, using default",
				"identity", identity,
				"error", err,
			)
		}
		return s.defaultScore
	}
	return Clamp(score)
}

// Adjust applies delta to the current score, clamps it and persists it.
// The bool is false when the identity could not be resolved, the read failed
// or the write failed; the failure is logged and never returned. A failed
// read never writes, so an outage cannot reset a stored score to the default.
func (s *Service) Adjust(ctx context.Context, identity string, delta int) (int, bool) {
	if identity == "" {
		s.logger.WarnContext(ctx, "trust score adjustment skipped, empty identity", "delta", delta)
		return 0, false
	}

	current, err := s.store.Get(ctx, identity)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		current = s.defaultScore
	case err != nil:
		s.logger.ErrorContext(ctx, "trust score adjustment skipped, read failed",
			"identity", identity,
			"delta", delta,
			"error", err,
		)
		return 0, false
	}

	updated := Clamp(current + delta)
	if err := s.store.Set(ctx, identity, updated, s.now().UTC()); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "trust score adjustment skipped, unknown identity",
				"identity", identity,
				"delta", delta,
			)
		} else {
			s.logger.ErrorContext(ctx, "trust score write failed",
				"identity", identity,
				"delta", delta,
				"error", err,
			)
		}
		return 0, false
	}

	s.logger.InfoContext(ctx, "trust score updated",
		"identity", identity,
		"delta", delta,
		"score", updated,
	)
	return updated, true
}
