package justification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"medtrust/internal/justification/model"
)

// Classifier runs the category and intent models side by side and reduces
// them to a Classification. It is immutable after New and safe for
// concurrent use. Without models every call goes to Fallback.
type Classifier struct {
	category            LabelModel
	intent              IntentModel
	version             string
	minIntentConfidence float64
	logger              *slog.Logger
	metrics             *Metrics
	tracer              trace.Tracer
}

type Option func(*Classifier)

// WithModels installs the two models. Both must be non-nil for the
// classifier to leave fallback-only mode.
func WithModels(category LabelModel, intent IntentModel, version string) Option {
	return func(c *Classifier) {
		c.category = category
		c.intent = intent
		c.version = version
	}
}

// WithBundle installs a loaded model bundle. The intent capability follows
// the exported model kind: logistic models gate on confidence, linear SVMs
// do not.
func WithBundle(b *model.Bundle) Option {
	return func(c *Classifier) {
		if b == nil || b.Justification == nil || b.Intent == nil {
			return
		}
		intent := IntentWithoutConfidence(b.Intent)
		if b.Intent.HasConfidence() {
			intent = IntentWithConfidence(b.Intent)
		}
		WithModels(b.Justification, intent, b.Version)(c)
	}
}

func WithIntentMinConfidence(v float64) Option {
	return func(c *Classifier) {
		c.minIntentConfidence = v
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Classifier) {
		c.metrics = m
	}
}

func New(logger *slog.Logger, opts ...Option) *Classifier {
	c := &Classifier{
		minIntentConfidence: DefaultIntentMinConfidence,
		logger:              logger,
		tracer:              otel.Tracer("medtrust/justification"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.ModelsLoaded() {
		c.category, c.intent, c.version = nil, IntentModel{}, ""
	}
	return c
}

// ModelsLoaded is false in fallback-only mode.
func (c *Classifier) ModelsLoaded() bool {
	return c.category != nil && c.intent.valid()
}

// Version is the active model version, empty in fallback-only mode.
func (c *Classifier) Version() string {
	return c.version
}

// Classify never fails. Blank text is (invalid, 0.0) without touching the
// models; model errors are logged and answered by Fallback.
func (c *Classifier) Classify(ctx context.Context, text string) Classification {
	if strings.TrimSpace(text) == "" {
		result := Classification{Category: CategoryInvalid, Confidence: 0, Source: SourceEmpty}
		c.metrics.observeClassification(result)
		return result
	}
	if !c.ModelsLoaded() {
		result := Fallback(text)
		c.metrics.observeClassification(result)
		return result
	}

	ctx, span := c.tracer.Start(ctx, "justification.classify",
		trace.WithAttributes(attribute.String("model.version", c.version)))
	defer span.End()

	start := time.Now()
	verdict, err := c.predict(ctx, text)
	c.metrics.observeModelLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		c.metrics.incModelFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, "model failure")
		c.logger.WarnContext(ctx, "justification model failed, using keyword fallback",
			"model_version", c.version,
			"error", err,
		)
		result := Fallback(text)
		c.metrics.observeClassification(result)
		return result
	}

	result := verdict.Classification()
	span.SetAttributes(
		attribute.String("justification.verdict", string(result.Verdict)),
		attribute.String("justification.category", string(result.Category)),
	)
	c.metrics.observeClassification(result)
	return result
}

func (c *Classifier) predict(ctx context.Context, text string) (Verdict, error) {
	var (
		category   string
		intent     Intent
		confidence float64
		scored     bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverModelPanic("justification", &err)
		category, err = c.category.Predict(gctx, text)
		if err != nil {
			return fmt.Errorf("justification model: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		defer recoverModelPanic("intent", &err)
		intent, confidence, scored, err = c.intent.predict(gctx, text)
		if err != nil {
			return fmt.Errorf("intent model: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	low := scored && confidence < c.minIntentConfidence
	if low {
		c.logger.DebugContext(ctx, "intent confidence below threshold, flagging for review",
			"intent", intent,
			"confidence", confidence,
		)
	}
	return Decide(Category(category), intent, low), nil
}

func recoverModelPanic(name string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s model panic: %v", name, r)
	}
}
