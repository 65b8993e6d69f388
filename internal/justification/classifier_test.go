package justification

//go:generate mockgen -source=models.go -destination=mocks/mocks.go -package=mocks LabelModel,ScoredModel

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"medtrust/internal/justification/mocks"
	"medtrust/internal/justification/model"
)

type panickingModel struct{}

func (panickingModel) Predict(context.Context, string) (string, error) {
	panic("index out of range")
}

type ClassifierSuite struct {
	suite.Suite
	ctx      context.Context
	logs     *bytes.Buffer
	logger   *slog.Logger
	metrics  *Metrics
	ctrl     *gomock.Controller
	category *mocks.MockLabelModel
	intent   *mocks.MockScoredModel
}

func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierSuite))
}

func (s *ClassifierSuite) SetupTest() {
	s.ctx = context.Background()
	s.logs = &bytes.Buffer{}
	s.logger = slog.New(slog.NewTextHandler(s.logs, nil))
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.ctrl = gomock.NewController(s.T())
	s.category = mocks.NewMockLabelModel(s.ctrl)
	s.intent = mocks.NewMockScoredModel(s.ctrl)
}

func (s *ClassifierSuite) newScored() *Classifier {
	return New(s.logger,
		WithModels(s.category, IntentWithConfidence(s.intent), "test"),
		WithMetrics(s.metrics),
	)
}

func (s *ClassifierSuite) TestEmptyTextSkipsModels() {
	c := s.newScored()
	for _, text := range []string{"", "  ", "\n\t"} {
		got := c.Classify(s.ctx, text)
		s.Equal(CategoryInvalid, got.Category)
		s.Zero(got.Confidence)
		s.Equal(SourceEmpty, got.Source)
	}
}

func (s *ClassifierSuite) TestDecisionTableThroughModels() {
	tests := []struct {
		category   string
		intent     string
		confidence float64
		want       Category
		conf       float64
	}{
		{"emergency", "medical", 0.95, CategoryEmergency, 0.90},
		{"restricted", "medical", 0.80, CategoryRestricted, 0.75},
		{"invalid", "medical", 0.99, CategoryInvalid, 0.20},
		{"emergency", "admin", 0.90, CategoryRestricted, 0.55},
		{"emergency", "medical", 0.59, CategoryRestricted, 0.55},
		{"emergency", "medical", 0.60, CategoryEmergency, 0.90},
	}
	for _, tt := range tests {
		s.Run(tt.category+"/"+tt.intent, func() {
			ctrl := gomock.NewController(s.T())
			category := mocks.NewMockLabelModel(ctrl)
			intent := mocks.NewMockScoredModel(ctrl)
			category.EXPECT().Predict(gomock.Any(), "text").Return(tt.category, nil)
			intent.EXPECT().PredictScored(gomock.Any(), "text").Return(tt.intent, tt.confidence, nil)

			c := New(s.logger, WithModels(category, IntentWithConfidence(intent), "test"))
			got := c.Classify(s.ctx, "text")

			s.Equal(tt.want, got.Category)
			s.InDelta(tt.conf, got.Confidence, 1e-9)
			s.Equal(SourceModel, got.Source)
		})
	}
}

func (s *ClassifierSuite) TestLabelOnlyIntentIsNeverGated() {
	intent := mocks.NewMockLabelModel(s.ctrl)
	s.category.EXPECT().Predict(gomock.Any(), "text").Return("emergency", nil)
	intent.EXPECT().Predict(gomock.Any(), "text").Return("medical", nil)

	c := New(s.logger, WithModels(s.category, IntentWithoutConfidence(intent), "svm"), WithIntentMinConfidence(0.99))
	got := c.Classify(s.ctx, "text")

	s.Equal(VerdictEmergencyAllow, got.Verdict)
}

func (s *ClassifierSuite) TestModelErrorFallsBackToKeywords() {
	s.category.EXPECT().Predict(gomock.Any(), gomock.Any()).Return("", errors.New("model corrupted"))
	s.intent.EXPECT().PredictScored(gomock.Any(), gomock.Any()).Return("medical", 0.9, nil).AnyTimes()

	got := s.newScored().Classify(s.ctx, "critical respiratory collapse, needs urgent history")

	s.Equal(CategoryEmergency, got.Category)
	s.InDelta(0.65, got.Confidence, 1e-9)
	s.Equal(SourceFallback, got.Source)
	s.Contains(s.logs.String(), "using keyword fallback")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ModelFailures))
}

func (s *ClassifierSuite) TestIntentErrorFallsBack() {
	s.category.EXPECT().Predict(gomock.Any(), gomock.Any()).Return("emergency", nil).AnyTimes()
	s.intent.EXPECT().PredictScored(gomock.Any(), gomock.Any()).Return("", 0.0, errors.New("boom"))

	got := s.newScored().Classify(s.ctx, "just curious")
	s.Equal(CategoryInvalid, got.Category)
	s.Equal(SourceFallback, got.Source)
}

func (s *ClassifierSuite) TestModelPanicFallsBack() {
	s.intent.EXPECT().PredictScored(gomock.Any(), gomock.Any()).Return("medical", 0.9, nil).AnyTimes()
	c := New(s.logger, WithModels(panickingModel{}, IntentWithConfidence(s.intent), "test"))

	got := c.Classify(s.ctx, "reviewing labs")
	s.Equal(CategoryRestricted, got.Category)
	s.Equal(SourceFallback, got.Source)
}

func (s *ClassifierSuite) TestFallbackOnlyMode() {
	c := New(s.logger, WithMetrics(s.metrics))
	s.False(c.ModelsLoaded())
	s.Empty(c.Version())

	got := c.Classify(s.ctx, "routine checkup, no urgency")
	s.Equal(CategoryInvalid, got.Category)
	s.Equal(SourceFallback, got.Source)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Classifications.WithLabelValues("fallback", "invalid")))
}

func (s *ClassifierSuite) TestPartialModelsMeanFallbackOnly() {
	c := New(s.logger, WithModels(s.category, IntentModel{}, "half"))
	s.False(c.ModelsLoaded())
	s.Empty(c.Version())
}

func (s *ClassifierSuite) TestNilMetricsAreSafe() {
	c := New(s.logger)
	s.NotPanics(func() { c.Classify(s.ctx, "anything") })
}

func TestClassifierWithExportedModels(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	b, err := model.Load("model/testdata/v1", "")
	require.NoError(t, err)
	c := New(logger, WithBundle(b))
	require.True(t, c.ModelsLoaded())
	require.Equal(t, "v1", c.Version())

	tests := []struct {
		text     string
		verdict  Verdict
		category Category
	}{
		{"critical respiratory collapse, needs urgent history", VerdictEmergencyAllow, CategoryEmergency},
		{"lab results review", VerdictRestrictedAllow, CategoryRestricted},
		{"random curiosity", VerdictDeny, CategoryInvalid},
		{"the weather is nice", VerdictFlagReview, CategoryRestricted},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := c.Classify(ctx, tt.text)
			require.Equal(t, tt.verdict, got.Verdict)
			require.Equal(t, tt.category, got.Category)
		})
	}
}

func TestWithBundleSelectsIntentCapability(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	b, err := model.Load("model/testdata/versioned", "")
	require.NoError(t, err)
	c := New(logger, WithBundle(b))
	require.False(t, c.intent.HasConfidence())

	b, err = model.Load("model/testdata/v1", "")
	require.NoError(t, err)
	c = New(logger, WithBundle(b))
	require.True(t, c.intent.HasConfidence())

	c = New(logger, WithBundle(nil))
	require.False(t, c.ModelsLoaded())
}
