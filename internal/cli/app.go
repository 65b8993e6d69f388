package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medtrust/internal/access"
	accesshandler "medtrust/internal/access/handler"
	accessmetrics "medtrust/internal/access/metrics"
	"medtrust/internal/audit"
	"medtrust/internal/audit/kafka"
	"medtrust/internal/audit/publisher"
	auditmemory "medtrust/internal/audit/store/memory"
	auditpostgres "medtrust/internal/audit/store/postgres"
	jwttoken "medtrust/internal/jwt_token"
	"medtrust/internal/justification"
	"medtrust/internal/justification/model"
	"medtrust/internal/network"
	"medtrust/internal/patient"
	patientstore "medtrust/internal/patient/store"
	"medtrust/internal/platform/config"
	"medtrust/internal/platform/postgres"
	"medtrust/internal/platform/redis"
	rlmetrics "medtrust/internal/ratelimit/metrics"
	rlmiddleware "medtrust/internal/ratelimit/middleware"
	"medtrust/internal/ratelimit/models"
	"medtrust/internal/ratelimit/service/requestlimit"
	"medtrust/internal/ratelimit/store/bucket"
	"medtrust/internal/trust"
	truststore "medtrust/internal/trust/store"
	"medtrust/pkg/platform/httputil"
	"medtrust/pkg/platform/middleware/auth"
	"medtrust/pkg/platform/middleware/metadata"
)

// app holds the wired server and everything that must be released on exit.
type app struct {
	router  http.Handler
	grants  *access.GrantRegistry
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// loadClassifier builds the justification classifier from the model
// directory. Missing artifacts leave it in fallback-only mode.
func loadClassifier(cfg config.Config, logger *slog.Logger, m *justification.Metrics) (*justification.Classifier, error) {
	opts := []justification.Option{
		justification.WithIntentMinConfidence(cfg.Policy.IntentMinConfidence),
		justification.WithMetrics(m),
	}
	bundle, err := model.Load(cfg.Models.Dir, cfg.Models.Version)
	switch {
	case errors.Is(err, model.ErrNotFound):
		logger.Warn("justification models not found, using keyword fallback only", "dir", cfg.Models.Dir)
	case err != nil:
		return nil, fmt.Errorf("load justification models: %w", err)
	default:
		opts = append(opts, justification.WithBundle(bundle))
		logger.Info("justification models loaded",
			"dir", cfg.Models.Dir,
			"version", bundle.Version,
			"legacy", bundle.Legacy,
		)
	}
	return justification.New(logger, opts...), nil
}

// buildApp wires every component selected by cfg.
func buildApp(ctx context.Context, cfg config.Config, logger *slog.Logger, reg *prometheus.Registry, seed []patient.Record) (*app, error) {
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	var db *sql.DB
	if cfg.Stores.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.Stores.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return nil, err
		}
	}

	rdb, err := redis.New(ctx, cfg.Stores.Redis)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		a.closers = append(a.closers, func() { _ = rdb.Close() })
	}

	var scores trust.Store
	switch cfg.Stores.TrustBackend {
	case "redis":
		scores = truststore.NewRedisStore(rdb.Client)
	case "postgres":
		scores = truststore.NewPostgresStore(db)
	default:
		scores = truststore.NewInMemoryStore()
	}
	trustSvc := trust.New(scores, logger, trust.WithDefaultScore(cfg.Policy.DefaultTrustScore))

	var patients patient.Store
	if db != nil {
		pg := patientstore.NewPostgresStore(db)
		if err := patientstore.Seed(ctx, pg, seed); err != nil {
			return nil, err
		}
		patients = pg
	} else {
		patients = patientstore.NewInMemoryStore(seed...)
	}

	sink, err := buildAuditSink(ctx, cfg, db, a)
	if err != nil {
		return nil, err
	}
	pubOpts := []publisher.Option{
		publisher.WithAsyncBuffer(cfg.Audit.Buffer),
		publisher.WithLogger(logger),
	}
	if len(cfg.Audit.SealKey) > 0 {
		sealer, err := audit.NewSealer(cfg.Audit.SealKey)
		if err != nil {
			return nil, err
		}
		pubOpts = append(pubOpts, publisher.WithSealer(sealer))
	}
	pub := publisher.NewPublisher(sink, pubOpts...)
	a.closers = append(a.closers, pub.Close)

	classifier, err := loadClassifier(cfg, logger, justification.NewMetrics(reg))
	if err != nil {
		return nil, err
	}

	a.grants = access.NewGrantRegistry(nil)
	svc, err := access.NewService(cfg.Policy, access.Deps{
		Network:    network.NewChecker(cfg.Policy.TrustedNetwork),
		Trust:      trustSvc,
		Classifier: classifier,
		Patients:   patients,
		Audit:      pub,
	}, logger,
		access.WithGrants(a.grants),
		access.WithMetrics(accessmetrics.New(reg)),
	)
	if err != nil {
		return nil, err
	}

	limiter, err := buildRateLimiter(cfg, logger, reg, rdb)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metadata.ClientMetadata(cfg.Server.TrustProxyHeaders))

	r.Get("/healthz", healthHandler(rdb))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	h := accesshandler.New(svc, logger)
	r.Group(func(r chi.Router) {
		if cfg.Auth.JWTSigningKey != "" {
			jwt := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer)
			r.Use(auth.RequireAuth(jwttoken.NewAdapter(jwt), logger))
		}
		h.Register(r, limiter.RateLimit)
	})

	a.router = r
	ok = true
	return a, nil
}

func buildAuditSink(ctx context.Context, cfg config.Config, db *sql.DB, a *app) (audit.Sink, error) {
	switch cfg.Audit.Sink {
	case "postgres":
		return auditpostgres.New(db), nil
	case "kafka":
		sink, err := kafka.NewSink(cfg.Audit.KafkaBrokers, cfg.Audit.Topic)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sink.Close)
		if err := sink.EnsureTopic(ctx, 1, 1); err != nil {
			return nil, err
		}
		return sink, nil
	default:
		return auditmemory.NewInMemoryStore(), nil
	}
}

func rateLimits(cfg config.RateLimit) models.Limits {
	return models.Limits{
		models.ClassNormal:     {Requests: cfg.Normal, Window: cfg.Window},
		models.ClassRestricted: {Requests: cfg.Restricted, Window: cfg.Window},
		models.ClassEmergency:  {Requests: cfg.Emergency, Window: cfg.Window},
		models.ClassTemporary:  {Requests: cfg.Temporary, Window: cfg.Window},
		models.ClassPrecheck:   {Requests: cfg.Precheck, Window: cfg.Window},
		models.ClassLog:        {Requests: cfg.Log, Window: cfg.Window},
	}
}

// buildRateLimiter prefers Redis when it is configured and keeps an
// in-process limiter to fall back on while Redis is failing.
func buildRateLimiter(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer, rdb *redis.Client) (*rlmiddleware.Middleware, error) {
	limits := rateLimits(cfg.RateLimit)
	m := rlmetrics.New(reg)

	local, err := requestlimit.New(bucket.NewInMemoryBucketStore(), limits,
		requestlimit.WithLogger(logger),
		requestlimit.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}
	if rdb == nil {
		return rlmiddleware.New(local, logger, rlmiddleware.WithDisabled(cfg.RateLimit.Disabled)), nil
	}

	shared, err := requestlimit.New(bucket.NewRedisStore(rdb.Client), limits,
		requestlimit.WithLogger(logger),
		requestlimit.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}
	return rlmiddleware.New(shared, logger,
		rlmiddleware.WithDisabled(cfg.RateLimit.Disabled),
		rlmiddleware.WithFallback(local),
	), nil
}

func healthHandler(rdb *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rdb != nil {
			if err := rdb.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "redis": err.Error()})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
