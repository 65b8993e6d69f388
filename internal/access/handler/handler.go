package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"medtrust/internal/access"
	"medtrust/internal/justification"
	"medtrust/internal/ratelimit/models"
	dErrors "medtrust/pkg/domain-errors"
	"medtrust/pkg/platform/httputil"
	"medtrust/pkg/requestcontext"
)

// Service defines the access operations the handler exposes.
type Service interface {
	Normal(ctx context.Context, req access.Request) access.Decision
	Restricted(ctx context.Context, req access.Request) access.Decision
	Emergency(ctx context.Context, req access.Request) access.Decision
	RequestTemporary(ctx context.Context, req access.Request) access.Decision
	Precheck(ctx context.Context, text string) justification.Feedback
	TrustScore(ctx context.Context, identity string) int
	LogAccess(ctx context.Context, ev access.ClientEvent) bool
}

// RateLimitFunc returns the middleware enforcing one endpoint class.
type RateLimitFunc func(class models.EndpointClass) func(http.Handler) http.Handler

// Handler wires access endpoints to the access service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an access handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the access endpoints. limit may be nil.
func (h *Handler) Register(r chi.Router, limit RateLimitFunc) {
	with := func(class models.EndpointClass) chi.Router {
		if limit == nil {
			return r
		}
		return r.With(limit(class))
	}

	with(models.ClassNormal).Post("/normal_access", h.HandleNormal)
	with(models.ClassRestricted).Post("/restricted_access", h.HandleRestricted)
	with(models.ClassEmergency).Post("/emergency_access", h.HandleEmergency)
	with(models.ClassTemporary).Post("/request_temp_access", h.HandleTemporary)
	with(models.ClassPrecheck).Post("/precheck", h.HandlePrecheck)
	with(models.ClassLog).Post("/log_access", h.HandleLogAccess)
	r.Get("/trust_score/{identity}", h.HandleTrustScore)
}

// HandleNormal handles POST /normal_access.
func (h *Handler) HandleNormal(w http.ResponseWriter, r *http.Request) {
	h.handleFlow(w, r, access.FlowNormal, true, h.service.Normal)
}

// HandleRestricted handles POST /restricted_access.
func (h *Handler) HandleRestricted(w http.ResponseWriter, r *http.Request) {
	h.handleFlow(w, r, access.FlowRestricted, true, h.service.Restricted)
}

// HandleEmergency handles POST /emergency_access.
func (h *Handler) HandleEmergency(w http.ResponseWriter, r *http.Request) {
	h.handleFlow(w, r, access.FlowEmergency, false, h.service.Emergency)
}

// HandleTemporary handles POST /request_temp_access.
func (h *Handler) HandleTemporary(w http.ResponseWriter, r *http.Request) {
	h.handleFlow(w, r, access.FlowTemporary, true, h.service.RequestTemporary)
}

func (h *Handler) handleFlow(
	w http.ResponseWriter,
	r *http.Request,
	flow access.Flow,
	requirePatient bool,
	run func(context.Context, access.Request) access.Decision,
) {
	ctx := r.Context()
	start := time.Now()

	var req AccessRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	// A verified bearer token decides who is asking; the body cannot override it.
	if id, ok := requestcontext.VerifiedIdentity(ctx); ok {
		req.Name, req.Role = id.Name, id.Role
	}
	if err := req.Validate(requirePatient); err != nil {
		httputil.WriteError(w, err)
		return
	}

	d := run(ctx, req.toDomain(requestcontext.ClientIP(ctx), requestcontext.UserAgent(ctx)))
	status := StatusFor(d)

	h.logger.DebugContext(ctx, "access request handled",
		"flow", flow,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, status, FromDecision(d))
}

// HandlePrecheck handles POST /precheck.
func (h *Handler) HandlePrecheck(w http.ResponseWriter, r *http.Request) {
	var req PrecheckRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromFeedback(h.service.Precheck(r.Context(), req.Justification)))
}

// HandleLogAccess handles POST /log_access. A sink failure still answers
// 200; the message says the entry was skipped.
func (h *Handler) HandleLogAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LogAccessRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if id, ok := requestcontext.VerifiedIdentity(ctx); ok {
		req.Name, req.Role = id.Name, id.Role
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	logged := h.service.LogAccess(ctx, req.toDomain(requestcontext.ClientIP(ctx), requestcontext.UserAgent(ctx)))
	httputil.WriteJSON(w, http.StatusOK, FromLogged(logged))
}

// HandleTrustScore handles GET /trust_score/{identity}.
func (h *Handler) HandleTrustScore(w http.ResponseWriter, r *http.Request) {
	identity := strings.TrimSpace(chi.URLParam(r, "identity"))
	if identity == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "identity is required"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, &TrustScoreResponse{
		Identity:   identity,
		TrustScore: h.service.TrustScore(r.Context(), identity),
	})
}
