package access

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"medtrust/internal/access/metrics"
	"medtrust/internal/access/ports"
	"medtrust/internal/audit"
	"medtrust/internal/justification"
	"medtrust/internal/patient"
	"medtrust/internal/platform/config"
	"medtrust/internal/platform/device"
	"medtrust/pkg/platform/privacy"
	"medtrust/pkg/platform/sentinel"
)

const messagePatientNotFound = "Patient not found"

// Deps are the collaborators every flow needs.
type Deps struct {
	Network    ports.NetworkChecker
	Trust      ports.TrustScorer
	Classifier ports.Classifier
	Patients   ports.PatientStore
	Audit      ports.AuditPort
}

// Service runs the access flows. It holds no per-request state and is safe
// for concurrent use; the only shared mutable state lives in the trust store
// and the grant registry.
type Service struct {
	policy     config.Policy
	network    ports.NetworkChecker
	trust      ports.TrustScorer
	classifier ports.Classifier
	patients   ports.PatientStore
	audit      ports.AuditPort
	grants     *GrantRegistry
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(*Service)

// WithGrants shares a registry with the caller, which owns its sweep loop.
func WithGrants(g *GrantRegistry) Option {
	return func(s *Service) {
		s.grants = g
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(policy config.Policy, deps Deps, logger *slog.Logger, opts ...Option) (*Service, error) {
	switch {
	case deps.Network == nil:
		return nil, errors.New("network checker is required")
	case deps.Trust == nil:
		return nil, errors.New("trust scorer is required")
	case deps.Classifier == nil:
		return nil, errors.New("classifier is required")
	case deps.Patients == nil:
		return nil, errors.New("patient store is required")
	case deps.Audit == nil:
		return nil, errors.New("audit port is required")
	}
	s := &Service{
		policy:     policy,
		network:    deps.Network,
		trust:      deps.Trust,
		classifier: deps.Classifier,
		patients:   deps.Patients,
		audit:      deps.Audit,
		logger:     logger,
		tracer:     otel.Tracer("medtrust/access"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.grants == nil {
		s.grants = NewGrantRegistry(nil)
	}
	return s, nil
}

// Normal grants in-network callers and denies everyone else.
func (s *Service) Normal(ctx context.Context, req Request) Decision {
	ctx, end := s.begin(ctx, FlowNormal)
	v := evaluateNormal(s.network.IsTrusted(req.IP), req.IP)
	d := s.apply(ctx, FlowNormal, req, v, nil, "")
	if d.Outcome == OutcomeGranted {
		s.resolve(ctx, req.PatientName, &d)
	}
	return end(d)
}

// Restricted grants in-network callers outright. Outside the network a low
// trust score denies without reading the justification; otherwise the
// justification decides between granted and flagged.
func (s *Service) Restricted(ctx context.Context, req Request) Decision {
	ctx, end := s.begin(ctx, FlowRestricted)

	inNetwork := s.network.IsTrusted(req.IP)
	score := 0
	if !inNetwork {
		score = s.trust.Score(ctx, req.Identity)
	}
	if v, decided := evaluateRestrictedGate(inNetwork, score, s.policy); decided {
		d := s.apply(ctx, FlowRestricted, req, v, nil, "")
		if d.Outcome == OutcomeGranted {
			s.resolve(ctx, req.PatientName, &d)
		}
		return end(d)
	}

	if strings.TrimSpace(req.Justification) == "" {
		v := missingRestrictedJustification()
		return end(Decision{Flow: FlowRestricted, Outcome: v.outcome, Reason: v.reason, Message: v.message, TrustScore: score})
	}

	c := s.classifier.Classify(ctx, req.Justification)
	d := s.apply(ctx, FlowRestricted, req, evaluateRestrictedJustification(c, s.policy), &c, "")
	if d.Outcome == OutcomeGranted {
		s.resolve(ctx, req.PatientName, &d)
	}
	return end(d)
}

// Emergency skips the network and trust checks. The named record is resolved
// whether or not the emergency is judged genuine; a suspicious emergency is
// still reported as flagged.
func (s *Service) Emergency(ctx context.Context, req Request) Decision {
	ctx, end := s.begin(ctx, FlowEmergency)

	if strings.TrimSpace(req.Justification) == "" {
		return end(s.apply(ctx, FlowEmergency, req, missingEmergencyJustification(), nil, ""))
	}

	c := s.classifier.Classify(ctx, req.Justification)
	d := s.apply(ctx, FlowEmergency, req, evaluateEmergency(c, s.policy), &c, "")
	if strings.TrimSpace(req.PatientName) != "" {
		s.resolve(ctx, req.PatientName, &d)
	}
	return end(d)
}

// RequestTemporary grants an in-network nurse time-bounded access to one
// record. Wrong role and unknown patient are rejected without side effects.
func (s *Service) RequestTemporary(ctx context.Context, req Request) Decision {
	ctx, end := s.begin(ctx, FlowTemporary)

	if v, decided := evaluateTemporaryGate(req.Role, s.network.IsTrusted(req.IP)); decided {
		if v.outcome == OutcomeRejected {
			return end(Decision{Flow: FlowTemporary, Outcome: v.outcome, Reason: v.reason, Message: v.message})
		}
		return end(s.apply(ctx, FlowTemporary, req, v, nil, ""))
	}

	var lookup Decision
	s.resolve(ctx, req.PatientName, &lookup)
	if lookup.RecordStatus != RecordFound {
		lookup.Flow = FlowTemporary
		lookup.Outcome = OutcomeRejected
		lookup.Reason = ReasonPatientNotFound
		return end(lookup)
	}

	ttl := s.policy.TemporaryAccessTTL
	d := s.apply(ctx, FlowTemporary, req, temporaryGranted(ttl), nil, HumanDuration(ttl))
	grant := s.grants.Grant(req.Identity, lookup.PatientID, ttl)
	d.GrantExpiresAt = grant.ExpiresAt
	d.RecordStatus, d.PatientID, d.Patient, d.PDFLink = lookup.RecordStatus, lookup.PatientID, lookup.Patient, lookup.PDFLink
	return end(d)
}

// Precheck grades a justification while it is typed. No trust or audit side
// effects.
func (s *Service) Precheck(ctx context.Context, text string) justification.Feedback {
	return justification.Assess(s.classifier.Classify(ctx, text))
}

// TrustScore returns the caller's current score, or the default.
func (s *Service) TrustScore(ctx context.Context, identity string) int {
	return s.trust.Score(ctx, identity)
}

// LogAccess records a client-submitted event. A sink failure is logged and
// reported as false; it is never an error to the caller.
func (s *Service) LogAccess(ctx context.Context, ev ClientEvent) bool {
	entry := audit.Entry{
		Actor:         ev.Identity,
		Role:          ev.Role,
		Action:        audit.Action(ev.Action),
		Patient:       ev.PatientName,
		IP:            ev.IP,
		Device:        device.ParseUserAgent(ev.UserAgent),
		Status:        audit.Status(ev.Status),
		Justification: strings.TrimSpace(ev.Justification),
	}
	if entry.Action == "" {
		entry.Action = audit.ActionUnknown
	}
	if entry.Status == "" {
		entry.Status = audit.StatusPending
	}
	if err := s.audit.Emit(ctx, entry); err != nil {
		s.metrics.IncrementDependencyFailure("audit")
		s.logger.WarnContext(ctx, "client audit entry skipped",
			"identity", ev.Identity,
			"action", entry.Action,
			"error", err,
		)
		return false
	}
	return true
}

// HasActiveGrant reports whether identity holds an unexpired temporary grant
// on the named patient.
func (s *Service) HasActiveGrant(identity, patientName string) bool {
	_, ok := s.grants.Active(identity, patient.ID(patientName))
	return ok
}

// begin opens the flow span and returns a finisher that records the outcome.
func (s *Service) begin(ctx context.Context, flow Flow) (context.Context, func(Decision) Decision) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "access."+string(flow))
	return ctx, func(d Decision) Decision {
		span.SetAttributes(
			attribute.String("access.outcome", string(d.Outcome)),
			attribute.String("access.reason", string(d.Reason)),
			attribute.Int("access.trust_delta", d.TrustDelta),
		)
		span.End()
		s.metrics.IncrementOutcome(string(flow), string(d.Outcome))
		s.metrics.ObserveLatency(string(flow), time.Since(start))
		return d
	}
}

// apply performs the single trust adjustment and the single audit entry of
// a decided flow. Both dependencies fail soft.
func (s *Service) apply(ctx context.Context, flow Flow, req Request, v verdict, c *justification.Classification, duration string) Decision {
	d := Decision{
		Flow:           flow,
		Outcome:        v.outcome,
		Reason:         v.reason,
		Message:        v.message,
		TrustDelta:     v.delta,
		Classification: c,
	}

	score, ok := s.trust.Adjust(ctx, req.Identity, v.delta)
	if ok {
		d.TrustScore, d.TrustUpdated = score, true
		s.metrics.RecordDelta(string(flow), v.delta)
	} else {
		s.metrics.IncrementDependencyFailure("trust")
		d.TrustScore = s.trust.Score(ctx, req.Identity)
	}

	entry := audit.Entry{
		Actor:      req.Identity,
		Role:       req.Role,
		Action:     v.action,
		Patient:    req.PatientName,
		IP:         req.IP,
		Device:     device.ParseUserAgent(req.UserAgent),
		Status:     v.status,
		TrustDelta: v.delta,
		Duration:   duration,
	}
	if flow == FlowRestricted || flow == FlowEmergency {
		entry.Justification = strings.TrimSpace(req.Justification)
	}
	if c != nil {
		conf := c.Confidence
		entry.AILabel = string(c.Category)
		entry.AIConfidence = &conf
		entry.AISource = string(c.Source)
	}
	if err := s.audit.Emit(ctx, entry); err != nil {
		s.metrics.IncrementDependencyFailure("audit")
		s.logger.ErrorContext(ctx, "failed to record access audit entry",
			"flow", flow,
			"identity", req.Identity,
			"error", err,
		)
	}

	s.logger.InfoContext(ctx, "access decided",
		"flow", flow,
		"outcome", d.Outcome,
		"reason", d.Reason,
		"identity", req.Identity,
		"ip_prefix", privacy.AnonymizeIP(req.IP),
		"trust_delta", v.delta,
		"trust_score", d.TrustScore,
	)
	return d
}

// resolve looks up the named record. Any lookup failure is reported as not
// found, independent of the access outcome.
func (s *Service) resolve(ctx context.Context, name string, d *Decision) {
	id := patient.ID(name)
	d.PatientID = id
	if id == "" {
		d.RecordStatus, d.Message = RecordNotFound, messagePatientNotFound
		return
	}
	rec, err := s.patients.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "patient lookup failed", "patient_id", id, "error", err)
		}
		d.RecordStatus, d.Message = RecordNotFound, messagePatientNotFound
		return
	}
	d.RecordStatus = RecordFound
	d.Patient = rec
	d.PDFLink = patient.PDFLink(id)
}
