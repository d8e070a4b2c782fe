package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/ports"
	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-shelter-server/internal/shared/auth"
)

const tracerName = "github.com/Apurer/go-gin-shelter-server/internal/domains/adoptions/adapters/observability/service"

// Service decorates the adoptions port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) PrepareSubmission(ctx context.Context, petID int64) (*pettypes.PetProjection, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.PrepareSubmission", trace.WithAttributes(attribute.Int64("pet.id", petID)))
	defer span.End()
	pet, err := s.inner.PrepareSubmission(ctx, petID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load adoption form", slog.Int64("pet.id", petID))
	}
	return pet, nil
}

func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*ports.ApplicationProjection, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Submit", trace.WithAttributes(
		attribute.Int64("pet.id", input.PetID),
		attribute.Int64("user.id", input.Viewer.UserID),
	))
	defer span.End()
	app, err := s.inner.Submit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to submit adoption application",
			slog.Int64("pet.id", input.PetID), slog.Int64("user.id", input.Viewer.UserID))
	}
	span.SetAttributes(attribute.Int64("application.id", app.Entity.ID))
	s.metrics.recordSubmitted(ctx)
	s.logInfo(ctx, "adoption application submitted",
		slog.Int64("application.id", app.Entity.ID),
		slog.Int64("pet.id", app.Entity.PetID),
	)
	return app, nil
}

func (s *Service) Queue(ctx context.Context, viewer auth.Viewer) ([]*ports.QueueEntry, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.Queue", trace.WithAttributes(attribute.Int64("user.id", viewer.UserID)))
	defer span.End()
	entries, err := s.inner.Queue(ctx, viewer)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list adoption queue", slog.Int64("user.id", viewer.UserID))
	}
	span.SetAttributes(attribute.Int("application.count", len(entries)))
	return entries, nil
}

func (s *Service) AuthorizeDecision(ctx context.Context, input ports.DecideInput) (*ports.DecisionCommand, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.AuthorizeDecision", trace.WithAttributes(
		attribute.Int64("application.id", input.ApplicationID),
		attribute.String("adoption.decision", string(input.Decision)),
	))
	defer span.End()
	cmd, err := s.inner.AuthorizeDecision(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "adoption decision refused",
			slog.Int64("application.id", input.ApplicationID), slog.Int64("user.id", input.Viewer.UserID))
	}
	return cmd, nil
}

func (s *Service) ApplyDecision(ctx context.Context, cmd ports.DecisionCommand) (*ports.DecisionResult, error) {
	ctx, span := s.tracer.Start(ctx, "AdoptionService.ApplyDecision", trace.WithAttributes(
		attribute.Int64("application.id", cmd.ApplicationID),
		attribute.Int64("pet.id", cmd.PetID),
		attribute.String("adoption.decision", string(cmd.Decision)),
	))
	defer span.End()
	result, err := s.inner.ApplyDecision(ctx, cmd)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to apply adoption decision",
			slog.Int64("application.id", cmd.ApplicationID), slog.String("decision", string(cmd.Decision)))
	}
	s.metrics.recordDecision(ctx, string(cmd.Decision))
	s.logInfo(ctx, "adoption decision applied",
		slog.Int64("application.id", cmd.ApplicationID),
		slog.Int64("pet.id", result.PetID),
		slog.String("pet.status", string(result.Status)),
	)
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

type serviceMetrics struct {
	submitted metric.Int64Counter
	decisions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	submitted, _ := m.Int64Counter("adoptions.service.submitted", metric.WithDescription("Number of adoption applications submitted"))
	decisions, _ := m.Int64Counter("adoptions.service.decisions", metric.WithDescription("Number of adoption decisions applied"))
	return serviceMetrics{submitted: submitted, decisions: decisions}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context) {
	if m.submitted != nil {
		m.submitted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDecision(ctx context.Context, outcome string) {
	if m.decisions != nil {
		m.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("adoption.decision", outcome)))
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ ports.Service = (*Service)(nil)
