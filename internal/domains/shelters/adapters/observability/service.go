package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/ports"
)

const tracerName = "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/observability/service"

// Service decorates the shelter service with tracing, logging, and metrics.
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

// New wraps the core shelter service.
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

func (s *Service) Open(ctx context.Context, input ports.OpenShelterInput) (*ports.ShelterProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ShelterService.Open", trace.WithAttributes(attribute.Int64("user.id", input.UserID)))
	defer span.End()

	result, err := s.inner.Open(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to open shelter", slog.Int64("user.id", input.UserID))
	}
	s.metrics.recordOpened(ctx)
	span.SetAttributes(attribute.Int64("shelter.id", result.Entity.ID))
	s.logger.LogAttrs(ctx, slog.LevelInfo, "shelter opened",
		slog.Int64("shelter.id", result.Entity.ID), slog.Int64("user.id", input.UserID))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ports.ShelterProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ShelterService.GetByID", trace.WithAttributes(attribute.Int64("shelter.id", id)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load shelter", slog.Int64("shelter.id", id))
	}
	return result, nil
}

// ForUser is asked for users without a shelter too, so not-found is not logged as an error.
func (s *Service) ForUser(ctx context.Context, userID int64) (*ports.ShelterProjection, error) {
	ctx, span := s.tracer.Start(ctx, "ShelterService.ForUser", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	result, err := s.inner.ForUser(ctx, userID)
	if errors.Is(err, ports.ErrNotFound) {
		span.SetAttributes(attribute.Bool("shelter.found", false))
		return nil, err
	}
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load user's shelter", slog.Int64("user.id", userID))
	}
	span.SetAttributes(attribute.Bool("shelter.found", true), attribute.Int64("shelter.id", result.Entity.ID))
	return result, nil
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	opened metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	opened, _ := m.Int64Counter("shelters.service.opened", metric.WithDescription("Number of shelters opened"))
	return serviceMetrics{opened: opened}
}

func (m serviceMetrics) recordOpened(ctx context.Context) {
	if m.opened != nil {
		m.opened.Add(ctx, 1)
	}
}

var _ ports.Service = (*Service)(nil)
