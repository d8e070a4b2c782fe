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

	pettypes "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/application/types"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/domain"
	"github.com/Apurer/go-gin-shelter-server/internal/domains/pets/ports"
)

const tracerName = "github.com/Apurer/go-gin-shelter-server/internal/domains/pets/adapters/observability/service"

// Service decorates a pets application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
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

// List returns the pet catalog with instrumentation.
func (s *Service) List(ctx context.Context, input pettypes.ListPetsInput) (*pettypes.Catalog, error) {
	attrs := []attribute.KeyValue{
		attribute.String("pet.filter.species", input.Species),
		attribute.String("pet.filter.gender", input.Gender),
		attribute.String("pet.filter.size", input.Size),
	}
	if input.ShelterID != nil {
		attrs = append(attrs, attribute.Int64("shelter.id", *input.ShelterID))
	}
	ctx, span := s.startSpan(ctx, "Service.List", attrs...)
	defer span.End()

	result, err := s.inner.List(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list pets")
	}
	span.SetAttributes(attribute.Int("pet.result.count", len(result.Pets)))
	s.logInfo(ctx, "listed pets", slog.Int("count", len(result.Pets)))
	return result, nil
}

// Detail loads one pet for a viewer.
func (s *Service) Detail(ctx context.Context, input pettypes.PetDetailInput) (*pettypes.PetDetail, error) {
	ctx, span := s.startSpan(ctx, "Service.Detail",
		attribute.Int64("pet.id", input.ID),
		attribute.Bool("viewer.authenticated", input.Viewer.Authenticated()),
	)
	defer span.End()

	result, err := s.inner.Detail(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet detail", slog.Int64("pet.id", input.ID))
	}
	return result, nil
}

// Admit creates a pet with instrumentation.
func (s *Service) Admit(ctx context.Context, input pettypes.AdmitPetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Admit", attribute.Int64("user.id", input.Viewer.UserID))
	defer span.End()

	s.logInfo(ctx, "admitting pet", slog.Int64("user.id", input.Viewer.UserID))
	result, err := s.inner.Admit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to admit pet", slog.Int64("user.id", input.Viewer.UserID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordCreated(ctx, result.Entity.Species)
		span.SetAttributes(attribute.Int64("pet.id", result.Entity.ID), attribute.Int64("shelter.id", result.Entity.ShelterID))
		s.logInfo(ctx, "pet admitted", slog.Int64("pet.id", result.Entity.ID), slog.Int64("shelter.id", result.Entity.ShelterID))
	}
	return result, nil
}

// PrepareEdit loads the editor's initial values.
func (s *Service) PrepareEdit(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.EditForm, error) {
	ctx, span := s.startSpan(ctx, "Service.PrepareEdit", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.PrepareEdit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to prepare pet editor", slog.Int64("pet.id", input.ID))
	}
	return result, nil
}

// Edit updates a pet with instrumentation.
func (s *Service) Edit(ctx context.Context, input pettypes.EditPetInput) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.Edit", attribute.Int64("pet.id", input.ID), attribute.Int64("user.id", input.Viewer.UserID))
	defer span.End()

	s.logInfo(ctx, "editing pet", slog.Int64("pet.id", input.ID))
	result, err := s.inner.Edit(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to edit pet", slog.Int64("pet.id", input.ID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordUpdated(ctx, result.Entity.Status)
		s.logInfo(ctx, "pet edited", slog.Int64("pet.id", result.Entity.ID))
	}
	return result, nil
}

// GetByID loads a single pet aggregate.
func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, "Service.GetByID", attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load pet", slog.Int64("pet.id", input.ID))
	}
	return result, nil
}

// Adopt marks a pet adopted.
func (s *Service) Adopt(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	return s.changeStatus(ctx, "Service.Adopt", input, s.inner.Adopt)
}

// ReturnToAdoptable puts a pet back on the catalog.
func (s *Service) ReturnToAdoptable(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	return s.changeStatus(ctx, "Service.ReturnToAdoptable", input, s.inner.ReturnToAdoptable)
}

func (s *Service) changeStatus(
	ctx context.Context,
	name string,
	input pettypes.PetIdentifier,
	call func(context.Context, pettypes.PetIdentifier) (*pettypes.PetProjection, error),
) (*pettypes.PetProjection, error) {
	ctx, span := s.startSpan(ctx, name, attribute.Int64("pet.id", input.ID))
	defer span.End()

	result, err := call(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to change pet status", slog.Int64("pet.id", input.ID))
	}
	if result != nil && result.Entity != nil {
		s.metrics.recordStatusChange(ctx, result.Entity.Status)
		span.SetAttributes(attribute.String("pet.status", string(result.Entity.Status)))
		s.logInfo(ctx, "pet status changed", slog.Int64("pet.id", result.Entity.ID), slog.String("status", string(result.Entity.Status)))
	}
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	petsAdmitted  metric.Int64Counter
	petsEdited    metric.Int64Counter
	statusChanges metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	petsAdmitted, _ := m.Int64Counter("pets.service.admitted", metric.WithDescription("Number of pets admitted"))
	petsEdited, _ := m.Int64Counter("pets.service.edited", metric.WithDescription("Number of pet edits"))
	statusChanges, _ := m.Int64Counter("pets.service.status_changes", metric.WithDescription("Number of pet status changes"))
	return serviceMetrics{
		petsAdmitted:  petsAdmitted,
		petsEdited:    petsEdited,
		statusChanges: statusChanges,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context, species domain.Species) {
	addCounter(ctx, m.petsAdmitted, 1, attribute.String("pet.species", string(species)))
}

func (m serviceMetrics) recordUpdated(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.petsEdited, 1, attribute.String("pet.status", string(status)))
}

func (m serviceMetrics) recordStatusChange(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.statusChanges, 1, attribute.String("pet.status", string(status)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
