package booking

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/BruksfildServices01/golf-reservation/internal/audit"
	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/events"
	"github.com/BruksfildServices01/golf-reservation/internal/metrics"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

const tracerName = "github.com/BruksfildServices01/golf-reservation/internal/usecase/booking"

// ======================================================
// SERVICE
// ======================================================

// Service is the reservation engine: creation, lifecycle transitions and
// the availability reads that go with them.
type Service struct {
	repo  domain.Repository
	rules domain.Rules
	loc   *time.Location
	now   func() time.Time

	machine   domain.StateMachine
	checker   *SlotConflictChecker
	allocator ScheduleAllocator
	writer    OptimisticWriter
	effects   *SideEffectCoordinator
	guard     *IdempotencyGuard

	lock    RequestLock
	audit   audit.Sink
	events  events.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithRequestLock(lock RequestLock) Option {
	return func(s *Service) { s.lock = lock }
}

func WithAudit(sink audit.Sink) Option {
	return func(s *Service) { s.audit = sink }
}

func WithEvents(p events.Publisher) Option {
	return func(s *Service) { s.events = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(
	repo domain.Repository,
	rules domain.Rules,
	loc *time.Location,
	opts ...Option,
) *Service {
	if loc == nil {
		loc = time.UTC
	}

	s := &Service{
		repo:   repo,
		rules:  rules,
		loc:    loc,
		now:    time.Now,
		lock:   NopLock{},
		audit:  audit.NopSink{},
		events: events.NopPublisher{},
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.machine = domain.NewStateMachine()
	s.checker = NewSlotConflictChecker(repo)
	s.allocator = NewScheduleAllocator()
	s.writer = NewOptimisticWriter()
	s.effects = NewSideEffectCoordinator(rules, s.allocator)
	s.guard = NewIdempotencyGuard(repo, s.lock, s.logger)

	return s
}

// clock returns now in the facility timezone.
func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

// ======================================================
// POST-COMMIT NOTIFICATIONS
// ======================================================

func (s *Service) publish(ctx context.Context, eventType string, b *models.Booking, status domain.Status) {
	ev := events.BookingEvent{
		EventType:   eventType,
		BookingID:   b.ID,
		OrderNo:     b.OrderNo,
		UserID:      b.UserID,
		BookingType: b.BookingType,
		Status:      string(status),
		Date:        b.BookingDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		OccurredAt:  s.now().UTC(),
	}
	if err := s.events.PublishBooking(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "booking event not published",
			"event", eventType,
			"booking_id", b.ID,
			"error", err,
		)
	}
}

func (s *Service) record(actorID uint, action string, bookingID uint, metadata any) {
	actor := actorID
	entity := bookingID
	s.audit.Dispatch(audit.Event{
		ActorID:  &actor,
		Action:   action,
		Entity:   "booking",
		EntityID: &entity,
		Metadata: metadata,
	})
}
