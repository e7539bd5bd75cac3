package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/httperr"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

const resourceActive = "active"

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateInput struct {
	UserID uint
	Type   domain.Type

	VenueID    *uint
	CoachID    *uint
	ScheduleID *uint

	Date      string
	StartTime string
	// Duration is in minutes.
	Duration int

	FinalPrice float64
	RequestID  string
}

type CreateResult struct {
	ID      uint   `json:"id"`
	OrderNo string `json:"orderNo"`

	// Duplicate is true when the request id had already been served.
	Duplicate bool            `json:"-"`
	Booking   *models.Booking `json:"-"`
}

func resultOf(b *models.Booking, duplicate bool) *CreateResult {
	return &CreateResult{ID: b.ID, OrderNo: b.OrderNo, Duplicate: duplicate, Booking: b}
}

// ======================================================
// CREATE
// ======================================================

func (s *Service) Create(ctx context.Context, in CreateInput) (_ *CreateResult, err error) {
	ctx, span := s.tracer.Start(ctx, "booking.Create")
	span.SetAttributes(
		attribute.String("booking.type", string(in.Type)),
		attribute.String("booking.date", in.Date),
	)
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// --------------------------------------------------
	// Idempotency
	// --------------------------------------------------
	if err := domain.CheckRequestID(in.RequestID); err != nil {
		return nil, err
	}

	existing, release, err := s.guard.Check(ctx, in.UserID, in.RequestID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeConcurrentModification) {
			s.metrics.Conflict("in_flight")
		}
		return nil, err
	}
	defer release()

	if existing != nil {
		s.metrics.DuplicateRequest()
		return resultOf(existing, true), nil
	}

	// --------------------------------------------------
	// Validation + pricing
	// --------------------------------------------------
	draft, slot, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Pre-flight conflicts
	// --------------------------------------------------
	conflicts, err := s.checker.FindConflicts(ctx, slot)
	if err != nil {
		return nil, domain.Internal("find conflicts", err)
	}
	if len(conflicts) > 0 {
		s.metrics.Conflict("preflight")
		return nil, domain.Conflict(conflicts)
	}

	// --------------------------------------------------
	// Claim + insert
	// --------------------------------------------------
	err = s.repo.Transaction(ctx, func(tx domain.Repository) error {
		if draft.ScheduleID != nil {
			if err := s.allocator.Claim(ctx, tx, *draft.ScheduleID); err != nil {
				return err
			}
		}
		return tx.CreateBooking(ctx, draft)
	})

	switch {
	case err == nil:

	case errors.Is(err, domain.ErrDuplicateRequest):
		// a concurrent identical request won the insert
		prior, ferr := s.repo.FindBookingByRequestID(ctx, in.RequestID)
		if ferr != nil {
			return nil, domain.Internal("load duplicate request", ferr)
		}
		if _, ferr = ownReplay(prior, in.UserID); ferr != nil {
			return nil, ferr
		}
		s.metrics.DuplicateRequest()
		return resultOf(prior, true), nil

	case errors.Is(err, domain.ErrSlotTaken):
		s.metrics.Conflict("commit")
		return nil, s.commitConflict(ctx, slot)

	default:
		return nil, domain.Internal("create booking", err)
	}

	s.metrics.BookingCreated(draft.BookingType)
	s.record(in.UserID, "booking_created", draft.ID, map[string]any{
		"orderNo": draft.OrderNo,
		"type":    draft.BookingType,
		"date":    draft.BookingDate,
		"start":   draft.StartTime,
		"end":     draft.EndTime,
	})
	s.publish(ctx, "created", draft, domain.StatusPending)

	s.logger.InfoContext(ctx, "booking created",
		"booking_id", draft.ID,
		"order_no", draft.OrderNo,
		"type", draft.BookingType,
	)

	span.SetAttributes(attribute.Int64("booking.id", int64(draft.ID)))
	return resultOf(draft, false), nil
}

// commitConflict reports what won the race. When the winner is not visible
// yet the requested window itself is returned.
func (s *Service) commitConflict(ctx context.Context, slot Slot) error {
	conflicts, err := s.checker.FindConflicts(ctx, slot)
	if err != nil || len(conflicts) == 0 {
		conflicts = []domain.Interval{slot.Interval()}
	}
	return domain.Conflict(conflicts)
}

// ======================================================
// VALIDATION
// ======================================================

func (s *Service) prepare(ctx context.Context, in CreateInput) (*models.Booking, Slot, error) {
	var slot Slot

	switch in.Type {
	case domain.TypeVenue, domain.TypeCoach:
	case domain.TypeCourse:
		return nil, slot, domain.Validation("type", "course places are taken through enrollment")
	default:
		return nil, slot, domain.Validation("type", "type must be venue or coach")
	}

	if in.FinalPrice < 0 {
		return nil, slot, domain.Validation("totalPrice", "price cannot be negative")
	}
	if in.Duration <= 0 {
		return nil, slot, domain.Validation("duration", "duration must be positive")
	}
	if in.Duration%domain.GranularityMinutes != 0 {
		return nil, slot, domain.Validation("duration",
			fmt.Sprintf("duration must be a multiple of %d minutes", domain.GranularityMinutes))
	}

	date, err := domain.ParseDate(in.Date, s.loc)
	if err != nil {
		return nil, slot, domain.Validation("date", "date must be YYYY-MM-DD")
	}

	now := s.clock()
	today := domain.At(now, 0)
	if date.Before(today) {
		return nil, slot, domain.Validation("date", "date is in the past")
	}
	if s.rules.AdvanceBookingDays > 0 && date.After(today.AddDate(0, 0, s.rules.AdvanceBookingDays)) {
		return nil, slot, domain.Validation("date",
			fmt.Sprintf("bookings open %d days ahead", s.rules.AdvanceBookingDays))
	}

	draft := &models.Booking{
		UserID:      in.UserID,
		BookingType: string(in.Type),
		BookingDate: in.Date,
		FinalPrice:  domain.Round2(in.FinalPrice),
		Status:      string(domain.StatusPending),
		Version:     0,
	}

	var start, end int
	switch in.Type {
	case domain.TypeVenue:
		start, end, err = s.prepareVenue(ctx, in, date, draft)
		if err == nil {
			slot = Slot{Kind: domain.ResourceVenue, ResourceID: *in.VenueID}
		}
	case domain.TypeCoach:
		var sched *models.CoachSchedule
		start, end, sched, err = s.prepareCoach(ctx, in, draft)
		if err == nil {
			slot = Slot{Kind: domain.ResourceCoach, ResourceID: *in.CoachID, Schedule: sched}
		}
	}
	if err != nil {
		return nil, slot, err
	}

	if !domain.At(date, start).After(now) {
		return nil, slot, domain.Validation("startTime", "start time has already passed")
	}

	draft.StartMinute = start
	draft.EndMinute = end
	draft.StartTime = domain.FormatClock(start)
	draft.EndTime = domain.FormatClock(end)
	draft.OrderNo = newOrderNo(now)
	if in.RequestID != "" {
		rid := in.RequestID
		draft.RequestID = &rid
	}

	slot.Date = in.Date
	slot.StartTime = draft.StartTime
	slot.EndTime = draft.EndTime

	return draft, slot, nil
}

func (s *Service) prepareVenue(
	ctx context.Context,
	in CreateInput,
	date time.Time,
	draft *models.Booking,
) (int, int, error) {

	if in.VenueID == nil || *in.VenueID == 0 {
		return 0, 0, domain.Validation("venueId", "venueId is required for venue bookings")
	}

	start, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return 0, 0, domain.Validation("startTime", "startTime must be HH:MM")
	}
	if !domain.IsQuarterAligned(start) {
		return 0, 0, domain.Validation("startTime", "startTime must fall on a quarter hour")
	}
	end := start + in.Duration

	venue, err := s.repo.GetVenue(ctx, *in.VenueID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, 0, domain.NotFound("venue", *in.VenueID)
	}
	if err != nil {
		return 0, 0, domain.Internal("load venue", err)
	}
	if venue.Status != resourceActive {
		return 0, 0, domain.Validation("venueId", "venue is not open for booking")
	}
	if venue.MinDuration > 0 && in.Duration < venue.MinDuration {
		return 0, 0, domain.Validation("duration",
			fmt.Sprintf("minimum booking is %d minutes", venue.MinDuration))
	}

	open, err1 := domain.ParseClock(venue.OpenTime)
	closing, err2 := domain.ParseClock(venue.CloseTime)
	if err1 != nil || err2 != nil {
		return 0, 0, domain.Internal("venue hours", fmt.Errorf("venue %d has invalid hours", venue.ID))
	}
	if start < open || end > closing {
		return 0, 0, domain.Validation("startTime",
			fmt.Sprintf("venue is open %s-%s", venue.OpenTime, venue.CloseTime))
	}

	peakStart, _ := domain.ParseClock(s.rules.PeakStartTime)

	id := venue.ID
	draft.VenueID = &id
	draft.OriginalPrice = domain.VenuePrice(venue, date, start, end, peakStart)

	return start, end, nil
}

// prepareCoach takes the window from the published schedule. The request's
// start time and duration only have to agree with it.
func (s *Service) prepareCoach(
	ctx context.Context,
	in CreateInput,
	draft *models.Booking,
) (int, int, *models.CoachSchedule, error) {

	if in.CoachID == nil || *in.CoachID == 0 {
		return 0, 0, nil, domain.Validation("coachId", "coachId is required for coach bookings")
	}
	if in.ScheduleID == nil || *in.ScheduleID == 0 {
		return 0, 0, nil, domain.Validation("scheduleId", "scheduleId is required for coach bookings")
	}

	coach, err := s.repo.GetCoach(ctx, *in.CoachID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, 0, nil, domain.NotFound("coach", *in.CoachID)
	}
	if err != nil {
		return 0, 0, nil, domain.Internal("load coach", err)
	}
	if coach.Status != resourceActive {
		return 0, 0, nil, domain.Validation("coachId", "coach is not taking bookings")
	}

	sched, err := s.repo.GetSchedule(ctx, *in.ScheduleID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, 0, nil, domain.NotFound("schedule", *in.ScheduleID)
	}
	if err != nil {
		return 0, 0, nil, domain.Internal("load schedule", err)
	}
	if sched.CoachID != coach.ID {
		return 0, 0, nil, domain.Validation("scheduleId", "schedule belongs to another coach")
	}
	if sched.Date != in.Date {
		return 0, 0, nil, domain.Validation("date", "date does not match the schedule")
	}

	start, err1 := domain.ParseClock(sched.StartTime)
	end, err2 := domain.ParseClock(sched.EndTime)
	if err1 != nil || err2 != nil || end <= start {
		return 0, 0, nil, domain.Internal("schedule hours", fmt.Errorf("schedule %d has invalid hours", sched.ID))
	}
	if in.StartTime != "" && in.StartTime != sched.StartTime {
		return 0, 0, nil, domain.Validation("startTime", "startTime does not match the schedule")
	}
	if in.Duration != end-start {
		return 0, 0, nil, domain.Validation("duration",
			fmt.Sprintf("schedule lasts %d minutes", end-start))
	}

	coachID, schedID := coach.ID, sched.ID
	draft.CoachID = &coachID
	draft.ScheduleID = &schedID
	draft.OriginalPrice = domain.CoachPrice(coach, start, end)

	return start, end, sched, nil
}

// newOrderNo is GB + local timestamp + 8 random hex digits.
func newOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "GB" + now.Format("20060102150405") + suffix
}
