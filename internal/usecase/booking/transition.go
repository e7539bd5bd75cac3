package booking

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

type TransitionInput struct {
	BookingID uint
	Actor     domain.Actor
	Action    domain.Action
	Reason    string
}

type TransitionResult struct {
	BookingID uint
	From      domain.Status
	To        domain.Status
	Version   int

	EarnedPoints  int
	PenaltyPoints int
	RefundAmount  float64
	CancelFee     float64
}

// Transition moves a booking along its lifecycle. A lost version race is
// reported as CONCURRENT_MODIFICATION and never retried here.
func (s *Service) Transition(ctx context.Context, in TransitionInput) (_ *TransitionResult, err error) {
	ctx, span := s.tracer.Start(ctx, "booking.Transition")
	span.SetAttributes(
		attribute.Int64("booking.id", int64(in.BookingID)),
		attribute.String("booking.action", string(in.Action)),
	)
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// --------------------------------------------------
	// Load + ownership
	// --------------------------------------------------
	b, err := s.repo.GetBooking(ctx, in.BookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("booking", in.BookingID)
	}
	if err != nil {
		return nil, domain.Internal("load booking", err)
	}
	if !in.Actor.IsAdmin() && b.UserID != in.Actor.UserID {
		return nil, domain.Forbidden()
	}

	// --------------------------------------------------
	// State machine
	// --------------------------------------------------
	from := domain.Status(b.Status)
	to, err := s.machine.Next(from, in.Action, in.Actor.Role)
	if err != nil {
		s.metrics.Transition(string(in.Action), "invalid")
		return nil, err
	}

	now := s.clock()

	var cancel domain.Cancellation
	if to == domain.StatusCancelled {
		cancel, err = s.cancellation(ctx, b)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Status write + side effects, one transaction
	// --------------------------------------------------
	var fx Effects
	err = s.repo.Transaction(ctx, func(tx domain.Repository) error {
		werr := s.writer.Apply(ctx, tx, domain.StatusWrite{
			BookingID:       b.ID,
			ExpectedVersion: b.Version,
			ExpectedStatus:  from,
			NewStatus:       to,
			Changes:         domain.StatusChanges(to, now, in.Reason, cancel),
		})
		if werr != nil {
			return werr
		}

		var ferr error
		fx, ferr = s.effects.Apply(ctx, tx, b, to)
		return ferr
	})

	if errors.Is(err, domain.ErrConcurrentModification) {
		s.metrics.Conflict("version")
		s.metrics.Transition(string(in.Action), "conflict")
		return nil, domain.ConcurrentModification()
	}
	if err != nil {
		s.metrics.Transition(string(in.Action), "error")
		return nil, domain.Internal("transition booking", err)
	}

	res := &TransitionResult{
		BookingID:     b.ID,
		From:          from,
		To:            to,
		Version:       b.Version + 1,
		EarnedPoints:  fx.EarnedPoints,
		PenaltyPoints: fx.PenaltyPoints,
		RefundAmount:  cancel.Refund,
		CancelFee:     cancel.Fee,
	}

	s.metrics.Transition(string(in.Action), "ok")
	s.record(in.Actor.UserID, "booking_"+string(to), b.ID, map[string]any{
		"from":          string(from),
		"action":        string(in.Action),
		"reason":        in.Reason,
		"refundAmount":  res.RefundAmount,
		"cancelFee":     res.CancelFee,
		"earnedPoints":  res.EarnedPoints,
		"penaltyPoints": res.PenaltyPoints,
	})
	s.publish(ctx, string(to), b, to)

	s.logger.InfoContext(ctx, "booking transitioned",
		"booking_id", b.ID,
		"from", from,
		"to", to,
		"actor_id", in.Actor.UserID,
	)

	return res, nil
}

func (s *Service) cancellation(ctx context.Context, b *models.Booking) (domain.Cancellation, error) {
	var coach *models.Coach
	if domain.Type(b.BookingType) == domain.TypeCoach && b.CoachID != nil {
		c, err := s.repo.GetCoach(ctx, *b.CoachID)
		switch {
		case err == nil:
			coach = c
		case errors.Is(err, domain.ErrNotFound):
			// fall back to the module default
		default:
			return domain.Cancellation{}, domain.Internal("load coach", err)
		}
	}

	start, err := domain.AppointmentStart(b, s.loc)
	if err != nil {
		return domain.Cancellation{}, domain.Internal("booking start", err)
	}

	return domain.ComputeCancellation(
		b.FinalPrice,
		start,
		s.clock(),
		s.rules.CancelPolicyFor(b, coach),
	), nil
}
