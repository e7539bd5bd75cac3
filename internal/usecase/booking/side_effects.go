package booking

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

const pointLogTypeBooking = "booking"

// Effects reports what a transition did besides the status write.
type Effects struct {
	EarnedPoints  int
	PenaltyPoints int
}

// SideEffectCoordinator runs the dependent writes of a transition inside
// the same transaction as the status write.
type SideEffectCoordinator struct {
	rules     domain.Rules
	allocator ScheduleAllocator
}

func NewSideEffectCoordinator(rules domain.Rules, allocator ScheduleAllocator) *SideEffectCoordinator {
	return &SideEffectCoordinator{rules: rules, allocator: allocator}
}

func (c *SideEffectCoordinator) Apply(
	ctx context.Context,
	tx domain.Repository,
	b *models.Booking,
	to domain.Status,
) (Effects, error) {

	var fx Effects

	switch to {
	case domain.StatusCompleted:
		earned := domain.EarnedPoints(b.FinalPrice, c.rules.EarnRatio)
		if earned > 0 {
			if err := c.addPoints(ctx, tx, b, earned, "completed"); err != nil {
				return fx, err
			}
			fx.EarnedPoints = earned
		}
		if domain.Type(b.BookingType) == domain.TypeCoach && b.CoachID != nil {
			if err := tx.IncrementCoachLessons(ctx, *b.CoachID); err != nil {
				return fx, err
			}
		}

	case domain.StatusCancelled:
		if err := c.releaseSchedule(ctx, tx, b); err != nil {
			return fx, err
		}

	case domain.StatusNoShow:
		if err := c.releaseSchedule(ctx, tx, b); err != nil {
			return fx, err
		}
		penalty := c.rules.NoShowPenaltyPoints
		if penalty > 0 {
			if err := c.addPoints(ctx, tx, b, -penalty, "no-show"); err != nil {
				return fx, err
			}
			fx.PenaltyPoints = penalty
		}
	}

	return fx, nil
}

func (c *SideEffectCoordinator) releaseSchedule(ctx context.Context, tx domain.Repository, b *models.Booking) error {
	if b.ScheduleID == nil {
		return nil
	}
	return c.allocator.Release(ctx, tx, *b.ScheduleID)
}

func (c *SideEffectCoordinator) addPoints(
	ctx context.Context,
	tx domain.Repository,
	b *models.Booking,
	delta int,
	reason string,
) error {

	balance, err := tx.AddUserPoints(ctx, b.UserID, delta)
	if err != nil {
		return err
	}

	related := b.ID
	return tx.AppendPointLog(ctx, &models.PointLog{
		UserID:      b.UserID,
		Type:        pointLogTypeBooking,
		Points:      delta,
		Balance:     balance,
		RelatedID:   &related,
		Description: fmt.Sprintf("booking %s %s", b.OrderNo, reason),
	})
}
