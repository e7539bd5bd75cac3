package booking

import (
	"context"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
)

// ScheduleAllocator flips a coach schedule between free and booked. Both
// calls run on the caller's transaction.
type ScheduleAllocator struct{}

func NewScheduleAllocator() ScheduleAllocator {
	return ScheduleAllocator{}
}

// Claim succeeds for exactly one of any number of concurrent callers.
func (ScheduleAllocator) Claim(ctx context.Context, tx domain.Repository, scheduleID uint) error {
	ok, err := tx.ClaimSchedule(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrSlotTaken
	}
	return nil
}

// Release is idempotent.
func (ScheduleAllocator) Release(ctx context.Context, tx domain.Repository, scheduleID uint) error {
	return tx.ReleaseSchedule(ctx, scheduleID)
}
