package booking

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// Slot is the resource window a create request wants.
type Slot struct {
	Kind       domain.ResourceKind
	ResourceID uint
	Date       string
	StartTime  string
	EndTime    string

	// Schedule is set for coach bookings.
	Schedule *models.CoachSchedule
}

func (s Slot) Interval() domain.Interval {
	return domain.Interval{StartTime: s.StartTime, EndTime: s.EndTime}
}

// SlotConflictChecker is a read-only advisory check. The storage
// constraints remain the final word.
type SlotConflictChecker struct {
	repo domain.Repository
}

func NewSlotConflictChecker(repo domain.Repository) *SlotConflictChecker {
	return &SlotConflictChecker{repo: repo}
}

func (c *SlotConflictChecker) FindConflicts(
	ctx context.Context,
	slot Slot,
) ([]domain.Interval, error) {

	var conflicts []domain.Interval
	seen := map[domain.Interval]bool{}
	add := func(iv domain.Interval) {
		if !seen[iv] {
			seen[iv] = true
			conflicts = append(conflicts, iv)
		}
	}

	if slot.Kind == domain.ResourceCoach && slot.Schedule != nil {
		// re-read: the caller's copy may predate a concurrent claim
		sched, err := c.repo.GetSchedule(ctx, slot.Schedule.ID)
		if err != nil {
			return nil, err
		}
		if sched.IsBooked {
			add(domain.Interval{StartTime: sched.StartTime, EndTime: sched.EndTime})
		}
	}

	booked, err := c.repo.ListActiveBookings(ctx, slot.Kind, slot.ResourceID, slot.Date)
	if err != nil {
		return nil, err
	}

	for _, b := range booked {
		if domain.OverlapsClock(b.StartTime, b.EndTime, slot.StartTime, slot.EndTime) {
			add(domain.IntervalOf(b))
		}
	}

	sortIntervals(conflicts)
	return conflicts, nil
}

// ListBookedIntervals returns the resource's active windows on date,
// ordered by start time.
func (c *SlotConflictChecker) ListBookedIntervals(
	ctx context.Context,
	kind domain.ResourceKind,
	resourceID uint,
	date string,
) ([]domain.Interval, error) {

	booked, err := c.repo.ListActiveBookings(ctx, kind, resourceID, date)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Interval, 0, len(booked))
	for _, b := range booked {
		out = append(out, domain.IntervalOf(b))
	}

	sortIntervals(out)
	return out, nil
}

func sortIntervals(ivs []domain.Interval) {
	sort.SliceStable(ivs, func(i, j int) bool {
		if ivs[i].StartTime == ivs[j].StartTime {
			return ivs[i].EndTime < ivs[j].EndTime
		}
		return ivs[i].StartTime < ivs[j].StartTime
	})
}
