package booking

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// ======================================================
// BOOKINGS
// ======================================================

// Get returns a booking its owner or an admin may see.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id uint) (*models.Booking, error) {
	b, err := s.repo.GetBooking(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("booking", id)
	}
	if err != nil {
		return nil, domain.Internal("load booking", err)
	}
	if !actor.IsAdmin() && b.UserID != actor.UserID {
		return nil, domain.Forbidden()
	}
	return b, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uint, page, limit int) ([]models.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := s.repo.ListUserBookings(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, domain.Internal("list bookings", err)
	}
	return items, total, nil
}

// ======================================================
// AVAILABILITY
// ======================================================

type SlotView struct {
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Available bool    `json:"available"`
	IsPeak    bool    `json:"isPeak"`
	Price     float64 `json:"price"`
}

// VenueSlots lays the venue's day out in SlotStepMinutes steps from open
// to close.
func (s *Service) VenueSlots(ctx context.Context, venueID uint, date string) ([]SlotView, error) {
	day, err := domain.ParseDate(date, s.loc)
	if err != nil {
		return nil, domain.Validation("date", "date must be YYYY-MM-DD")
	}

	venue, err := s.repo.GetVenue(ctx, venueID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("venue", venueID)
	}
	if err != nil {
		return nil, domain.Internal("load venue", err)
	}

	open, err1 := domain.ParseClock(venue.OpenTime)
	closing, err2 := domain.ParseClock(venue.CloseTime)
	if err1 != nil || err2 != nil {
		return nil, domain.Internal("venue hours", fmt.Errorf("venue %d has invalid hours", venue.ID))
	}

	booked, err := s.checker.ListBookedIntervals(ctx, domain.ResourceVenue, venueID, date)
	if err != nil {
		return nil, domain.Internal("list booked intervals", err)
	}

	step := s.rules.SlotStepMinutes
	if step <= 0 {
		step = 30
	}
	peakStart, _ := domain.ParseClock(s.rules.PeakStartTime)
	now := s.clock()
	bookable := venue.Status == resourceActive

	slots := []SlotView{}
	for m := open; m+step <= closing; m += step {
		startClock, endClock := domain.FormatClock(m), domain.FormatClock(m+step)
		peak := domain.IsPeak(day, m, peakStart)

		available := bookable && domain.At(day, m).After(now)
		for _, iv := range booked {
			if domain.OverlapsClock(iv.StartTime, iv.EndTime, startClock, endClock) {
				available = false
				break
			}
		}

		slots = append(slots, SlotView{
			StartTime: startClock,
			EndTime:   endClock,
			Available: available,
			IsPeak:    peak,
			Price:     domain.Round2(domain.VenueHourlyRate(venue, peak) * float64(step) / 60),
		})
	}

	return slots, nil
}

type ScheduleView struct {
	ID        uint    `json:"id"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

// CoachSchedules lists the coach's published blocks on date.
func (s *Service) CoachSchedules(ctx context.Context, coachID uint, date string) ([]ScheduleView, error) {
	day, err := domain.ParseDate(date, s.loc)
	if err != nil {
		return nil, domain.Validation("date", "date must be YYYY-MM-DD")
	}

	coach, err := s.repo.GetCoach(ctx, coachID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("coach", coachID)
	}
	if err != nil {
		return nil, domain.Internal("load coach", err)
	}

	scheds, err := s.repo.ListCoachSchedules(ctx, coachID, date)
	if err != nil {
		return nil, domain.Internal("list schedules", err)
	}

	now := s.clock()
	out := make([]ScheduleView, 0, len(scheds))
	for _, sc := range scheds {
		start, err1 := domain.ParseClock(sc.StartTime)
		end, err2 := domain.ParseClock(sc.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, ScheduleView{
			ID:        sc.ID,
			StartTime: sc.StartTime,
			EndTime:   sc.EndTime,
			Available: !sc.IsBooked && coach.Status == resourceActive && domain.At(day, start).After(now),
			Price:     domain.CoachPrice(coach, start, end),
		})
	}

	return out, nil
}
