package booking_test

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/golf-reservation/internal/domain/booking"
	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// memRepo is an in-memory Repository. Transactions are serialized and roll
// back on error; CreateBooking enforces the same uniqueness and overlap
// rules the database constraints do.
type memRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex

	venues    map[uint]models.Venue
	coaches   map[uint]models.Coach
	schedules map[uint]models.CoachSchedule
	users     map[uint]models.User
	bookings  []models.Booking
	pointLogs []models.PointLog
	nextID    uint

	failAddPoints bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		venues:    map[uint]models.Venue{},
		coaches:   map[uint]models.Coach{},
		schedules: map[uint]models.CoachSchedule{},
		users:     map[uint]models.User{},
		nextID:    1,
	}
}

type memState struct {
	coaches   map[uint]models.Coach
	schedules map[uint]models.CoachSchedule
	users     map[uint]models.User
	bookings  []models.Booking
	pointLogs []models.PointLog
	nextID    uint
}

func (r *memRepo) snapshot() memState {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := memState{
		coaches:   map[uint]models.Coach{},
		schedules: map[uint]models.CoachSchedule{},
		users:     map[uint]models.User{},
		bookings:  append([]models.Booking(nil), r.bookings...),
		pointLogs: append([]models.PointLog(nil), r.pointLogs...),
		nextID:    r.nextID,
	}
	for k, v := range r.coaches {
		st.coaches[k] = v
	}
	for k, v := range r.schedules {
		st.schedules[k] = v
	}
	for k, v := range r.users {
		st.users[k] = v
	}
	return st
}

func (r *memRepo) restore(st memState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.coaches = st.coaches
	r.schedules = st.schedules
	r.users = st.users
	r.bookings = st.bookings
	r.pointLogs = st.pointLogs
	r.nextID = st.nextID
}

func (r *memRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	st := r.snapshot()
	if err := fn(r); err != nil {
		r.restore(st)
		return err
	}
	return nil
}

func (r *memRepo) GetVenue(_ context.Context, id uint) (*models.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (r *memRepo) GetCoach(_ context.Context, id uint) (*models.Coach, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coaches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) GetSchedule(_ context.Context, id uint) (*models.CoachSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedules[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memRepo) ListCoachSchedules(_ context.Context, coachID uint, date string) ([]models.CoachSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CoachSchedule
	for _, s := range r.schedules {
		if s.CoachID == coachID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			cp := b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) FindBookingByRequestID(_ context.Context, requestID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RequestID != nil && *b.RequestID == requestID {
			cp := b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memRepo) ListActiveBookings(_ context.Context, kind domain.ResourceKind, resourceID uint, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingDate == date && domain.Status(b.Status).IsActive() && holds(b, kind, resourceID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func holds(b models.Booking, kind domain.ResourceKind, id uint) bool {
	switch kind {
	case domain.ResourceVenue:
		return b.VenueID != nil && *b.VenueID == id
	case domain.ResourceCoach:
		return b.CoachID != nil && *b.CoachID == id
	}
	return false
}

func (r *memRepo) ListUserBookings(_ context.Context, userID uint, limit, offset int) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var mine []models.Booking
	for i := len(r.bookings) - 1; i >= 0; i-- {
		if r.bookings[i].UserID == userID {
			mine = append(mine, r.bookings[i])
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (r *memRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.bookings {
		if b.RequestID != nil && other.RequestID != nil && *b.RequestID == *other.RequestID {
			return domain.ErrDuplicateRequest
		}
		if !domain.Status(other.Status).IsActive() {
			continue
		}
		if b.ScheduleID != nil && other.ScheduleID != nil && *b.ScheduleID == *other.ScheduleID {
			return domain.ErrSlotTaken
		}
		if b.VenueID != nil && other.VenueID != nil && *b.VenueID == *other.VenueID &&
			b.BookingDate == other.BookingDate &&
			domain.Overlaps(b.StartMinute, b.EndMinute, other.StartMinute, other.EndMinute) {
			return domain.ErrSlotTaken
		}
	}

	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *memRepo) UpdateBookingStatus(_ context.Context, w domain.StatusWrite) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		b := &r.bookings[i]
		if b.ID != w.BookingID {
			continue
		}
		if b.Version != w.ExpectedVersion || b.Status != string(w.ExpectedStatus) {
			return false, nil
		}
		b.Status = string(w.NewStatus)
		b.Version++
		for k, v := range w.Changes {
			switch k {
			case "confirmed_at":
				t := v.(time.Time)
				b.ConfirmedAt = &t
			case "completed_at":
				t := v.(time.Time)
				b.CompletedAt = &t
			case "cancelled_at":
				t := v.(time.Time)
				b.CancelledAt = &t
			case "refund_amount":
				b.RefundAmount = v.(float64)
			case "cancel_fee":
				b.CancelFee = v.(float64)
			case "cancel_reason":
				s := v.(string)
				b.CancelReason = &s
			}
		}
		return true, nil
	}
	return false, nil
}

func (r *memRepo) ClaimSchedule(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedules[id]
	if !ok || s.IsBooked {
		return false, nil
	}
	s.IsBooked = true
	r.schedules[id] = s
	return true, nil
}

func (r *memRepo) ReleaseSchedule(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.schedules[id]; ok {
		s.IsBooked = false
		r.schedules[id] = s
	}
	return nil
}

func (r *memRepo) IncrementCoachLessons(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.coaches[id]
	c.LessonCount++
	r.coaches[id] = c
	return nil
}

func (r *memRepo) AddUserPoints(_ context.Context, userID uint, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAddPoints {
		return 0, errors.New("points store unavailable")
	}
	u := r.users[userID]
	u.ID = userID
	u.Points += delta
	r.users[userID] = u
	return u.Points, nil
}

func (r *memRepo) AppendPointLog(_ context.Context, entry *models.PointLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint(len(r.pointLogs) + 1)
	r.pointLogs = append(r.pointLogs, *entry)
	return nil
}

// -------- test accessors --------

func (r *memRepo) booking(id uint) models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return b
		}
	}
	return models.Booking{}
}

func (r *memRepo) bookingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

func (r *memRepo) points(userID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[userID].Points
}

func (r *memRepo) logs() []models.PointLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.PointLog(nil), r.pointLogs...)
}

func (r *memRepo) schedule(id uint) models.CoachSchedule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.schedules[id]
}

func (r *memRepo) coach(id uint) models.Coach {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coaches[id]
}
