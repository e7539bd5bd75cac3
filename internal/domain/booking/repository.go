package booking

import (
	"context"

	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// StatusWrite is a version-guarded status change.
type StatusWrite struct {
	BookingID       uint
	ExpectedVersion int
	ExpectedStatus  Status
	NewStatus       Status
	Changes         map[string]any
}

type Repository interface {
	// -------- Transactions --------
	// Transaction runs fn against a repository bound to one transaction.
	// A non-nil error from fn rolls everything back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Collaborators --------
	GetVenue(
		ctx context.Context,
		id uint,
	) (*models.Venue, error)

	GetCoach(
		ctx context.Context,
		id uint,
	) (*models.Coach, error)

	GetSchedule(
		ctx context.Context,
		id uint,
	) (*models.CoachSchedule, error)

	ListCoachSchedules(
		ctx context.Context,
		coachID uint,
		date string,
	) ([]models.CoachSchedule, error)

	// -------- Booking (read) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	FindBookingByRequestID(
		ctx context.Context,
		requestID string,
	) (*models.Booking, error)

	ListActiveBookings(
		ctx context.Context,
		kind ResourceKind,
		resourceID uint,
		date string,
	) ([]models.Booking, error)

	ListUserBookings(
		ctx context.Context,
		userID uint,
		limit int,
		offset int,
	) ([]models.Booking, int64, error)

	// -------- Booking (write) --------
	// CreateBooking returns ErrSlotTaken or ErrDuplicateRequest when a
	// storage constraint rejects the row.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// UpdateBookingStatus reports false when no row matched the expected
	// version and status.
	UpdateBookingStatus(
		ctx context.Context,
		w StatusWrite,
	) (bool, error)

	// -------- Coach schedule --------
	ClaimSchedule(
		ctx context.Context,
		scheduleID uint,
	) (bool, error)

	ReleaseSchedule(
		ctx context.Context,
		scheduleID uint,
	) error

	IncrementCoachLessons(
		ctx context.Context,
		coachID uint,
	) error

	// -------- Points --------
	// AddUserPoints applies delta atomically and returns the new balance.
	AddUserPoints(
		ctx context.Context,
		userID uint,
		delta int,
	) (int, error)

	AppendPointLog(
		ctx context.Context,
		entry *models.PointLog,
	) error
}
