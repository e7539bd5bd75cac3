package booking

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// StatusChanges lists the columns that move together with a status write,
// besides status and version themselves.
func StatusChanges(to Status, now time.Time, reason string, c Cancellation) map[string]any {
	changes := map[string]any{}

	switch to {
	case StatusConfirmed:
		changes["confirmed_at"] = now
	case StatusCompleted:
		changes["completed_at"] = now
	case StatusCancelled:
		changes["cancelled_at"] = now
		changes["refund_amount"] = c.Refund
		changes["cancel_fee"] = c.Fee
		if reason != "" {
			changes["cancel_reason"] = reason
		}
	case StatusNoShow:
		if reason != "" {
			changes["cancel_reason"] = reason
		}
	}

	return changes
}

// AppointmentStart is the booking's start as an instant in loc.
func AppointmentStart(b *models.Booking, loc *time.Location) (time.Time, error) {
	date, err := ParseDate(b.BookingDate, loc)
	if err != nil {
		return time.Time{}, err
	}
	start, err := ParseClock(b.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return At(date, start), nil
}

// IntervalOf is the booking's window.
func IntervalOf(b models.Booking) Interval {
	return Interval{StartTime: b.StartTime, EndTime: b.EndTime}
}

// MaxRequestIDLength matches the request_id column width.
const MaxRequestIDLength = 64

// CheckRequestID rejects client request ids the storage column cannot hold.
// An empty id is allowed and disables deduplication.
func CheckRequestID(id string) error {
	if len(id) > MaxRequestIDLength {
		return Validation("requestId", fmt.Sprintf("requestId must be at most %d characters", MaxRequestIDLength))
	}
	return nil
}
