package booking

import (
	"time"

	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

type CancelPolicy struct {
	FreeCancelHours int
	FeeRatio        float64
}

// Cancellation is what a cancel refunds and keeps.
type Cancellation struct {
	Fee    float64
	Refund float64
}

// CancelPolicyFor resolves the free-cancel window: the coach's own value,
// then the coach-module default, then the global default.
func (r Rules) CancelPolicyFor(b *models.Booking, coach *models.Coach) CancelPolicy {
	hours := r.FreeCancelHours
	if Type(b.BookingType) == TypeCoach {
		switch {
		case coach != nil && coach.FreeCancelHours != nil:
			hours = *coach.FreeCancelHours
		case r.CoachFreeCancelHours != nil:
			hours = *r.CoachFreeCancelHours
		}
	}
	return CancelPolicy{FreeCancelHours: hours, FeeRatio: r.CancelFeeRatio}
}

// ComputeCancellation charges FeeRatio of the final price when the
// appointment is closer than the free window. With FeeRatio 0 the refund is
// always the full price.
func ComputeCancellation(finalPrice float64, appointment, now time.Time, p CancelPolicy) Cancellation {
	fee := 0.0
	hoursLeft := appointment.Sub(now).Hours()
	if hoursLeft < float64(p.FreeCancelHours) && p.FeeRatio > 0 {
		fee = Round2(finalPrice * p.FeeRatio)
		if fee > finalPrice {
			fee = finalPrice
		}
	}
	return Cancellation{
		Fee:    fee,
		Refund: Round2(finalPrice - fee),
	}
}
