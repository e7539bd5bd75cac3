package booking

import (
	"math"
	"time"

	"github.com/BruksfildServices01/golf-reservation/internal/models"
)

// IsPeak reports whether a slot starting at minute on date is billed at the
// peak rate: weekends all day, weekdays from peakStart on.
func IsPeak(date time.Time, minute int, peakStart int) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return peakStart > 0 && minute >= peakStart
}

// VenueHourlyRate picks the venue's rate for a peak or off-peak slot.
func VenueHourlyRate(v *models.Venue, peak bool) float64 {
	if peak && v.PeakPrice > 0 {
		return v.PeakPrice
	}
	return v.Price
}

// VenuePrice bills [start,end) quarter by quarter so a booking that crosses
// into the peak window pays the peak rate only for the peak part.
func VenuePrice(v *models.Venue, date time.Time, start, end, peakStart int) float64 {
	var total float64
	for m := start; m < end; m += GranularityMinutes {
		rate := VenueHourlyRate(v, IsPeak(date, m, peakStart))
		total += rate * GranularityMinutes / 60
	}
	return Round2(total)
}

func CoachPrice(c *models.Coach, start, end int) float64 {
	return Round2(c.Price * float64(end-start) / 60)
}

// EarnedPoints is floor(finalPrice * ratio), never negative.
func EarnedPoints(finalPrice, ratio float64) int {
	if finalPrice <= 0 || ratio <= 0 {
		return 0
	}
	return int(math.Floor(finalPrice*ratio + 1e-9))
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
