package booking

import (
	"fmt"
	"strconv"
	"time"
)

const (
	DateLayout = "2006-01-02"

	// GranularityMinutes is the smallest bookable step.
	GranularityMinutes = 15

	minutesPerDay = 24 * 60
)

// Interval is a half-open [StartTime, EndTime) wall-clock window.
type Interval struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ParseClock turns "HH:MM" into minutes since midnight. "24:00" is accepted
// so a facility can close at midnight.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func IsQuarterAligned(minutes int) bool {
	return minutes%GranularityMinutes == 0
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// OverlapsClock is Overlaps on "HH:MM" strings.
func OverlapsClock(aStart, aEnd, bStart, bEnd string) bool {
	as, err1 := ParseClock(aStart)
	ae, err2 := ParseClock(aEnd)
	bs, err3 := ParseClock(bStart)
	be, err4 := ParseClock(bEnd)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		// Malformed rows are treated as blocking.
		return true
	}
	return Overlaps(as, ae, bs, be)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// At returns the wall-clock instant of minutes on date.
func At(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(time.Duration(minutes) * time.Minute)
}
