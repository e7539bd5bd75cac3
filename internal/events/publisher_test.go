package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/golf-reservation/internal/events"
)

func TestBookingEvent_SubjectAndPayload(t *testing.T) {
	ev := events.BookingEvent{
		EventType:  "cancelled",
		BookingID:  7,
		OrderNo:    "GB20241205A1B2C3D4",
		Status:     "cancelled",
		Date:       "2024-12-05",
		StartTime:  "09:00",
		EndTime:    "10:00",
		OccurredAt: time.Date(2024, 12, 4, 8, 0, 0, 0, time.UTC),
	}

	require.Equal(t, "booking.cancelled", ev.Subject())

	b, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "cancelled", decoded["event_type"])
	require.Equal(t, float64(7), decoded["booking_id"])
	require.Equal(t, "09:00", decoded["start_time"])
}
