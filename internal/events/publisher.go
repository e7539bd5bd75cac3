package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

const subjectPrefix = "booking."

type BookingEvent struct {
	EventType   string    `json:"event_type"`
	BookingID   uint      `json:"booking_id"`
	OrderNo     string    `json:"order_no"`
	UserID      uint      `json:"user_id"`
	BookingType string    `json:"booking_type"`
	Status      string    `json:"status"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Subject is the NATS subject an event goes out on, e.g. booking.cancelled.
func (e BookingEvent) Subject() string {
	return subjectPrefix + e.EventType
}

// Publisher hands lifecycle events to whoever delivers notifications.
type Publisher interface {
	PublishBooking(ctx context.Context, ev BookingEvent) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("golf-reservation"))
	if err != nil {
		return nil, err
	}
	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) PublishBooking(_ context.Context, ev BookingEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.conn.Publish(ev.Subject(), payload)
}

func (p *NatsPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

type NopPublisher struct{}

func (NopPublisher) PublishBooking(context.Context, BookingEvent) error { return nil }
