package opsqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"CareBowAPI/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher pushes booking events onto the transport-operations exchange.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

type bookingEvent struct {
	Reference   string    `json:"reference"`
	BookingID   int64     `json:"bookingid"`
	FamilyID    int64     `json:"familyid"`
	AuthID      int64     `json:"authid"`
	PickupAddr  string    `json:"pickup_address"`
	DropoffAddr string    `json:"dropoff_address"`
	PickupTime  time.Time `json:"pickup_time"`
	Status      string    `json:"status"`
}

// BookingRequested publishes a booking.requested event for the ops team.
func (p *Publisher) BookingRequested(ctx context.Context, b *model.Booking) error {
	ev := bookingEvent{
		Reference:   b.Reference,
		BookingID:   b.BookingID,
		FamilyID:    b.FamilyID,
		AuthID:      b.AuthID,
		PickupAddr:  b.PickupAddr,
		DropoffAddr: b.DropoffAddr,
		PickupTime:  b.PickupTime,
		Status:      b.Status,
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, "booking.requested", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
