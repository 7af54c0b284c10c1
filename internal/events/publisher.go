// Package events publishes appointment lifecycle events to RabbitMQ for
// the workflow automation (n8n) that drives WhatsApp notifications.
// Publishing failures are logged and swallowed; the booking flow never
// fails because the broker is down.
package events

import (
	"context"
	"encoding/json"
	"time"

	"clinic-scheduling-backend/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys for appointment lifecycle events
const (
	AppointmentCreated       = "appointment.created"
	AppointmentUpdated       = "appointment.updated"
	AppointmentCancelled     = "appointment.cancelled"
	AppointmentStatusChanged = "appointment.status_changed"
	AppointmentReminder      = "appointment.reminder"
)

// AppointmentEvent is the payload published for every lifecycle change.
// It carries enough for downstream consumers to message the client without
// querying the primary database.
type AppointmentEvent struct {
	AppointmentID    string `json:"appointment_id"`
	ClinicID         string `json:"clinic_id"`
	ClientID         string `json:"client_id"`
	ClientName       string `json:"client_name,omitempty"`
	ClientPhone      string `json:"client_phone,omitempty"`
	ProfessionalID   string `json:"professional_id"`
	ProfessionalName string `json:"professional_name,omitempty"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Status           string `json:"status"`
	OccurredAt       string `json:"occurred_at"`
}

// Publisher publishes events to a topic exchange. A nil *Publisher is a
// no-op, so callers never need to branch on whether AMQP is configured.
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher connects to the broker and declares the exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Durable topic exchange so events survive broker restarts
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish sends an event under the given routing key
func (p *Publisher) Publish(ctx context.Context, routingKey string, event AppointmentEvent) {
	if p == nil {
		return
	}

	log := logger.Get()

	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("Failed to marshal appointment event")
		return
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("Failed to publish appointment event")
	}
}

// Close closes the channel and connection
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	_ = p.ch.Close()
	return p.conn.Close()
}
