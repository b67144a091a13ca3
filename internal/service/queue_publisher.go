// Package service provides functions to publish domain events to RabbitMQ.
// Errors are returned, not logged, so the caller can log them once with its
// own context or ignore them without interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/luxury-estate-api/internal/queue"
)

// LeadPublisher publishes lead events. A fresh connection is dialled per
// event; lead submissions are rare enough that pooling is not worth it.
type LeadPublisher struct {
	URL    string
	Logger *zap.Logger
}

// NewLeadPublisher builds a publisher for the broker at url.
func NewLeadPublisher(url string, logger *zap.Logger) *LeadPublisher {
	return &LeadPublisher{URL: url, Logger: logger}
}

// PublishLeadCreated publishes a LeadCreatedEvent to the "lead.created"
// queue. The function never panics; any error is returned so the caller
// can choose to ignore it. Messages are marked as persistent.
func (p *LeadPublisher) PublishLeadCreated(ctx context.Context, event q.LeadCreatedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.LeadQueueName, // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		MessageId:    event.LeadID,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",              // default exchange
		q.LeadQueueName, // routing key = queue name
		false,           // mandatory
		false,           // immediate
		pub,
	); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	p.Logger.Debug("rabbitmq: lead event published", zap.String("lead_id", event.LeadID))
	return nil
}

// NopPublisher drops every event. It is used when lead events are disabled.
type NopPublisher struct{}

func (NopPublisher) PublishLeadCreated(context.Context, q.LeadCreatedEvent) error { return nil }
