// Package queue contains the background consumer that listens to the
// lead.created queue and writes one line per lead to <dir>/leads.log.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// LeadConsumer drains the lead.created queue into a log file.
type LeadConsumer struct {
	URL    string
	LogDir string
	Logger *zap.Logger
}

// Run connects to RabbitMQ, declares the lead.created queue (durable), and
// consumes messages until ctx is cancelled. Broker failures trigger a
// reconnect with exponential backoff capped at 30s. Messages that cannot
// be handled are rejected without requeue so the loop keeps moving.
func (lc *LeadConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(lc.URL)
		if err != nil {
			lc.Logger.Warn("lead-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = lc.consumeLoop(ctx, conn)
		_ = conn.Close()
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return ctx.Err()
		}
		lc.Logger.Warn("lead-consumer: consume loop ended, reconnecting", zap.Error(err))
		if !sleepCtx(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (lc *LeadConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		lc.Logger.Warn("lead-consumer: set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(LeadQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, LeadQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleMessage(lc.LogDir, d.Body); err != nil {
				lc.Logger.Error("lead-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes a LeadCreatedEvent and appends it to dir/leads.log.
func HandleMessage(dir string, body []byte) error {
	var ev LeadCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.LeadID == "" {
		return errors.New("event without lead_id")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "leads.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	project := ev.ProjectID
	if ev.ProjectTitle != "" {
		project = fmt.Sprintf("%s (%s)", ev.ProjectTitle, ev.ProjectID)
	}
	line := fmt.Sprintf("[%s] Lead received | lead_id=%s | name=%q | email=%s | phone=%s | project=%q | contact=%s | source=%s\n",
		ev.CreatedAt, ev.LeadID, ev.Name, ev.Email, orDash(ev.Phone), project, orDash(ev.PreferredContact), orDash(ev.Source))

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
