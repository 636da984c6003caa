// Package audit publishes one event per executed chat command to a Kafka
// topic. The feed is optional and best-effort: delivery failures are
// logged, never surfaced to the user.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/axobot/axobot/internal/config"
)

// Event is the wire format for one audit record.
type Event struct {
	Type      string    `json:"type"`
	TraceID   string    `json:"trace_id"`
	Channel   string    `json:"channel"`
	SenderID  string    `json:"sender_id"`
	Command   string    `json:"command"`
	Timestamp time.Time `json:"timestamp"`
}

// Event type constants.
const (
	EventCommand = "command"
	EventSetup   = "setup"
)

// Feed writes audit events to Kafka. A nil Feed is valid and drops events.
type Feed struct {
	writer *kafka.Writer
}

// NewFeed creates a feed from config. Returns nil when the feed is
// disabled or has no brokers configured. The writer is asynchronous: a
// slow or hung broker never stalls the caller, and delivery failures
// surface through the completion callback.
func NewFeed(cfg config.AuditConfig) *Feed {
	if !cfg.Enabled || strings.TrimSpace(cfg.Brokers) == "" {
		return nil
	}
	return &Feed{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(cfg.Brokers, ",")...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					slog.Warn("audit: deliver events", "topic", cfg.Topic, "count", len(messages), "error", err)
				}
			},
		},
	}
}

// Publish enqueues one event for background delivery. It returns as soon
// as the event is buffered. Safe on a nil feed.
func (f *Feed) Publish(ctx context.Context, ev Event) {
	if f == nil {
		return
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("audit: marshal event", "error", err)
		return
	}
	if err := f.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.TraceID),
		Value: payload,
	}); err != nil {
		slog.Warn("audit: enqueue event", "topic", f.writer.Topic, "error", err)
	}
}

// Close flushes and closes the underlying writer. Safe on a nil feed.
func (f *Feed) Close() error {
	if f == nil {
		return nil
	}
	return f.writer.Close()
}
