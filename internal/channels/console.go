package channels

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/axobot/axobot/internal/bus"
)

// ConsoleChannel is a line-based channel over stdin/stdout for local use.
type ConsoleChannel struct {
	BaseChannel
	in  io.Reader
	out io.Writer
}

// NewConsoleChannel creates a console channel reading from in and writing
// to out.
func NewConsoleChannel(messageBus *bus.MessageBus, in io.Reader, out io.Writer) *ConsoleChannel {
	return &ConsoleChannel{
		BaseChannel: BaseChannel{Bus: messageBus},
		in:          in,
		out:         out,
	}
}

func (c *ConsoleChannel) Name() string { return "console" }

// Start subscribes for outbound messages and reads input lines until EOF
// or context cancellation.
func (c *ConsoleChannel) Start(ctx context.Context) error {
	c.Bus.Subscribe(c.Name(), func(msg *bus.OutboundMessage) {
		if err := c.Send(ctx, msg); err != nil {
			slog.Warn("console write failed", "error", err)
		}
	})

	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			c.Bus.PublishInbound(&bus.InboundMessage{
				Channel:  c.Name(),
				SenderID: "console",
				ChatID:   "console",
				TraceID:  uuid.NewString(),
				Content:  line,
			})
		}
	}()
	return nil
}

func (c *ConsoleChannel) Stop() error { return nil }

// Send writes one reply line to the output.
func (c *ConsoleChannel) Send(_ context.Context, msg *bus.OutboundMessage) error {
	_, err := fmt.Fprintln(c.out, msg.Content)
	return err
}
