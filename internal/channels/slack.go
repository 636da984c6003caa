package channels

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/axobot/axobot/internal/bus"
	"github.com/axobot/axobot/internal/config"
)

// SlackChannel connects to Slack over socket mode and bridges messages to
// the bus. Mentions of the bot user are stripped so "@bot axosoft setup"
// routes the same as a direct message.
type SlackChannel struct {
	BaseChannel
	config config.SlackConfig
	api    *slack.Client
	socket *socketmode.Client
}

// NewSlackChannel creates the Slack channel.
func NewSlackChannel(cfg config.SlackConfig, messageBus *bus.MessageBus) *SlackChannel {
	return &SlackChannel{
		BaseChannel: BaseChannel{Bus: messageBus},
		config:      cfg,
	}
}

func (c *SlackChannel) Name() string { return "slack" }

// Start subscribes for outbound messages and runs the socket mode event
// loop in the background.
func (c *SlackChannel) Start(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}
	c.api = slack.New(
		strings.TrimSpace(c.config.BotToken),
		slack.OptionAppLevelToken(strings.TrimSpace(c.config.AppToken)),
	)
	c.socket = socketmode.New(c.api)

	c.Bus.Subscribe(c.Name(), func(msg *bus.OutboundMessage) {
		if err := c.Send(ctx, msg); err != nil {
			slog.Warn("slack send failed", "chat_id", msg.ChatID, "trace_id", msg.TraceID, "error", err)
		}
	})

	go c.runEventLoop(ctx)
	go func() {
		if err := c.socket.RunContext(ctx); err != nil && ctx.Err() == nil {
			slog.Error("slack socket mode stopped", "error", err)
		}
	}()
	return nil
}

func (c *SlackChannel) runEventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-c.socket.Events:
			if !ok {
				return
			}
			if evt.Type != socketmode.EventTypeEventsAPI {
				continue
			}
			if evt.Request != nil {
				c.socket.Ack(*evt.Request)
			}
			ev, ok := evt.Data.(slackevents.EventsAPIEvent)
			if !ok || ev.Type != slackevents.CallbackEvent {
				continue
			}
			switch in := ev.InnerEvent.Data.(type) {
			case *slackevents.MessageEvent:
				if in == nil || in.BotID != "" || in.SubType != "" {
					continue
				}
				c.handleInbound(in.User, in.Channel, in.Text)
			case *slackevents.AppMentionEvent:
				if in == nil {
					continue
				}
				c.handleInbound(in.User, in.Channel, in.Text)
			}
		}
	}
}

func (c *SlackChannel) handleInbound(senderID, chatID, text string) {
	text = c.stripMention(text)
	if strings.TrimSpace(text) == "" {
		return
	}
	c.Bus.PublishInbound(&bus.InboundMessage{
		Channel:  c.Name(),
		SenderID: strings.TrimSpace(senderID),
		ChatID:   strings.TrimSpace(chatID),
		TraceID:  uuid.NewString(),
		Content:  text,
	})
}

// stripMention removes a leading <@BOTUSER> mention.
func (c *SlackChannel) stripMention(text string) string {
	if botID := strings.TrimSpace(c.config.BotUserID); botID != "" {
		text = strings.ReplaceAll(text, "<@"+botID+">", "")
	}
	return strings.TrimSpace(text)
}

func (c *SlackChannel) Stop() error { return nil }

// Send posts one message to the Slack conversation.
func (c *SlackChannel) Send(ctx context.Context, msg *bus.OutboundMessage) error {
	_, _, err := c.api.PostMessageContext(ctx, msg.ChatID,
		slack.MsgOptionText(msg.Content, false))
	return err
}
