// Package bot wires the command router, lookup cache and Axosoft gateway
// into the chat-facing application.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/axobot/axobot/internal/audit"
	"github.com/axobot/axobot/internal/axosoft"
	"github.com/axobot/axobot/internal/bus"
	"github.com/axobot/axobot/internal/command"
	"github.com/axobot/axobot/internal/config"
	"github.com/axobot/axobot/internal/lookup"
)

// CredentialStore persists the Axosoft base URL and access token. The
// persistence mechanism lives behind this interface.
type CredentialStore interface {
	axosoft.Credentials
	SetBaseURL(url string) error
	SetAccessToken(token string) error
}

// SnapshotStore persists the last good project list and labels across
// restarts. Optional.
type SnapshotStore interface {
	SaveSnapshot(projects []axosoft.Project, vocab axosoft.Vocabulary) error
	LoadSnapshot() ([]axosoft.Project, axosoft.Vocabulary, error)
}

// Options contains the collaborators for an App.
type Options struct {
	Config      *config.Config
	Bus         *bus.MessageBus
	Gateway     axosoft.Gateway
	Credentials CredentialStore
	Snapshots   SnapshotStore // may be nil
	Audit       *audit.Feed   // may be nil
	Formatter   Formatter     // defaults to PlainFormatter
	Now         func() time.Time
}

// App holds the application-scoped state: the current command table,
// lookup cache and vocabulary. Only Setup writes these; the dispatcher
// and handlers read snapshots, so no locks are needed on the read path.
type App struct {
	cfg       *config.Config
	bus       *bus.MessageBus
	gateway   axosoft.Gateway
	creds     CredentialStore
	snapshots SnapshotStore
	feed      *audit.Feed
	fmtr      Formatter
	now       func() time.Time

	vocab        *command.VocabularyRegistry
	router       *command.Router
	cache        atomic.Pointer[lookup.Cache]
	setupRunning atomic.Bool
}

// New creates the App and builds a best-effort initial command table: from
// the persisted snapshot when one exists, otherwise from the default
// vocabulary with an empty project index.
func New(opts Options) *App {
	a := &App{
		cfg:       opts.Config,
		bus:       opts.Bus,
		gateway:   opts.Gateway,
		creds:     opts.Credentials,
		snapshots: opts.Snapshots,
		feed:      opts.Audit,
		fmtr:      opts.Formatter,
		now:       opts.Now,
	}
	if a.fmtr == nil {
		a.fmtr = PlainFormatter{}
	}
	if a.now == nil {
		a.now = time.Now
	}
	a.vocab = command.NewVocabularyRegistry()

	projects := []axosoft.Project(nil)
	vocab := axosoft.DefaultVocabulary()
	if a.snapshots != nil {
		if p, v, err := a.snapshots.LoadSnapshot(); err == nil {
			projects, vocab = p, v
		} else {
			slog.Warn("snapshot load failed, starting empty", "error", err)
		}
	}
	a.vocab.Replace(vocab)
	a.cache.Store(lookup.Rebuild(projects, vocab))

	table, skipped := command.Build(a.buildSpecs(vocab))
	for _, s := range skipped {
		slog.Warn("skipping command with bad label", "id", s.ID, "error", s.Err)
	}
	a.router = command.NewRouter(table)
	return a
}

// Router exposes the command router, mainly for tests.
func (a *App) Router() *command.Router {
	return a.router
}

// Cache returns the current lookup snapshot.
func (a *App) Cache() *lookup.Cache {
	return a.cache.Load()
}

// Run consumes inbound messages until the context is cancelled. Commands
// are dispatched one at a time; all state mutation goes through Setup's
// atomic swaps, so handlers always read consistent snapshots.
func (a *App) Run(ctx context.Context) error {
	slog.Info("bot dispatch loop started", "trigger", a.cfg.Bot.Trigger)
	for {
		msg, err := a.bus.ConsumeInbound(ctx)
		if err != nil {
			return err
		}
		a.Dispatch(ctx, msg)
	}
}

// Dispatch routes one inbound message and runs its handler. Lines that do
// not start with the trigger word are ignored; trigger-prefixed lines that
// match no command get a short hint.
func (a *App) Dispatch(ctx context.Context, msg *bus.InboundMessage) {
	line := strings.TrimSpace(msg.Content)
	reply := func(text string) {
		a.bus.PublishOutbound(&bus.OutboundMessage{
			Channel: msg.Channel,
			ChatID:  msg.ChatID,
			TraceID: msg.TraceID,
			Content: text,
		})
	}

	match, ok := a.router.Route(line)
	if !ok {
		trigger := strings.ToLower(a.cfg.Bot.Trigger)
		lowered := strings.ToLower(line)
		if lowered == trigger || strings.HasPrefix(lowered, trigger+" ") {
			reply("Sorry, I don't recognize that command. Try \"" + a.cfg.Bot.Trigger + " help\".")
		}
		return
	}

	a.feed.Publish(ctx, audit.Event{
		Type:     audit.EventCommand,
		TraceID:  msg.TraceID,
		Channel:  msg.Channel,
		SenderID: msg.SenderID,
		Command:  match.ID,
	})
	slog.Debug("dispatching command", "id", match.ID, "channel", msg.Channel, "trace_id", msg.TraceID)
	match.Handle(ctx, reply)
}
