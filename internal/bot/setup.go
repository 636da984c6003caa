package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/axobot/axobot/internal/audit"
	"github.com/axobot/axobot/internal/axosoft"
	"github.com/axobot/axobot/internal/command"
	"github.com/axobot/axobot/internal/lookup"
)

// Setup refreshes everything derived from the remote service: it fetches
// the project list and item labels concurrently, and only when both
// succeed rebuilds the lookup cache, vocabulary and command table, swapping
// each in atomically. Any failure leaves all previous state in place.
//
// Only one setup run is allowed at a time; a concurrent call fails with
// ErrSetupInProgress rather than queueing.
func (a *App) Setup(ctx context.Context) error {
	if strings.TrimSpace(a.creds.BaseURL()) == "" || strings.TrimSpace(a.creds.AccessToken()) == "" {
		return ErrNotAuthenticated
	}
	if !a.setupRunning.CompareAndSwap(false, true) {
		return ErrSetupInProgress
	}
	defer a.setupRunning.Store(false)

	var (
		projects []axosoft.Project
		vocab    axosoft.Vocabulary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := a.gateway.FetchProjects(gctx)
		if err != nil {
			return fmt.Errorf("fetch projects: %w", err)
		}
		projects = p
		return nil
	})
	g.Go(func() error {
		v, err := a.gateway.FetchItemKindLabels(gctx)
		if err != nil {
			return fmt.Errorf("fetch item labels: %w", err)
		}
		vocab = v
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Warn("setup aborted, keeping previous state", "error", err)
		return err
	}

	// Everything is computed into new values before any swap, so live
	// state is never touched mid-rebuild.
	newCache := lookup.Rebuild(projects, vocab)
	table, skipped := command.Build(a.buildSpecs(vocab))
	for _, s := range skipped {
		slog.Warn("setup: skipping command with bad label", "id", s.ID, "error", s.Err)
	}

	a.vocab.Replace(vocab)
	a.cache.Store(newCache)
	a.router.Replace(table)

	if a.snapshots != nil {
		if err := a.snapshots.SaveSnapshot(projects, vocab); err != nil {
			slog.Warn("setup: snapshot persist failed", "error", err)
		}
	}
	a.feed.Publish(ctx, audit.Event{Type: audit.EventSetup, Command: "setup"})
	slog.Info("setup complete", "projects", len(projects), "commands", table.Len())
	return nil
}

func (a *App) handleSetup(ctx context.Context, _ []string, reply command.Responder) {
	if !a.authenticated(reply) {
		return
	}
	reply("Performing setup, please wait. .")
	if err := a.Setup(ctx); err != nil {
		switch {
		case err == ErrSetupInProgress:
			reply("I'm already running a setup. Give it a moment and try again.")
		case err == ErrNotAuthenticated:
			reply("Oops, I haven't been authenticated yet. " + a.needAccessTokenResponse())
		default:
			reply("Oops, something unexpected happened. Error: " + err.Error())
		}
		return
	}
	if a.snapshots == nil {
		reply("Setup complete! If I ever get restarted you'll need to run setup again.")
		return
	}
	reply("Setup complete! I'll remember your projects even if I get restarted.")
}
