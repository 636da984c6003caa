package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/axobot/axobot/internal/audit"
	"github.com/axobot/axobot/internal/axosoft"
	"github.com/axobot/axobot/internal/bot"
	"github.com/axobot/axobot/internal/bus"
	"github.com/axobot/axobot/internal/channels"
	"github.com/axobot/axobot/internal/config"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the bot connected to Slack",
	RunE:  runDaemon,
}

func runDaemon(cmd *cobra.Command, args []string) error {
	printHeader("axobot daemon")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config warning: %v (using defaults)\n", err)
	}
	if !cfg.Channels.Slack.Enabled {
		return fmt.Errorf("slack channel is not enabled; set channels.slack.enabled in the config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, msgBus, cleanup, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	slackChannel := channels.NewSlackChannel(cfg.Channels.Slack, msgBus)
	if err := slackChannel.Start(ctx); err != nil {
		return fmt.Errorf("start slack channel: %w", err)
	}
	defer slackChannel.Stop()

	go func() {
		if err := msgBus.DispatchOutbound(ctx); err != nil && ctx.Err() == nil {
			slog.Error("outbound dispatcher stopped", "error", err)
		}
	}()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// storePath returns the sqlite path inside the data directory.
func storePath(cfg *config.Config) (string, error) {
	dir := cfg.Paths.DataDir
	if dir == "" {
		path, err := config.ConfigPath()
		if err != nil {
			return "", err
		}
		dir = filepath.Dir(path)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "axobot.db"), nil
}

// buildApp wires the store, gateway, audit feed and bot together.
func buildApp(cfg *config.Config) (*bot.App, *bus.MessageBus, func(), error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	feed := audit.NewFeed(cfg.Audit)
	msgBus := bus.NewMessageBus()
	gateway := axosoft.NewClient(st, cfg.Axosoft.APIVersion)
	app := bot.New(bot.Options{
		Config:      cfg,
		Bus:         msgBus,
		Gateway:     gateway,
		Credentials: st,
		Snapshots:   st,
		Audit:       feed,
	})
	cleanup := func() {
		feed.Close()
		st.Close()
	}
	return app, msgBus, cleanup, nil
}
