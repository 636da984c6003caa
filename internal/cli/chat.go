package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/axobot/axobot/internal/channels"
	"github.com/axobot/axobot/internal/config"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the bot directly in the terminal",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	printHeader("axobot chat")
	fmt.Println("Type commands like \"axosoft help\". Ctrl+D to exit.")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config warning: %v (using defaults)\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, msgBus, cleanup, err := buildApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	console := channels.NewConsoleChannel(msgBus, os.Stdin, os.Stdout)
	if err := console.Start(ctx); err != nil {
		return err
	}
	defer console.Stop()

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
