// Package cli implements the axobot command line interface.
package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// version can be overridden at build time via:
	// go build -ldflags "-X github.com/axobot/axobot/internal/cli.version=1.2.3"
	version = "0.3.0"
	logo    = "\n" +
		"                     _           _\n" +
		"   __ ___  _____   | |__   ___ | |_\n" +
		"  / _` \\ \\/ / _ \\  | '_ \\ / _ \\| __|\n" +
		" | (_| |>  < (_) | | |_) | (_) | |_\n" +
		"  \\__,_/_/\\_\\___/  |_.__/ \\___/ \\__|\n"
)

var rootCmd = &cobra.Command{
	Use:   "axobot",
	Short: "axobot - Axosoft chat bot",
	Long:  color.CyanString(logo) + "\nA chat bot for querying and updating Axosoft work items from Slack or the console.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(daemonCmd)
}

func printHeader(title string) {
	color.Cyan(title)
}
