package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/axobot/axobot/internal/config"
	"github.com/axobot/axobot/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and authentication state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	printHeader("axobot status")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config warning: %v (using defaults)\n", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	yes := color.GreenString("yes")
	no := color.RedString("no")

	urlSet := st.BaseURL() != ""
	tokenSet := st.AccessToken() != ""
	fmt.Printf("Base URL set:     %s\n", boolMark(urlSet, yes, no))
	if urlSet {
		fmt.Printf("Base URL:         %s\n", st.BaseURL())
	}
	fmt.Printf("Access token set: %s\n", boolMark(tokenSet, yes, no))

	projects, _, err := st.LoadSnapshot()
	if err != nil {
		fmt.Printf("Snapshot:         error: %v\n", err)
	} else {
		fmt.Printf("Known projects:   %d\n", len(projects))
	}

	fmt.Printf("Trigger word:     %s\n", cfg.Bot.Trigger)
	fmt.Printf("Slack enabled:    %s\n", boolMark(cfg.Channels.Slack.Enabled, yes, no))
	fmt.Printf("Audit feed:       %s\n", boolMark(cfg.Audit.Enabled, yes, no))
	return nil
}

func boolMark(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}

func openStore(cfg *config.Config) (*store.Store, error) {
	path, err := storePath(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}
