package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamdraft/teamdraft/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config file:  %s\n", config.ConfigFile())
	fmt.Fprintf(out, "ui.theme:                %s\n", cfg.UI.Theme)
	fmt.Fprintf(out, "ui.cadence:              %s\n", cfg.UI.Cadence)
	fmt.Fprintf(out, "ui.render_interval_ms:   %d\n", cfg.UI.RenderIntervalMs)
	fmt.Fprintf(out, "roster.max_total:        %d\n", cfg.Roster.MaxTotal)
	endpoint := cfg.Save.Endpoint
	if endpoint == "" {
		endpoint = "(saving disabled)"
	}
	fmt.Fprintf(out, "save.endpoint:           %s\n", endpoint)
	fmt.Fprintf(out, "save.timeout_seconds:    %d\n", cfg.Save.TimeoutSeconds)
	fmt.Fprintf(out, "logging.enabled:         %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "logging.level:           %s\n", cfg.Logging.Level)
	return nil
}
