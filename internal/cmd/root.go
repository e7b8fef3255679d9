// Package cmd defines the teamdraft command line interface.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teamdraft/teamdraft/internal/config"
	"github.com/teamdraft/teamdraft/internal/logging"
	"github.com/teamdraft/teamdraft/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "teamdraft",
	Short: "Split a roster into random teams",
	Long: `Teamdraft walks through a short interactive flow: how many people,
how many teams, then the names. Duplicate names are qualified
automatically and the finished draw can be posted to an endpoint.`,
	RunE: runDraft,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/teamdraft/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.Flags().String("endpoint", "", "save endpoint override")
	_ = viper.BindPFlag("save.endpoint", rootCmd.Flags().Lookup("endpoint"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TEAMDRAFT")
	// e.g. TEAMDRAFT_SAVE_ENDPOINT for save.endpoint
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func runDraft(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Logging goes to a file or nowhere: stderr would tear the TUI.
	log := logging.Discard()
	if cfg.Logging.Enabled {
		logDir := cfg.Logging.Dir
		if logDir == "" {
			logDir = config.ConfigDir()
		}
		log, err = logging.NewLogger(logDir, cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		defer log.Close()
	}

	app := tui.New(cfg, log)
	if err := app.Run(); err != nil {
		return fmt.Errorf("running the draft: %w", err)
	}
	return nil
}
