package cmd

import (
	"log/slog"
	"os"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/logging"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minilinked",
	Short: "Mini LinkedIn community platform backend",
	Long: `minilinked serves the Mini LinkedIn REST API: accounts, posts, likes,
comments, direct messages, friend requests and notifications.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and installs the process-wide logger.
func loadConfig() config.Config {
	cfg := config.LoadConfig()
	slog.SetDefault(logging.New(os.Stderr, cfg.Log))
	return cfg
}
