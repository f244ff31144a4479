package cmd

import (
	"fmt"
	"os"

	"github.com/dt-pm-tools/confluence-md/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	appConfig config.Config
	version   = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:     "confluence-md",
	Short:   "Publish markdown documents to Confluence",
	Long:    `A CLI tool for converting local markdown files into Confluence pages, optionally merging the content into an existing page template via Gemini, and attaching files.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.confluence-md.yaml)")
}

// loadConfig loads and validates configuration. Commands that need Confluence access call this.
func loadConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w\nRun 'confluence-md config' to set up credentials", err)
	}
	appConfig = cfg
	return nil
}
