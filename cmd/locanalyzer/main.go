// Package main provides the locanalyzer command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"locinsight/internal/config"
	"locinsight/internal/logger"
)

// errSilentExit signals a failure that was already reported to the user.
var errSilentExit = errors.New("exit 1")

var rootArgs struct {
	configPath string
	logLevel   string
}

var rootCmd = &cobra.Command{
	Use:           "locanalyzer",
	Short:         "Correlate location and metadata records and summarize them by category",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootArgs.configPath, "config", "", "Path to YAML configuration file (default "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&rootArgs.logLevel, "log-level", "", "Override logging level (debug, info, warn, error)")

	rootCmd.AddCommand(analyzeCmd, serveCmd, verifyCmd, formatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilentExit) {
			fmt.Fprintln(os.Stderr, "❌", err)
		}

		os.Exit(1)
	}
}

// loadConfig reads the config file named by --config, or the default file if
// it exists, or falls back to built-in defaults.
func loadConfig() (*config.Config, error) {
	path := rootArgs.configPath
	if path == "" {
		if _, statErr := os.Stat(config.DefaultPath); statErr == nil {
			path = config.DefaultPath
		}
	}

	cfg := config.Default()

	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if rootArgs.logLevel != "" {
		cfg.Analyzer.Logging.Level = rootArgs.logLevel
	}

	return cfg, nil
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.NewLoggerWithOptions(cfg.Analyzer.Logging.Level, cfg.Analyzer.Logging.Format, os.Stderr)
}
