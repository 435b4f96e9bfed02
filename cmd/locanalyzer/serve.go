package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"locinsight/internal/ingest"
	"locinsight/internal/server"
)

var serveArgs struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis pipeline over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr = serveArgs.addr
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid options: %w", err)
		}

		strategy, err := ingest.ParseMergeStrategy(cfg.Analyzer.Merge.Strategy)
		if err != nil {
			return err
		}

		log := newLogger(cfg)
		srv := server.New(cfg, ingest.NewProcessor(strategy, log), log)

		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveArgs.addr, "addr", ":8080", "Listen address")
}
