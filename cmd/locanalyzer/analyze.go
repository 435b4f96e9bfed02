package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"locinsight/internal/config"
	"locinsight/internal/formatter"
	"locinsight/internal/ingest"
	"locinsight/internal/logger"
	"locinsight/pkg/metadata"
)

// ErrBothStdin is returned when both inputs are set to read from stdin.
var ErrBothStdin = errors.New("only one of --locations and --metadata can read from stdin")

// ErrMissingInput is returned when an input path is neither given nor configured.
var ErrMissingInput = errors.New("both --locations and --metadata are required")

var analyzeArgs struct {
	locations string
	metadata  string
	format    string
	output    string
	strategy  string
	sign      bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Validate, merge and analyze a locations file and a metadata file",
	Example: `  locanalyzer analyze --locations data/samples/locations.json --metadata data/samples/metadata.json
  cat metadata.json | locanalyzer analyze --locations locations.json --metadata - --format json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		applyAnalyzeFlags(cmd, cfg)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid options: %w", err)
		}

		return runAnalyze(cfg, newLogger(cfg), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeArgs.locations, "locations", "", "Path to locations JSON ('-' for stdin)")
	f.StringVar(&analyzeArgs.metadata, "metadata", "", "Path to metadata JSON ('-' for stdin)")
	f.StringVar(&analyzeArgs.format, "format", "", "Output format: markdown or json")
	f.StringVarP(&analyzeArgs.output, "output", "o", "", "Write the report to this file instead of stdout")
	f.StringVar(&analyzeArgs.strategy, "strategy", "", "Merge strategy: index or scan")
	f.BoolVar(&analyzeArgs.sign, "sign", false, "Append an integrity block to a markdown report")
}

// applyAnalyzeFlags copies explicitly set flags over the config values.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()

	if f.Changed("locations") {
		cfg.Analyzer.Input.Locations = analyzeArgs.locations
	}

	if f.Changed("metadata") {
		cfg.Analyzer.Input.Metadata = analyzeArgs.metadata
	}

	if f.Changed("format") {
		cfg.Analyzer.Output.Format = analyzeArgs.format
	}

	if f.Changed("output") {
		cfg.Analyzer.Output.Path = analyzeArgs.output
	}

	if f.Changed("strategy") {
		cfg.Analyzer.Merge.Strategy = analyzeArgs.strategy
	}

	if f.Changed("sign") {
		cfg.Analyzer.Output.Sign = analyzeArgs.sign
	}
}

// runAnalyze does the work of the analyze command. Validation failures are
// printed to stderr and reported as errSilentExit.
func runAnalyze(cfg *config.Config, log *logger.Logger, stdin io.Reader, stdout, stderr io.Writer) error {
	in := cfg.Analyzer.Input
	if in.Locations == "" || in.Metadata == "" {
		return ErrMissingInput
	}

	if in.Locations == "-" && in.Metadata == "-" {
		return ErrBothStdin
	}

	rawLocations, err := readInput(in.Locations, stdin)
	if err != nil {
		return fmt.Errorf("failed to read locations: %w", err)
	}

	rawMetadata, err := readInput(in.Metadata, stdin)
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}

	strategy, err := ingest.ParseMergeStrategy(cfg.Analyzer.Merge.Strategy)
	if err != nil {
		return err
	}

	processor := ingest.NewProcessor(strategy, log)

	report, err := processor.Process(ingest.Request{
		Locations: rawLocations,
		Metadata:  rawMetadata,
	})
	if err != nil {
		var failure *ingest.ValidationFailure
		if errors.As(err, &failure) {
			fmt.Fprintf(stderr, "✗ [%s] %s\n", failure.Field, failure.Message)
			return errSilentExit
		}

		return err
	}

	var out []byte

	switch cfg.GetOutputFormat() {
	case config.FormatJSON:
		out, err = formatter.RenderJSON(report, cfg.Analyzer.Output.PrettyPrint)
		if err != nil {
			return err
		}
	default:
		doc := formatter.RenderMarkdown(report)
		if cfg.Analyzer.Output.Sign {
			doc = metadata.Sign(doc, metadata.Metadata{
				ReportID:    report.ID.String(),
				GeneratedAt: report.GeneratedAt,
				Complete:    report.IsComplete(),
			})
		}

		out = []byte(doc)
	}

	if cfg.Analyzer.Output.Path == "" {
		_, err = stdout.Write(out)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Analyzer.Output.Path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(cfg.Analyzer.Output.Path, out, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	log.Info("report written", "path", cfg.Analyzer.Output.Path, "bytes", len(out))

	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}

		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
