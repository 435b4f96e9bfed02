package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"locinsight/internal/formatter"
	"locinsight/pkg/metadata"
)

var formatArgs struct {
	write bool
}

var formatCmd = &cobra.Command{
	Use:   "format FILE",
	Short: "Re-align the tables of a markdown report",
	Long: "Re-align the tables of a markdown report. A signed report is re-signed " +
		"with its original report ID. Without --write the command only reports " +
		"whether the file would change and exits 1 if it would.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFormat(args[0], formatArgs.write, cmd.OutOrStdout())
	},
}

func init() {
	formatCmd.Flags().BoolVar(&formatArgs.write, "write", false, "Write changes to file (default: dry-run)")
}

func runFormat(path string, write bool, stdout io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	original := string(content)

	meta, clean := metadata.Extract(original)
	formatted := formatter.AlignTables(clean) + "\n"

	if meta != nil {
		formatted = metadata.Sign(formatted, *meta)
	}

	if formatted == original {
		fmt.Fprintf(stdout, "✅ %s is already formatted\n", path)
		return nil
	}

	if !write {
		fmt.Fprintf(stdout, "📝 Would format: %s\n", path)
		fmt.Fprintln(stdout, "💡 Run with --write to apply changes.")

		return errSilentExit
	}

	if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Fprintf(stdout, "✅ Formatted: %s\n", path)

	return nil
}
