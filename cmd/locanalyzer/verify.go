package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"locinsight/pkg/metadata"
)

var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Check the integrity block of a signed markdown report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(args[0], cmd.OutOrStdout())
	},
}

func runVerify(path string, stdout io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	if _, err := metadata.Verify(string(content)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	meta, _ := metadata.Extract(string(content))
	fmt.Fprintf(stdout, "✅ %s: valid (report %s, complete: %t)\n", path, meta.ReportID, meta.Complete)

	return nil
}
