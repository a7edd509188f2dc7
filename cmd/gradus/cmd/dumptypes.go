package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gradus/pkg/diagnostics"
)

var dumpKind string

var dumpTypesCmd = &cobra.Command{
	Use:   "dump-types <file>",
	Short: "Check a file and print only diagnostics of one kind, as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runDumpTypes,
}

func init() {
	rootCmd.AddCommand(dumpTypesCmd)
	dumpTypesCmd.Flags().StringVar(&dumpKind, "kind", "error", "diagnostic kind to keep (error, class, override, assignment, expression, unsupported, syntax)")
}

func runDumpTypes(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sink, _, err := checkSource(path, string(content), cfg)
	if err != nil {
		return err
	}

	report, err := sink.ToJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(diagnostics.FilterReportByKind(report, dumpKind)))
	return nil
}
