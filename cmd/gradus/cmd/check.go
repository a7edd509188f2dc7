package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gradus/internal/config"
	"gradus/pkg/builtinstub"
	"gradus/pkg/checker"
	"gradus/pkg/diagnostics"
	"gradus/pkg/lexer"
	"gradus/pkg/modules"
	"gradus/pkg/parser"
	"gradus/pkg/source"
)

var (
	jsonOutput bool
	strictMode bool
	colorFlag  string
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Type-check a single source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit diagnostics as a JSON report instead of text")
	checkCmd.Flags().BoolVar(&strictMode, "strict", false, "enable strict-mode checks")
	checkCmd.Flags().StringVar(&colorFlag, "color", "auto", "color diagnostics: auto, always, never")
}

// runCheck lexes, parses and checks path, then renders whatever the
// sink accumulated — never aborting early, mirroring the checker's
// own accumulate-then-report discipline.
func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sink, sf, err := checkSource(path, string(content), cfg)
	if err != nil {
		return err
	}

	if jsonOutput {
		report, err := sink.ToJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(report))
	} else {
		mode := diagnostics.ColorMode(cfg.ColorDiagnostics)
		if colorFlag != "auto" {
			mode = diagnostics.ColorMode(colorFlag)
		}
		diagnostics.RenderAll(os.Stdout, sf, sink, mode)
	}

	if sink.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func loadConfig() (*config.CheckerConfig, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// checkSource runs the full lex -> parse -> check pipeline for one
// file and returns the resulting diagnostic sink.
func checkSource(path, content string, cfg *config.CheckerConfig) (*diagnostics.Sink, *source.SourceFile, error) {
	sf := source.FromFile(path, content)
	sink := diagnostics.NewSink("")

	l := lexer.New(content)
	p := parser.New(l)
	prog := p.ParseProgram()
	for _, e := range p.Errors() {
		sink.Add(e)
	}

	builtins, err := builtinstub.Load(cfg.BuiltinStubPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading builtins: %w", err)
	}

	reg := modules.NewRegistry()
	file := modules.NewModuleFile(moduleNameFor(path))
	reg.Add(file)

	c := checker.NewChecker(builtins, reg, strictMode || cfg.Strict)
	checkedSink := c.CheckFile(file, path, prog)
	for _, e := range sink.Diagnostics() {
		checkedSink.Add(e)
	}
	return checkedSink, sf, nil
}

func moduleNameFor(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
