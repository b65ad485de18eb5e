// Package main provides the CLI entry point for apisheet.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukaji3/apisheet-go/pkg/apisheet"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/layout"
	"github.com/ukaji3/apisheet-go/pkg/apisheet/models"
)

var (
	outputPath    string
	configPath    string
	depth         int
	lang          string
	format        string
	composites    string
	detectCycles  bool
	requiredLabel string
	optionalLabel string
	timestamp     bool
	pretty        bool
	sheetsDir     string
	verbose       bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "apisheet [openapi.yaml|json]",
		Short: "Render an OpenAPI document as a spreadsheet",
		Long: `apisheet renders an OpenAPI 3.x or Swagger 2.0 document as a workbook:
an index sheet linking to one sheet per operation, with request and
response schemas flattened into indented property tables.`,
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaults := apisheet.DefaultOptions()
	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "Output file path (default: input name with the format's extension)")
	flags.StringVar(&configPath, "config", "", "YAML configuration file; flags override its values")
	flags.IntVar(&depth, "depth", defaults.MaxDepth, "Maximum schema nesting depth")
	flags.StringVar(&lang, "lang", defaults.Language, "Label language: en, ko")
	flags.StringVar(&format, "format", string(defaults.Format), "Output format: xlsx, json")
	flags.StringVar(&composites, "composites", string(defaults.Composites), "Multi-branch composites: expand, skip")
	flags.BoolVar(&detectCycles, "detect-cycles", false, "Stop flattening at schemas already on the current path")
	flags.StringVar(&requiredLabel, "required-label", "", "Text for required fields")
	flags.StringVar(&optionalLabel, "optional-label", "", "Text for optional fields")
	flags.BoolVar(&timestamp, "timestamp", false, "Add the generation time to the index sheet")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	logger := newLogger(verbose)

	opts, err := buildOptions(cmd)
	if err != nil {
		return report(err)
	}
	opts.Logger = logger

	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + string(opts.EffectiveFormat())
	}

	if err := apisheet.Generate(cmd.Context(), inputPath, outputPath, opts); err != nil {
		return report(err)
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(cmd.Context(), inputPath, sheetsDir, opts); err != nil {
			return report(fmt.Errorf("failed to write sheet files: %w", err))
		}
	}
	return nil
}

// buildOptions starts from the defaults, applies the config file and then
// every flag given on the command line.
func buildOptions(cmd *cobra.Command) (apisheet.Options, error) {
	opts := apisheet.DefaultOptions()
	if configPath != "" {
		cfg, err := apisheet.LoadConfig(configPath)
		if err != nil {
			return opts, fmt.Errorf("load config: %w", err)
		}
		cfg.Apply(&opts)
	}

	changed := cmd.Flags().Changed
	if changed("depth") {
		opts.MaxDepth = depth
	}
	if changed("lang") {
		opts.Language = lang
	}
	if changed("format") {
		opts.Format = apisheet.Format(format)
	}
	if changed("composites") {
		opts.Composites = layout.CompositePolicy(composites)
	}
	if changed("detect-cycles") {
		opts.DetectCycles = &detectCycles
	}
	if changed("required-label") {
		opts.RequiredLabel = requiredLabel
	}
	if changed("optional-label") {
		opts.OptionalLabel = optionalLabel
	}
	if changed("timestamp") {
		opts.Clock = nil
		if timestamp {
			opts.Clock = time.Now
		}
	}
	if changed("pretty") {
		opts.Pretty = pretty
	}
	return opts, opts.Validate()
}

func writeSheetFiles(ctx context.Context, inputPath, dir string, opts apisheet.Options) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}
	wb, err := apisheet.Render(ctx, data, filepath.Base(inputPath), opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		jsonData, err := apisheet.SheetToJSON(sheet, opts.Pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetFileName(sheet)+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

// sheetFileName makes a sheet name usable as a file name.
func sheetFileName(sheet *models.SheetData) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, sheet.Name)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// report prints err, one line per diagnostic for malformed input, and
// returns it.
func report(err error) error {
	var in *apisheet.InputError
	if errors.As(err, &in) {
		fmt.Fprintf(os.Stderr, "error: malformed input %s\n", in.Source)
		for _, d := range in.Diagnostics {
			fmt.Fprintf(os.Stderr, "  - %s\n", d)
		}
		return err
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return err
}
