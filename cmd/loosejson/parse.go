package main

import (
	"errors"
	"fmt"

	"github.com/praetorian-inc/loosejson/pkg/ast"
	"github.com/praetorian-inc/loosejson/pkg/config"
	"github.com/praetorian-inc/loosejson/pkg/parser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errReported is returned after a diagnostic has already been written.
var errReported = errors.New("input rejected")

var (
	parseComments  bool
	parseFormat    string
	parseStrictEnd bool
	parseMaxDepth  int
	parseColor     string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a document and print its tree",
	Long: `Parse a document and print the result as an annotated tree (kinds, values
and spans), as standard JSON, or as the raw text of the root value.
Use - to read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseComments, "comments", false, "Allow // and /* */ comments")
	parseCmd.Flags().StringVar(&parseFormat, "format", config.FormatTree, "Output format: tree, json, raw")
	parseCmd.Flags().BoolVar(&parseStrictEnd, "strict-end", false, "Reject input after the root value")
	parseCmd.Flags().IntVar(&parseMaxDepth, "max-depth", 0, "Maximum array and object nesting (0 selects the default)")
	parseCmd.Flags().StringVar(&parseColor, "color", config.ColorAuto, "Color output: auto, always, never")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveParseConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	src, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	p, err := parser.New(
		parser.WithComments(cfg.Comments),
		parser.WithStrictEnd(cfg.StrictEnd),
		parser.WithMaxDepth(cfg.MaxDepth),
		parser.WithLogger(logger.Named("parser")),
	)
	if err != nil {
		return err
	}

	root, parseErr := p.Parse(src)

	if parseErr != nil {
		if quiet {
			return errReported
		}
		errOut := cmd.ErrOrStderr()
		enabled, err := colorEnabled(cfg.Color, errOut)
		if err != nil {
			return err
		}
		renderDiagnostic(errOut, inputName(args[0]), src, parseErr, newStyles(enabled))
		return errReported
	}

	logger.Debug("document parsed",
		zap.String("input", inputName(args[0])),
		zap.Int("nodes", ast.Count(root)),
	)

	out := cmd.OutOrStdout()
	switch cfg.Format {
	case config.FormatJSON:
		return renderJSON(out, root)
	case config.FormatRaw:
		_, err := fmt.Fprintln(out, root.SourceText())
		return err
	case config.FormatTree:
		enabled, err := colorEnabled(cfg.Color, out)
		if err != nil {
			return err
		}
		return renderTree(out, root, newStyles(enabled))
	default:
		return fmt.Errorf("unknown output format: %s", cfg.Format)
	}
}

// resolveParseConfig layers explicitly set flags over the config file.
func resolveParseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := resolveConfig(cmd, &parseComments, &parseStrictEnd, &parseMaxDepth, &parseColor)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = parseFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfig loads the config file and overrides the settings shared by
// parse and check with any flag set on the command line.
func resolveConfig(cmd *cobra.Command, comments, strictEnd *bool, maxDepth *int, color *string) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("comments") {
		cfg.Comments = *comments
	}
	if flags.Changed("strict-end") {
		cfg.StrictEnd = *strictEnd
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = *maxDepth
	}
	if flags.Changed("color") {
		cfg.Color = *color
	}
	return cfg, nil
}

func inputName(arg string) string {
	if arg == "-" {
		return "<stdin>"
	}
	return arg
}
