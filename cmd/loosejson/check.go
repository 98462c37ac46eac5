package main

import (
	"fmt"
	"runtime"

	"github.com/praetorian-inc/loosejson/pkg/parser"
	"github.com/praetorian-inc/loosejson/pkg/sarif"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	checkComments  bool
	checkStrictEnd bool
	checkMaxDepth  int
	checkFormat    string
	checkColor     string
	checkJobs      int
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Check that documents parse",
	Long: `Parse every file given and report the ones that are rejected, either as
annotated diagnostics or as a SARIF log. Exits non-zero when any file is
rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkComments, "comments", false, "Allow // and /* */ comments")
	checkCmd.Flags().BoolVar(&checkStrictEnd, "strict-end", false, "Reject input after the root value")
	checkCmd.Flags().IntVar(&checkMaxDepth, "max-depth", 0, "Maximum array and object nesting (0 selects the default)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format: human, sarif")
	checkCmd.Flags().StringVar(&checkColor, "color", "auto", "Color output: auto, always, never")
	checkCmd.Flags().IntVarP(&checkJobs, "jobs", "j", runtime.NumCPU(), "Number of files parsed concurrently")
}

// checkResult is the outcome for one file.
type checkResult struct {
	path string
	src  string
	err  error
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkFormat != "human" && checkFormat != "sarif" {
		return fmt.Errorf("unknown output format: %s", checkFormat)
	}

	cfg, err := resolveConfig(cmd, &checkComments, &checkStrictEnd, &checkMaxDepth, &checkColor)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// One parser serves every worker.
	p, err := parser.New(
		parser.WithComments(cfg.Comments),
		parser.WithStrictEnd(cfg.StrictEnd),
		parser.WithMaxDepth(cfg.MaxDepth),
		parser.WithLogger(logger.Named("parser")),
	)
	if err != nil {
		return err
	}

	results := make([]checkResult, len(args))
	var group errgroup.Group
	if checkJobs > 0 {
		group.SetLimit(checkJobs)
	}
	for i, path := range args {
		i, path := i, path
		group.Go(func() error {
			src, err := readInput(cmd, path)
			if err != nil {
				return err
			}
			_, parseErr := p.Parse(src)
			results[i] = checkResult{path: inputName(path), src: src, err: parseErr}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	rejected := 0
	for _, r := range results {
		if r.err != nil {
			rejected++
		}
	}
	logger.Debug("check finished",
		zap.Int("files", len(results)),
		zap.Int("rejected", rejected),
	)

	switch checkFormat {
	case "sarif":
		if err := outputCheckSARIF(cmd, results); err != nil {
			return err
		}
	default:
		if err := outputCheckHuman(cmd, results, cfg.Color, rejected); err != nil {
			return err
		}
	}

	if rejected > 0 {
		return errReported
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func outputCheckSARIF(cmd *cobra.Command, results []checkResult) error {
	report := sarif.NewReport(version)
	for _, r := range results {
		if r.err != nil && !report.AddError(r.path, r.src, r.err) {
			return fmt.Errorf("%s: %w", r.path, r.err)
		}
	}

	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding SARIF: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func outputCheckHuman(cmd *cobra.Command, results []checkResult, colorMode string, rejected int) error {
	if !quiet {
		errOut := cmd.ErrOrStderr()
		enabled, err := colorEnabled(colorMode, errOut)
		if err != nil {
			return err
		}
		s := newStyles(enabled)
		for _, r := range results {
			if r.err != nil {
				renderDiagnostic(errOut, r.path, r.src, r.err, s)
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d files checked, %d rejected\n", len(results), rejected)
	return nil
}
