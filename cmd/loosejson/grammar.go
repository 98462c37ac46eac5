package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/loosejson/pkg/grammar"
	"github.com/spf13/cobra"
)

var (
	grammarPath   string
	grammarFormat string
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Inspect the token recognizer table",
	Long:  "Commands for listing and checking token recognizer tables",
}

var grammarListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recognizers in priority order",
	Long:  "Display every recognizer with the token kind it produces and its pattern, first match first",
	RunE:  runGrammarList,
}

var grammarCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a recognizer table file",
	Long:  "Load a recognizer table and check its patterns against the examples it declares",
	Args:  cobra.ExactArgs(1),
	RunE:  runGrammarCheck,
}

func init() {
	grammarCmd.AddCommand(grammarListCmd)
	grammarCmd.AddCommand(grammarCheckCmd)
	grammarListCmd.Flags().StringVar(&grammarPath, "file", "", "Path to a custom recognizer table")
	grammarListCmd.Flags().StringVar(&grammarFormat, "format", "table", "Output format: table, json")
}

func runGrammarList(cmd *cobra.Command, args []string) error {
	var table []grammar.Recognizer
	var err error

	if grammarPath != "" {
		table, err = grammar.NewLoader().LoadFile(grammarPath)
		if err != nil {
			return fmt.Errorf("loading recognizers from %s: %w", grammarPath, err)
		}
	} else {
		table, err = grammar.Builtin()
		if err != nil {
			return fmt.Errorf("loading builtin recognizers: %w", err)
		}
	}

	switch grammarFormat {
	case "json":
		return outputGrammarJSON(cmd, table)
	case "table":
		return outputGrammarTable(cmd, table)
	default:
		return fmt.Errorf("unknown output format: %s", grammarFormat)
	}
}

func runGrammarCheck(cmd *cobra.Command, args []string) error {
	table, err := grammar.NewLoader().LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("loading recognizers from %s: %w", args[0], err)
	}
	if err := grammar.Validate(table); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d recognizers OK\n", args[0], len(table))
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// recognizerRecord is the JSON form of a recognizer.
type recognizerRecord struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Pattern   string `json:"pattern"`
	Multiline bool   `json:"multiline"`
}

func outputGrammarJSON(cmd *cobra.Command, table []grammar.Recognizer) error {
	records := make([]recognizerRecord, len(table))
	for i, r := range table {
		records[i] = recognizerRecord{
			Name:      r.Name,
			Kind:      r.Kind.String(),
			Pattern:   r.Pattern,
			Multiline: r.Multiline,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func outputGrammarTable(cmd *cobra.Command, table []grammar.Recognizer) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "#\tName\tKind\tPattern\n")
	fmt.Fprintf(w, "-\t----\t----\t-------\n")

	for i, r := range table {
		fmt.Fprintf(w, "%d\t%s\t%s\t%q\n", i+1, r.Name, r.Kind, r.Pattern)
	}

	return nil
}
