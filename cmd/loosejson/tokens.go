package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/loosejson/pkg/lexer"
	"github.com/praetorian-inc/loosejson/pkg/types"
	"github.com/spf13/cobra"
)

var (
	tokensComments bool
	tokensAll      bool
	tokensFormat   string
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file|->",
	Short: "Print the token stream of a document",
	Long: `Tokenize a document and print one token per line with its kind, span and
raw text. By default layout and comments are removed as they are for the
parser; --all prints every token the scanner produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensComments, "comments", false, "Allow // and /* */ comments")
	tokensCmd.Flags().BoolVar(&tokensAll, "all", false, "Include whitespace, newlines and comments")
	tokensCmd.Flags().StringVar(&tokensFormat, "format", "table", "Output format: table, json")
}

// tokenRecord is the JSON form of a token.
type tokenRecord struct {
	Kind  string         `json:"kind"`
	Raw   string         `json:"raw"`
	Start types.Position `json:"start"`
	End   types.Position `json:"end"`
}

func runTokens(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	src, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	t, err := lexer.New(lexer.Config{
		Comments: tokensComments || tokensAll,
		Logger:   logger.Named("lexer"),
	})
	if err != nil {
		return err
	}

	var tokens []types.Token
	if tokensAll {
		tokens, err = t.Scan(src)
	} else {
		tokens, err = t.Tokenize(src)
	}
	if err != nil {
		return err
	}

	switch tokensFormat {
	case "json":
		return outputTokensJSON(cmd, tokens)
	case "table":
		return outputTokensTable(cmd, tokens)
	default:
		return fmt.Errorf("unknown output format: %s", tokensFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func outputTokensJSON(cmd *cobra.Command, tokens []types.Token) error {
	records := make([]tokenRecord, len(tokens))
	for i, tok := range tokens {
		records[i] = tokenRecord{
			Kind:  tok.Kind.String(),
			Raw:   tok.Raw,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func outputTokensTable(cmd *cobra.Command, tokens []types.Token) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Kind\tSpan\tRaw\n")
	fmt.Fprintf(w, "----\t----\t---\n")

	for _, tok := range tokens {
		fmt.Fprintf(w, "%s\t%s\t%q\n", tok.Kind, tok.Span, tok.Raw)
	}

	return nil
}
