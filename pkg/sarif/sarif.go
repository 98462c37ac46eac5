// Package sarif renders parse failures as a SARIF 2.1.0 log so that the
// check command can feed code scanning tools.
package sarif

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/loosejson/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "loosejson"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes one error kind
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single rejected document
type Result struct {
	RuleID    string     `json:"ruleId"`
	RuleIndex int        `json:"ruleIndex"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           *Region          `json:"region,omitempty"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column of the error. SARIF columns are 1-based.
type Region struct {
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	ByteOffset  int      `json:"byteOffset"`
	Snippet     *Snippet `json:"snippet,omitempty"`
}

// Snippet contains the source line the error points into
type Snippet struct {
	Text string `json:"text"`
}

// rules lists one descriptor per error kind, in index order.
var rules = []struct {
	kind error
	rule Rule
}{
	{types.ErrUnrecognizedToken, Rule{ID: "LJ001", Name: "UnrecognizedToken", ShortDescription: ShortDescription{Text: "No token recognizer matches the input"}}},
	{types.ErrCommentsNotSupported, Rule{ID: "LJ002", Name: "CommentsNotSupported", ShortDescription: ShortDescription{Text: "A comment appears while comments are disabled"}}},
	{types.ErrUnexpectedToken, Rule{ID: "LJ003", Name: "UnexpectedToken", ShortDescription: ShortDescription{Text: "A token appears where the grammar does not allow it"}}},
	{types.ErrExpectedArrayOrObjectRoot, Rule{ID: "LJ004", Name: "ExpectedArrayOrObjectRoot", ShortDescription: ShortDescription{Text: "The document root is not an array or an object"}}},
	{types.ErrNumberOverflow, Rule{ID: "LJ005", Name: "NumberOverflow", ShortDescription: ShortDescription{Text: "A number literal does not fit a 64-bit value"}}},
	{types.ErrInternalInconsistency, Rule{ID: "LJ006", Name: "InternalInconsistency", ShortDescription: ShortDescription{Text: "The parser reached an impossible state"}}},
	{types.ErrMaxDepthExceeded, Rule{ID: "LJ007", Name: "MaxDepthExceeded", ShortDescription: ShortDescription{Text: "Arrays and objects nest deeper than the configured limit"}}},
}

// NewReport creates a new SARIF report with every rule registered
func NewReport(toolVersion string) *Report {
	driver := Driver{
		Name:    ToolName,
		Version: toolVersion,
		Rules:   make([]Rule, len(rules)),
	}
	for i, r := range rules {
		driver.Rules[i] = r.rule
	}

	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool:    Tool{Driver: driver},
				Results: []Result{},
			},
		},
	}
}

// RuleIndex returns the index of the rule describing err, or -1 when err is
// not one of the parser's error kinds.
func RuleIndex(err error) int {
	for i, r := range rules {
		if errors.Is(err, r.kind) {
			return i
		}
	}
	return -1
}

// AddError records err for the document at filePath. src is the document
// text, used for the snippet; it may be empty.
// Errors without a known kind are dropped and AddError returns false.
func (r *Report) AddError(filePath, src string, err error) bool {
	idx := RuleIndex(err)
	if idx < 0 {
		return false
	}

	location := Location{
		PhysicalLocation: PhysicalLocation{
			ArtifactLocation: ArtifactLocation{URI: formatFileURI(filePath)},
		},
	}
	if pos, ok := types.ErrorPosition(err); ok {
		region := &Region{
			StartLine:   pos.Line,
			StartColumn: pos.Column + 1,
			ByteOffset:  pos.Cursor,
		}
		if line := lineAt(src, pos); line != "" {
			region.Snippet = &Snippet{Text: line}
		}
		location.PhysicalLocation.Region = region
	}

	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID:    rules[idx].rule.ID,
		RuleIndex: idx,
		Level:     "error",
		Message:   Message{Text: message(err)},
		Locations: []Location{location},
	})
	return true
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// message drops the "line L, col C:" prefix, which the region already
// carries.
func message(err error) string {
	var pe interface{ Position() types.Position }
	text := err.Error()
	if errors.As(err, &pe) {
		if _, rest, ok := strings.Cut(text, ": "); ok && strings.HasPrefix(text, "line ") {
			return rest
		}
	}
	return text
}

func lineAt(src string, pos types.Position) string {
	start := pos.Cursor - pos.Column
	if start < 0 || start > len(src) {
		return ""
	}
	line := src[start:]
	if end := strings.IndexAny(line, "\r\n"); end >= 0 {
		line = line[:end]
	}
	return line
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		// Normalize path separators for URI format
		path = filepath.ToSlash(path)
		// Ensure path starts with /
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	// Relative paths stay as-is
	return filepath.ToSlash(path)
}
