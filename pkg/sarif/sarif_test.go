package sarif

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/praetorian-inc/loosejson/pkg/parser"
	"github.com/praetorian-inc/loosejson/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseErr(t *testing.T, src string) error {
	t.Helper()
	p, err := parser.New()
	require.NoError(t, err)
	_, err = p.Parse(src)
	require.Error(t, err)
	return err
}

func TestNewReport(t *testing.T) {
	report := NewReport("1.2.3")

	assert.Equal(t, SchemaURI, report.Schema)
	assert.Equal(t, Version, report.Version)
	require.Len(t, report.Runs, 1)
	assert.Equal(t, ToolName, report.Runs[0].Tool.Driver.Name)
	assert.Equal(t, "1.2.3", report.Runs[0].Tool.Driver.Version)
	assert.Len(t, report.Runs[0].Tool.Driver.Rules, 7)
	assert.NotNil(t, report.Runs[0].Results)
}

func TestRuleIndex(t *testing.T) {
	tests := []struct {
		src  string
		name string
	}{
		{src: "[@]", name: "UnrecognizedToken"},
		{src: "[/* c */]", name: "CommentsNotSupported"},
		{src: "[1 2]", name: "UnexpectedToken"},
		{src: "null", name: "ExpectedArrayOrObjectRoot"},
		{src: "[99999999999999999999]", name: "NumberOverflow"},
	}

	report := NewReport("dev")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := RuleIndex(parseErr(t, tt.src))
			require.GreaterOrEqual(t, idx, 0)
			assert.Equal(t, tt.name, report.Runs[0].Tool.Driver.Rules[idx].Name)
		})
	}

	assert.Equal(t, -1, RuleIndex(errors.New("disk on fire")))
	assert.Equal(t, 5, RuleIndex(types.NewInternalError(types.StartPosition(), "x")))
}

func TestRuleIndexMaxDepth(t *testing.T) {
	p, err := parser.New(parser.WithMaxDepth(1))
	require.NoError(t, err)
	_, err = p.Parse("[[]]")
	require.Error(t, err)

	report := NewReport("dev")
	require.True(t, report.AddError("deep.json", "[[]]", err))
	result := report.Runs[0].Results[0]
	assert.Equal(t, "LJ007", result.RuleID)
	assert.Equal(t, "MaxDepthExceeded", report.Runs[0].Tool.Driver.Rules[result.RuleIndex].Name)
	assert.Equal(t, 2, result.Locations[0].PhysicalLocation.Region.StartColumn)
}

func TestAddError(t *testing.T) {
	src := "{\n  \"k\" 1\n}"
	report := NewReport("dev")

	ok := report.AddError("/path/to/doc.json", src, parseErr(t, src))
	require.True(t, ok)

	require.Len(t, report.Runs[0].Results, 1)
	result := report.Runs[0].Results[0]
	assert.Equal(t, "LJ003", result.RuleID)
	assert.Equal(t, 2, result.RuleIndex)
	assert.Equal(t, "error", result.Level)
	assert.Equal(t, "unexpected token: found `NumberLiteral`, expected `Colon`", result.Message.Text)

	require.Len(t, result.Locations, 1)
	location := result.Locations[0].PhysicalLocation
	assert.Equal(t, "file:///path/to/doc.json", location.ArtifactLocation.URI)
	require.NotNil(t, location.Region)
	assert.Equal(t, 2, location.Region.StartLine)
	assert.Equal(t, 7, location.Region.StartColumn)
	assert.Equal(t, 8, location.Region.ByteOffset)
	require.NotNil(t, location.Region.Snippet)
	assert.Equal(t, `  "k" 1`, location.Region.Snippet.Text)
}

func TestAddErrorUnknownKind(t *testing.T) {
	report := NewReport("dev")
	assert.False(t, report.AddError("a.json", "", errors.New("boom")))
	assert.Empty(t, report.Runs[0].Results)
}

func TestToJSON(t *testing.T) {
	report := NewReport("dev")
	report.AddError("relative/doc.json", "[1 2]", parseErr(t, "[1 2]"))

	jsonBytes, err := report.ToJSON()
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(jsonBytes, &parsed))
	assert.Equal(t, SchemaURI, parsed["$schema"])
	assert.Equal(t, Version, parsed["version"])

	// Relative paths stay as-is
	assert.Contains(t, string(jsonBytes), `"uri": "relative/doc.json"`)
}

func TestEmptySourceOmitsSnippet(t *testing.T) {
	report := NewReport("dev")
	report.AddError("doc.json", "", parseErr(t, "[1 2]"))

	region := report.Runs[0].Results[0].Locations[0].PhysicalLocation.Region
	require.NotNil(t, region)
	assert.Nil(t, region.Snippet)
}
