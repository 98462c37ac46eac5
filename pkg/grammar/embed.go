package grammar

import "embed"

// builtinTableFS embeds the built-in recognizer table.
//
//go:embed table/tokens.yml
var builtinTableFS embed.FS

// builtinTablePath is the location of the table inside builtinTableFS.
const builtinTablePath = "table/tokens.yml"
