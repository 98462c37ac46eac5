package grammar

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/praetorian-inc/loosejson/pkg/types"
	"gopkg.in/yaml.v3"
)

// Loader handles loading recognizer tables from YAML.
type Loader struct {
	fs fs.FS // embedded filesystem for the built-in table
}

// NewLoader creates a loader backed by the embedded built-in table.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinTableFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
// The filesystem must contain a table at the built-in path.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// Load decodes a table from YAML bytes, keeping file order.
func (l *Loader) Load(data []byte) ([]Recognizer, error) {
	var file yamlTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Recognizers) == 0 {
		return nil, fmt.Errorf("no recognizers found in YAML")
	}

	table := make([]Recognizer, 0, len(file.Recognizers))
	for i, yr := range file.Recognizers {
		r, err := convertYAMLRecognizer(yr)
		if err != nil {
			return nil, fmt.Errorf("recognizer %d: %w", i, err)
		}
		table = append(table, r)
	}
	return table, nil
}

// LoadFile loads a table from a YAML file path.
func (l *Loader) LoadFile(path string) ([]Recognizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.Load(data)
}

// LoadBuiltin loads the table stored in the loader's filesystem.
func (l *Loader) LoadBuiltin() ([]Recognizer, error) {
	data, err := fs.ReadFile(l.fs, builtinTablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", builtinTablePath, err)
	}
	table, err := l.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", builtinTablePath, err)
	}
	return table, nil
}

// convertYAMLRecognizer converts yamlRecognizer to Recognizer, resolving the
// token kind by name.
func convertYAMLRecognizer(yr yamlRecognizer) (Recognizer, error) {
	kind, err := types.ParseTokenKind(yr.Kind)
	if err != nil {
		return Recognizer{}, fmt.Errorf("%s: %w", yr.Name, err)
	}
	return Recognizer{
		Name:             yr.Name,
		Kind:             kind,
		Pattern:          yr.Pattern,
		Multiline:        yr.Multiline,
		Description:      yr.Description,
		Examples:         yr.Examples,
		NegativeExamples: yr.NegativeExamples,
	}, nil
}
