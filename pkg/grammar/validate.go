package grammar

import (
	"fmt"

	"github.com/praetorian-inc/loosejson/pkg/types"
)

// ValidateRecognizer checks required fields, compiles the pattern and runs
// the examples: each example must be matched in full, no negative example
// may be matched at all.
func ValidateRecognizer(r Recognizer) error {
	if r.Name == "" {
		return fmt.Errorf("recognizer name is required")
	}
	if r.Pattern == "" {
		return fmt.Errorf("recognizer %s: pattern is required", r.Name)
	}
	if r.Kind == types.TokenEndOfInput {
		return fmt.Errorf("recognizer %s: %s is synthetic and cannot be matched", r.Name, r.Kind)
	}

	re, err := r.Compile(0)
	if err != nil {
		return err
	}

	for _, example := range r.Examples {
		m, err := re.FindStringMatch(example)
		if err != nil {
			return fmt.Errorf("recognizer %s: matching example %q: %w", r.Name, example, err)
		}
		if m == nil || m.Index != 0 || m.Length != len([]rune(example)) {
			return fmt.Errorf("recognizer %s: example %q is not matched in full", r.Name, example)
		}
	}

	for _, example := range r.NegativeExamples {
		m, err := re.FindStringMatch(example)
		if err != nil {
			return fmt.Errorf("recognizer %s: matching negative example %q: %w", r.Name, example, err)
		}
		if m != nil {
			return fmt.Errorf("recognizer %s: negative example %q is matched as %q", r.Name, example, m.String())
		}
	}

	return nil
}

// Validate checks every recognizer of a table and that names are unique.
func Validate(table []Recognizer) error {
	if len(table) == 0 {
		return fmt.Errorf("recognizer table is empty")
	}

	seen := make(map[string]bool)
	for _, r := range table {
		if err := ValidateRecognizer(r); err != nil {
			return err
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate recognizer name: %s", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}
