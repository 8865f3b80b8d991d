// Package declgen turns class descriptors into TypeScript declaration text.
//
// The descriptor package defines the input contract, the typescript package
// holds the traversal and emission engine, and gosource provides a
// descriptor extractor for Go packages. This package only carries the
// generation result shared between them.
package declgen

import (
	"sort"
	"strings"
)

// Result holds the generated declarations for one traversal.
type Result struct {
	// Definitions maps class qualified names to their declaration text.
	// The map itself is unordered; use Concatenated or Names for a
	// deterministic view.
	Definitions map[string]string

	// Dependencies maps each emitted class to the set of class qualified
	// names its declaration references directly (not transitively).
	// Used by module-mode output to compute import lines.
	Dependencies map[string][]string
}

// NewResult returns an empty Result.
func NewResult() *Result {
	return &Result{
		Definitions:  make(map[string]string),
		Dependencies: make(map[string][]string),
	}
}

// Names returns all emitted class qualified names, sorted.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Definitions))
	for name := range r.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Concatenated joins every declaration into one block of text, sorted by
// class qualified name for stable output.
func (r *Result) Concatenated() string {
	var sb strings.Builder
	for i, name := range r.Names() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(r.Definitions[name])
	}
	return sb.String()
}

// Distinct returns the deduplicated set of declaration texts, sorted.
// Classes with identical descriptors produce byte-identical declarations;
// callers emitting to a single file usually want each text once.
func (r *Result) Distinct() []string {
	seen := make(map[string]bool, len(r.Definitions))
	var texts []string
	for _, text := range r.Definitions {
		if !seen[text] {
			seen[text] = true
			texts = append(texts, text)
		}
	}
	sort.Strings(texts)
	return texts
}
