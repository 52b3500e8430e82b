// Package importmodel defines the data model for source file import analysis.
package importmodel

import (
	"fmt"
	"sort"
)

// Occurrence pinpoints a single import statement in a scanned file.
// Line is 1-based; Column is the 0-based offset of the statement's first
// token within its line.
type Occurrence struct {
	File   string
	Line   int
	Column int
}

// String renders the occurrence as a file:line:column triple.
func (o Occurrence) String() string {
	return fmt.Sprintf("%s:%d:%d", o.File, o.Line, o.Column)
}

// Index maps module names to every place they are imported. Occurrences are
// kept in discovery order; module names are the leading segment of the
// import target.
type Index struct {
	occurrences map[string][]Occurrence
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{
		occurrences: make(map[string][]Occurrence),
	}
}

// Add appends one occurrence for the given module.
func (ix *Index) Add(module string, occ Occurrence) {
	ix.occurrences[module] = append(ix.occurrences[module], occ)
}

// Merge appends all of other's occurrences to ix. Per-module ordering is the
// concatenation of ix's occurrences followed by other's, so merging per-file
// partial indexes in input order yields a deterministic result.
func (ix *Index) Merge(other *Index) {
	for module, occs := range other.occurrences {
		ix.occurrences[module] = append(ix.occurrences[module], occs...)
	}
}

// Modules returns the module names in lexicographic order.
func (ix *Index) Modules() []string {
	modules := make([]string, 0, len(ix.occurrences))
	for module := range ix.occurrences {
		modules = append(modules, module)
	}

	sort.Strings(modules)

	return modules
}

// Occurrences returns the recorded occurrences for a module in discovery order.
func (ix *Index) Occurrences(module string) []Occurrence {
	return ix.occurrences[module]
}

// Len returns the number of distinct modules in the index.
func (ix *Index) Len() int {
	return len(ix.occurrences)
}

// Class tags a module as unconditionally imported or only conditionally
// reachable.
type Class int

// Classification values.
const (
	ClassRequired Class = iota
	ClassOptional
)

func (c Class) String() string {
	switch c {
	case ClassRequired:
		return "required"
	case ClassOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// ModuleReport is the classified result for one module. Evidence holds the
// nonzero-column occurrences that justify an optional classification and is
// empty for required modules.
type ModuleReport struct {
	Name     string
	Class    Class
	Count    int
	Evidence []Occurrence
}

// Report is the classified scan result, ordered lexicographically by module
// name.
type Report []ModuleReport
