// Package catalog supplies module catalogs used to filter scan reports down
// to modules the host environment cannot already satisfy.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Catalog reports whether a module is already satisfied by the host
// environment. Implementations must be safe for concurrent reads; the scan
// treats a catalog as an immutable snapshot.
type Catalog interface {
	Contains(name string) bool
}

// Set is an in-memory catalog backed by a string set.
type Set map[string]struct{}

// NewSet builds a Set from the given module names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}

	return s
}

// Contains reports membership of name.
func (s Set) Contains(name string) bool {
	_, ok := s[name]

	return ok
}

// stdlibModules lists the top-level module names of the Python standard
// library, one per line. Blank lines and #-comments are ignored.
//
//go:embed stdlib_modules.txt
var stdlibModules string

var (
	stdlibOnce sync.Once
	stdlibSet  Set
)

// Stdlib returns the catalog of Python standard-library modules.
func Stdlib() Catalog {
	stdlibOnce.Do(func() {
		lines := strings.Split(stdlibModules, "\n")
		stdlibSet = make(Set, len(lines))

		for _, line := range lines {
			name := strings.TrimSpace(line)
			if name == "" || strings.HasPrefix(name, "#") {
				continue
			}

			stdlibSet[name] = struct{}{}
		}
	})

	return stdlibSet
}

// LoadFile reads a catalog from a YAML file holding a list of module names.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var names []string

	err = yaml.Unmarshal(data, &names)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	return NewSet(names...), nil
}

// Union combines catalogs; a name is contained when any member contains it.
type Union []Catalog

// Contains reports membership in any member catalog.
func (u Union) Contains(name string) bool {
	for _, c := range u {
		if c.Contains(name) {
			return true
		}
	}

	return false
}
