// Package pathset expands scan inputs into a flat, ordered list of
// candidate files tagged with their extraction format.
package pathset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// Format selects the extraction branch for a candidate file.
type Format int

// Candidate formats.
const (
	FormatSource Format = iota
	FormatNotebook
)

func (f Format) String() string {
	if f == FormatNotebook {
		return "notebook"
	}

	return "source"
}

// Recognized extensions.
const (
	extSource   = ".py"
	extNotebook = ".ipynb"
)

// sniffLimit bounds the content read for language detection of
// extensionless files found inside directories.
const sniffLimit = 8 * 1024

const langPython = "Python"

// Sentinel errors. Both are configuration errors: the input set itself is
// invalid and the scan must not silently produce an empty report.
var (
	// ErrNoInputs is returned when no input paths are given.
	ErrNoInputs = errors.New("no input paths given")
	// ErrPathNotFound is returned when an explicitly named path does not exist.
	ErrPathNotFound = errors.New("input path does not exist")
)

// Candidate is one file to scan, tagged with its extraction format.
type Candidate struct {
	Path   string
	Format Format
}

// Collect expands files and directories into the ordered candidate list.
// Explicitly named paths must exist; directories are walked recursively in
// lexical order and unrecognized files inside them are skipped silently.
func Collect(inputs []string) ([]Candidate, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	var candidates []Candidate

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, input)
		}

		if !info.IsDir() {
			if c, ok := classify(input); ok {
				candidates = append(candidates, c)
			}

			continue
		}

		walkErr := filepath.WalkDir(input, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if entry.IsDir() {
				return nil
			}

			if c, ok := classify(path); ok {
				candidates = append(candidates, c)
			}

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", input, walkErr)
		}
	}

	return candidates, nil
}

func classify(path string) (Candidate, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extSource:
		return Candidate{Path: path, Format: FormatSource}, true
	case extNotebook:
		return Candidate{Path: path, Format: FormatNotebook}, true
	case "":
		// Extensionless scripts (bin/tool style) are kept when their
		// content reads as Python.
		if sniffPython(path) {
			return Candidate{Path: path, Format: FormatSource}, true
		}
	}

	return Candidate{}, false
}

func sniffPython(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}

	defer f.Close()

	buf := make([]byte, sniffLimit)

	n, _ := f.Read(buf)
	if n == 0 {
		return false
	}

	return enry.GetLanguage(filepath.Base(path), buf[:n]) == langPython
}
