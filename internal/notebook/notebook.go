// Package notebook extracts Python source from Jupyter notebook documents.
package notebook

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed indicates the document is not a valid notebook container.
var ErrMalformed = errors.New("malformed notebook")

// codeCellType is the cell_type of executable cells.
const codeCellType = "code"

// cellMagicPrefix marks a cell-level magic directive. Such cells frequently
// hold non-Python source (%%bash, %%html, ...) and are excluded whole.
const cellMagicPrefix = "%%"

// residualMagicLine matches line magics and shell escapes that survive
// cell-level filtering. Anchored at the start of a logical line so that
// "%" or "!" inside expressions is never touched.
var residualMagicLine = regexp.MustCompile(`^[ \t]*(?:%[A-Za-z]|!)`)

type document struct {
	Cells []cell `json:"cells"`
}

type cell struct {
	CellType string     `json:"cell_type"`
	Source   cellSource `json:"source"`
}

// cellSource accepts both nbformat spellings of cell source: a single
// string or a list of line strings.
type cellSource string

func (s *cellSource) UnmarshalJSON(data []byte) error {
	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*s = cellSource(joined)

		return nil
	}

	var lines []string

	err := json.Unmarshal(data, &lines)
	if err != nil {
		return fmt.Errorf("cell source: %w", err)
	}

	*s = cellSource(strings.Join(lines, ""))

	return nil
}

// ExtractSource concatenates the source of every code cell in document
// order, one newline between cells. Cells opening with a cell-level magic
// are dropped entirely; magic and shell-escape lines inside kept cells are
// dropped individually.
func ExtractSource(data []byte) (string, error) {
	var doc document

	err := json.Unmarshal(data, &doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var cells []string

	for _, c := range doc.Cells {
		if c.CellType != codeCellType {
			continue
		}

		src := string(c.Source)
		if strings.HasPrefix(src, cellMagicPrefix) {
			continue
		}

		cells = append(cells, filterCellLines(src))
	}

	return stripResidualMagics(strings.Join(cells, "\n")), nil
}

// filterCellLines drops shell escapes, line magics, and help-syntax lines
// from a single cell.
func filterCellLines(src string) string {
	lines := strings.Split(src, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.HasPrefix(line, "!") ||
			strings.HasPrefix(line, "%") ||
			strings.HasPrefix(line, "?") {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// stripResidualMagics removes indented line magics and shell escapes that
// survive per-cell filtering.
func stripResidualMagics(src string) string {
	lines := strings.Split(src, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if residualMagicLine.MatchString(line) {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}
