// Package pysrc parses Python source text and collects import statements
// from the resulting syntax tree.
package pysrc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for parser operations.
var (
	// ErrSyntax indicates the source did not parse as Python.
	ErrSyntax = errors.New("syntax error")

	errNoRootNode = errors.New("pysrc: no root node")
	errPoolType   = errors.New("pysrc: pool returned unexpected type")
)

// ParseError reports unparseable source for a single file. The scan skips
// the file and carries on; nothing from a file that fails to parse reaches
// the index.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser turns Python source text into syntax trees. It is safe for
// concurrent use; tree-sitter parser instances are pooled per call.
type Parser struct {
	pool sync.Pool
}

// NewParser creates a Parser backed by the Python grammar.
func NewParser() *Parser {
	lang := sitter.NewLanguage(python.GetLanguage())

	return &Parser{
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}
}

// Tree holds a parsed syntax tree together with the source bytes it was
// built from. Callers must Close it when done.
type Tree struct {
	tree   *sitter.Tree
	source []byte
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	t.tree.Close()
}

func (t *Tree) root() sitter.Node {
	return t.tree.RootNode()
}

// Parse parses src as Python. The path is carried into errors only; it is
// not read from disk here. A *ParseError wrapping ErrSyntax is returned
// when the source contains syntax errors.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*Tree, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	root := tree.RootNode()
	if root.IsNull() {
		tree.Close()

		return nil, &ParseError{Path: path, Err: errNoRootNode}
	}

	if root.HasError() {
		tree.Close()

		return nil, &ParseError{Path: path, Err: ErrSyntax}
	}

	return &Tree{tree: tree, source: src}, nil
}
