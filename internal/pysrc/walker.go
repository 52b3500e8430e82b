package pysrc

import (
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/pyimports/pkg/importmodel"
)

// nodeKind tags the syntax node variants the walker dispatches on. Anything
// that is not an import statement is recursed into generically.
type nodeKind int

const (
	kindOther nodeKind = iota
	kindImport
	kindImportFrom
	kindImportFuture
)

// Grammar node and field names for Python import statements.
const (
	typeImport        = "import_statement"
	typeImportFrom    = "import_from_statement"
	typeImportFuture  = "future_import_statement"
	typeDottedName    = "dotted_name"
	typeAliasedImport = "aliased_import"
	typeRelative      = "relative_import"

	fieldModuleName = "module_name"
	fieldName       = "name"
)

// futureModule is the module bound by "from __future__ import ...", which
// the grammar exposes as a dedicated statement kind.
const futureModule = "__future__"

func kindOf(nodeType string) nodeKind {
	switch nodeType {
	case typeImport:
		return kindImport
	case typeImportFrom:
		return kindImportFrom
	case typeImportFuture:
		return kindImportFuture
	default:
		return kindOther
	}
}

// CollectImports walks the tree exactly once and returns a fresh index of
// every module referenced by an import statement, keyed by the leading
// segment of the import target. The path is recorded verbatim on each
// occurrence; each call owns its result, so concurrent walks of different
// trees never share state.
func CollectImports(tree *Tree, path string) *importmodel.Index {
	idx := importmodel.NewIndex()
	walk(tree.root(), tree.source, path, idx)

	return idx
}

func walk(n sitter.Node, source []byte, path string, idx *importmodel.Index) {
	switch kindOf(n.Type()) {
	case kindImport:
		recordImport(n, source, path, idx)
	case kindImportFrom:
		recordImportFrom(n, source, path, idx)
	case kindImportFuture:
		record(idx, futureModule, n, path)
	case kindOther:
		// Descend; imports may hide inside conditionals, handlers,
		// loops, and function or class bodies.
	}

	for i := range n.NamedChildCount() {
		walk(n.NamedChild(i), source, path, idx)
	}
}

// recordImport handles "import a.b, c as d" statements: one occurrence per
// listed target, all at the statement's position.
func recordImport(n sitter.Node, source []byte, path string, idx *importmodel.Index) {
	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		target := child

		switch child.Type() {
		case typeAliasedImport:
			target = child.ChildByFieldName(fieldName)
			if target.IsNull() {
				continue
			}
		case typeDottedName:
		default:
			continue
		}

		name := moduleRoot(nodeText(target, source))
		if name == "" {
			continue
		}

		record(idx, name, n, path)
	}
}

// recordImportFrom handles "from m import x" statements. Only the module
// target contributes; relative imports never resolve to an external module
// and are excluded entirely.
func recordImportFrom(n sitter.Node, source []byte, path string, idx *importmodel.Index) {
	module := n.ChildByFieldName(fieldModuleName)
	if module.IsNull() || module.Type() == typeRelative {
		return
	}

	name := moduleRoot(nodeText(module, source))
	if name == "" {
		return
	}

	record(idx, name, n, path)
}

func record(idx *importmodel.Index, module string, n sitter.Node, path string) {
	start := n.StartPoint()

	idx.Add(module, importmodel.Occurrence{
		File:   path,
		Line:   int(start.Row) + 1, //nolint:gosec // tree-sitter coordinates fit in int
		Column: int(start.Column),  //nolint:gosec // tree-sitter coordinates fit in int
	})
}

func nodeText(n sitter.Node, source []byte) string {
	start := n.StartByte()
	end := n.EndByte()

	if end > uint(len(source)) {
		return ""
	}

	return string(source[start:end])
}

// moduleRoot truncates a dotted import target to its leading segment.
func moduleRoot(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}

	return name
}
