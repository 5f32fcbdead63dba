package grove

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/grove/internal/index"
)

// fileExtractor walks one file's syntax tree pre-order and accumulates
// recognized definitions into its own buffer, binding each name into the
// shared symbol table as it goes. Later bindings overwrite earlier ones.
type fileExtractor struct {
	path     string
	base     string
	language string
	src      []byte
	pkg      string
	table    *index.SymbolTable
	defs     []*index.Definition
}

// extractDefinitions runs the definitions pass over a single parsed file and
// returns its definitions in pre-order. The symbol table is shared across
// the whole project and mutated in place.
func extractDefinitions(path, language string, src []byte, root *sitter.Node, table *index.SymbolTable) []*index.Definition {
	x := &fileExtractor{
		path:     path,
		base:     filepath.Base(path),
		language: language,
		src:      src,
		table:    table,
	}
	x.pkg = packageName(root, src)
	x.walk(root)
	return x.defs
}

func (x *fileExtractor) walk(node *sitter.Node) {
	switch node.Type() {
	case "function_declaration", "method_declaration":
		x.collectFunction(node)
	case "const_declaration":
		x.collectValues(node, index.KindConstant)
	case "var_declaration":
		x.collectValues(node, index.KindVariable)
	case "type_declaration":
		x.collectType(node)
	}
	// Always descend, so declarations nested inside functions are captured.
	for i := 0; i < int(node.ChildCount()); i++ {
		x.walk(node.Child(i))
	}
}

// collectFunction records a function or method declaration. Both kinds are
// classified "function"; the receiver, if any, lives only in the snippet.
func (x *fileExtractor) collectFunction(node *sitter.Node) {
	name := node.ChildByFieldName("name")
	if name == nil {
		return
	}
	x.record(index.KindFunction, name.Content(x.src), node)
}

// collectValues records one definition per declared name in a const or var
// declaration. All names in one declaration share its snippet, doc comment
// and line span. Grouped const declarations keep their const_spec nodes as
// direct children, but grouped var declarations wrap theirs in a
// var_spec_list, which must be descended into. Value-side identifiers sit
// inside expression lists and are not visited.
func (x *fileExtractor) collectValues(node *sitter.Node, kind string) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "const_spec", "var_spec":
			x.recordSpecNames(child, kind, node)
		case "var_spec_list":
			for j := 0; j < int(child.ChildCount()); j++ {
				if spec := child.Child(j); spec.Type() == "var_spec" {
					x.recordSpecNames(spec, kind, node)
				}
			}
		case "identifier":
			x.record(kind, child.Content(x.src), node)
		}
	}
}

// recordSpecNames records one definition per name identifier in a
// const_spec or var_spec, all sharing the enclosing declaration node.
func (x *fileExtractor) recordSpecNames(spec *sitter.Node, kind string, decl *sitter.Node) {
	for i := 0; i < int(spec.ChildCount()); i++ {
		if id := spec.Child(i); id.Type() == "identifier" {
			x.record(kind, id.Content(x.src), decl)
		}
	}
}

// collectType records a type declaration, named after its type_spec. The
// struct/interface split inspects the spec's type-child node kind:
// struct_type classifies as struct, everything else as interface.
func (x *fileExtractor) collectType(node *sitter.Node) {
	var spec *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == "type_spec" {
			spec = child
		}
	}
	if spec == nil {
		return
	}
	name := spec.ChildByFieldName("name")
	if name == nil {
		return
	}
	kind := index.KindInterface
	if tn := spec.ChildByFieldName("type"); tn != nil && tn.Type() == "struct_type" {
		kind = index.KindStruct
	}
	x.record(kind, name.Content(x.src), node)
}

// record builds the Definition for a declaration node, binds its name in
// the symbol table (overwriting any prior binding) and appends it.
func (x *fileExtractor) record(kind, name string, node *sitter.Node) {
	snippet := node.Content(x.src)
	from := int(node.StartPoint().Row) + 1
	to := int(node.EndPoint().Row) + 1

	def := &index.Definition{
		ID:          fmt.Sprintf("%s_%s_%s_%d", kind, name, x.base, from),
		Kind:        kind,
		DocString:   docComment(node, x.src),
		Signature:   firstLine(snippet),
		Snippet:     snippet,
		PackageName: x.pkg,
		FileName:    x.path,
		Language:    x.language,
		LineFrom:    from,
		LineTo:      to,
	}
	x.table.Bind(name, def.ID)
	x.defs = append(x.defs, def)
}

// docComment assembles the contiguous run of comment siblings immediately
// preceding node, in source order. The walk stops on the first non-comment
// sibling; blank-line gaps between comments are not distinguished. All
// leading slashes are stripped, so "///" markers clean up the same as "//".
func docComment(node *sitter.Node, src []byte) string {
	var parts []string
	for prev := node.PrevNamedSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevNamedSibling() {
		text := strings.TrimSpace(strings.TrimLeft(prev.Content(src), "/"))
		parts = append([]string{text}, parts...)
	}
	return strings.Join(parts, "\n")
}

// packageName returns the file's package identifier, or "" if the file has
// no package clause.
func packageName(root *sitter.Node, src []byte) string {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() == "package_clause" {
			return strings.TrimSpace(strings.TrimPrefix(child.Content(src), "package"))
		}
	}
	return ""
}

// firstLine truncates a snippet at its first newline. A heuristic signature,
// not a signature parse.
func firstLine(snippet string) string {
	if i := strings.IndexByte(snippet, '\n'); i >= 0 {
		return snippet[:i]
	}
	return snippet
}
