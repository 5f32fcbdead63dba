package grove

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/grove/internal/index"
)

// callCollector walks one file's syntax tree and accumulates references for
// call expressions whose callee text resolves in the symbol table.
type callCollector struct {
	path     string
	language string
	src      []byte
	table    *index.SymbolTable
	refs     []*index.Reference
}

// collectReferences runs the references pass over a single parsed file.
//
// Resolution is syntactic: the callee sub-expression's literal text is
// looked up verbatim, so only bare identifiers equal to a known symbol name
// resolve. Qualified callees (pkg.F, recv.M) match only if that exact
// compound text is a table key, which in practice never happens; such call
// sites are silently dropped.
func collectReferences(path, language string, src []byte, root *sitter.Node, table *index.SymbolTable) []*index.Reference {
	c := &callCollector{
		path:     path,
		language: language,
		src:      src,
		table:    table,
	}
	c.walk(root)
	return c.refs
}

func (c *callCollector) walk(node *sitter.Node) {
	if node.Type() == "call_expression" {
		if fn := node.ChildByFieldName("function"); fn != nil {
			name := fn.Content(c.src)
			if id, ok := c.table.Lookup(name); ok {
				c.refs = append(c.refs, &index.Reference{
					Kind:         index.RefKindCall,
					Name:         name,
					DefinitionID: id,
					FileName:     c.path,
					Language:     c.language,
					Line:         int(node.StartPoint().Row) + 1,
					Context:      node.Content(c.src),
				})
			}
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c.walk(node.Child(i))
	}
}
