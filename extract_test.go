package grove

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/grove/internal/index"
	"github.com/jward/grove/internal/lang"
)

// parseSrc parses Go source for direct extractor tests.
func parseSrc(t *testing.T, src string) (*sitter.Node, []byte) {
	t.Helper()
	grammar, ok := lang.Grammar("go")
	require.True(t, ok)
	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.RootNode(), []byte(src)
}

func extractSrc(t *testing.T, src string) ([]*index.Definition, *index.SymbolTable) {
	t.Helper()
	root, b := parseSrc(t, src)
	table := index.NewSymbolTable()
	defs := extractDefinitions("proj/main.go", "go", b, root, table)
	return defs, table
}

func TestExtract_FunctionWithDocComment(t *testing.T) {
	t.Parallel()
	defs, table := extractSrc(t, `package main

// Add sums two integers.
func Add(a, b int) int {
	return a + b
}
`)
	require.Len(t, defs, 1)
	d := defs[0]
	assert.Equal(t, "function_Add_main.go_4", d.ID)
	assert.Equal(t, index.KindFunction, d.Kind)
	assert.Equal(t, "Add sums two integers.", d.DocString)
	assert.Equal(t, "func Add(a, b int) int {", d.Signature)
	assert.Equal(t, "main", d.PackageName)
	assert.Equal(t, "proj/main.go", d.FileName)
	assert.Equal(t, "go", d.Language)
	assert.Equal(t, 4, d.LineFrom)
	assert.Equal(t, 6, d.LineTo)

	id, ok := table.Lookup("Add")
	require.True(t, ok)
	assert.Equal(t, d.ID, id)
}

func TestExtract_MethodClassifiedAsFunction(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package geo

type Point struct{ X, Y int }

func (p Point) Norm() int {
	return p.X*p.X + p.Y*p.Y
}
`)
	require.Len(t, defs, 2)
	assert.Equal(t, index.KindStruct, defs[0].Kind)
	assert.Equal(t, index.KindFunction, defs[1].Kind)
	assert.Equal(t, "function_Norm_main.go_5", defs[1].ID)
}

func TestExtract_MultiLineDocComment(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package main

// First line.
// Second line.
func F() {}
`)
	require.Len(t, defs, 1)
	assert.Equal(t, "First line.\nSecond line.", defs[0].DocString)
}

func TestExtract_TripleSlashDocComment(t *testing.T) {
	t.Parallel()
	// Every leading slash is stripped, so "///" markers leave no residue.
	defs, _ := extractSrc(t, `package main

/// Exported for generators.
func E() {}
`)
	require.Len(t, defs, 1)
	assert.Equal(t, "Exported for generators.", defs[0].DocString)
}

func TestExtract_DocCommentStopsAtNonComment(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package main

// Unrelated trailing doc.
var sep = 1

// Only this.
func G() {}
`)
	require.Len(t, defs, 2)
	assert.Equal(t, "Only this.", defs[1].DocString)
}

func TestExtract_NoDocComment(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package main

func H() {}
`)
	require.Len(t, defs, 1)
	assert.Empty(t, defs[0].DocString)
}

func TestExtract_GroupedConstFanOut(t *testing.T) {
	t.Parallel()
	defs, table := extractSrc(t, `package pool

// Limits for the pool.
const (
	MinSize = 1
	MaxSize = 8
)
`)
	require.Len(t, defs, 2)
	assert.Equal(t, "constant_MinSize_main.go_4", defs[0].ID)
	assert.Equal(t, "constant_MaxSize_main.go_4", defs[1].ID)
	// All names in one declaration share snippet, doc and span.
	assert.Equal(t, defs[0].Snippet, defs[1].Snippet)
	assert.Equal(t, defs[0].DocString, defs[1].DocString)
	assert.Equal(t, defs[0].LineFrom, defs[1].LineFrom)
	assert.Equal(t, defs[0].LineTo, defs[1].LineTo)
	assert.Equal(t, "Limits for the pool.", defs[0].DocString)
	assert.Equal(t, 2, table.Len())
}

func TestExtract_GroupedVarFanOut(t *testing.T) {
	t.Parallel()
	// Grouped vars nest their var_specs inside a var_spec_list, unlike
	// grouped consts whose const_specs stay direct children.
	defs, table := extractSrc(t, `package pool

// Shared counters.
var (
	hits   = 0
	misses = 0
)
`)
	require.Len(t, defs, 2)
	assert.Equal(t, "variable_hits_main.go_4", defs[0].ID)
	assert.Equal(t, "variable_misses_main.go_4", defs[1].ID)
	assert.Equal(t, defs[0].Snippet, defs[1].Snippet)
	assert.Equal(t, defs[0].DocString, defs[1].DocString)
	assert.Equal(t, defs[0].LineFrom, defs[1].LineFrom)
	assert.Equal(t, defs[0].LineTo, defs[1].LineTo)
	assert.Equal(t, "Shared counters.", defs[0].DocString)
	assert.Equal(t, 2, table.Len())
}

func TestExtract_MultiNameVar(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package main

var x, y int
`)
	require.Len(t, defs, 2)
	assert.Equal(t, index.KindVariable, defs[0].Kind)
	assert.Equal(t, "variable_x_main.go_3", defs[0].ID)
	assert.Equal(t, "variable_y_main.go_3", defs[1].ID)
	assert.Equal(t, "var x, y int", defs[0].Signature)
}

func TestExtract_TypeClassification(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package geo

// Point is a 2D coordinate.
type Point struct {
	X, Y int
}

// Marker carries a struct tag convention.
type Marker interface {
	M()
}

type Celsius float64
`)
	require.Len(t, defs, 3)

	assert.Equal(t, index.KindStruct, defs[0].Kind)
	assert.Equal(t, "struct_Point_main.go_4", defs[0].ID)

	// Classification inspects the type node kind, so the word "struct" in
	// the doc comment does not mis-tag the interface.
	assert.Equal(t, index.KindInterface, defs[1].Kind)
	assert.Equal(t, "interface_Marker_main.go_9", defs[1].ID)

	// Non-struct, non-interface underlying types fall back to interface.
	assert.Equal(t, index.KindInterface, defs[2].Kind)
	assert.Equal(t, "interface_Celsius_main.go_13", defs[2].ID)
}

func TestExtract_NestedDeclarationsCaptured(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package main

func outer() {
	type pair struct{ a, b int }
	const inner = 2
	_ = inner
}
`)
	require.Len(t, defs, 3)
	assert.Equal(t, "function_outer_main.go_3", defs[0].ID)
	assert.Equal(t, "struct_pair_main.go_4", defs[1].ID)
	assert.Equal(t, "constant_inner_main.go_5", defs[2].ID)
}

func TestExtract_NoPackageClause(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, "func f() {}\n")
	require.Len(t, defs, 1)
	assert.Empty(t, defs[0].PackageName)
}

func TestExtract_SingleLineSignatureEqualsSnippet(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package main

func one() int { return 1 }
`)
	require.Len(t, defs, 1)
	assert.Equal(t, defs[0].Snippet, defs[0].Signature)
	assert.Equal(t, defs[0].LineFrom, defs[0].LineTo)
}

func TestExtract_LineSpansSane(t *testing.T) {
	t.Parallel()
	defs, _ := extractSrc(t, `package main

const a = 1

var b = 2

type T struct{}

func c() {
	_ = a
}
`)
	require.NotEmpty(t, defs)
	for _, d := range defs {
		assert.GreaterOrEqual(t, d.LineFrom, 1, "%s", d.ID)
		assert.LessOrEqual(t, d.LineFrom, d.LineTo, "%s", d.ID)
	}
}

func TestExtract_ShadowingLastWriterWins(t *testing.T) {
	t.Parallel()
	_, table := extractSrc(t, `package main

func Helper() {}

func other() {
	const Helper = 1
	_ = Helper
}
`)
	id, ok := table.Lookup("Helper")
	require.True(t, ok)
	assert.Equal(t, "constant_Helper_main.go_6", id)
}
