package index

// SymbolTable maps a bare identifier name to the ID of the most recently
// recorded Definition with that name. The namespace is project-global,
// case-sensitive and unqualified: a later definition silently overwrites an
// earlier entry ("last writer wins"), so calls by that name resolve only to
// the last definition processed. The table is built during extraction and
// read-only during reference collection.
type SymbolTable struct {
	byName map[string]string
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]string)}
}

// Bind records name → definitionID, overwriting any prior entry for name.
func (t *SymbolTable) Bind(name, definitionID string) {
	t.byName[name] = definitionID
}

// Lookup returns the definition ID currently bound to name.
func (t *SymbolTable) Lookup(name string) (string, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Len returns the number of distinct names bound.
func (t *SymbolTable) Len() int {
	return len(t.byName)
}
