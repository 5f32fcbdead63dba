package index

// Link attaches references to the definitions they resolve to. References
// are grouped by definition ID, preserving their collection order, and each
// group is written onto its owning Definition. Definitions with no matching
// group get an empty (non-nil) slice so they serialize as []. A reference
// whose definition ID matches no definition is dropped without error; given
// pass ordering that cannot happen, but Link must not fail on it.
func Link(defs []*Definition, refs []*Reference) {
	groups := make(map[string][]*Reference)
	for _, ref := range refs {
		groups[ref.DefinitionID] = append(groups[ref.DefinitionID], ref)
	}
	for _, def := range defs {
		if group, ok := groups[def.ID]; ok {
			def.References = group
		} else {
			def.References = []*Reference{}
		}
	}
}
