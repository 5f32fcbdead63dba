// Package grove builds self-contained code-intelligence snapshots of Go
// source trees using tree-sitter.
//
// # Pipeline
//
// Grove operates in two strictly sequential passes over the whole project,
// followed by an in-memory join:
//
//  1. Definitions: every source file is parsed and walked pre-order;
//     functions, methods, constants, variables, structs and interfaces are
//     recorded with their doc comment, signature line, source snippet and
//     line span, and each name is bound in a project-wide symbol table
//     (last writer wins).
//
//  2. References: every file is walked again; each call expression whose
//     callee text matches a symbol-table entry becomes a reference bound to
//     that definition. Resolution is syntactic name matching only, so
//     qualified callees effectively never resolve.
//
// The linker then attaches each reference group to its owning definition,
// and the snapshot serializes as an indented JSON array of definitions.
//
// # Usage
//
//	e := grove.New()
//	snap, err := e.Index(ctx, "path/to/project")
//	if err != nil { ... }
//	err = snap.WriteJSON(os.Stdout)
//
// Output is deterministic: indexing an unchanged tree twice yields
// byte-identical documents.
package grove
