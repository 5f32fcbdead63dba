package main

// CLIResult is the top-level JSON envelope for all query commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLIDefinition is a JSON-friendly definition row (snippet omitted; use
// `query refs` or the snapshot document for full text).
type CLIDefinition struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Package  string `json:"package,omitempty"`
	File     string `json:"file"`
	LineFrom int    `json:"line_from"`
	LineTo   int    `json:"line_to"`
	RefCount int    `json:"ref_count"`
}

// CLIReference is a JSON-friendly reference row.
type CLIReference struct {
	Name    string `json:"name"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Context string `json:"context"`
}

// CLIFile is a JSON-friendly file record row.
type CLIFile struct {
	Path      string `json:"path"`
	Language  string `json:"language"`
	Hash      string `json:"hash"`
	LineCount int    `json:"line_count"`
}

// CLISummary aggregates the persisted snapshot.
type CLISummary struct {
	Files       int            `json:"files"`
	Definitions int            `json:"definitions"`
	References  int            `json:"references"`
	ByKind      map[string]int `json:"by_kind"`
}
