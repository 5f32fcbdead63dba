package index

// Definition kinds. Methods are recorded as KindFunction; the distinction
// lives in the snippet, not the kind.
const (
	KindFunction  = "function"
	KindConstant  = "constant"
	KindVariable  = "variable"
	KindStruct    = "struct"
	KindInterface = "interface"
)

// RefKindCall is the only reference kind the collector produces.
const RefKindCall = "function_call"

// Definition is one recorded declaration. The ID embeds kind, name, file
// basename and start line, so it is unique in practice but not guaranteed
// unique in theory (same-named files in different directories can collide).
//
// References is nil until the linker runs; it is written exactly once and
// serializes as [] when empty.
type Definition struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	DocString   string       `json:"doc_string,omitempty"`
	Signature   string       `json:"signature"`
	Snippet     string       `json:"snippet"`
	PackageName string       `json:"package_name,omitempty"`
	FileName    string       `json:"file_name"`
	Language    string       `json:"language"`
	LineFrom    int          `json:"line_from"`
	LineTo      int          `json:"line_to"`
	References  []*Reference `json:"references"`
}

// Reference is one resolved call site. Name is the literal callee text,
// Context the literal call-expression text.
type Reference struct {
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	DefinitionID string `json:"definition_id"`
	FileName     string `json:"file_name"`
	Language     string `json:"language"`
	Line         int    `json:"line"`
	Context      string `json:"context"`
}

// FileRecord describes one visited source file. It rides on the Snapshot
// for persistence but is not part of the JSON output document.
type FileRecord struct {
	Path      string
	Language  string
	Hash      string
	LineCount int
}
