package grove

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jward/grove/internal/index"
)

// Snapshot is the complete result of one indexing run: every definition
// with its references inlined, plus a record per visited file. Definitions
// appear in discovery-walk then pre-order-traversal order.
type Snapshot struct {
	Definitions []*index.Definition
	Files       []*index.FileRecord
}

// WriteJSON writes the snapshot's definitions as a two-space-indented JSON
// array. The document is the tool's output contract; file records are not
// part of it. Output is byte-identical across runs on an unchanged tree.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Definitions); err != nil {
		return fmt.Errorf("grove: encode snapshot: %w", err)
	}
	return nil
}
