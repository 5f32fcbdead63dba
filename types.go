package grove

import "github.com/jward/grove/internal/index"

// Public aliases for the internal index types, so callers can name the
// snapshot's contents without importing internal packages.

type Definition = index.Definition
type Reference = index.Reference
type FileRecord = index.FileRecord

// Definition kinds.
const (
	KindFunction  = index.KindFunction
	KindConstant  = index.KindConstant
	KindVariable  = index.KindVariable
	KindStruct    = index.KindStruct
	KindInterface = index.KindInterface
)
