// Package lang maps file extensions to canonical language names and
// tree-sitter grammars. Only Go is wired today; the registry shape keeps
// adding a language to a two-line change.
package lang

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// extToLanguage maps file extensions to canonical language names.
var extToLanguage = map[string]string{
	".go": "go",
}

// langToGrammar maps language names to tree-sitter Language objects.
// Lazily initialized on first call via sync.Once.
var (
	langToGrammar map[string]*sitter.Language
	grammarsOnce  sync.Once
)

func initGrammars() {
	grammarsOnce.Do(func() {
		langToGrammar = map[string]*sitter.Language{
			"go": golang.GetLanguage(),
		}
	})
}

// ForFile returns the canonical language name for a file path based on its
// extension. Returns ("", false) if the extension is not recognized.
func ForFile(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := extToLanguage[ext]
	return l, ok
}

// Grammar returns the tree-sitter Language for a canonical language name.
// Returns (nil, false) if the language is not supported.
func Grammar(name string) (*sitter.Language, bool) {
	initGrammars()
	l, ok := langToGrammar[name]
	return l, ok
}
