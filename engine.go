package grove

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/grove/internal/index"
	"github.com/jward/grove/internal/lang"
)

// Engine orchestrates the grove pipeline: file discovery, the definitions
// pass, the references pass, and the link. One Engine can index any number
// of project roots; it holds no per-run state.
type Engine struct {
	language string
	excludes []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguage selects the language to index. The default is "go", the only
// language currently registered.
func WithLanguage(name string) Option {
	return func(e *Engine) {
		e.language = name
	}
}

// WithExcludes adds doublestar glob patterns matched against root-relative
// paths; matching files are skipped during discovery.
func WithExcludes(globs ...string) Option {
	return func(e *Engine) {
		e.excludes = append(e.excludes, globs...)
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{language: "go"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index indexes the project rooted at root and returns its snapshot.
//
// The run is strictly sequential: the definitions pass completes for the
// whole project before the references pass begins, so names defined in
// later files still resolve. Any read or parse failure aborts the run with
// no partial result.
func (e *Engine) Index(ctx context.Context, root string) (*Snapshot, error) {
	grammar, ok := lang.Grammar(e.language)
	if !ok {
		return nil, fmt.Errorf("grove: unsupported language %q", e.language)
	}

	paths, err := e.listFiles(root)
	if err != nil {
		return nil, err
	}

	// Pass one: definitions and the symbol table.
	table := index.NewSymbolTable()
	defs := []*index.Definition{}
	var files []*index.FileRecord
	for _, path := range paths {
		src, tree, err := e.parse(ctx, grammar, path)
		if err != nil {
			return nil, err
		}
		defs = append(defs, extractDefinitions(path, e.language, src, tree.RootNode(), table)...)
		tree.Close()

		files = append(files, &index.FileRecord{
			Path:      path,
			Language:  e.language,
			Hash:      fmt.Sprintf("%016x", xxhash.Sum64(src)),
			LineCount: bytes.Count(src, []byte{'\n'}) + 1,
		})
	}

	// Pass two: call sites resolved against the completed table.
	var refs []*index.Reference
	for _, path := range paths {
		src, tree, err := e.parse(ctx, grammar, path)
		if err != nil {
			return nil, err
		}
		refs = append(refs, collectReferences(path, e.language, src, tree.RootNode(), table)...)
		tree.Close()
	}

	index.Link(defs, refs)

	return &Snapshot{Definitions: defs, Files: files}, nil
}

// parse reads and parses one file. Failures are fatal for the whole run.
func (e *Engine) parse(ctx context.Context, grammar *sitter.Language, path string) ([]byte, *sitter.Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("grove: read %s: %w", path, err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, nil, fmt.Errorf("grove: parse %s: %w", path, err)
	}
	if tree == nil {
		return nil, nil, fmt.Errorf("grove: parse %s: parser returned no tree", path)
	}
	return src, tree, nil
}

// listFiles discovers source files under root with a deterministic lexical
// walk. Every file with the language's extension is visited, vendored and
// hidden directories included; the only filter is the exclude globs, matched
// against root-relative slash paths. Determinism here is what makes repeated
// runs byte-identical.
func (e *Engine) listFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if l, ok := lang.ForFile(path); !ok || l != e.language {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		for _, glob := range e.excludes {
			if matched, _ := doublestar.Match(glob, filepath.ToSlash(rel)); matched {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("grove: walk %s: %w", root, err)
	}
	return paths, nil
}
