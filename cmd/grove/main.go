package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jward/grove"
	"github.com/jward/grove/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagDB     string
	flagFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "grove",
	Short:         "Code-intelligence snapshots for Go source trees",
	Long:          "Grove indexes a source tree with tree-sitter, links call sites back to the definitions they invoke, and emits one JSON record per definition.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for persisting/querying snapshots")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
}

var (
	flagOutput   string
	flagExcludes []string
)

var indexCmd = &cobra.Command{
	Use:   "index <path>",
	Short: "Index a source tree and emit its snapshot",
	Long:  "Parses every source file under <path>, extracts definitions, resolves call sites against them, and writes the snapshot as indented JSON to --output or stdout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&flagOutput, "output", "", "write the JSON document to this file instead of stdout")
	indexCmd.Flags().StringArrayVar(&flagExcludes, "exclude", nil, "glob pattern (root-relative) to skip; repeatable")
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	root, err := resolveTargetDir(args[0])
	if err != nil {
		return err
	}

	engine := grove.New(grove.WithExcludes(flagExcludes...))

	snap, err := engine.Index(context.Background(), root)
	if err != nil {
		return err
	}

	if flagDB != "" {
		if err := persistSnapshot(snap, root); err != nil {
			return err
		}
	}

	if err := writeSnapshot(snap, flagOutput); err != nil {
		return err
	}

	refs := 0
	for _, d := range snap.Definitions {
		refs += len(d.References)
	}
	fmt.Fprintf(os.Stderr, "Indexed %s in %s (%d files, %d definitions, %d references)\n",
		root,
		time.Since(start).Round(time.Millisecond),
		len(snap.Files), len(snap.Definitions), refs,
	)

	return nil
}

// persistSnapshot saves the snapshot into the --db SQLite database.
func persistSnapshot(snap *grove.Snapshot, root string) error {
	s, err := store.NewStore(flagDB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	if err := s.Migrate(); err != nil {
		return err
	}
	if err := s.SaveSnapshot(snap.Definitions, snap.Files); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return s.SetMetadata("indexed_root", root)
}

// writeSnapshot writes the JSON document to path, or stdout if path is "".
func writeSnapshot(snap *grove.Snapshot, path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := snap.WriteJSON(w); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// resolveTargetDir returns the absolute path of the directory to index.
func resolveTargetDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}
