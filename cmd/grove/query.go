package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jward/grove/internal/index"
	"github.com/jward/grove/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagKind string
	flagFile string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query a persisted snapshot",
	Long:  "Run queries against a snapshot previously persisted with 'grove index --db'.",
}

func init() {
	queryCmd.AddCommand(defsCmd)
	queryCmd.AddCommand(refsCmd)
	queryCmd.AddCommand(filesCmd)
	queryCmd.AddCommand(summaryCmd)

	defsCmd.Flags().StringVar(&flagKind, "kind", "", "filter by kind: function|constant|variable|struct|interface")
	defsCmd.Flags().StringVar(&flagFile, "file", "", "filter by file name as recorded in the snapshot")
}

// openStore opens the Store from the --db flag path.
func openStore() (*store.Store, error) {
	if flagDB == "" {
		return nil, fmt.Errorf("no database given: pass --db (and index with --db first)")
	}
	if _, err := os.Stat(flagDB); os.IsNotExist(err) {
		return nil, fmt.Errorf("database not found: %s (run 'grove index --db %s' first)", flagDB, flagDB)
	}
	return store.NewStore(flagDB)
}

var defsCmd = &cobra.Command{
	Use:   "defs",
	Short: "List persisted definitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		var defs []*index.Definition
		switch {
		case flagKind != "" && flagFile != "":
			return fmt.Errorf("--kind and --file are mutually exclusive")
		case flagKind != "":
			defs, err = s.DefinitionsByKind(flagKind)
		case flagFile != "":
			defs, err = s.DefinitionsByFile(flagFile)
		default:
			defs, err = s.Definitions()
		}
		if err != nil {
			return fmt.Errorf("listing definitions: %w", err)
		}

		counts, err := s.ReferenceCounts()
		if err != nil {
			return err
		}

		rows := make([]CLIDefinition, 0, len(defs))
		for _, d := range defs {
			rows = append(rows, CLIDefinition{
				ID:       d.ID,
				Kind:     d.Kind,
				Package:  d.PackageName,
				File:     d.FileName,
				LineFrom: d.LineFrom,
				LineTo:   d.LineTo,
				RefCount: counts[d.ID],
			})
		}
		return outputResult(CLIResult{Command: "defs", Results: rows})
	},
}

var refsCmd = &cobra.Command{
	Use:   "refs <definition-id>",
	Short: "List the call sites attached to a definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		def, err := s.DefinitionByDefID(args[0])
		if err != nil {
			return err
		}
		if def == nil {
			return fmt.Errorf("no definition with id %q", args[0])
		}

		refs, err := s.ReferencesForDefinition(args[0])
		if err != nil {
			return err
		}

		rows := make([]CLIReference, 0, len(refs))
		for _, r := range refs {
			rows = append(rows, CLIReference{
				Name:    r.Name,
				File:    r.FileName,
				Line:    r.Line,
				Context: r.Context,
			})
		}
		return outputResult(CLIResult{Command: "refs", Results: rows})
	},
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the files the snapshot was built from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		files, err := s.Files()
		if err != nil {
			return err
		}

		rows := make([]CLIFile, 0, len(files))
		for _, f := range files {
			rows = append(rows, CLIFile{
				Path:      f.Path,
				Language:  f.Language,
				Hash:      f.Hash,
				LineCount: f.LineCount,
			})
		}
		return outputResult(CLIResult{Command: "files", Results: rows})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the persisted snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		sum, err := s.SnapshotSummary()
		if err != nil {
			return err
		}
		return outputResult(CLIResult{Command: "summary", Results: CLISummary{
			Files:       sum.Files,
			Definitions: sum.Definitions,
			References:  sum.References,
			ByKind:      sum.ByKind,
		}})
	},
}

// outputResult marshals a CLIResult to stdout in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
