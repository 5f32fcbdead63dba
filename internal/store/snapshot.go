package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jward/grove/internal/index"
)

// SaveSnapshot replaces the persisted snapshot with the given definitions
// and file records in one transaction. References are stored flattened,
// keyed by their definition id, in their linked order.
func (s *Store) SaveSnapshot(defs []*index.Definition, files []*index.FileRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM references_",
		"DELETE FROM definitions",
		"DELETE FROM files",
	} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	now := time.Now()
	for _, f := range files {
		if _, err := tx.Exec(
			"INSERT INTO files (path, language, hash, line_count, indexed_at) VALUES (?, ?, ?, ?, ?)",
			f.Path, f.Language, f.Hash, f.LineCount, now,
		); err != nil {
			return fmt.Errorf("insert file: %w", err)
		}
	}

	for _, d := range defs {
		if _, err := tx.Exec(
			`INSERT INTO definitions (def_id, kind, doc_string, signature, snippet,
				package_name, file_name, language, line_from, line_to)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Kind, d.DocString, d.Signature, d.Snippet,
			d.PackageName, d.FileName, d.Language, d.LineFrom, d.LineTo,
		); err != nil {
			return fmt.Errorf("insert definition: %w", err)
		}
		for _, r := range d.References {
			if _, err := tx.Exec(
				`INSERT INTO references_ (def_id, kind, name, file_name, language, line, context)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				r.DefinitionID, r.Kind, r.Name, r.FileName, r.Language, r.Line, r.Context,
			); err != nil {
				return fmt.Errorf("insert reference: %w", err)
			}
		}
	}

	return tx.Commit()
}

const defCols = `def_id, kind, doc_string, signature, snippet, package_name,
	file_name, language, line_from, line_to`

func (s *Store) scanDefinition(scanner interface{ Scan(...any) error }) (*index.Definition, error) {
	d := &index.Definition{}
	return d, scanner.Scan(
		&d.ID, &d.Kind, &d.DocString, &d.Signature, &d.Snippet,
		&d.PackageName, &d.FileName, &d.Language, &d.LineFrom, &d.LineTo,
	)
}

func (s *Store) queryDefinitions(query string, args ...any) ([]*index.Definition, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var defs []*index.Definition
	for rows.Next() {
		d, err := s.scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// Definitions returns every persisted definition in insertion order.
// References are not populated; use ReferencesForDefinition.
func (s *Store) Definitions() ([]*index.Definition, error) {
	return s.queryDefinitions("SELECT " + defCols + " FROM definitions ORDER BY id")
}

// DefinitionsByKind returns persisted definitions of one kind.
func (s *Store) DefinitionsByKind(kind string) ([]*index.Definition, error) {
	return s.queryDefinitions("SELECT "+defCols+" FROM definitions WHERE kind = ? ORDER BY id", kind)
}

// DefinitionsByFile returns persisted definitions from one file.
func (s *Store) DefinitionsByFile(fileName string) ([]*index.Definition, error) {
	return s.queryDefinitions("SELECT "+defCols+" FROM definitions WHERE file_name = ? ORDER BY id", fileName)
}

// DefinitionByDefID returns the definition with the given snapshot id, or
// nil if absent.
func (s *Store) DefinitionByDefID(defID string) (*index.Definition, error) {
	d, err := s.scanDefinition(s.db.QueryRow(
		"SELECT "+defCols+" FROM definitions WHERE def_id = ?", defID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("definition by def_id: %w", err)
	}
	return d, nil
}

// ReferencesForDefinition returns the references attached to a definition,
// in their linked order.
func (s *Store) ReferencesForDefinition(defID string) ([]*index.Reference, error) {
	rows, err := s.db.Query(
		`SELECT def_id, kind, name, file_name, language, line, context
		 FROM references_ WHERE def_id = ? ORDER BY id`, defID,
	)
	if err != nil {
		return nil, fmt.Errorf("references for definition: %w", err)
	}
	defer rows.Close()
	var refs []*index.Reference
	for rows.Next() {
		r := &index.Reference{}
		if err := rows.Scan(&r.DefinitionID, &r.Kind, &r.Name, &r.FileName,
			&r.Language, &r.Line, &r.Context); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// ReferenceCounts returns the number of references attached to each
// definition id that has at least one.
func (s *Store) ReferenceCounts() (map[string]int, error) {
	rows, err := s.db.Query("SELECT def_id, COUNT(*) FROM references_ GROUP BY def_id")
	if err != nil {
		return nil, fmt.Errorf("reference counts: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var defID string
		var n int
		if err := rows.Scan(&defID, &n); err != nil {
			return nil, fmt.Errorf("scan reference count: %w", err)
		}
		counts[defID] = n
	}
	return counts, rows.Err()
}

// Files returns every persisted file record in path order.
func (s *Store) Files() ([]*index.FileRecord, error) {
	rows, err := s.db.Query("SELECT path, language, hash, line_count FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	defer rows.Close()
	var files []*index.FileRecord
	for rows.Next() {
		f := &index.FileRecord{}
		if err := rows.Scan(&f.Path, &f.Language, &f.Hash, &f.LineCount); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// Summary aggregates the persisted snapshot: file count, reference count,
// and definition counts by kind.
type Summary struct {
	Files       int
	Definitions int
	References  int
	ByKind      map[string]int
}

// SnapshotSummary computes the Summary for the persisted snapshot.
func (s *Store) SnapshotSummary() (*Summary, error) {
	sum := &Summary{ByKind: make(map[string]int)}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&sum.Files); err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM definitions").Scan(&sum.Definitions); err != nil {
		return nil, fmt.Errorf("count definitions: %w", err)
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM references_").Scan(&sum.References); err != nil {
		return nil, fmt.Errorf("count references: %w", err)
	}

	rows, err := s.db.Query("SELECT kind, COUNT(*) FROM definitions GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("count by kind: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan kind count: %w", err)
		}
		sum.ByKind[kind] = n
	}
	return sum, rows.Err()
}
