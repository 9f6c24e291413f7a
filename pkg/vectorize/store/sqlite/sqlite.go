package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/vectorize/pkg/vectorize/internalerr"
	"github.com/cognicore/vectorize/pkg/vectorize/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db  *sql.DB
	ids *store.IDGenerator
}

// OpenSQLite opens a SQLite database with WAL mode and foreign keys enabled
// on every pooled connection.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{
		db:  db,
		ids: store.NewIDGenerator(),
	}, nil
}

// dsn turns a file path into a SQLite URI, escaping characters such as '#'
// and '?' that would otherwise end the path early.
func dsn(path string) string {
	u := &url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     path,
		RawQuery: "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}
	return u.String()
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist. Only non-zero cells are
// stored; matrices are rebuilt dense on load.
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	lowercase INTEGER NOT NULL,
	n_docs INTEGER NOT NULL,
	n_terms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);

CREATE TABLE IF NOT EXISTS run_documents (
	run_id TEXT NOT NULL,
	doc_row INTEGER NOT NULL,
	text TEXT NOT NULL,
	PRIMARY KEY(run_id, doc_row),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_terms (
	run_id TEXT NOT NULL,
	term_col INTEGER NOT NULL,
	term TEXT NOT NULL,
	idf REAL NOT NULL,
	PRIMARY KEY(run_id, term_col),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS run_cells (
	run_id TEXT NOT NULL,
	doc_row INTEGER NOT NULL,
	term_col INTEGER NOT NULL,
	count INTEGER NOT NULL,
	weight REAL NOT NULL,
	PRIMARY KEY(run_id, doc_row, term_col),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts a run, replacing any run with the same ID
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) (store.Run, error) {
	r, err := store.Prepare(r, s.ids)
	if err != nil {
		return store.Run{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Run{}, err
	}
	defer tx.Rollback()

	if err := deleteRun(ctx, tx, r.ID); err != nil {
		return store.Run{}, err
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO runs (id, created_at, lowercase, n_docs, n_terms)
VALUES (?, ?, ?, ?, ?);
`, r.ID, r.CreatedAt.UnixNano(), boolToInt(r.Lowercase), len(r.Documents), len(r.Vocabulary)); err != nil {
		return store.Run{}, err
	}

	if err := insertDocuments(ctx, tx, r.ID, r.Documents); err != nil {
		return store.Run{}, err
	}
	if err := insertTerms(ctx, tx, r.ID, r.Vocabulary, r.IDF); err != nil {
		return store.Run{}, err
	}
	if err := insertCells(ctx, tx, r.ID, r.Counts, r.Tfidf); err != nil {
		return store.Run{}, err
	}

	if err := tx.Commit(); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

func insertDocuments(ctx context.Context, tx *sql.Tx, runID string, docs []string) error {
	if len(docs) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_documents (run_id, doc_row, text) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, doc := range docs {
		if _, err := stmt.ExecContext(ctx, runID, i, doc); err != nil {
			return err
		}
	}
	return nil
}

func insertTerms(ctx context.Context, tx *sql.Tx, runID string, terms []string, weights []float64) error {
	if len(terms) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_terms (run_id, term_col, term, idf) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for j, term := range terms {
		if _, err := stmt.ExecContext(ctx, runID, j, term, weights[j]); err != nil {
			return err
		}
	}
	return nil
}

func insertCells(ctx context.Context, tx *sql.Tx, runID string, counts [][]int, weights [][]float64) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_cells (run_id, doc_row, term_col, count, weight) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, row := range counts {
		for j, c := range row {
			if c == 0 {
				continue
			}
			if _, err := stmt.ExecContext(ctx, runID, i, j, c, weights[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetRun loads a run and rebuilds its dense matrices
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var (
		createdAt int64
		lowercase int
		nDocs     int
		nTerms    int
	)
	err := s.db.QueryRowContext(ctx, `
SELECT created_at, lowercase, n_docs, n_terms FROM runs WHERE id = ?
`, id).Scan(&createdAt, &lowercase, &nDocs, &nTerms)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}

	r := store.Run{
		ID:         id,
		CreatedAt:  time.Unix(0, createdAt).UTC(),
		Lowercase:  lowercase != 0,
		Documents:  make([]string, nDocs),
		Vocabulary: make([]string, nTerms),
		IDF:        make([]float64, nTerms),
		Counts:     make([][]int, nDocs),
		Tfidf:      make([][]float64, nDocs),
	}
	for i := 0; i < nDocs; i++ {
		r.Counts[i] = make([]int, nTerms)
		r.Tfidf[i] = make([]float64, nTerms)
	}

	if err := s.loadDocuments(ctx, &r); err != nil {
		return store.Run{}, err
	}
	if err := s.loadTerms(ctx, &r); err != nil {
		return store.Run{}, err
	}
	if err := s.loadCells(ctx, &r); err != nil {
		return store.Run{}, err
	}
	return r, nil
}

func (s *sqliteStore) loadDocuments(ctx context.Context, r *store.Run) error {
	rows, err := s.db.QueryContext(ctx, `SELECT doc_row, text FROM run_documents WHERE run_id = ?`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			i    int
			text string
		)
		if err := rows.Scan(&i, &text); err != nil {
			return err
		}
		if i < 0 || i >= len(r.Documents) {
			return fmt.Errorf("run %s document row %d out of range: %w", r.ID, i, internalerr.ErrShapeMismatch)
		}
		r.Documents[i] = text
	}
	return rows.Err()
}

func (s *sqliteStore) loadTerms(ctx context.Context, r *store.Run) error {
	rows, err := s.db.QueryContext(ctx, `SELECT term_col, term, idf FROM run_terms WHERE run_id = ?`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			j      int
			term   string
			weight float64
		)
		if err := rows.Scan(&j, &term, &weight); err != nil {
			return err
		}
		if j < 0 || j >= len(r.Vocabulary) {
			return fmt.Errorf("run %s term column %d out of range: %w", r.ID, j, internalerr.ErrShapeMismatch)
		}
		r.Vocabulary[j] = term
		r.IDF[j] = weight
	}
	return rows.Err()
}

func (s *sqliteStore) loadCells(ctx context.Context, r *store.Run) error {
	rows, err := s.db.QueryContext(ctx, `SELECT doc_row, term_col, count, weight FROM run_cells WHERE run_id = ?`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			i, j   int
			c      int
			weight float64
		)
		if err := rows.Scan(&i, &j, &c, &weight); err != nil {
			return err
		}
		if i < 0 || i >= len(r.Counts) || j < 0 || j >= len(r.Vocabulary) {
			return fmt.Errorf("run %s cell [%d][%d] out of range: %w", r.ID, i, j, internalerr.ErrShapeMismatch)
		}
		r.Counts[i][j] = c
		r.Tfidf[i][j] = weight
	}
	return rows.Err()
}

// ListRuns returns run summaries, newest first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	query := `SELECT id, created_at, lowercase, n_docs, n_terms FROM runs ORDER BY created_at DESC, id DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.RunSummary
	for rows.Next() {
		var (
			sum       store.RunSummary
			createdAt int64
			lowercase int
		)
		if err := rows.Scan(&sum.ID, &createdAt, &lowercase, &sum.Documents, &sum.Terms); err != nil {
			return nil, err
		}
		sum.CreatedAt = time.Unix(0, createdAt).UTC()
		sum.Lowercase = lowercase != 0
		out = append(out, sum)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and all of its rows
func (s *sqliteStore) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if err := deleteRun(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteRun(ctx context.Context, tx *sql.Tx, id string) error {
	for _, stmt := range []string{
		`DELETE FROM run_cells WHERE run_id = ?`,
		`DELETE FROM run_terms WHERE run_id = ?`,
		`DELETE FROM run_documents WHERE run_id = ?`,
		`DELETE FROM runs WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
