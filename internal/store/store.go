// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store keeps an analyzed corpus in SQLite for ad hoc queries:
// ranked papers with their threads and influence, superseded identifiers
// and in-corpus citation edges, with an FTS5 index over titles.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-atlas/internal/rank"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// DefaultFile is the store file name used by the CLI.
const DefaultFile = "paper-atlas.db"

const defaultMaxResults = 20

// ErrNotIngested is returned by reads on a store that has never been
// ingested.
var ErrNotIngested = errors.New("store: corpus not ingested")

// ErrNotFound is returned by Paper when neither an id nor an alias matches.
var ErrNotFound = errors.New("store: paper not found")

// Store wraps the corpus database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			authors TEXT,
			year INTEGER,
			venue TEXT,
			doi TEXT,
			arxiv_id TEXT,
			openalex_id TEXT,
			url TEXT,
			cited_by_count INTEGER,
			relevance REAL,
			influence REAL,
			thread TEXT,
			in_corpus_citations INTEGER,
			tags TEXT,
			seed INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_thread ON papers(thread)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_influence ON papers(influence)`,
		`CREATE TABLE IF NOT EXISTS aliases (
			alias TEXT PRIMARY KEY,
			paper_id TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS edges (
			source TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			target TEXT NOT NULL REFERENCES papers(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			PRIMARY KEY (source, target, type)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 over titles, kept in sync by triggers.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title) VALUES (new.rowid, new.title);
			END`,
			`CREATE TRIGGER papers_ad AFTER DELETE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title) VALUES('delete', old.rowid, old.title);
			END`,
			`CREATE TRIGGER papers_au AFTER UPDATE ON papers BEGIN
				INSERT INTO papers_fts(papers_fts, rowid, title) VALUES('delete', old.rowid, old.title);
				INSERT INTO papers_fts(rowid, title) VALUES (new.rowid, new.title);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Snapshot is one analyzed corpus to ingest.
type Snapshot struct {
	// GeneratedAt is the build stamp of the source database.
	GeneratedAt string
	Papers      []rank.Ranked
	Edges       []types.Edge
}

// IngestSummary holds row counts from an ingest.
type IngestSummary struct {
	Papers  int
	Aliases int
	Edges   int
}

// Ingest replaces the stored corpus with snap in one transaction. Aliases
// that collide with a paper id or an earlier alias are dropped, as are
// edges whose endpoints are not in the snapshot.
func (s *Store) Ingest(ctx context.Context, snap Snapshot) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM edges`, `DELETE FROM aliases`, `DELETE FROM papers`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return IngestSummary{}, fmt.Errorf("clearing corpus: %w", err)
		}
	}

	var summary IngestSummary
	ids := make(map[string]bool, len(snap.Papers))

	paperStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (id, title, authors, year, venue, doi, arxiv_id, openalex_id, url,
			cited_by_count, relevance, influence, thread, in_corpus_citations, tags, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing paper insert: %w", err)
	}
	defer paperStmt.Close()

	for _, r := range snap.Papers {
		if r.ID == "" || ids[r.ID] {
			continue
		}
		authorsJSON, _ := json.Marshal(nonNil(r.Authors))
		tagsJSON, _ := json.Marshal(nonNil(r.Tags))
		if _, err := paperStmt.ExecContext(ctx,
			r.ID, r.Title, string(authorsJSON), r.Year, r.Venue, r.DOI, r.ArxivID, r.OpenAlexID, r.URL,
			r.CitedByCount, r.RelevanceScore, r.Influence, r.Thread, r.InCorpusCitations,
			string(tagsJSON), r.Seed,
		); err != nil {
			return IngestSummary{}, fmt.Errorf("inserting paper %s: %w", r.ID, err)
		}
		ids[r.ID] = true
		summary.Papers++
	}

	aliasStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO aliases (alias, paper_id) VALUES (?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing alias insert: %w", err)
	}
	defer aliasStmt.Close()

	for _, r := range snap.Papers {
		for _, alias := range r.Aliases {
			if alias == "" || ids[alias] {
				continue
			}
			res, err := aliasStmt.ExecContext(ctx, alias, r.ID)
			if err != nil {
				return IngestSummary{}, fmt.Errorf("inserting alias %s: %w", alias, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				summary.Aliases++
			}
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO edges (source, target, type) VALUES (?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range snap.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			continue
		}
		res, err := edgeStmt.ExecContext(ctx, e.Source, e.Target, e.Type)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting edge %s -> %s: %w", e.Source, e.Target, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			summary.Edges++
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('generated_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		snap.GeneratedAt,
	); err != nil {
		return IngestSummary{}, fmt.Errorf("recording ingest stamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing ingest: %w", err)
	}
	return summary, nil
}

// Stats describes the stored corpus.
type Stats struct {
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Papers      int    `json:"papers" yaml:"papers"`
	Aliases     int    `json:"aliases" yaml:"aliases"`
	Edges       int    `json:"edges" yaml:"edges"`
}

// Stats returns row counts and the ingest stamp.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	var err error
	if st.GeneratedAt, err = s.generatedAt(ctx); err != nil {
		return Stats{}, err
	}
	for _, c := range []struct {
		table string
		dst   *int
	}{
		{"papers", &st.Papers},
		{"aliases", &st.Aliases},
		{"edges", &st.Edges},
	} {
		if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM `+c.table).Scan(c.dst); err != nil {
			return Stats{}, fmt.Errorf("counting %s: %w", c.table, err)
		}
	}
	return st, nil
}

func (s *Store) generatedAt(ctx context.Context) (string, error) {
	var stamp string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'generated_at'`).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotIngested
	}
	if err != nil {
		return "", fmt.Errorf("reading ingest stamp: %w", err)
	}
	return stamp, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
