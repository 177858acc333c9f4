// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/paper-atlas/internal/rank"
)

// QueryOptions holds parameters for corpus queries.
type QueryOptions struct {
	// Text is matched against titles through the FTS5 index. Each
	// whitespace-separated word must appear.
	Text string

	// Thread filters by assigned thread id.
	Thread string

	// Author filters by author display name, case-insensitively.
	Author string

	// Tag filters by tag.
	Tag string

	// Limit caps the result count. Zero uses the default.
	Limit int
}

const paperColumns = `p.id, p.title, p.authors, p.year, p.venue, p.doi, p.arxiv_id, p.openalex_id, p.url,
	p.cited_by_count, p.relevance, p.influence, p.thread, p.in_corpus_citations, p.tags, p.seed`

// Query returns matching papers. Text queries rank by FTS5 relevance and
// then influence; otherwise papers are ordered by influence desc, then
// citations desc, then id.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]rank.Ranked, error) {
	if _, err := s.generatedAt(ctx); err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultMaxResults
	}

	var (
		qb    strings.Builder
		args  []any
		match = ftsQuery(opts.Text)
	)

	if match != "" {
		qb.WriteString(`SELECT ` + paperColumns + `
			FROM papers_fts
			JOIN papers p ON p.rowid = papers_fts.rowid
			WHERE papers_fts MATCH ?`)
		args = append(args, match)
	} else {
		qb.WriteString(`SELECT ` + paperColumns + ` FROM papers p WHERE 1=1`)
	}

	if opts.Thread != "" {
		qb.WriteString(` AND p.thread = ?`)
		args = append(args, opts.Thread)
	}
	if opts.Author != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(p.authors) WHERE lower(value) = lower(?))`)
		args = append(args, strings.TrimSpace(opts.Author))
	}
	if opts.Tag != "" {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(p.tags) WHERE value = ?)`)
		args = append(args, opts.Tag)
	}

	if match != "" {
		qb.WriteString(` ORDER BY papers_fts.rank, p.influence DESC, p.id`)
	} else {
		qb.WriteString(` ORDER BY p.influence DESC, p.cited_by_count DESC, p.id`)
	}
	qb.WriteString(` LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()

	var results []rank.Ranked
	for rows.Next() {
		r, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Paper returns the paper with the given id, or the paper an alias was
// folded into. Ids take precedence over aliases.
func (s *Store) Paper(ctx context.Context, id string) (rank.Ranked, error) {
	if _, err := s.generatedAt(ctx); err != nil {
		return rank.Ranked{}, err
	}
	id = strings.TrimSpace(id)

	row := s.db.QueryRowContext(ctx, `SELECT `+paperColumns+` FROM papers p WHERE p.id = ?`, id)
	r, err := scanPaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		row = s.db.QueryRowContext(ctx,
			`SELECT `+paperColumns+` FROM aliases a JOIN papers p ON p.id = a.paper_id WHERE a.alias = ?`, id)
		r, err = scanPaper(row)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return rank.Ranked{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return rank.Ranked{}, err
	}

	aliases, err := s.column(ctx, `SELECT alias FROM aliases WHERE paper_id = ? ORDER BY alias`, r.ID)
	if err != nil {
		return rank.Ranked{}, err
	}
	r.Aliases = aliases
	return r, nil
}

// Citations returns the ids a paper cites and the ids citing it, both
// sorted.
func (s *Store) Citations(ctx context.Context, id string) (cites, citedBy []string, err error) {
	if _, err := s.generatedAt(ctx); err != nil {
		return nil, nil, err
	}
	cites, err = s.column(ctx, `SELECT DISTINCT target FROM edges WHERE source = ? ORDER BY target`, id)
	if err != nil {
		return nil, nil, err
	}
	citedBy, err = s.column(ctx, `SELECT DISTINCT source FROM edges WHERE target = ? ORDER BY source`, id)
	if err != nil {
		return nil, nil, err
	}
	return cites, citedBy, nil
}

func (s *Store) column(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying corpus: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPaper(sc scanner) (rank.Ranked, error) {
	var (
		r           rank.Ranked
		authorsJSON sql.NullString
		tagsJSON    sql.NullString
		venue       sql.NullString
		doi         sql.NullString
		arxivID     sql.NullString
		openAlexID  sql.NullString
		url         sql.NullString
		thread      sql.NullString
	)
	err := sc.Scan(
		&r.ID, &r.Title, &authorsJSON, &r.Year, &venue, &doi, &arxivID, &openAlexID, &url,
		&r.CitedByCount, &r.RelevanceScore, &r.Influence, &thread, &r.InCorpusCitations,
		&tagsJSON, &r.Seed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rank.Ranked{}, err
	}
	if err != nil {
		return rank.Ranked{}, fmt.Errorf("scanning row: %w", err)
	}
	r.Venue, r.DOI, r.ArxivID, r.OpenAlexID, r.URL = venue.String, doi.String, arxivID.String, openAlexID.String, url.String
	r.Thread = thread.String
	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &r.Authors)
	}
	if tagsJSON.Valid {
		json.Unmarshal([]byte(tagsJSON.String), &r.Tags)
	}
	return r, nil
}

// ftsQuery turns free text into an FTS5 expression that requires every
// word. Words are quoted so punctuation such as hyphens is tokenized
// rather than parsed as query syntax.
func ftsQuery(text string) string {
	words := strings.Fields(text)
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, `"`+strings.ReplaceAll(w, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
