package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leemount96/hearing-prep/internal/types"
)

// SearchReports runs a ranked full-text search over the GAO report corpus.
// Rank is term-frequency weighted relevance against title+content; ties are
// broken by GAO number so identical inputs always rank identically.
func (db *DB) SearchReports(ctx context.Context, query string, limit int) ([]types.ScoredReport, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT r.id, r.gao_number, r.title, r.content, r.published_at, r.url,
		        ts_rank(to_tsvector('english', r.title || ' ' || r.content), q) AS rank
		 FROM gao_reports r, plainto_tsquery('english', $1) q
		 WHERE to_tsvector('english', r.title || ' ' || r.content) @@ q
		 ORDER BY rank DESC, r.gao_number ASC
		 LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("report search failed: %w", err)
	}
	defer rows.Close()

	var results []types.ScoredReport
	for rows.Next() {
		var scored types.ScoredReport
		r := &scored.Report
		if err := rows.Scan(&r.ID, &r.GAONumber, &r.Title, &r.Content, &r.PublishedAt, &r.URL, &scored.Score); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		results = append(results, scored)
	}
	return results, rows.Err()
}

// GetReport loads a single GAO report by ID. Returns nil when not found.
func (db *DB) GetReport(ctx context.Context, id uuid.UUID) (*types.GAOReport, error) {
	var r types.GAOReport
	err := db.pool.QueryRow(ctx,
		`SELECT id, gao_number, title, content, published_at, url FROM gao_reports WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.GAONumber, &r.Title, &r.Content, &r.PublishedAt, &r.URL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report %s: %w", id, err)
	}
	return &r, nil
}
