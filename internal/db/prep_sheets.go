package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leemount96/hearing-prep/internal/types"
)

// saveRetries bounds how often a concurrent insert retries after losing a
// version race. Two generations racing for the same hearing is rare and
// benign: both land as distinct version rows.
const saveRetries = 3

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// LatestPrepSheet returns the highest-version published prep sheet for a
// hearing, or nil when none exists.
func (db *DB) LatestPrepSheet(ctx context.Context, hearingID uuid.UUID) (*types.PrepSheetRecord, error) {
	record, err := db.scanPrepSheet(db.pool.QueryRow(ctx,
		selectPrepSheet+` WHERE hearing_id = $1 AND is_published
		 ORDER BY version DESC LIMIT 1`,
		hearingID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "lookup", Cause: err}
	}
	return record, nil
}

// GetPrepSheet loads one prep sheet row by its own ID. Returns nil when not
// found.
func (db *DB) GetPrepSheet(ctx context.Context, id uuid.UUID) (*types.PrepSheetRecord, error) {
	record, err := db.scanPrepSheet(db.pool.QueryRow(ctx,
		selectPrepSheet+` WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "get", Cause: err}
	}
	return record, nil
}

// SavePrepSheet inserts a new versioned row for the hearing and returns it.
// The version is computed inside the INSERT as max(version)+1; a concurrent
// save for the same hearing loses the unique-constraint race and retries
// with the next version. Prior versions are never overwritten.
func (db *DB) SavePrepSheet(ctx context.Context, hearingID uuid.UUID, sheet *types.PrepSheet, reportIDs []uuid.UUID) (*types.PrepSheetRecord, error) {
	content, err := json.Marshal(sheet)
	if err != nil {
		return nil, &PersistenceError{Op: "save", Cause: fmt.Errorf("failed to marshal sheet: %w", err)}
	}
	if reportIDs == nil {
		reportIDs = []uuid.UUID{}
	}

	var lastErr error
	for attempt := 0; attempt < saveRetries; attempt++ {
		record := &types.PrepSheetRecord{
			HearingID:        hearingID,
			Published:        true,
			ConfidenceScore:  sheet.ConfidenceScore,
			Sheet:            *sheet,
			RelatedReportIDs: reportIDs,
		}
		err := db.pool.QueryRow(ctx,
			`INSERT INTO prep_sheets (hearing_id, version, content, related_report_ids, confidence_score, is_published, view_count)
			 SELECT $1, COALESCE(MAX(version), 0) + 1, $2, $3, $4, TRUE, 0
			 FROM prep_sheets WHERE hearing_id = $1
			 RETURNING id, version, generated_at`,
			hearingID, content, reportIDs, sheet.ConfidenceScore,
		).Scan(&record.ID, &record.Version, &record.GeneratedAt)
		if err == nil {
			return record, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			lastErr = err
			continue // lost a version race, recompute and retry
		}
		return nil, &PersistenceError{Op: "save", Cause: err}
	}
	return nil, &PersistenceError{Op: "save", Cause: fmt.Errorf("version conflict persisted after %d attempts: %w", saveRetries, lastErr)}
}

// RecordView atomically increments the view count and stamps the last-viewed
// time. The increment happens in the database, so concurrent views are never
// lost to read-modify-write races.
func (db *DB) RecordView(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE prep_sheets SET view_count = view_count + 1, last_viewed_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return &PersistenceError{Op: "record view", Cause: err}
	}
	if tag.RowsAffected() == 0 {
		return &PersistenceError{Op: "record view", Cause: fmt.Errorf("prep sheet %s not found", id)}
	}
	return nil
}

const selectPrepSheet = `SELECT id, hearing_id, version, content, related_report_ids, confidence_score, is_published, view_count, generated_at, last_viewed_at
 FROM prep_sheets`

func (db *DB) scanPrepSheet(row pgx.Row) (*types.PrepSheetRecord, error) {
	var (
		record  types.PrepSheetRecord
		content []byte
	)
	err := row.Scan(&record.ID, &record.HearingID, &record.Version, &content,
		&record.RelatedReportIDs, &record.ConfidenceScore, &record.Published,
		&record.ViewCount, &record.GeneratedAt, &record.LastViewedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &record.Sheet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prep sheet content: %w", err)
	}
	return &record, nil
}
