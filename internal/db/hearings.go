package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leemount96/hearing-prep/internal/types"
)

// GetHearing loads the core hearing row including its linked bills and
// nominations. Returns nil when no hearing exists. Witnesses and supporting
// documents are loaded separately via GetHearingDetails so callers can fetch
// them in parallel with report retrieval.
func (db *DB) GetHearing(ctx context.Context, id uuid.UUID) (*types.Hearing, error) {
	var (
		hearing                types.Hearing
		billsJSON, nominations []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, event_id, title, committee, hearing_date, hearing_type, location, ai_summary, bills, nominations
		 FROM hearings WHERE id = $1`,
		id,
	).Scan(&hearing.ID, &hearing.EventID, &hearing.Title, &hearing.Committee,
		&hearing.HearingDate, &hearing.HearingType, &hearing.Location,
		&hearing.AISummary, &billsJSON, &nominations)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hearing %s: %w", id, err)
	}

	if err := json.Unmarshal(billsJSON, &hearing.Bills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bills for hearing %s: %w", id, err)
	}
	if err := json.Unmarshal(nominations, &hearing.Nominations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nominations for hearing %s: %w", id, err)
	}

	return &hearing, nil
}

// GetHearingDetails loads the hearing's witnesses and supporting documents.
func (db *DB) GetHearingDetails(ctx context.Context, id uuid.UUID) ([]types.Witness, []types.HearingDocument, error) {
	witnesses, err := db.listWitnesses(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	documents, err := db.listDocuments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return witnesses, documents, nil
}

func (db *DB) listWitnesses(ctx context.Context, hearingID uuid.UUID) ([]types.Witness, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, title, organization
		 FROM hearing_witnesses WHERE hearing_id = $1 ORDER BY position, name`,
		hearingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list witnesses for hearing %s: %w", hearingID, err)
	}
	defer rows.Close()

	var witnesses []types.Witness
	for rows.Next() {
		var w types.Witness
		if err := rows.Scan(&w.Name, &w.Title, &w.Organization); err != nil {
			return nil, fmt.Errorf("failed to scan witness: %w", err)
		}
		witnesses = append(witnesses, w)
	}
	return witnesses, rows.Err()
}

func (db *DB) listDocuments(ctx context.Context, hearingID uuid.UUID) ([]types.HearingDocument, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT title, description
		 FROM hearing_documents WHERE hearing_id = $1 ORDER BY position, title`,
		hearingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for hearing %s: %w", hearingID, err)
	}
	defer rows.Close()

	var documents []types.HearingDocument
	for rows.Next() {
		var d types.HearingDocument
		if err := rows.Scan(&d.Title, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, d)
	}
	return documents, rows.Err()
}

// ListHearingIDs returns the IDs of hearings that have no published prep
// sheet yet, oldest first. Used by the batch driver. A limit of zero or less
// means no limit.
func (db *DB) ListHearingIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	// LIMIT NULL is "no limit" in Postgres, unlike LIMIT 0.
	var rowLimit any
	if limit > 0 {
		rowLimit = limit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT h.id FROM hearings h
		 WHERE NOT EXISTS (
		     SELECT 1 FROM prep_sheets p WHERE p.hearing_id = h.id AND p.is_published
		 )
		 ORDER BY h.hearing_date NULLS LAST, h.created_at
		 LIMIT $1`,
		rowLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list hearings: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan hearing id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
