// Package pipeline provides the high-level orchestration for prep sheet
// generation: cache check, context assembly, model call, validation, and
// persistence.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leemount96/hearing-prep/internal/assembly"
	"github.com/leemount96/hearing-prep/internal/schemas"
	"github.com/leemount96/hearing-prep/internal/types"
)

// ErrHearingNotFound is returned when the requested hearing does not exist.
var ErrHearingNotFound = errors.New("hearing not found")

// DefaultTimeout bounds a whole generation request. The model call dominates
// this budget; on timeout nothing is persisted.
const DefaultTimeout = 60 * time.Second

// HearingSource is read-only access to hearing records.
type HearingSource interface {
	GetHearing(ctx context.Context, id uuid.UUID) (*types.Hearing, error)
	GetHearingDetails(ctx context.Context, id uuid.UUID) ([]types.Witness, []types.HearingDocument, error)
}

// ReportRetriever finds supporting reports for a hearing. Best-effort:
// implementations return an empty slice on failure.
type ReportRetriever interface {
	RetrieveForHearing(ctx context.Context, hearing *types.Hearing) []types.ScoredReport
}

// Generator produces a raw candidate JSON payload from a context bundle.
type Generator interface {
	GeneratePrepSheet(ctx context.Context, bundle string) (string, error)
}

// SheetStore is the versioned artifact store.
type SheetStore interface {
	LatestPrepSheet(ctx context.Context, hearingID uuid.UUID) (*types.PrepSheetRecord, error)
	SavePrepSheet(ctx context.Context, hearingID uuid.UUID, sheet *types.PrepSheet, reportIDs []uuid.UUID) (*types.PrepSheetRecord, error)
	RecordView(ctx context.Context, id uuid.UUID) error
}

// Observer receives progress callbacks during generation. Used by the CLI
// for verbose output; a nil observer disables all callbacks.
type Observer interface {
	ObserveHearing(hearing *types.Hearing)
	ObserveRetrieval(reports []types.ScoredReport)
	ObservePrepSheet(record *types.PrepSheetRecord)
}

// Pipeline wires the generation stages together. All collaborators are
// injected; the pipeline holds no ambient state of its own.
type Pipeline struct {
	hearings  HearingSource
	retriever ReportRetriever
	generator Generator
	sheets    SheetStore
	timeout   time.Duration
	observer  Observer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTimeout overrides the per-request wall-clock budget.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithObserver registers a progress observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// SetObserver registers a progress observer after construction.
func (p *Pipeline) SetObserver(o Observer) {
	p.observer = o
}

// New creates a Pipeline from its collaborators.
func New(hearings HearingSource, retriever ReportRetriever, generator Generator, sheets SheetStore, opts ...Option) *Pipeline {
	p := &Pipeline{
		hearings:  hearings,
		retriever: retriever,
		generator: generator,
		sheets:    sheets,
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate produces the prep sheet artifact for a hearing. If a published
// sheet already exists the call short-circuits and returns it without
// touching the model, which makes retries of a whole request safe. Duplicate
// concurrent generations for the same missing hearing are tolerated: each
// save lands as its own version row and readers take the highest.
func (p *Pipeline) Generate(ctx context.Context, hearingID uuid.UUID) (*types.PrepSheetRecord, error) {
	existing, err := p.sheets.LatestPrepSheet(ctx, hearingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return p.generate(ctx, hearingID)
}

// Regenerate always runs the full pipeline, even when a published sheet
// already exists. The result lands as a new version; prior versions are
// never overwritten.
func (p *Pipeline) Regenerate(ctx context.Context, hearingID uuid.UUID) (*types.PrepSheetRecord, error) {
	return p.generate(ctx, hearingID)
}

func (p *Pipeline) generate(ctx context.Context, hearingID uuid.UUID) (*types.PrepSheetRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	hearing, err := p.hearings.GetHearing(ctx, hearingID)
	if err != nil {
		return nil, err
	}
	if hearing == nil {
		return nil, ErrHearingNotFound
	}

	// Report retrieval only needs the core row, so it runs speculatively
	// in parallel with the linked-item fetch.
	var reports []types.ScoredReport
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reports = p.retriever.RetrieveForHearing(gctx, hearing)
		return nil
	})
	g.Go(func() error {
		witnesses, documents, err := p.hearings.GetHearingDetails(gctx, hearingID)
		if err != nil {
			return err
		}
		hearing.Witnesses = witnesses
		hearing.Documents = documents
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Observed only after the linked-item fetch so the witness and document
	// counts are the ones the bundle will carry.
	if p.observer != nil {
		p.observer.ObserveHearing(hearing)
		p.observer.ObserveRetrieval(reports)
	}

	bundle := assembly.BuildContextBundle(hearing, reports)

	payload, err := p.generator.GeneratePrepSheet(ctx, bundle)
	if err != nil {
		return nil, err
	}

	sheet, err := schemas.ValidatePrepSheet(payload)
	if err != nil {
		return nil, err
	}

	record, err := p.sheets.SavePrepSheet(ctx, hearingID, sheet, reportIDs(reports))
	if err != nil {
		return nil, err
	}
	if p.observer != nil {
		p.observer.ObservePrepSheet(record)
	}
	return record, nil
}

// Get returns the current published prep sheet for a hearing, or nil when
// none exists. Reading counts as a view.
func (p *Pipeline) Get(ctx context.Context, hearingID uuid.UUID) (*types.PrepSheetRecord, error) {
	record, err := p.sheets.LatestPrepSheet(ctx, hearingID)
	if err != nil || record == nil {
		return record, err
	}
	if err := p.sheets.RecordView(ctx, record.ID); err != nil {
		return nil, err
	}
	record.ViewCount++
	return record, nil
}

func reportIDs(reports []types.ScoredReport) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.Report.ID)
	}
	return ids
}
