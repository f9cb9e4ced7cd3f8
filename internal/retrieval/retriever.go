package retrieval

import (
	"context"
	"log"

	"github.com/leemount96/hearing-prep/internal/types"
)

// maxReports bounds how many reports feed the context bundle.
const maxReports = 5

// Searcher is the ranked full-text search the retriever runs against.
// Implemented by db.DB over the gao_reports corpus.
type Searcher interface {
	SearchReports(ctx context.Context, query string, limit int) ([]types.ScoredReport, error)
}

// Retriever finds the GAO reports most relevant to a hearing.
type Retriever struct {
	searcher Searcher
}

// New creates a Retriever backed by the given search store.
func New(searcher Searcher) *Retriever {
	return &Retriever{searcher: searcher}
}

// RetrieveForHearing returns up to 5 reports ranked by relevance to the
// hearing's title and committee. A search failure or an empty query yields
// an empty result; the prep sheet is still generated without report context.
func (r *Retriever) RetrieveForHearing(ctx context.Context, hearing *types.Hearing) []types.ScoredReport {
	query := BuildQuery(hearing.Title, hearing.Committee)
	if query == "" {
		return nil
	}

	reports, err := r.searcher.SearchReports(ctx, query, maxReports)
	if err != nil {
		log.Printf("report search failed for hearing %s (query %q): %v", hearing.ID, query, err)
		return nil
	}
	return reports
}
