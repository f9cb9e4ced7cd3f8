// Package types provides type definitions for structured data used throughout the hearing-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Hearing represents a scheduled congressional hearing as ingested from
// congress.gov. Hearing rows are read-only to this pipeline; ingestion is
// owned by the scraper side of the project.
type Hearing struct {
	ID          uuid.UUID    `json:"id"`
	EventID     string       `json:"event_id"` // congress.gov event identifier
	Title       string       `json:"title"`
	Committee   string       `json:"committee"`
	HearingDate *time.Time   `json:"hearing_date,omitempty"`
	HearingType string       `json:"hearing_type,omitempty"` // e.g. "Hearing", "Markup", "Field Hearing"
	Location    string       `json:"location,omitempty"`
	AISummary   string       `json:"ai_summary,omitempty"` // prior short summary, if one was generated
	Bills       []LinkedBill `json:"bills,omitempty"`
	Nominations []Nomination `json:"nominations,omitempty"`

	// Witnesses and Documents live in their own tables and are loaded
	// separately from the core row (see db.GetHearingDetails).
	Witnesses []Witness         `json:"witnesses,omitempty"`
	Documents []HearingDocument `json:"documents,omitempty"`
}

// LinkedBill is a bill under consideration at a hearing.
type LinkedBill struct {
	Number string `json:"number"` // e.g. "H.R. 1234"
	Title  string `json:"title"`
}

// Nomination is a nomination under consideration at a hearing.
type Nomination struct {
	Number      string `json:"number"` // e.g. "PN 456"
	Description string `json:"description"`
}

// Witness is a scheduled witness at a hearing.
type Witness struct {
	Name         string `json:"name"`
	Title        string `json:"title,omitempty"`
	Organization string `json:"organization,omitempty"`
}

// HearingDocument is a supporting document attached to a hearing
// (committee memos, witness statements, CRS products).
type HearingDocument struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// GAOReport is an archival oversight report used as supporting context.
// Read-only to this pipeline.
type GAOReport struct {
	ID          uuid.UUID  `json:"id"`
	GAONumber   string     `json:"gao_number"` // e.g. "GAO-24-106342"
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	URL         string     `json:"url,omitempty"`
}

// ScoredReport pairs a report with its full-text relevance rank.
type ScoredReport struct {
	Report GAOReport `json:"report"`
	Score  float64   `json:"score"`
}
