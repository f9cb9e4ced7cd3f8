// Package types provides type definitions for structured data used throughout the hearing-prep system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Influence/risk levels allowed in model output
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// PrepSheet is the generated briefing document for a hearing. The model must
// produce exactly this structure; see internal/schemas for the contract the
// raw payload is validated against before it is decoded here.
type PrepSheet struct {
	ExecutiveSummary     string                `json:"executive_summary" validate:"required"`
	Background           string                `json:"background" validate:"required"`
	KeyIssues            []KeyIssue            `json:"key_issues" validate:"dive"`
	WitnessAnalyses      []WitnessAnalysis     `json:"witness_analyses" validate:"dive"`
	PolicyImplications   []string              `json:"policy_implications"`
	StakeholderPositions []StakeholderPosition `json:"stakeholder_positions" validate:"dive"`
	AnticipatedQuestions []string              `json:"anticipated_questions"`
	Controversies        []Controversy         `json:"controversies" validate:"dive"`
	DataPoints           []DataPoint           `json:"data_points" validate:"dive"`
	Recommendations      []string              `json:"recommendations"`
	StrategicNotes       string                `json:"strategic_notes,omitempty"`
	ConfidenceScore      float64               `json:"confidence_score" validate:"gte=0,lte=1"`
}

// KeyIssue is a central issue expected to come up at the hearing.
type KeyIssue struct {
	Issue         string   `json:"issue" validate:"required"`
	Summary       string   `json:"summary,omitempty"`
	TalkingPoints []string `json:"talking_points"`
}

// WitnessAnalysis is the model's analysis of a scheduled witness.
type WitnessAnalysis struct {
	Name               string   `json:"name" validate:"required"`
	Organization       string   `json:"organization,omitempty"`
	Background         string   `json:"background,omitempty"`
	LikelyTestimony    string   `json:"likely_testimony,omitempty"`
	InfluenceLevel     string   `json:"influence_level,omitempty" validate:"omitempty,oneof=low medium high"`
	SuggestedQuestions []string `json:"suggested_questions"`
}

// StakeholderPosition describes where an outside stakeholder stands.
type StakeholderPosition struct {
	Stakeholder string `json:"stakeholder" validate:"required"`
	Position    string `json:"position,omitempty"`
}

// Controversy is a potential flashpoint at the hearing.
type Controversy struct {
	Topic     string `json:"topic" validate:"required"`
	Summary   string `json:"summary,omitempty"`
	RiskLevel string `json:"risk_level,omitempty" validate:"omitempty,oneof=low medium high"`
}

// DataPoint is a citable statistic the member can use.
type DataPoint struct {
	Statistic string `json:"statistic" validate:"required"`
	Source    string `json:"source,omitempty"`
	Context   string `json:"context,omitempty"`
}

// Normalize replaces nil list fields with empty slices so that serialized
// sheets always carry every list field. Nested lists are normalized too.
func (p *PrepSheet) Normalize() {
	if p.KeyIssues == nil {
		p.KeyIssues = []KeyIssue{}
	}
	for i := range p.KeyIssues {
		if p.KeyIssues[i].TalkingPoints == nil {
			p.KeyIssues[i].TalkingPoints = []string{}
		}
	}
	if p.WitnessAnalyses == nil {
		p.WitnessAnalyses = []WitnessAnalysis{}
	}
	for i := range p.WitnessAnalyses {
		if p.WitnessAnalyses[i].SuggestedQuestions == nil {
			p.WitnessAnalyses[i].SuggestedQuestions = []string{}
		}
	}
	if p.PolicyImplications == nil {
		p.PolicyImplications = []string{}
	}
	if p.StakeholderPositions == nil {
		p.StakeholderPositions = []StakeholderPosition{}
	}
	if p.AnticipatedQuestions == nil {
		p.AnticipatedQuestions = []string{}
	}
	if p.Controversies == nil {
		p.Controversies = []Controversy{}
	}
	if p.DataPoints == nil {
		p.DataPoints = []DataPoint{}
	}
	if p.Recommendations == nil {
		p.Recommendations = []string{}
	}
}

// PrepSheetRecord is a persisted, versioned prep sheet plus its metadata.
// The current record for a hearing is the highest published version.
type PrepSheetRecord struct {
	ID               uuid.UUID   `json:"id"`
	HearingID        uuid.UUID   `json:"hearing_id"`
	Version          int         `json:"version"`
	Published        bool        `json:"published"`
	ViewCount        int         `json:"view_count"`
	ConfidenceScore  float64     `json:"confidence_score"`
	Sheet            PrepSheet   `json:"sheet"`
	RelatedReportIDs []uuid.UUID `json:"related_report_ids"`
	GeneratedAt      time.Time   `json:"generated_at"`
	LastViewedAt     *time.Time  `json:"last_viewed_at,omitempty"`
}
