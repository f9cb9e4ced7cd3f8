package assembly

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leemount96/hearing-prep/internal/types"
)

func testHearing() *types.Hearing {
	date := time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)
	return &types.Hearing{
		ID:          uuid.New(),
		Title:       "Oversight of Infrastructure Grants",
		Committee:   "Senate Commerce",
		HearingDate: &date,
		HearingType: "Hearing",
		Location:    "Russell 253",
	}
}

func TestBuildContextBundle_HeaderOnly(t *testing.T) {
	// No linked items, no reports: still a non-empty header-only bundle
	hearing := &types.Hearing{ID: uuid.New(), Title: "Oversight of Infrastructure Grants"}

	bundle := BuildContextBundle(hearing, nil)

	require.NotEmpty(t, bundle)
	assert.Contains(t, bundle, "Title: Oversight of Infrastructure Grants")
	assert.NotContains(t, bundle, "BILLS UNDER CONSIDERATION")
	assert.NotContains(t, bundle, "SCHEDULED WITNESSES")
	assert.NotContains(t, bundle, "RELEVANT GAO REPORTS")
	assert.NotContains(t, bundle, "SUPPORTING DOCUMENTS")
	assert.NotContains(t, bundle, "PRIOR SUMMARY")
}

func TestBuildContextBundle_FixedSectionOrder(t *testing.T) {
	hearing := testHearing()
	hearing.AISummary = "Earlier AI summary of the hearing."
	hearing.Bills = []types.LinkedBill{{Number: "H.R. 1234", Title: "Broadband Access Act"}}
	hearing.Nominations = []types.Nomination{{Number: "PN 456", Description: "Administrator, FAA"}}
	hearing.Witnesses = []types.Witness{{Name: "Dr. Jane Smith", Title: "Director", Organization: "GAO"}}
	hearing.Documents = []types.HearingDocument{{Title: "Committee Memo", Description: "Majority staff memo"}}

	reports := []types.ScoredReport{
		{Report: types.GAOReport{GAONumber: "GAO-24-106342", Title: "Grant Oversight", Content: "Report body."}, Score: 0.5},
	}

	bundle := BuildContextBundle(hearing, reports)

	sections := []string{
		"HEARING",
		"PRIOR SUMMARY",
		"BILLS UNDER CONSIDERATION",
		"NOMINATIONS",
		"SCHEDULED WITNESSES",
		"RELEVANT GAO REPORTS",
		"SUPPORTING DOCUMENTS",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(bundle, section)
		require.GreaterOrEqual(t, idx, 0, "missing section %s", section)
		assert.Greater(t, idx, last, "section %s out of order", section)
		last = idx
	}

	assert.Contains(t, bundle, "- H.R. 1234: Broadband Access Act")
	assert.Contains(t, bundle, "- Dr. Jane Smith, Director, GAO")
	assert.Contains(t, bundle, "GAO-24-106342: Grant Oversight")
}

func TestBuildContextBundle_ExcerptTruncation(t *testing.T) {
	hearing := testHearing()
	longContent := strings.Repeat("x", 2000)
	reports := []types.ScoredReport{
		{Report: types.GAOReport{GAONumber: "GAO-24-1", Title: "Long Report", Content: longContent}},
	}

	bundle := BuildContextBundle(hearing, reports)

	assert.Contains(t, bundle, truncationMarker)
	assert.NotContains(t, bundle, strings.Repeat("x", 501), "excerpt exceeded the 500 character limit")
	assert.Contains(t, bundle, strings.Repeat("x", 500))
}

func TestBuildContextBundle_ShortExcerptNotMarked(t *testing.T) {
	hearing := testHearing()
	reports := []types.ScoredReport{
		{Report: types.GAOReport{GAONumber: "GAO-24-2", Title: "Short Report", Content: "Brief body."}},
	}

	bundle := BuildContextBundle(hearing, reports)
	assert.NotContains(t, bundle, truncationMarker)
}

func TestBuildContextBundle_SupportingDocsCapped(t *testing.T) {
	hearing := testHearing()
	for i := 0; i < 8; i++ {
		hearing.Documents = append(hearing.Documents, types.HearingDocument{
			Title: "Document " + string(rune('A'+i)),
		})
	}

	bundle := BuildContextBundle(hearing, nil)

	assert.Contains(t, bundle, "Document E")
	assert.NotContains(t, bundle, "Document F")
}

func TestBuildContextBundle_MultibyteExcerptStaysValidUTF8(t *testing.T) {
	// 600 two-byte runes: the 500-byte excerpt cut lands mid-rune unless the
	// truncation backs up to a rune boundary.
	hearing := testHearing()
	reports := []types.ScoredReport{
		{Report: types.GAOReport{GAONumber: "GAO-24-3", Title: "Accented", Content: strings.Repeat("é", 600)}},
	}

	bundle := BuildContextBundle(hearing, reports)

	assert.True(t, utf8.ValidString(bundle))
	assert.Contains(t, bundle, truncationMarker)
}

func TestBuildContextBundle_MultibyteBundleCapStaysValidUTF8(t *testing.T) {
	hearing := testHearing()
	hearing.AISummary = strings.Repeat("é", 8000)

	bundle := BuildContextBundle(hearing, nil)

	assert.True(t, utf8.ValidString(bundle))
	assert.LessOrEqual(t, len(bundle), bundleLimit)
	assert.True(t, strings.HasSuffix(bundle, truncationMarker))
}

func TestCutAtRune(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"under limit", "abc", 10, "abc"},
		{"exact limit", "abcd", 4, "abcd"},
		{"ascii cut", "abcdef", 4, "abcd"},
		{"mid-rune cut backs up", "aéb", 2, "a"},
		{"rune boundary kept", "aéb", 3, "aé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cutAtRune(tt.in, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestBuildContextBundle_TotalBudgetEnforced(t *testing.T) {
	hearing := testHearing()
	hearing.AISummary = strings.Repeat("summary ", 3000)

	var reports []types.ScoredReport
	for i := 0; i < 5; i++ {
		reports = append(reports, types.ScoredReport{
			Report: types.GAOReport{GAONumber: "GAO-24-10", Title: "Filler", Content: strings.Repeat("y", 5000)},
		})
	}

	bundle := BuildContextBundle(hearing, reports)
	assert.LessOrEqual(t, len(bundle), bundleLimit)
	assert.True(t, strings.HasSuffix(bundle, truncationMarker))
}
