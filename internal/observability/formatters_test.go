package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leemount96/hearing-prep/internal/types"
)

func TestObserveHearing(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	date := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)
	printer.ObserveHearing(&types.Hearing{
		Title:       "Oversight of Infrastructure Grants",
		Committee:   "Senate Commerce",
		HearingDate: &date,
		Witnesses:   []types.Witness{{Name: "Dr. Jane Smith"}},
	})

	out := buf.String()
	assert.Contains(t, out, "Hearing")
	assert.Contains(t, out, "Oversight of Infrastructure Grants")
	assert.Contains(t, out, "2025-09-17")
	assert.Contains(t, out, "Witnesses: 1")
}

func TestObserveHearing_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).ObserveHearing(nil)
	assert.Empty(t, buf.String())
}

func TestObserveRetrieval(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.ObserveRetrieval([]types.ScoredReport{
		{Report: types.GAOReport{GAONumber: "GAO-24-106342", Title: "Grant Oversight"}, Score: 0.412},
	})

	out := buf.String()
	assert.Contains(t, out, "GAO-24-106342")
	assert.Contains(t, out, "0.412")
}

func TestObserveRetrieval_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).ObserveRetrieval(nil)
	assert.Contains(t, buf.String(), "No relevant reports")
}

func TestObserveRetrieval_CapsList(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	var reports []types.ScoredReport
	for i := 0; i < 8; i++ {
		reports = append(reports, types.ScoredReport{
			Report: types.GAOReport{GAONumber: "GAO-24-1", Title: "Report"},
		})
	}
	printer.ObserveRetrieval(reports)

	assert.Equal(t, maxItemsToShow, strings.Count(buf.String(), "GAO-24-1"))
}

func TestObservePrepSheet(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.ObservePrepSheet(&types.PrepSheetRecord{
		Version:         1,
		ConfidenceScore: 0.8,
		Sheet: types.PrepSheet{
			KeyIssues: []types.KeyIssue{{Issue: "Disbursement delays"}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Version:    1")
	assert.Contains(t, out, "Disbursement delays")
}
