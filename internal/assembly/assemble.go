// Package assembly renders the context bundle handed to the model: the
// hearing's structured fields, linked items, any prior summary, and excerpts
// from the retrieved GAO reports, as one bounded text block.
package assembly

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leemount96/hearing-prep/internal/types"
)

const (
	// excerptLimit caps each report excerpt so a handful of long reports
	// cannot blow the bundle budget.
	excerptLimit = 500
	// maxSupportingDocs caps the supporting-document list.
	maxSupportingDocs = 5
	// bundleLimit is the overall character budget for the bundle.
	bundleLimit = 12000

	truncationMarker = "... [truncated]"
	dateLayout       = "January 2, 2006"
)

// BuildContextBundle renders the hearing and its retrieved reports into a
// single prompt-ready text block. Sections whose source list is empty are
// omitted entirely. The result never exceeds bundleLimit characters and is
// never empty: a bare hearing still yields its header.
func BuildContextBundle(hearing *types.Hearing, reports []types.ScoredReport) string {
	var sb strings.Builder

	sb.WriteString("HEARING\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", hearing.Title))
	if hearing.Committee != "" {
		sb.WriteString(fmt.Sprintf("Committee: %s\n", hearing.Committee))
	}
	if hearing.HearingDate != nil {
		sb.WriteString(fmt.Sprintf("Date: %s\n", hearing.HearingDate.Format(dateLayout)))
	}
	if hearing.HearingType != "" {
		sb.WriteString(fmt.Sprintf("Type: %s\n", hearing.HearingType))
	}
	if hearing.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", hearing.Location))
	}

	if hearing.AISummary != "" {
		sb.WriteString("\nPRIOR SUMMARY\n")
		sb.WriteString(hearing.AISummary)
		sb.WriteString("\n")
	}

	if len(hearing.Bills) > 0 {
		sb.WriteString("\nBILLS UNDER CONSIDERATION\n")
		for _, bill := range hearing.Bills {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", bill.Number, bill.Title))
		}
	}

	if len(hearing.Nominations) > 0 {
		sb.WriteString("\nNOMINATIONS\n")
		for _, nom := range hearing.Nominations {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", nom.Number, nom.Description))
		}
	}

	if len(hearing.Witnesses) > 0 {
		sb.WriteString("\nSCHEDULED WITNESSES\n")
		for _, w := range hearing.Witnesses {
			sb.WriteString("- " + formatWitness(w) + "\n")
		}
	}

	if len(reports) > 0 {
		sb.WriteString("\nRELEVANT GAO REPORTS\n")
		for _, scored := range reports {
			writeReportSection(&sb, scored.Report)
		}
	}

	if len(hearing.Documents) > 0 {
		sb.WriteString("\nSUPPORTING DOCUMENTS\n")
		docs := hearing.Documents
		if len(docs) > maxSupportingDocs {
			docs = docs[:maxSupportingDocs]
		}
		for _, doc := range docs {
			line := doc.Title
			if doc.Description != "" {
				line += " - " + doc.Description
			}
			sb.WriteString("- " + line + "\n")
		}
	}

	bundle := sb.String()
	if len(bundle) > bundleLimit {
		bundle = cutAtRune(bundle, bundleLimit-len(truncationMarker)) + truncationMarker
	}
	return bundle
}

// cutAtRune truncates s to at most limit bytes without splitting a rune.
// The bundle feeds a gRPC call that rejects invalid UTF-8.
func cutAtRune(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func writeReportSection(sb *strings.Builder, report types.GAOReport) {
	sb.WriteString(fmt.Sprintf("\n%s: %s\n", report.GAONumber, report.Title))
	if report.PublishedAt != nil {
		sb.WriteString(fmt.Sprintf("Published: %s\n", report.PublishedAt.Format(dateLayout)))
	}
	sb.WriteString(truncateExcerpt(report.Content))
	sb.WriteString("\n")
}

func formatWitness(w types.Witness) string {
	parts := []string{w.Name}
	if w.Title != "" {
		parts = append(parts, w.Title)
	}
	if w.Organization != "" {
		parts = append(parts, w.Organization)
	}
	return strings.Join(parts, ", ")
}

func truncateExcerpt(content string) string {
	content = strings.TrimSpace(content)
	if len(content) <= excerptLimit {
		return content
	}
	return cutAtRune(content, excerptLimit) + truncationMarker
}
