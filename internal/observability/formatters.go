// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/leemount96/hearing-prep/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// ObserveHearing outputs a human-readable summary of the hearing being briefed.
func (p *Printer) ObserveHearing(hearing *types.Hearing) {
	if hearing == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:     %s\n", hearing.Title))
	sb.WriteString(fmt.Sprintf("Committee: %s\n", hearing.Committee))
	if hearing.HearingDate != nil {
		sb.WriteString(fmt.Sprintf("Date:      %s\n", hearing.HearingDate.Format("2006-01-02")))
	}
	sb.WriteString(fmt.Sprintf("Bills: %d  Nominations: %d  Witnesses: %d",
		len(hearing.Bills), len(hearing.Nominations), len(hearing.Witnesses)))

	p.printBox("Hearing", sb.String())
}

// ObserveRetrieval outputs the retrieved reports and their ranks.
func (p *Printer) ObserveRetrieval(reports []types.ScoredReport) {
	var sb strings.Builder
	if len(reports) == 0 {
		sb.WriteString("No relevant reports found; generating from hearing data only.")
	}
	for i, scored := range reports {
		if i == maxItemsToShow {
			break
		}
		sb.WriteString(fmt.Sprintf("%d. [%.3f] %s: %s\n", i+1, scored.Score, scored.Report.GAONumber, scored.Report.Title))
	}

	p.printBox("Retrieved Reports", strings.TrimRight(sb.String(), "\n"))
}

// ObservePrepSheet outputs a condensed view of the generated prep sheet.
func (p *Printer) ObservePrepSheet(record *types.PrepSheetRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Version:    %d\n", record.Version))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", record.ConfidenceScore))
	sb.WriteString(fmt.Sprintf("Issues: %d  Witnesses: %d  Data points: %d\n",
		len(record.Sheet.KeyIssues), len(record.Sheet.WitnessAnalyses), len(record.Sheet.DataPoints)))
	sb.WriteString("\n")

	for i, issue := range record.Sheet.KeyIssues {
		if i == maxItemsToShow {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s\n", issue.Issue))
	}

	p.printBox("Prep Sheet", strings.TrimRight(sb.String(), "\n"))
}
