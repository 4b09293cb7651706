// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/applicant-scorer/internal/ingestion"
	"github.com/jonathan/applicant-scorer/internal/scoring"
	"github.com/jonathan/applicant-scorer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLines is how many lines of extracted text are shown
	previewLines = 8
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
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", padRight(truncate(title, boxWidth-4), boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", padRight(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintScoreResult outputs a human-readable breakdown of one score.
func (p *Printer) PrintScoreResult(title string, result *types.ScoreResult) {
	if result == nil {
		return
	}
	if title == "" {
		title = "SCORE"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Final score:      %6.2f\n", result.FinalScore))
	sb.WriteString(fmt.Sprintf("Skill match:      %6.2f\n", result.SkillScore))
	sb.WriteString(fmt.Sprintf("Resume relevance: %6.2f\n", result.ResumeRelevance))
	sb.WriteString(fmt.Sprintf("Experience match: %6.2f\n", result.ExperienceMatch))

	if len(result.MatchedSkills) > 0 {
		sb.WriteString("\nMatched Skills:\n")
		count := min(len(result.MatchedSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			m := result.MatchedSkills[i]
			sb.WriteString(fmt.Sprintf("  • %s ← %s (%.2f)\n", m.JobSkill, m.ApplicantSkill, m.Similarity))
		}
		if len(result.MatchedSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MatchedSkills)-maxItemsToShow))
		}
	}

	if notes := scoring.Explain(result); notes != "" {
		sb.WriteString("\n")
		for _, note := range strings.Split(notes, ". ") {
			sb.WriteString(fmt.Sprintf("%s\n", note))
		}
	}

	p.printBox(title, sb.String())
}

// PrintBatchResult outputs one line per scored pair plus a summary.
func (p *Printer) PrintBatchResult(batch *types.BatchResult) {
	if batch == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:   %s\n", batch.RunID))
	sb.WriteString(fmt.Sprintf("Pairs: %d\n", len(batch.Items)))

	if len(batch.Items) > 0 {
		var total float64
		sb.WriteString("\n")
		for i, item := range batch.Items {
			id := item.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i+1)
			}
			score := 0.0
			if item.Result != nil {
				score = item.Result.FinalScore
			}
			total += score
			sb.WriteString(fmt.Sprintf("  %-30s %6.2f\n", truncate(id, 30), score))
		}
		sb.WriteString(fmt.Sprintf("\nMean final score: %.2f\n", total/float64(len(batch.Items))))
	}

	p.printBox("BATCH SCORES", sb.String())
}

// PrintSkills outputs an extracted skill list.
func (p *Printer) PrintSkills(title string, skills []string) {
	var sb strings.Builder
	if len(skills) == 0 {
		sb.WriteString("(no skills found)\n")
	}
	for _, s := range skills {
		sb.WriteString(fmt.Sprintf("  • %s\n", s))
	}
	p.printBox(title, sb.String())
}

// PrintExtraction outputs extraction metadata and the first lines of the text.
func (p *Printer) PrintExtraction(metadata *ingestion.Metadata, text string) {
	if metadata == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:     %s\n", metadata.Source))
	if metadata.Format != "" {
		sb.WriteString(fmt.Sprintf("Format:     %s\n", metadata.Format))
	}
	sb.WriteString(fmt.Sprintf("Characters: %d\n", metadata.Characters))
	if metadata.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:      %s\n", metadata.Error))
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 0 && text != "" {
		sb.WriteString("\n")
		count := min(len(lines), previewLines)
		for _, line := range lines[:count] {
			sb.WriteString(line + "\n")
		}
		if len(lines) > previewLines {
			sb.WriteString(fmt.Sprintf("... %d more lines\n", len(lines)-previewLines))
		}
	}

	p.printBox("EXTRACTED TEXT", sb.String())
}
