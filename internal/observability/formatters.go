// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Haloween-arch/Jobtune/internal/types"
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

// clip shortens s to at most n runes, marking the cut with "..."
func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	inner := boxWidth - 4
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(clip(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintResumeProfile outputs the skills and experience parsed from a resume.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Experience: %d years\n", profile.ExperienceYears)
	fmt.Fprintf(&sb, "Characters: %d\n", utf8.RuneCountInString(profile.RawText))
	if len(profile.Skills) == 0 {
		sb.WriteString("Skills:     (none detected)")
	} else {
		fmt.Fprintf(&sb, "Skills:     %s", strings.Join(profile.Skills, ", "))
	}

	p.printBox("PARSED RESUME", sb.String())
}

// PrintATSReport outputs the score, suggestions and the first flagged lines.
func (p *Printer) PrintATSReport(report *types.ATSReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ATS Score: %d/100\n", report.Score)

	if len(report.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range report.Suggestions {
			fmt.Fprintf(&sb, "  • %s\n", s)
		}
	}

	if n := len(report.LineFeedback); n > 0 {
		fmt.Fprintf(&sb, "\nFlagged lines: %d\n", n)
		count := min(n, maxItemsToShow)
		for i := 0; i < count; i++ {
			fmt.Fprintf(&sb, "  ✗ %s\n", clip(strings.TrimSpace(report.LineFeedback[i].Line), 45))
		}
		if n > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", n-maxItemsToShow)
		}
	}

	p.printBox("ATS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobMatches outputs the top job matches with their scores.
func (p *Printer) PrintJobMatches(matches []types.JobMatch) {
	var sb strings.Builder
	if len(matches) == 0 {
		sb.WriteString("No matching jobs found")
		p.printBox("JOB MATCHES", sb.String())
		return
	}

	fmt.Fprintf(&sb, "Total matches: %d\n\n", len(matches))
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		fmt.Fprintf(&sb, "#%d  %s [%s]\n", i+1, m.Title, m.JobType)
		fmt.Fprintf(&sb, "    Score: %d", m.FinalScore)
		if m.DatePosted != "" {
			fmt.Fprintf(&sb, "  Posted: %s", m.DatePosted)
		}
		sb.WriteString("\n")
		if len(m.Skills) > 0 {
			fmt.Fprintf(&sb, "    Skills: %s\n", clip(strings.Join(m.Skills, ", "), 40))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more jobs", len(matches)-maxItemsToShow)
	}

	p.printBox("JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCareerReport outputs the primary path and the ranked alternatives.
func (p *Printer) PrintCareerReport(report *types.CareerReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	primary := report.PrimaryPath
	fmt.Fprintf(&sb, "Primary:  %s → %s\n", primary.CurrentRole, primary.NextRole)
	fmt.Fprintf(&sb, "Category: %s  Match: %d\n", primary.Category, primary.MatchScore)
	if len(primary.MissingSkills) > 0 {
		fmt.Fprintf(&sb, "Missing:  %s\n", strings.Join(primary.MissingSkills, ", "))
	}

	writePaths := func(label string, paths []types.CareerRecommendation) {
		if len(paths) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n%s:\n", label)
		for _, path := range paths {
			fmt.Fprintf(&sb, "  • %s (%d)\n", path.CurrentRole, path.MatchScore)
		}
	}
	writePaths("Tech paths", report.TechPaths)
	writePaths("Non-tech paths", report.NonTechPaths)

	p.printBox("CAREER PATHS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRefresh outputs the result of a job dataset date refresh.
func (p *Printer) PrintRefresh(source string, rows int) {
	p.printBox("JOB DATES REFRESHED", fmt.Sprintf("Source: %s\nRows:   %d", source, rows))
}
