package types

// ATSReport is the result of scoring a resume for ATS compatibility
type ATSReport struct {
	Score        int         `json:"ats_score"`
	Suggestions  []string    `json:"suggestions"`
	LineFeedback []LineIssue `json:"line_feedback"`
}

// LineIssue describes a single weak resume line and a suggested replacement.
// Line holds the line exactly as it appeared in the input (untrimmed) so that
// it can be located again when fixes are applied.
type LineIssue struct {
	Line            string   `json:"line"`
	Issues          []string `json:"issues"`
	ImprovedExample string   `json:"improved_example"`
}

// FlaggedLines returns the original text of every flagged line, in order
func (r *ATSReport) FlaggedLines() []string {
	lines := make([]string, 0, len(r.LineFeedback))
	for _, f := range r.LineFeedback {
		lines = append(lines, f.Line)
	}
	return lines
}
