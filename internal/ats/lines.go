package ats

import (
	"strings"
	"unicode/utf8"

	"github.com/Haloween-arch/Jobtune/internal/types"
)

// minLineChars is the trimmed length below which a line is not evaluated.
const minLineChars = 10

// IssueNoActionVerb is reported for lines without any action verb.
const IssueNoActionVerb = "Line lacks strong action verbs"

// LineFeedback flags every evaluated line of resumeText that contains no action verb.
// Lines are split on "\n" and reported untrimmed, in input order.
func LineFeedback(resumeText string) []types.LineIssue {
	feedback := make([]types.LineIssue, 0)
	for _, line := range strings.Split(resumeText, "\n") {
		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) < minLineChars {
			continue
		}
		if containsActionVerb(strings.ToLower(line)) {
			continue
		}
		feedback = append(feedback, types.LineIssue{
			Line:            line,
			Issues:          []string{IssueNoActionVerb},
			ImprovedExample: ImprovedExample(trimmed),
		})
	}
	return feedback
}

// ImprovedExample builds the deterministic replacement suggested for a weak line
func ImprovedExample(trimmedLine string) string {
	return "Improved: " + trimmedLine + " using measurable impact"
}
