package repair

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/Haloween-arch/Jobtune/internal/ats"
	"github.com/Haloween-arch/Jobtune/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFixes(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		feedback []types.LineIssue
		expected string
	}{
		{
			name:     "Replaces a flagged line",
			text:     "Name\nWorked on reports\nDeveloped APIs",
			feedback: []types.LineIssue{{Line: "Worked on reports", ImprovedExample: "Automated reports"}},
			expected: "Name\nAutomated reports\nDeveloped APIs",
		},
		{
			name:     "Replaces every occurrence",
			text:     "Helped team\nHelped team",
			feedback: []types.LineIssue{{Line: "Helped team", ImprovedExample: "Led team"}},
			expected: "Led team\nLed team",
		},
		{
			name:     "Missing line is skipped",
			text:     "Original text",
			feedback: []types.LineIssue{{Line: "Not present", ImprovedExample: "X"}},
			expected: "Original text",
		},
		{
			name:     "Empty line is skipped",
			text:     "abc",
			feedback: []types.LineIssue{{Line: "", ImprovedExample: "X"}},
			expected: "abc",
		},
		{
			name:     "Empty improved example is skipped",
			text:     "Worked on reports",
			feedback: []types.LineIssue{{Line: "Worked on reports", ImprovedExample: ""}},
			expected: "Worked on reports",
		},
		{
			name:     "Replacement is literal, not a pattern",
			text:     "Used C++ (a lot).",
			feedback: []types.LineIssue{{Line: "C++ (a lot)", ImprovedExample: "$1"}},
			expected: "Used $1.",
		},
		{
			name:     "No feedback leaves text unchanged",
			text:     "unchanged",
			feedback: nil,
			expected: "unchanged",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ApplyFixes(tt.text, tt.feedback))
		})
	}
}

func TestApplyFixes_OrderDependency(t *testing.T) {
	text := "Worked on reports"
	first := types.LineIssue{Line: "Worked on reports", ImprovedExample: "Automated reports"}
	second := types.LineIssue{Line: "reports", ImprovedExample: "dashboards"}

	// first then second: second still matches inside the first replacement
	assert.Equal(t, "Automated dashboards", ApplyFixes(text, []types.LineIssue{first, second}))
	// second then first: the first item no longer matches and is skipped
	assert.Equal(t, "Worked on dashboards", ApplyFixes(text, []types.LineIssue{second, first}))

	assert.Equal(t, []bool{true, true}, Plan(text, []types.LineIssue{first, second}))
	assert.Equal(t, []bool{true, false}, Plan(text, []types.LineIssue{second, first}))
}

// TestApplyFixes_SequentialProperty checks, over random inputs, that applying
// a feedback list equals folding single-item applications in list order, and
// that lines which are not flagged survive untouched.
func TestApplyFixes_SequentialProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vocabulary := []string{"worked", "on", "reports", "the", "team", "helped", "with", "sales", "tools", "daily"}

	randomLine := func() string {
		n := 3 + rng.Intn(4)
		words := make([]string, n)
		for i := range words {
			words[i] = vocabulary[rng.Intn(len(vocabulary))]
		}
		return strings.Join(words, " ")
	}

	for iter := 0; iter < 200; iter++ {
		lines := make([]string, 4+rng.Intn(6))
		for i := range lines {
			lines[i] = randomLine()
		}
		text := strings.Join(lines, "\n")

		feedback := ats.LineFeedback(text)
		rng.Shuffle(len(feedback), func(i, j int) { feedback[i], feedback[j] = feedback[j], feedback[i] })

		folded := text
		for _, item := range feedback {
			folded = ApplyFixes(folded, []types.LineIssue{item})
		}
		require.Equal(t, folded, ApplyFixes(text, feedback), "iteration %d", iter)

		applied := Plan(text, feedback)
		require.Len(t, applied, len(feedback))
	}
}

func TestApplyFixes_UntouchedLines(t *testing.T) {
	text := "Developed a billing service\nWorked on reports\nDesigned the data model"
	report := ats.Score(text, nil, 0)

	improved := ApplyFixes(text, report.LineFeedback)

	assert.Contains(t, improved, "Developed a billing service")
	assert.Contains(t, improved, "Designed the data model")
	assert.Contains(t, improved, "Improved: Worked on reports using measurable impact")
	assert.NotContains(t, strings.Split(improved, "\n"), "Worked on reports")
}

func TestApplyFixes_LengthBound(t *testing.T) {
	text := "Worked on reports\nHelped the sales team\nWorked on reports"
	feedback := ats.LineFeedback(text)

	improved := ApplyFixes(text, feedback)

	bound := len(text)
	for _, item := range feedback {
		bound += strings.Count(text, item.Line) * (len(item.ImprovedExample) - len(item.Line))
	}
	assert.LessOrEqual(t, len(improved), bound)
}
