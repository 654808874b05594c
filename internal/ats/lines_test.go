package ats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFeedback(t *testing.T) {
	text := "John Doe\n" +
		"Developed a payments API in Go\n" +
		"   Responsible for weekly reports   \n" +
		"\n" +
		"LED the migration to Kubernetes\n" +
		"Worked with the sales team"

	feedback := LineFeedback(text)

	require.Len(t, feedback, 2)

	assert.Equal(t, "   Responsible for weekly reports   ", feedback[0].Line, "line is kept untrimmed")
	assert.Equal(t, []string{IssueNoActionVerb}, feedback[0].Issues)
	assert.Equal(t, "Improved: Responsible for weekly reports using measurable impact", feedback[0].ImprovedExample)

	assert.Equal(t, "Worked with the sales team", feedback[1].Line)
}

func TestLineFeedback_ShortLinesSkipped(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		flagged bool
	}{
		{"Nine characters", "abcdefghi", false},
		{"Ten characters", "abcdefghij", true},
		{"Padding does not count", "    abcdefghi     ", false},
		{"Multibyte characters counted as runes", "ééééééééé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback := LineFeedback(tt.line)
			if tt.flagged {
				assert.Len(t, feedback, 1)
			} else {
				assert.Empty(t, feedback)
			}
		})
	}
}

func TestLineFeedback_SubstringVerbMatch(t *testing.T) {
	// "skilled" contains "led", so the line counts as having a verb
	assert.Empty(t, LineFeedback("Skilled in customer support"))
}

func TestLineFeedback_EmptyText(t *testing.T) {
	feedback := LineFeedback("")
	assert.NotNil(t, feedback)
	assert.Empty(t, feedback)
}
