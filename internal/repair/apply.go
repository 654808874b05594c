// Package repair applies ATS line feedback back onto resume text.
package repair

import (
	"strings"

	"github.com/Haloween-arch/Jobtune/internal/types"
)

// ApplyFixes replaces every flagged line of text with its improved example.
//
// Items are processed in order against the progressively updated text, so an
// earlier replacement can change what a later item matches. An item is
// skipped when its line or its improved example is empty, or when its line
// no longer occurs in the text.
func ApplyFixes(text string, feedback []types.LineIssue) string {
	updated := text
	for _, item := range feedback {
		if !applicable(updated, item) {
			continue
		}
		updated = strings.ReplaceAll(updated, item.Line, item.ImprovedExample)
	}
	return updated
}

// Plan reports, for each feedback item, whether ApplyFixes would apply it.
// It walks the same progressive text as ApplyFixes.
func Plan(text string, feedback []types.LineIssue) []bool {
	applied := make([]bool, len(feedback))
	updated := text
	for i, item := range feedback {
		if !applicable(updated, item) {
			continue
		}
		applied[i] = true
		updated = strings.ReplaceAll(updated, item.Line, item.ImprovedExample)
	}
	return applied
}

func applicable(text string, item types.LineIssue) bool {
	return item.Line != "" && item.ImprovedExample != "" && strings.Contains(text, item.Line)
}
