package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpaceRe  = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLinesRe  = regexp.MustCompile(`\n{3,}`)
	bulletMarkers = []string{"- ", "* ", "• ", "· ", "▪ "}
)

// CleanText normalizes extracted resume text while keeping its line structure.
// Line endings become LF, runs of spaces and tabs collapse to one space, form
// feeds left by PDF page breaks disappear and at most one blank line separates
// blocks. Bullet glyphs are normalized to "- ".
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := strings.Join(lines, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimSpace(innerSpaceRe.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}

	if isBulletLine(line) {
		for _, m := range bulletMarkers {
			if rest, ok := strings.CutPrefix(line, m); ok {
				return "- " + strings.TrimSpace(rest)
			}
		}
	}
	return line
}

// isBulletLine checks if a line starts with a bullet marker
func isBulletLine(line string) bool {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
