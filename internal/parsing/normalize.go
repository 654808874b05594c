// Package parsing provides text normalization and rule-based resume parsing.
package parsing

import (
	"regexp"
	"strings"
)

// digitRun matches any run of decimal digits, including non-ASCII ones.
var digitRun = regexp.MustCompile(`\p{Nd}+`)

// asciiPunctuation is the set of characters stripped by NormalizeText.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// NormalizeText prepares free text for keyword matching: it lowercases,
// replaces digit runs with a space, strips ASCII punctuation and collapses
// whitespace to single spaces.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = digitRun.ReplaceAllString(text, " ")
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(text), " ")
}

// NormalizeSkill returns the canonical comparison form of a skill name
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// NormalizeSkills normalizes a list of skills, dropping empty entries and
// duplicates while preserving first-seen order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	result := make([]string, 0, len(skills))
	for _, s := range skills {
		n := NormalizeSkill(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		result = append(result, n)
	}
	return result
}

// SkillSet builds a lookup set from a list of skills using NormalizeSkills.
func SkillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range NormalizeSkills(skills) {
		set[s] = true
	}
	return set
}

// SplitSkills splits a comma-separated skills cell into normalized skills.
func SplitSkills(cell string) []string {
	return NormalizeSkills(strings.Split(cell, ","))
}
