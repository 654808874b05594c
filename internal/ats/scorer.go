// Package ats provides rule-based ATS compatibility scoring for resumes.
package ats

import (
	"strings"

	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// Score bounds. Every report is clamped into [MinScore, MaxScore].
const (
	MinScore = 65
	MaxScore = 95
)

// MinResumeChars is the minimum trimmed length a resume needs before it is scored.
// The check belongs to callers (HTTP and CLI), the scorer itself accepts any text.
const MinResumeChars = 50

// ActionVerbs is the fixed vocabulary used as a proxy for strong phrasing.
var ActionVerbs = []string{
	"developed", "built", "designed", "implemented",
	"analyzed", "optimized", "deployed", "led",
	"created", "improved", "managed",
}

// Suggestions emitted on the weaker tiers
const (
	SuggestMoreSkills       = "Add more relevant technical skills"
	SuggestFewMoreSkills    = "Add 2–3 more relevant technical skills"
	SuggestLacksSkills      = "Your resume lacks sufficient technical skills"
	SuggestIncreaseLength   = "Increase resume length to ~500 words"
	SuggestTooShort         = "Your resume is too short for ATS systems"
	SuggestActionVerbs      = "Use more action verbs (developed, implemented, optimized)"
	SuggestHighlightProject = "Highlight internships or hands-on projects"
	SuggestAddProjects      = "Add projects or internship experience"
	SuggestFormatting       = "Avoid tables, columns, or special symbols"
)

// Score computes the ATS report for a resume. skills is the candidate's
// skill list (duplicates and case variants count once) and experience the
// estimated years of experience.
func Score(resumeText string, skills []string, experience int) types.ATSReport {
	text := strings.ToLower(resumeText)
	s := &suggestionSet{}

	total := computeSkillsScore(len(parsing.NormalizeSkills(skills)), s) +
		computeLengthScore(len(strings.Fields(text)), s) +
		computeVerbScore(countActionVerbs(text), s) +
		computeExperienceScore(experience, s) +
		computeFormattingScore(text, s)

	return types.ATSReport{
		Score:        clamp(total, MinScore, MaxScore),
		Suggestions:  s.items(),
		LineFeedback: LineFeedback(resumeText),
	}
}

func computeSkillsScore(count int, s *suggestionSet) int {
	switch {
	case count >= 8:
		return 35
	case count >= 6:
		s.add(SuggestMoreSkills)
		return 30
	case count >= 4:
		s.add(SuggestFewMoreSkills)
		return 24
	default:
		s.add(SuggestLacksSkills)
		return 18
	}
}

func computeLengthScore(words int, s *suggestionSet) int {
	switch {
	case words >= 450 && words <= 900:
		return 20
	case words >= 300 && words < 450:
		s.add(SuggestIncreaseLength)
		return 16
	default:
		s.add(SuggestTooShort)
		return 12
	}
}

func computeVerbScore(hits int, s *suggestionSet) int {
	if hits >= 5 {
		return 15
	}
	s.add(SuggestActionVerbs)
	return 10
}

func computeExperienceScore(years int, s *suggestionSet) int {
	switch {
	case years >= 3:
		return 20
	case years == 2:
		s.add(SuggestHighlightProject)
		return 17
	case years == 1:
		s.add(SuggestHighlightProject)
		return 14
	default:
		s.add(SuggestAddProjects)
		return 10
	}
}

func computeFormattingScore(text string, s *suggestionSet) int {
	if !strings.Contains(text, "|") && !strings.Contains(text, "\t") {
		return 10
	}
	s.add(SuggestFormatting)
	return 7
}

// countActionVerbs counts distinct action verbs occurring anywhere in lowered text
func countActionVerbs(lowered string) int {
	hits := 0
	for _, v := range ActionVerbs {
		if strings.Contains(lowered, v) {
			hits++
		}
	}
	return hits
}

func containsActionVerb(lowered string) bool {
	for _, v := range ActionVerbs {
		if strings.Contains(lowered, v) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// suggestionSet keeps suggestions unique in first-added order.
type suggestionSet struct {
	seen  map[string]bool
	order []string
}

func (s *suggestionSet) add(msg string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[msg] {
		return
	}
	s.seen[msg] = true
	s.order = append(s.order, msg)
}

func (s *suggestionSet) items() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}
