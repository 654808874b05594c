package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Haloween-arch/Jobtune/internal/types"
)

// SkillVocabulary is the fixed list of skills recognized in resume text.
// Matching is plain substring containment, so "java" also matches "javascript".
var SkillVocabulary = []string{
	"python", "java", "sql", "machine learning", "deep learning",
	"flask", "fastapi", "react", "node", "docker", "aws", "git",
	"linux", "devops", "cloud",
}

var experiencePattern = regexp.MustCompile(`(\d+)\+?\s*(years?|yrs?)`)

// ParseResume extracts skills and years of experience from raw resume text.
// It never fails: text without matches yields no skills and zero experience.
func ParseResume(text string) types.ResumeProfile {
	return types.ResumeProfile{
		Skills:          ExtractSkills(text),
		ExperienceYears: ExtractExperience(text),
		RawText:         text,
	}
}

// ExtractSkills returns the vocabulary skills present in text, in vocabulary order
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	skills := make([]string, 0, len(SkillVocabulary))
	for _, skill := range SkillVocabulary {
		if strings.Contains(lower, skill) {
			skills = append(skills, skill)
		}
	}
	return skills
}

// ExtractExperience returns the largest "<n> years" / "<n> yrs" figure in text, or 0
func ExtractExperience(text string) int {
	best := 0
	for _, m := range experiencePattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// out of int range
			continue
		}
		if n > best {
			best = n
		}
	}
	return best
}
