// Package ranking provides functionality to match job postings against a candidate's skills.
package ranking

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/jobs"
	"github.com/Haloween-arch/Jobtune/internal/logger"
	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// pointsPerSkill is awarded for each skill shared with a posting.
const pointsPerSkill = 20

// Matcher ranks postings from a job source against candidate skills
type Matcher struct {
	source jobs.Source
	logger *zap.Logger
}

// NewMatcher creates a Matcher reading postings from source
func NewMatcher(source jobs.Source, log *zap.Logger) *Matcher {
	return &Matcher{source: source, logger: logger.Component(log, "job-matcher")}
}

// Match returns the postings sharing at least one skill with the candidate,
// ordered by descending score with dataset order kept among ties.
//
// experience is accepted for interface stability; every match currently
// reports the same experience level. When the dataset cannot be read the
// failure is logged and an empty list is returned.
func (m *Matcher) Match(ctx context.Context, skills []string, experience int) []types.JobMatch {
	postings, err := m.source.Load(ctx)
	if err != nil {
		m.logger.Warn("job dataset unavailable, returning no matches",
			zap.Error(err), zap.Bool("not_found", jobs.IsNotFound(err)))
		return []types.JobMatch{}
	}

	m.logger.Debug("matching jobs",
		zap.Int("postings", len(postings)), zap.Int("skills", len(skills)), zap.Int("experience", experience))
	return MatchPostings(postings, skills)
}

// DatasetVersion reports the version of the snapshot Match would read now.
// ok is false when the source is not versioned or its version cannot be
// read, in which case results must not be cached.
func (m *Matcher) DatasetVersion(ctx context.Context) (string, bool) {
	v, isVersioned := m.source.(jobs.Versioned)
	if !isVersioned {
		return "", false
	}
	version, err := v.Version(ctx)
	if err != nil {
		m.logger.Debug("job dataset version unavailable", zap.Error(err))
		return "", false
	}
	return version, true
}

// MatchPostings scores postings against skills. It is the pure core of Match.
func MatchPostings(postings []types.JobPosting, skills []string) []types.JobMatch {
	candidate := parsing.SkillSet(skills)
	matches := make([]types.JobMatch, 0)

	for _, p := range postings {
		matched := countMatched(candidate, p.Skills)
		if matched == 0 {
			continue
		}

		jobType := ClassifyJobType(p.Title)
		linkedIn, naukri := BuildLinks(p.Title, jobType)
		matches = append(matches, types.JobMatch{
			Title:           p.Title,
			JobType:         jobType,
			ExperienceLevel: types.DefaultExperienceLevel,
			Skills:          append([]string(nil), p.Skills...),
			FinalScore:      computeFinalScore(matched),
			LinkedInLink:    linkedIn,
			NaukriLink:      naukri,
			DatePosted:      p.DatePosted,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].FinalScore > matches[j].FinalScore
	})
	return matches
}

// countMatched counts distinct posting skills present in the candidate set
func countMatched(candidate map[string]bool, postingSkills []string) int {
	seen := make(map[string]bool, len(postingSkills))
	n := 0
	for _, s := range postingSkills {
		s = parsing.NormalizeSkill(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		if candidate[s] {
			n++
		}
	}
	return n
}

func computeFinalScore(matched int) int {
	return min(types.MaxJobScore, pointsPerSkill*matched)
}
