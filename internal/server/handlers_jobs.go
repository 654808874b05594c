package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/cache"
	"github.com/Haloween-arch/Jobtune/internal/metrics"
	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// handleRecommendJobs returns postings ranked by skill overlap.
// Non-empty results are cached per dataset version, normalized skill set and
// experience. Unversioned datasets are never cached.
func (s *Server) handleRecommendJobs(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "experience", Message: "Experience must be between 0 and 80 years"})
		return
	}

	ctx := r.Context()

	var key string
	if s.cache != nil {
		if version, ok := s.matcher.DatasetVersion(ctx); ok {
			key = matchCacheKey(version, req.Skills, req.Experience)
		}
	}

	var matches []types.JobMatch
	if key != "" && s.cache.Get(ctx, key, &matches) {
		metrics.JobMatchesReturned.Observe(float64(len(matches)))
		s.jsonResponse(w, http.StatusOK, types.JobRecommendations{RecommendedJobs: matches})
		return
	}

	matches = s.matcher.Match(ctx, req.Skills, req.Experience)
	if matches == nil {
		matches = []types.JobMatch{}
	}
	if key != "" && len(matches) > 0 {
		if err := s.cache.Set(ctx, key, matches); err != nil {
			s.log.Warn("failed to cache job matches", zap.Error(err))
		}
	}

	metrics.JobMatchesReturned.Observe(float64(len(matches)))
	s.jsonResponse(w, http.StatusOK, types.JobRecommendations{RecommendedJobs: matches})
}

// matchCacheKey is independent of skill order, case and duplicates.
func matchCacheKey(version string, skills []string, experience int) string {
	normalized := parsing.NormalizeSkills(skills)
	slices.Sort(normalized)
	return cache.Key("jobs", version, strings.Join(normalized, ","), strconv.Itoa(experience))
}
