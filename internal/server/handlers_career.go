package server

import (
	"net/http"

	"github.com/Haloween-arch/Jobtune/internal/types"
)

// handleCareerRecommend ranks career paths for the submitted skills.
func (s *Server) handleCareerRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.CareerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "skills", Message: "Skills must be at most 100 characters each"})
		return
	}

	s.jsonResponse(w, http.StatusOK, s.recommender.Recommend(req.Skills))
}
