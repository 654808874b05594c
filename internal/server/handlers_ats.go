package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Haloween-arch/Jobtune/internal/ats"
	"github.com/Haloween-arch/Jobtune/internal/metrics"
	"github.com/Haloween-arch/Jobtune/internal/rendering"
	"github.com/Haloween-arch/Jobtune/internal/repair"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// pdfFilename is the attachment name of exported resumes
const pdfFilename = "improved_resume.pdf"

// handleATSScore scores resume text for ATS compatibility.
func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if len(strings.TrimSpace(req.ResumeText)) < ats.MinResumeChars {
		s.writeError(w, r, &ErrValidation{Field: "resume_text", Message: msgTextTooShort})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, &ErrValidation{Field: "experience", Message: "Experience must be between 0 and 80 years"})
		return
	}

	report := ats.Score(req.ResumeText, req.Skills, req.Experience)
	metrics.ATSScores.Observe(float64(report.Score))

	s.jsonResponse(w, http.StatusOK, report)
}

// handleApplyFixes replaces flagged lines with their suggested rewrites.
func (s *Server) handleApplyFixes(w http.ResponseWriter, r *http.Request) {
	var req types.ApplyFixesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if req.ResumeText == "" {
		s.writeError(w, r, &ErrValidation{Field: "resume_text", Message: msgTextMissing})
		return
	}

	s.jsonResponse(w, http.StatusOK, types.ImprovedResume{
		ImprovedResume: repair.ApplyFixes(req.ResumeText, req.Feedback),
	})
}

// handleExportPDF renders resume text as a downloadable PDF.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var req types.ExportPDFRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if req.ResumeText == "" {
		s.writeError(w, r, &ErrValidation{Field: "resume_text", Message: msgTextMissing})
		return
	}

	// Render fully before writing so failures can still produce a JSON error
	pdf, err := rendering.RenderPDFBytes(req.ResumeText)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+pdfFilename)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
