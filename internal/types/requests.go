package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ResumeRequest carries resume text plus the caller's view of skills and experience.
// It is the body of the job-recommendation and ATS-scoring endpoints.
type ResumeRequest struct {
	ResumeText string   `json:"resume_text"`
	Skills     []string `json:"skills"`
	Experience int      `json:"experience" validate:"gte=0,lte=80"`
}

// ApplyFixesRequest asks for flagged lines to be replaced by their suggestions.
type ApplyFixesRequest struct {
	ResumeText string      `json:"resume_text"`
	Feedback   []LineIssue `json:"feedback"`
}

// ExportPDFRequest asks for resume text to be rendered as a PDF.
type ExportPDFRequest struct {
	ResumeText string `json:"resume_text"`
}

// CareerRequest asks for career-path recommendations for a skill list.
type CareerRequest struct {
	Skills []string `json:"skills" validate:"dive,max=100"`
}

// UploadResponse is returned after a resume file has been parsed.
type UploadResponse struct {
	Filename     string        `json:"filename"`
	ParsedResume ResumeProfile `json:"parsed_resume"`
}

// JobRecommendations wraps the matched postings.
type JobRecommendations struct {
	RecommendedJobs []JobMatch `json:"recommended_jobs"`
}

// ImprovedResume is the result of applying line fixes.
type ImprovedResume struct {
	ImprovedResume string `json:"improved_resume"`
}

// Validate validates the ResumeRequest using the validator.
func (r *ResumeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the CareerRequest using the validator.
func (r *CareerRequest) Validate() error {
	return validate.Struct(r)
}
