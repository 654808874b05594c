package types

// JobType classifies a posting as an internship or a fresher role
type JobType string

const (
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeFresher    JobType = "FRESHER"
)

// DefaultExperienceLevel is reported for every matched posting.
const DefaultExperienceLevel = "0-2 years"

// MaxJobScore caps JobMatch.FinalScore.
const MaxJobScore = 100

// JobPosting is a single row of the external job dataset
type JobPosting struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	CleanDescription string   `json:"clean_description,omitempty"`
	Skills           []string `json:"skills"` // lowercased, trimmed, deduplicated
	DatePosted       string   `json:"date_posted,omitempty"`
}

// JobMatch is a posting that shares at least one skill with the candidate
type JobMatch struct {
	Title           string   `json:"title"`
	JobType         JobType  `json:"job_type"`
	ExperienceLevel string   `json:"experience_level"`
	Skills          []string `json:"skills"`
	FinalScore      int      `json:"final_score"`
	LinkedInLink    string   `json:"linkedin_link"`
	NaukriLink      string   `json:"naukri_link"`
	DatePosted      string   `json:"date_posted,omitempty"`
}

// IsInternship reports whether the match was classified as an internship.
func (m *JobMatch) IsInternship() bool {
	return m.JobType == JobTypeInternship
}
