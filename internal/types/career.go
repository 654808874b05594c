package types

// CareerCategory groups career paths into technical and non-technical tracks
type CareerCategory string

const (
	CategoryTech    CareerCategory = "Tech"
	CategoryNonTech CareerCategory = "Non-Tech"
)

// CareerPath is a static catalogue entry describing a role and the skills it requires
type CareerPath struct {
	Role           string         `json:"role" yaml:"role"`
	Category       CareerCategory `json:"category" yaml:"category"`
	RequiredSkills []string       `json:"required_skills" yaml:"required"`
	NextRole       string         `json:"next_role" yaml:"next"`
}

// LearningResources maps a platform name (youtube, coursera, ...) to a URL.
type LearningResources map[string]string

// CareerRecommendation is a career path ranked against a candidate's skills
type CareerRecommendation struct {
	CurrentRole       string                       `json:"current_role"`
	Category          CareerCategory               `json:"category"`
	NextRole          string                       `json:"next_role"`
	MatchScore        int                          `json:"match_score"`
	MissingSkills     []string                     `json:"missing_skills"`
	LearningResources map[string]LearningResources `json:"learning_resources"`
}

// CareerReport is the full output of the career recommender
type CareerReport struct {
	PrimaryPath  CareerRecommendation   `json:"primary_path"`
	TechPaths    []CareerRecommendation `json:"tech_paths"`
	NonTechPaths []CareerRecommendation `json:"non_tech_paths"`
}

// IsValid reports whether the category is one of the known tracks.
func (c CareerCategory) IsValid() bool {
	return c == CategoryTech || c == CategoryNonTech
}
