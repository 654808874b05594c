package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haloween-arch/Jobtune/internal/types"
)

func TestNames(t *testing.T) {
	assert.Equal(t,
		[]string{ATSReport, CareerReport, JobMatches, LineFeedback, ResumeProfile},
		Names())
}

func TestAllSchemas_Compile(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			raw, err := Raw(name)
			require.NoError(t, err)
			assert.True(t, json.Valid(raw))

			_, err = load(name)
			require.NoError(t, err)
		})
	}
}

func TestRaw_Unknown(t *testing.T) {
	_, err := Raw("nope")

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateDocument_ATSReport(t *testing.T) {
	report := types.ATSReport{
		Score:       80,
		Suggestions: []string{"Add more relevant technical skills"},
		LineFeedback: []types.LineIssue{
			{Line: "worked on backend", Issues: []string{"Line lacks strong action verbs"}, ImprovedExample: "Improved: worked on backend using measurable impact"},
		},
	}
	assert.NoError(t, ValidateDocument(ATSReport, report))

	report.Score = 40
	err := ValidateDocument(ATSReport, report)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ats_score", verr.Errors[0].Field)
}

func TestValidateDocument_NilSlicesRejected(t *testing.T) {
	err := ValidateDocument(ATSReport, types.ATSReport{Score: 70})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)
}

func TestValidateDocument_JobMatches(t *testing.T) {
	doc := map[string][]types.JobMatch{
		"recommended_jobs": {{
			Title:           "Data Analyst",
			JobType:         types.JobTypeFresher,
			ExperienceLevel: types.DefaultExperienceLevel,
			Skills:          []string{"python", "sql", "excel"},
			FinalScore:      40,
			LinkedInLink:    "https://www.linkedin.com/jobs/search/?keywords=data+analyst+fresher&location=India",
			NaukriLink:      "https://www.naukri.com/data-analyst-fresher-jobs",
			DatePosted:      "2024-01-02",
		}},
	}
	assert.NoError(t, ValidateDocument(JobMatches, doc))

	doc["recommended_jobs"][0].JobType = "PART_TIME"
	assert.Error(t, ValidateDocument(JobMatches, doc))
}

func TestValidateDocument_CareerReport(t *testing.T) {
	rec := types.CareerRecommendation{
		CurrentRole:   "Software Engineer",
		Category:      types.CategoryTech,
		NextRole:      "Senior Software Engineer",
		MatchScore:    1,
		MissingSkills: []string{"sql"},
		LearningResources: map[string]types.LearningResources{
			"sql": {"w3schools": "https://www.w3schools.com/sql/"},
		},
	}
	report := types.CareerReport{
		PrimaryPath:  rec,
		TechPaths:    []types.CareerRecommendation{rec},
		NonTechPaths: []types.CareerRecommendation{},
	}
	assert.NoError(t, ValidateDocument(CareerReport, report))

	report.TechPaths[0].Category = "Other"
	assert.Error(t, ValidateDocument(CareerReport, report))
}

func TestValidateJSON_LineFeedback(t *testing.T) {
	assert.NoError(t, ValidateJSON(LineFeedback, []byte(`[{"line":"a","issues":[],"improved_example":"b"}]`)))

	err := ValidateJSON(LineFeedback, []byte(`[{"line":"a"}]`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "line_feedback validation failed")
}

func TestValidateJSON_Malformed(t *testing.T) {
	err := ValidateJSON(ResumeProfile, []byte(`{ invalid json }`))
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestValidateJSON_UnknownSchema(t *testing.T) {
	err := ValidateJSON("nope", []byte(`{}`))

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
