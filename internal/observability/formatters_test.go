package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Haloween-arch/Jobtune/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResumeProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeProfile(&types.ResumeProfile{
		Skills:          []string{"python", "sql"},
		ExperienceYears: 3,
		RawText:         "Python developer with 3 years",
	})
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Experience: 3 years")
	assert.Contains(t, output, "python, sql")
}

func TestPrintResumeProfile_NoSkills(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResumeProfile(&types.ResumeProfile{})

	assert.Contains(t, buf.String(), "(none detected)")
}

func TestPrintNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeProfile(nil)
	p.PrintATSReport(nil)
	p.PrintCareerReport(nil)

	assert.Empty(t, buf.String())
}

func TestPrintATSReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	feedback := make([]types.LineIssue, 7)
	for i := range feedback {
		feedback[i] = types.LineIssue{Line: "  worked on the reporting module  ", Issues: []string{"Line lacks strong action verbs"}}
	}
	p.PrintATSReport(&types.ATSReport{
		Score:        72,
		Suggestions:  []string{"Add more relevant technical skills"},
		LineFeedback: feedback,
	})
	output := buf.String()

	assert.Contains(t, output, "ATS REPORT")
	assert.Contains(t, output, "ATS Score: 72/100")
	assert.Contains(t, output, "Add more relevant technical skills")
	assert.Contains(t, output, "Flagged lines: 7")
	assert.Contains(t, output, "... and 2 more")
	assert.Equal(t, 5, strings.Count(output, "✗ worked on the reporting module"))
}

func TestPrintJobMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobMatches([]types.JobMatch{
		{Title: "Data Analyst", JobType: types.JobTypeFresher, FinalScore: 40, Skills: []string{"python", "sql"}, DatePosted: "2024-05-01"},
		{Title: "ML Intern", JobType: types.JobTypeInternship, FinalScore: 20},
	})
	output := buf.String()

	assert.Contains(t, output, "JOB MATCHES")
	assert.Contains(t, output, "#1  Data Analyst [FRESHER]")
	assert.Contains(t, output, "Posted: 2024-05-01")
	assert.Contains(t, output, "#2  ML Intern [INTERNSHIP]")
}

func TestPrintJobMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintJobMatches(nil)

	assert.Contains(t, buf.String(), "No matching jobs found")
}

func TestPrintCareerReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	se := types.CareerRecommendation{CurrentRole: "Software Engineer", Category: types.CategoryTech, NextRole: "Senior Software Engineer", MatchScore: 1, MissingSkills: []string{"sql", "git"}}
	da := types.CareerRecommendation{CurrentRole: "Data Analyst", Category: types.CategoryNonTech, NextRole: "Senior Data Analyst", MatchScore: 1}
	p.PrintCareerReport(&types.CareerReport{PrimaryPath: se, TechPaths: []types.CareerRecommendation{se}, NonTechPaths: []types.CareerRecommendation{da}})
	output := buf.String()

	assert.Contains(t, output, "Software Engineer → Senior Software Engineer")
	assert.Contains(t, output, "Missing:  sql, git")
	assert.Contains(t, output, "Non-tech paths:")
	assert.Contains(t, output, "• Data Analyst (1)")
}

func TestPrintBox_LinesAreAligned(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 80)+"\nRows → 3")

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestPrintRefresh(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRefresh("datasets/jobs.csv", 12)

	assert.Contains(t, buf.String(), "Rows:   12")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg...", clip("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", clip(strings.Repeat("é", 20), 6))
}
