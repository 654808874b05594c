package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Haloween-arch/Jobtune/internal/types"
)

const cliResume = `Jane Doe
Data analyst with 2 years of experience using Python, SQL and Excel.
Worked on monthly sales dashboards
Built forecasting models that cut stockouts by 12%`

const cliDataset = `title,description,skills
Data Analyst,Analyse sales data,"python, sql, excel"
HR Executive,Recruitment,"communication, recruitment"
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCommands_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{name: "parse-resume missing --in", args: []string{"parse-resume"}, errorString: "required"},
		{name: "ats-score missing --in", args: []string{"ats-score"}, errorString: "required"},
		{name: "apply-fixes missing --feedback", args: []string{"apply-fixes", "--in", "x.txt"}, errorString: "required"},
		{name: "match-jobs needs input", args: []string{"match-jobs"}, errorString: "at least one of the flags"},
		{name: "recommend-career exclusive", args: []string{"recommend-career", "--skills", "a", "--in", "x.txt"}, errorString: "none of the others can be"},
		{name: "export-pdf missing --in", args: []string{"export-pdf"}, errorString: "required"},
		{name: "import-jobs missing --dataset", args: []string{"import-jobs"}, errorString: "required"},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := exec.Command(binaryPath, tt.args...).CombinedOutput()
			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}

func TestATSScoreCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	resume := writeFixture(t, "resume.txt", cliResume)

	output, err := exec.Command(binaryPath, "ats-score", "--in", resume).Output()
	require.NoError(t, err)

	var report types.ATSReport
	require.NoError(t, json.Unmarshal(output, &report))
	assert.GreaterOrEqual(t, report.Score, 65)
	assert.LessOrEqual(t, report.Score, 95)
}

func TestATSScoreCommand_TooShort(t *testing.T) {
	binaryPath := getBinaryPath(t)
	resume := writeFixture(t, "resume.txt", "short")

	output, err := exec.Command(binaryPath, "ats-score", "--in", resume).CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "too short")
}

func TestMatchJobsCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataset := writeFixture(t, "jobs.csv", cliDataset)

	output, err := exec.Command(binaryPath, "match-jobs", "--skills", "python,sql", "--dataset", dataset).Output()
	require.NoError(t, err)

	var result types.JobRecommendations
	require.NoError(t, json.Unmarshal(output, &result))
	require.Len(t, result.RecommendedJobs, 1)
	assert.Equal(t, "Data Analyst", result.RecommendedJobs[0].Title)
	assert.Equal(t, 40, result.RecommendedJobs[0].FinalScore)
}

func TestRecommendCareerCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)

	output, err := exec.Command(binaryPath, "recommend-career", "--skills", "python").Output()
	require.NoError(t, err)

	var report types.CareerReport
	require.NoError(t, json.Unmarshal(output, &report))
	assert.Equal(t, types.CategoryTech, report.PrimaryPath.Category)
}

func TestExportPDFCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	resume := writeFixture(t, "resume.txt", cliResume)
	out := filepath.Join(t.TempDir(), "resume.pdf")

	_, err := exec.Command(binaryPath, "export-pdf", "--in", resume, "--out", out).CombinedOutput()
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestRefreshJobsCommand(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataset := writeFixture(t, "jobs.csv", cliDataset)

	output, err := exec.Command(binaryPath, "refresh-jobs", "--dataset", dataset).Output()
	require.NoError(t, err)
	assert.Contains(t, string(output), "Refreshed 2 job postings")

	data, err := os.ReadFile(dataset)
	require.NoError(t, err)
	assert.Contains(t, string(data), "date_posted")
}
