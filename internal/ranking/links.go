package ranking

import (
	"net/url"
	"strings"

	"github.com/Haloween-arch/Jobtune/internal/types"
)

// roleKeyword maps a title fragment to the search keyword used for it.
type roleKeyword struct {
	Fragment string
	Keyword  string
}

// roleKeywords is scanned in order; the first fragment found in the title wins.
var roleKeywords = []roleKeyword{
	{"software engineer", "software engineer"},
	{"frontend", "frontend developer"},
	{"backend", "backend developer"},
	{"full stack", "full stack developer"},
	{"machine learning", "machine learning engineer"},
	{"data analyst", "data analyst"},
	{"data scientist", "data scientist"},
	{"devops", "devops engineer"},
	{"qa", "qa engineer"},
	{"tester", "software tester"},
	{"business analyst", "business analyst"},
	{"product analyst", "product analyst"},
	{"hr", "hr executive"},
	{"operations", "operations executive"},
}

// defaultSearchKeyword is used when no role fragment matches the title.
const defaultSearchKeyword = "software jobs"

const (
	linkedInSearchURL = "https://www.linkedin.com/jobs/search/?keywords=%s&location=India"
	naukriSearchURL   = "https://www.naukri.com/%s-jobs"
)

// SearchKeyword derives the job-board search phrase for a posting title
func SearchKeyword(title string, jobType types.JobType) string {
	lower := strings.ToLower(title)

	keyword := defaultSearchKeyword
	for _, rk := range roleKeywords {
		if strings.Contains(lower, rk.Fragment) {
			keyword = rk.Keyword
			break
		}
	}

	if jobType == types.JobTypeInternship {
		return keyword + " internship"
	}
	return keyword + " fresher"
}

// BuildLinks returns the LinkedIn and Naukri search URLs for a posting
func BuildLinks(title string, jobType types.JobType) (linkedIn, naukri string) {
	q := url.QueryEscape(SearchKeyword(title, jobType))

	linkedIn = strings.Replace(linkedInSearchURL, "%s", q, 1)
	naukri = strings.Replace(naukriSearchURL, "%s", strings.ReplaceAll(q, "+", "-"), 1)
	return linkedIn, naukri
}

// ClassifyJobType marks titles mentioning "intern" as internships
func ClassifyJobType(title string) types.JobType {
	if strings.Contains(strings.ToLower(title), "intern") {
		return types.JobTypeInternship
	}
	return types.JobTypeFresher
}
