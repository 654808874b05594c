package career

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/logger"
	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// Fallback path offered when no catalogue role shares a skill with the candidate.
const (
	FallbackRole     = "Software Engineer"
	FallbackNextRole = "Specialist Engineer"
)

// FallbackMissingSkills lists the skills suggested with the fallback path.
var FallbackMissingSkills = []string{"system design", "cloud", "data structures"}

// Recommender ranks catalogue career paths against candidate skills.
type Recommender struct {
	catalogue *Catalogue
	logger    *zap.Logger
}

// NewRecommender creates a recommender over catalogue. A nil catalogue uses
// the embedded default.
func NewRecommender(catalogue *Catalogue, log *zap.Logger) (*Recommender, error) {
	if catalogue == nil {
		c, err := DefaultCatalogue()
		if err != nil {
			return nil, err
		}
		catalogue = c
	}
	return &Recommender{catalogue: catalogue, logger: logger.Component(log, "career-recommender")}, nil
}

// Recommend scores every path by the number of required skills the
// candidate has, keeps paths with at least one, and splits them by category.
// Within a category paths are sorted by match score, ties keeping catalogue
// order.
func (r *Recommender) Recommend(skills []string) types.CareerReport {
	have := parsing.SkillSet(skills)

	tech := make([]types.CareerRecommendation, 0)
	nonTech := make([]types.CareerRecommendation, 0)

	for _, p := range r.catalogue.Paths {
		rec, ok := r.score(p, have)
		if !ok {
			continue
		}
		if p.Category == types.CategoryTech {
			tech = append(tech, rec)
		} else {
			nonTech = append(nonTech, rec)
		}
	}

	sortByMatch(tech)
	sortByMatch(nonTech)

	if len(tech) == 0 && len(nonTech) == 0 {
		r.logger.Debug("no career path matched, using fallback", zap.Int("skills", len(have)))
		tech = append(tech, fallback())
	}

	report := types.CareerReport{TechPaths: tech, NonTechPaths: nonTech}
	if len(tech) > 0 {
		report.PrimaryPath = tech[0]
	} else {
		report.PrimaryPath = nonTech[0]
	}
	return report
}

func (r *Recommender) score(p types.CareerPath, have map[string]bool) (types.CareerRecommendation, bool) {
	matched := 0
	missing := make([]string, 0, len(p.RequiredSkills))
	for _, s := range p.RequiredSkills {
		if have[s] {
			matched++
		} else {
			missing = append(missing, s)
		}
	}
	if matched == 0 {
		return types.CareerRecommendation{}, false
	}

	resources := make(map[string]types.LearningResources, len(missing))
	for _, s := range missing {
		resources[s] = r.catalogue.ResourcesFor(s)
	}

	return types.CareerRecommendation{
		CurrentRole:       p.Role,
		Category:          p.Category,
		NextRole:          p.NextRole,
		MatchScore:        matched,
		MissingSkills:     missing,
		LearningResources: resources,
	}, true
}

func sortByMatch(recs []types.CareerRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchScore > recs[j].MatchScore
	})
}

func fallback() types.CareerRecommendation {
	return types.CareerRecommendation{
		CurrentRole:       FallbackRole,
		Category:          types.CategoryTech,
		NextRole:          FallbackNextRole,
		MatchScore:        0,
		MissingSkills:     append([]string(nil), FallbackMissingSkills...),
		LearningResources: map[string]types.LearningResources{},
	}
}
