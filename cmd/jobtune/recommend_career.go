package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Haloween-arch/Jobtune/internal/career"
	"github.com/Haloween-arch/Jobtune/internal/schemas"
)

var recommendCareerCmd = &cobra.Command{
	Use:   "recommend-career",
	Short: "Recommend career paths for a skill set",
	Long:  "Rank the career catalogue against a skill list, reporting missing skills and learning resources for each path.",
	RunE:  runRecommendCareer,
}

var (
	careerSkills    string
	careerInput     string
	careerCatalogue string
	careerOutput    string
)

func init() {
	recommendCareerCmd.Flags().StringVar(&careerSkills, "skills", "", "Comma-separated skills")
	recommendCareerCmd.Flags().StringVarP(&careerInput, "in", "i", "", "Path to resume file (skills are detected from it)")
	recommendCareerCmd.Flags().StringVar(&careerCatalogue, "catalogue", "", "Path to a custom career catalogue YAML")
	recommendCareerCmd.Flags().StringVarP(&careerOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	recommendCareerCmd.MarkFlagsOneRequired("skills", "in")
	recommendCareerCmd.MarkFlagsMutuallyExclusive("skills", "in")

	rootCmd.AddCommand(recommendCareerCmd)
}

func runRecommendCareer(_ *cobra.Command, _ []string) error {
	skills := splitSkillsFlag(careerSkills)
	if careerInput != "" {
		profile, err := loadProfile(careerInput)
		if err != nil {
			return err
		}
		skills = profile.Skills
	}

	catalogue, err := loadCatalogue(careerCatalogue)
	if err != nil {
		return err
	}

	recommender, err := career.NewRecommender(catalogue, appLogger)
	if err != nil {
		return err
	}
	report := recommender.Recommend(skills)

	if p := printer(); p != nil {
		p.PrintCareerReport(&report)
	}
	return writeOutput(careerOutput, schemas.CareerReport, report)
}

// loadCatalogue reads a catalogue override. An empty path selects the
// embedded default.
func loadCatalogue(path string) (*career.Catalogue, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}
	return career.ParseCatalogue(data)
}
