package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Haloween-arch/Jobtune/internal/ranking"
	"github.com/Haloween-arch/Jobtune/internal/schemas"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

var matchJobsCmd = &cobra.Command{
	Use:   "match-jobs",
	Short: "Rank job postings against a resume",
	Long:  "Rank postings from the job dataset by skill overlap with a resume. Uses Postgres when database.url is configured, unless --dataset selects a CSV file.",
	RunE:  runMatchJobs,
}

var (
	matchInput   string
	matchSkills  string
	matchDataset string
	matchOutput  string
)

func init() {
	matchJobsCmd.Flags().StringVarP(&matchInput, "in", "i", "", "Path to resume file")
	matchJobsCmd.Flags().StringVar(&matchSkills, "skills", "", "Comma-separated skills (used instead of --in)")
	matchJobsCmd.Flags().StringVarP(&matchDataset, "dataset", "d", "", "Path to job dataset CSV (default from config)")
	matchJobsCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	matchJobsCmd.MarkFlagsOneRequired("in", "skills")
	matchJobsCmd.MarkFlagsMutuallyExclusive("in", "skills")

	rootCmd.AddCommand(matchJobsCmd)
}

func runMatchJobs(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	var (
		skills     []string
		experience int
	)
	if matchInput != "" {
		profile, err := loadProfile(matchInput)
		if err != nil {
			return err
		}
		skills, experience = profile.Skills, profile.ExperienceYears
	} else {
		skills = splitSkillsFlag(matchSkills)
	}

	store, _, closeStore, err := openJobStore(ctx, matchDataset)
	if err != nil {
		return err
	}
	defer closeStore()

	matches := ranking.NewMatcher(store, appLogger).Match(ctx, skills, experience)
	result := types.JobRecommendations{RecommendedJobs: matches}

	if p := printer(); p != nil {
		p.PrintJobMatches(matches)
	}
	return writeOutput(matchOutput, schemas.JobMatches, result)
}
