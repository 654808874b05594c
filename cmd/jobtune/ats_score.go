package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/ats"
	"github.com/Haloween-arch/Jobtune/internal/schemas"
)

var atsScoreCmd = &cobra.Command{
	Use:   "ats-score",
	Short: "Score a resume for ATS compatibility",
	Long:  "Score a resume between 65 and 95 and list suggestions plus weak lines with rewrite examples. Skills and experience are detected from the resume unless given explicitly.",
	RunE:  runATSScore,
}

var (
	atsInput      string
	atsOutput     string
	atsSkills     string
	atsExperience int
)

func init() {
	atsScoreCmd.Flags().StringVarP(&atsInput, "in", "i", "", "Path to resume file (required)")
	atsScoreCmd.Flags().StringVarP(&atsOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	atsScoreCmd.Flags().StringVar(&atsSkills, "skills", "", "Comma-separated skills (default: detected from resume)")
	atsScoreCmd.Flags().IntVar(&atsExperience, "experience", 0, "Years of experience (default: detected from resume)")
	_ = atsScoreCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(atsScoreCmd)
}

func runATSScore(cmd *cobra.Command, _ []string) error {
	profile, err := loadProfile(atsInput)
	if err != nil {
		return err
	}

	if len(strings.TrimSpace(profile.RawText)) < ats.MinResumeChars {
		return fmt.Errorf("resume text is empty or too short (need at least %d characters)", ats.MinResumeChars)
	}

	skills := profile.Skills
	if cmd.Flags().Changed("skills") {
		skills = splitSkillsFlag(atsSkills)
	}
	experience := profile.ExperienceYears
	if cmd.Flags().Changed("experience") {
		if atsExperience < 0 {
			return fmt.Errorf("--experience must not be negative")
		}
		experience = atsExperience
	}

	report := ats.Score(profile.RawText, skills, experience)
	appLogger.Debug("resume scored",
		zap.Int("score", report.Score),
		zap.Int("suggestions", len(report.Suggestions)),
		zap.Int("flagged_lines", len(report.LineFeedback)),
	)

	if p := printer(); p != nil {
		p.PrintATSReport(&report)
	}
	return writeOutput(atsOutput, schemas.ATSReport, report)
}
