package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Haloween-arch/Jobtune/internal/ingestion"
	"github.com/Haloween-arch/Jobtune/internal/parsing"
	"github.com/Haloween-arch/Jobtune/internal/schemas"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Extract skills and experience from a resume",
	Long:  "Read a PDF, DOCX, TXT or Markdown resume and print the detected skills, years of experience and cleaned text as JSON.",
	RunE:  runParseResume,
}

var (
	parseResumeInput  string
	parseResumeOutput string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeInput, "in", "i", "", "Path to resume file (required)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	_ = parseResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(_ *cobra.Command, _ []string) error {
	profile, err := loadProfile(parseResumeInput)
	if err != nil {
		return err
	}

	if p := printer(); p != nil {
		p.PrintResumeProfile(&profile)
	}
	return writeOutput(parseResumeOutput, schemas.ResumeProfile, profile)
}

// loadProfile reads and parses the resume at path.
func loadProfile(path string) (types.ResumeProfile, error) {
	text, err := ingestion.LoadResume(path)
	if err != nil {
		return types.ResumeProfile{}, fmt.Errorf("failed to load resume: %w", err)
	}
	return parsing.ParseResume(text), nil
}
