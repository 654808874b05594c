package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/ingestion"
	"github.com/Haloween-arch/Jobtune/internal/repair"
	"github.com/Haloween-arch/Jobtune/internal/schemas"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

var applyFixesCmd = &cobra.Command{
	Use:   "apply-fixes",
	Short: "Apply ATS line feedback to a resume",
	Long:  "Replace every flagged line of a resume with its suggested rewrite. --feedback accepts either an ats-score report or a bare line_feedback array.",
	RunE:  runApplyFixes,
}

var (
	fixesInput    string
	fixesFeedback string
	fixesOutput   string
)

func init() {
	applyFixesCmd.Flags().StringVarP(&fixesInput, "in", "i", "", "Path to resume file (required)")
	applyFixesCmd.Flags().StringVarP(&fixesFeedback, "feedback", "f", "", "Path to feedback JSON (required)")
	applyFixesCmd.Flags().StringVarP(&fixesOutput, "out", "o", "", "Path to write the improved resume (default stdout)")
	_ = applyFixesCmd.MarkFlagRequired("in")
	_ = applyFixesCmd.MarkFlagRequired("feedback")

	rootCmd.AddCommand(applyFixesCmd)
}

func runApplyFixes(_ *cobra.Command, _ []string) error {
	text, err := ingestion.LoadResume(fixesInput)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	if text == "" {
		return fmt.Errorf("resume text missing")
	}

	feedback, err := loadFeedback(fixesFeedback)
	if err != nil {
		return err
	}

	applied := 0
	for _, ok := range repair.Plan(text, feedback) {
		if ok {
			applied++
		}
	}
	improved := repair.ApplyFixes(text, feedback)
	appLogger.Debug("fixes applied", zap.Int("feedback", len(feedback)), zap.Int("applied", applied))

	if verbose {
		_, _ = fmt.Fprintf(os.Stderr, "Applied %d of %d fixes\n", applied, len(feedback))
	}

	if fixesOutput == "" {
		_, err = fmt.Fprintln(os.Stdout, improved)
		return err
	}
	if err := os.WriteFile(fixesOutput, []byte(improved+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write improved resume: %w", err)
	}
	return nil
}

// loadFeedback reads line feedback from either a full ATS report or a bare array.
func loadFeedback(path string) ([]types.LineIssue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := schemas.ValidateJSON(schemas.LineFeedback, trimmed); err != nil {
			return nil, fmt.Errorf("invalid feedback: %w", err)
		}
		var feedback []types.LineIssue
		if err := json.Unmarshal(trimmed, &feedback); err != nil {
			return nil, fmt.Errorf("failed to parse feedback: %w", err)
		}
		return feedback, nil
	}

	var report types.ATSReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse feedback: %w", err)
	}
	return report.LineFeedback, nil
}
