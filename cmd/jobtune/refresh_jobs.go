package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Haloween-arch/Jobtune/internal/jobs"
)

var refreshJobsCmd = &cobra.Command{
	Use:   "refresh-jobs",
	Short: "Spread job posting dates over the last week",
	Long:  "Rewrite date_posted for every posting so dates cycle through today and the previous days, keeping the dataset looking current.",
	RunE:  runRefreshJobs,
}

var refreshDataset string

func init() {
	refreshJobsCmd.Flags().StringVarP(&refreshDataset, "dataset", "d", "", "Path to job dataset CSV (default from config)")

	rootCmd.AddCommand(refreshJobsCmd)
}

func runRefreshJobs(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, label, closeStore, err := openJobStore(ctx, refreshDataset)
	if err != nil {
		return err
	}
	defer closeStore()

	refresher := jobs.NewRefresher(store, jobs.RefresherConfig{}, appLogger)
	if err := refresher.RunOnce(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	_, rows := refresher.LastRun()
	if p := printer(); p != nil {
		p.PrintRefresh(label, rows)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Refreshed %d job postings (%s)\n", rows, label)
	return nil
}
