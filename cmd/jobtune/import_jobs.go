package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/db"
	"github.com/Haloween-arch/Jobtune/internal/jobs"
)

var importJobsCmd = &cobra.Command{
	Use:   "import-jobs",
	Short: "Import a job dataset CSV into Postgres",
	Long:  "Load postings from a CSV dataset into the job_postings table. Postings already stored with identical content are skipped.",
	RunE:  runImportJobs,
}

var (
	importDataset     string
	importDatabaseURL string
	importReplace     bool
)

func init() {
	importJobsCmd.Flags().StringVarP(&importDataset, "dataset", "d", "", "Path to job dataset CSV (required)")
	importJobsCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "Database URL (default from config or JOBTUNE_DATABASE_URL)")
	importJobsCmd.Flags().BoolVar(&importReplace, "replace", false, "Delete existing postings before importing")
	_ = importJobsCmd.MarkFlagRequired("dataset")

	rootCmd.AddCommand(importJobsCmd)
}

func runImportJobs(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := importDatabaseURL
	if databaseURL == "" {
		databaseURL = appConfig.Database.URL
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set database.url, JOBTUNE_DATABASE_URL or --db-url)")
	}

	postings, err := jobs.NewCSVSource(importDataset).Load(ctx)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	if importReplace {
		deleted, err := database.DeleteAllJobPostings(ctx)
		if err != nil {
			return err
		}
		appLogger.Info("existing postings deleted", zap.Int("rows", deleted))
	}

	inserted, err := database.ImportPostings(ctx, postings)
	if err != nil {
		return err
	}

	appLogger.Info("job postings imported",
		zap.String("dataset", importDataset),
		zap.Int("read", len(postings)),
		zap.Int("inserted", inserted),
	)
	_, _ = fmt.Fprintf(os.Stdout, "Imported %d of %d job postings\n", inserted, len(postings))
	return nil
}
