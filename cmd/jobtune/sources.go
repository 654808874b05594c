package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/db"
	"github.com/Haloween-arch/Jobtune/internal/jobs"
)

// jobStore is a dataset that can be both read and date-refreshed.
type jobStore interface {
	jobs.Source
	jobs.DatesRefresher
}

// openJobStore returns the Postgres store when a database URL is configured
// and no dataset path is forced, otherwise the CSV dataset. The returned
// close function is always safe to call.
func openJobStore(ctx context.Context, datasetOverride string) (jobStore, string, func(), error) {
	if datasetOverride == "" && appConfig.UsesDatabase() {
		database, err := db.Connect(ctx, appConfig.Database.URL)
		if err != nil {
			return nil, "", nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, "", nil, err
		}
		appLogger.Debug("using postgres job store")
		return database, db.RefreshSourcePostgres, database.Close, nil
	}

	path := datasetOverride
	if path == "" {
		path = appConfig.Jobs.DatasetPath
	}
	appLogger.Debug("using csv job dataset", zap.String("path", path))
	return jobs.NewCSVSource(path), path, func() {}, nil
}
