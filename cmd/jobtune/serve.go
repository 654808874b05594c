package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Haloween-arch/Jobtune/internal/cache"
	"github.com/Haloween-arch/Jobtune/internal/career"
	"github.com/Haloween-arch/Jobtune/internal/jobs"
	"github.com/Haloween-arch/Jobtune/internal/ranking"
	"github.com/Haloween-arch/Jobtune/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing resume upload, ATS scoring, job matching and career endpoints, plus the scheduled job date refresh.`,
	RunE:  runServe,
}

var (
	servePort       int
	serveNoRefresh  bool
	serveCatalogue  string
	serveDatasetCSV string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&serveNoRefresh, "no-refresh", false, "Disable the scheduled job date refresh")
	serveCmd.Flags().StringVar(&serveCatalogue, "catalogue", "", "Path to a custom career catalogue YAML")
	serveCmd.Flags().StringVarP(&serveDatasetCSV, "dataset", "d", "", "Serve from this CSV dataset even when a database is configured")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := appConfig
	if servePort != 0 {
		cfg.Server.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if err := cfg.EnsureUploadDir(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, label, closeStore, err := openJobStore(ctx, serveDatasetCSV)
	if err != nil {
		return err
	}
	defer closeStore()

	catalogue, err := loadCatalogue(serveCatalogue)
	if err != nil {
		return err
	}
	recommender, err := career.NewRecommender(catalogue, appLogger)
	if err != nil {
		return err
	}

	matchCache := cache.New(ctx, cache.Config{
		RedisURL:   cfg.Cache.RedisURL,
		TTL:        cfg.Cache.TTL,
		MaxEntries: cfg.Cache.MaxEntries,
	}, appLogger)
	defer func() { _ = matchCache.Close() }()

	srv, err := server.New(cfg, server.Deps{
		Matcher:     ranking.NewMatcher(store, appLogger),
		Recommender: recommender,
		Cache:       matchCache,
		Logger:      appLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})

	if !serveNoRefresh {
		refresher := jobs.NewRefresher(store, jobs.RefresherConfig{
			Schedule:   cfg.Jobs.RefreshSchedule,
			RunOnStart: cfg.Jobs.RefreshOnStart,
		}, appLogger)
		refresher.OnRefresh(srv.InvalidateMatches)
		g.Go(func() error {
			return refresher.Run(gctx)
		})
	}

	appLogger.Info("jobtune serving",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("jobs", label),
		zap.Bool("redis", matchCache.HasRedis()),
		zap.Bool("refresh", !serveNoRefresh),
	)

	return g.Wait()
}
