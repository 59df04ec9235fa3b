package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Liam-Hayes8/Job-Matcher/internal/aggregate"
	"github.com/Liam-Hayes8/Job-Matcher/internal/config"
	"github.com/Liam-Hayes8/Job-Matcher/internal/embedding"
	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/links"
	"github.com/Liam-Hayes8/Job-Matcher/internal/logger"
	"github.com/Liam-Hayes8/Job-Matcher/internal/scoring"
	"github.com/Liam-Hayes8/Job-Matcher/internal/sources"
	"github.com/Liam-Hayes8/Job-Matcher/internal/store"
)

// defaultBoards keeps the service useful out of the box when no boards file
// is configured.
var defaultBoards = config.Boards{
	Greenhouse: []string{"stripe", "airbnb", "gitlab"},
	Lever:      []string{"plaid", "ramp"},
}

// app holds the wired-up collaborators shared by the serve and match
// commands.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	aggregator *aggregate.Aggregator
	embedder   embedding.Provider
	store      *store.Store
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logJSON || cfg.LogJSON, debug || cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	boards := defaultBoards
	if cfg.BoardsFile != "" {
		loaded, err := config.LoadBoards(cfg.BoardsFile)
		if err != nil {
			return nil, err
		}
		boards = *loaded
	}

	adapters := sources.Build(sources.Config{
		GreenhouseBoards: boards.Greenhouse,
		LeverBoards:      boards.Lever,
		SmartRecruiters:  boards.SmartRecruiters,
		AshbyOrgs:        boards.Ashby,
		AshbyAPIKey:      cfg.AshbyAPIKey,
		AdzunaAppID:      cfg.AdzunaAppID,
		AdzunaAppKey:     cfg.AdzunaAppKey,
		Location:         cfg.Location,
		PerBoardLimit:    cfg.PerBoardLimit,
	})
	if len(adapters) == 0 {
		return nil, fmt.Errorf("no job sources configured")
	}
	log.Info("sources configured", zap.Int("count", len(adapters)))

	// Liveness probes hit third-party career sites of unknown latency, so
	// they get a longer timeout than the board API calls.
	validator := links.NewValidator(&fetch.Options{
		Timeout:   18 * time.Second,
		UserAgent: fetch.DefaultUserAgent,
	}, log)
	if cfg.UseBrowser {
		validator = validator.WithRenderer(func(ctx context.Context, url string) (string, error) {
			return fetch.RenderedHTML(ctx, url, fetch.DefaultRenderTimeout)
		})
	}

	embedder, err := embedding.New(ctx, cfg.GeminiAPIKey, log)
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding provider: %w", err)
	}
	log.Info("embedding provider ready", zap.String("provider", embedder.Name()))

	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("database unavailable, running without persistence", zap.Error(err))
		} else if err := st.EnsureSchema(ctx); err != nil {
			log.Warn("schema setup failed, running without persistence", zap.Error(err))
			st.Close()
			st = nil
		}
	}

	if st != nil {
		embedder = embedding.WithCache(embedder, st, log)
	}

	var allowlist *links.Allowlist
	if len(cfg.AllowedHosts) > 0 {
		allowlist = links.NewAllowlist(cfg.AllowedHosts)
	}

	aggregator := aggregate.New(
		adapters,
		validator,
		scoring.NewScorer(embedder, log),
		st,
		log,
		aggregate.Options{
			ScoreThreshold: cfg.ScoreThreshold,
			MaxJobs:        cfg.MaxJobs,
			Allowlist:      allowlist,
		},
	)

	return &app{
		cfg:        cfg,
		logger:     log,
		aggregator: aggregator,
		embedder:   embedder,
		store:      st,
	}, nil
}
