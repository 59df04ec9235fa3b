// Package aggregate orchestrates one matching request end to end: fan out to
// the source adapters, then run the fixed filter pipeline — open filter, link
// validation, dedup, allow-list, scoring — and assemble the ranked response
// with per-stage diagnostics.
package aggregate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Liam-Hayes8/Job-Matcher/internal/dedupe"
	"github.com/Liam-Hayes8/Job-Matcher/internal/links"
	"github.com/Liam-Hayes8/Job-Matcher/internal/scoring"
	"github.com/Liam-Hayes8/Job-Matcher/internal/sources"
	"github.com/Liam-Hayes8/Job-Matcher/internal/store"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// Defaults for the result-shaping knobs. The score threshold has no default
// here: zero means every scored job passes, and the nominal cutoff comes from
// configuration.
const (
	DefaultMinResults     = 10
	DefaultWidenLimit     = 20
	DefaultMaxJobs        = 50
	DefaultMaxDropSamples = 5
)

// LinkChecker validates apply links. Satisfied by links.Validator.
type LinkChecker interface {
	FilterLive(ctx context.Context, jobs []types.RawJob) ([]types.RawJob, []types.DropSample)
}

// Ranker scores jobs against a resume signal. Satisfied by scoring.Scorer.
type Ranker interface {
	Score(ctx context.Context, jobs []types.RawJob, signal *types.ResumeSignal, prefs scoring.Preferences) []types.ScoredJob
}

// Options tune the filter pipeline.
type Options struct {
	// ScoreThreshold is the nominal score cutoff after ranking.
	ScoreThreshold float64
	// MinResults triggers widening when fewer jobs pass the threshold.
	MinResults int
	// WidenLimit caps how many below-threshold candidates widening admits.
	WidenLimit int
	// MaxJobs caps the response when the request does not set a limit.
	MaxJobs int
	// MaxDropSamples caps the drop reasons included in diagnostics.
	MaxDropSamples int
	// Allowlist restricts apply hosts; nil or empty disables the stage.
	Allowlist *links.Allowlist
}

func (o Options) withDefaults() Options {
	if o.MinResults <= 0 {
		o.MinResults = DefaultMinResults
	}
	if o.WidenLimit <= 0 {
		o.WidenLimit = DefaultWidenLimit
	}
	if o.MaxJobs <= 0 {
		o.MaxJobs = DefaultMaxJobs
	}
	if o.MaxDropSamples <= 0 {
		o.MaxDropSamples = DefaultMaxDropSamples
	}
	return o
}

// Request is one matching request.
type Request struct {
	Signal  *types.ResumeSignal
	Prefs   scoring.Preferences
	Limit   int
	Sources []string
	// Location narrows results to postings whose location contains this
	// value; remote postings always pass.
	Location string
	// SkipValidation bypasses the apply-link liveness probes.
	SkipValidation bool
	// SkipAllowlist bypasses the apply-host allow-list.
	SkipAllowlist bool
}

// Aggregator runs the pipeline. The store is optional; when present, live
// jobs and run diagnostics are persisted best-effort.
type Aggregator struct {
	adapters []sources.Adapter
	checker  LinkChecker
	ranker   Ranker
	store    *store.Store
	logger   *zap.Logger
	opts     Options
}

// New builds an Aggregator. Pass a nil store to disable persistence and a nil
// logger for no logging.
func New(adapters []sources.Adapter, checker LinkChecker, ranker Ranker, st *store.Store, logger *zap.Logger, opts Options) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		adapters: adapters,
		checker:  checker,
		ranker:   ranker,
		store:    st,
		logger:   logger,
		opts:     opts.withDefaults(),
	}
}

// Run executes the pipeline for one request. The result is constructed fresh
// and never mutated after return. A failing adapter contributes nothing, and
// an empty adapter set yields an empty result rather than an error.
func (a *Aggregator) Run(ctx context.Context, req Request) (*types.AggregationResult, error) {
	start := time.Now()
	var diag types.Diagnostics
	var drops []types.DropSample

	adapters := sources.Only(a.adapters, req.Sources)
	diag.SourcesQueried = len(adapters)

	merged := a.fetchAll(ctx, adapters)
	diag.FetchedTotal = len(merged)

	open := a.filterOpen(merged, req.Prefs.InternOnly, req.Location, &drops)
	diag.AfterOpenFilter = len(open)

	live := open
	if !req.SkipValidation {
		var deadDrops []types.DropSample
		live, deadDrops = a.checker.FilterLive(ctx, open)
		drops = append(drops, deadDrops...)
	}
	diag.AfterValidation = len(live)

	a.persistJobs(ctx, live)

	unique, dupDrops := dedupe.Jobs(live)
	drops = append(drops, dupDrops...)
	diag.AfterDedup = len(unique)

	allowed := unique
	if !req.SkipAllowlist {
		allowed = a.filterAllowlist(unique, &drops)
	}
	diag.AfterAllowlist = len(allowed)

	scored := a.ranker.Score(ctx, allowed, req.Signal, req.Prefs)
	selected := a.selectByScore(scored, &drops)
	diag.AfterScore = len(selected)

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].MatchScore > selected[j].MatchScore
	})

	limit := req.Limit
	if limit <= 0 || limit > a.opts.MaxJobs {
		limit = a.opts.MaxJobs
	}
	if len(selected) > limit {
		selected = selected[:limit]
	}
	for i := range selected {
		selected[i].MatchScore = clamp01(selected[i].MatchScore)
	}
	diag.Returned = len(selected)

	if len(drops) > a.opts.MaxDropSamples {
		drops = drops[:a.opts.MaxDropSamples]
	}
	diag.DropSamples = drops
	diag.DurationSeconds = time.Since(start).Seconds()

	a.persistRun(ctx, diag)

	a.logger.Info("aggregation complete",
		zap.Int("sources", diag.SourcesQueried),
		zap.Int("fetched", diag.FetchedTotal),
		zap.Int("returned", diag.Returned),
		zap.Float64("duration_seconds", diag.DurationSeconds))

	return &types.AggregationResult{Jobs: selected, Diagnostics: diag}, nil
}

// RefreshCache re-fetches every source and persists the open postings as
// snapshots. It returns how many jobs were stored.
func (a *Aggregator) RefreshCache(ctx context.Context) (int, error) {
	if a.store == nil {
		return 0, fmt.Errorf("no store configured")
	}
	merged := a.fetchAll(ctx, a.adapters)
	var drops []types.DropSample
	open := a.filterOpen(merged, false, "", &drops)
	if err := a.store.UpsertJobs(ctx, open); err != nil {
		return 0, err
	}
	a.logger.Info("job cache refreshed",
		zap.Int("fetched", len(merged)), zap.Int("stored", len(open)))
	return len(open), nil
}

// CachedJob looks up a previously persisted posting by its source-qualified
// ID. A nil job with a nil error means the ID is unknown.
func (a *Aggregator) CachedJob(ctx context.Context, id string) (*types.RawJob, error) {
	if a.store == nil {
		return nil, fmt.Errorf("no store configured")
	}
	return a.store.GetJob(ctx, id)
}

// fetchAll queries every adapter concurrently and merges results in adapter
// order, so equal inputs produce equal output order.
func (a *Aggregator) fetchAll(ctx context.Context, adapters []sources.Adapter) []types.RawJob {
	results := make([][]types.RawJob, len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range adapters {
		g.Go(func() error {
			jobs, err := adapter.Fetch(gctx)
			if err != nil {
				a.logger.Warn("source fetch failed",
					zap.String("source", string(adapter.Name())), zap.Error(err))
				return nil
			}
			a.logger.Debug("source fetched",
				zap.String("source", string(adapter.Name())), zap.Int("count", len(jobs)))
			results[i] = jobs
			return nil
		})
	}
	_ = g.Wait()

	var merged []types.RawJob
	for _, jobs := range results {
		merged = append(merged, jobs...)
	}
	return merged
}

func (a *Aggregator) filterOpen(jobs []types.RawJob, internOnly bool, location string, drops *[]types.DropSample) []types.RawJob {
	var kept []types.RawJob
	for _, job := range jobs {
		switch {
		case !job.Open:
			*drops = append(*drops, dropSample(job, "open_filter", "posting not open"))
		case job.ApplyURL == "":
			*drops = append(*drops, dropSample(job, "open_filter", "missing apply url"))
		case internOnly && !scoring.IsInternship(job.Title):
			*drops = append(*drops, dropSample(job, "open_filter", "not an internship"))
		case location != "" && !matchesLocation(job, location):
			*drops = append(*drops, dropSample(job, "open_filter", "location mismatch"))
		default:
			kept = append(kept, job)
		}
	}
	return kept
}

func matchesLocation(job types.RawJob, location string) bool {
	if job.Remote == types.RemoteYes {
		return true
	}
	return strings.Contains(strings.ToLower(job.Location), strings.ToLower(location))
}

func (a *Aggregator) filterAllowlist(jobs []types.RawJob, drops *[]types.DropSample) []types.RawJob {
	if a.opts.Allowlist == nil {
		return jobs
	}
	var kept []types.RawJob
	for _, job := range jobs {
		if a.opts.Allowlist.Allows(job.ApplyURL) {
			kept = append(kept, job)
			continue
		}
		*drops = append(*drops, dropSample(job, "allowlist", "host not allow-listed"))
	}
	return kept
}

// selectByScore applies the nominal threshold, widening to the top candidates
// when too few jobs pass so a strict cutoff cannot empty the result page.
func (a *Aggregator) selectByScore(scored []types.ScoredJob, drops *[]types.DropSample) []types.ScoredJob {
	var passing []types.ScoredJob
	for _, job := range scored {
		if job.MatchScore >= a.opts.ScoreThreshold {
			passing = append(passing, job)
		}
	}
	if len(passing) >= a.opts.MinResults {
		for _, job := range scored {
			if job.MatchScore < a.opts.ScoreThreshold {
				*drops = append(*drops, dropSample(job.RawJob, "score", "below score threshold"))
			}
		}
		return passing
	}

	a.logger.Debug("widening below-threshold results",
		zap.Int("passing", len(passing)), zap.Int("candidates", len(scored)))

	widened := make([]types.ScoredJob, len(scored))
	copy(widened, scored)
	sort.SliceStable(widened, func(i, j int) bool {
		return widened[i].MatchScore > widened[j].MatchScore
	})
	limit := a.opts.WidenLimit
	if limit > len(widened) {
		limit = len(widened)
	}
	for _, job := range widened[limit:] {
		*drops = append(*drops, dropSample(job.RawJob, "score", "outside widened top results"))
	}
	return widened[:limit]
}

func (a *Aggregator) persistJobs(ctx context.Context, jobs []types.RawJob) {
	if a.store == nil {
		return
	}
	if err := a.store.UpsertJobs(ctx, jobs); err != nil {
		a.logger.Warn("persisting jobs failed", zap.Error(err))
	}
}

func (a *Aggregator) persistRun(ctx context.Context, diag types.Diagnostics) {
	if a.store == nil {
		return
	}
	if _, err := a.store.SaveRun(ctx, diag); err != nil {
		a.logger.Warn("persisting run failed", zap.Error(err))
	}
}

func dropSample(job types.RawJob, stage, reason string) types.DropSample {
	return types.DropSample{
		JobID:   job.ID,
		Company: job.Company,
		Title:   job.Title,
		URL:     job.ApplyURL,
		Stage:   stage,
		Reason:  reason,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
