// Package sources contains one adapter per ATS vendor. Each adapter fetches a
// vendor's postings and normalizes them into the common RawJob shape. Adapters
// never panic and never fail the aggregation: the orchestrator converts any
// returned error into an empty contribution from that source.
package sources

import (
	"context"
	"strings"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// Adapter fetches and normalizes postings from one ATS vendor.
type Adapter interface {
	// Name identifies the source in job IDs and diagnostics.
	Name() types.Source
	// Fetch returns the vendor's current postings. Records with an empty
	// apply URL are dropped before returning.
	Fetch(ctx context.Context) ([]types.RawJob, error)
}

// Config selects which adapters to build and with what credentials.
type Config struct {
	GreenhouseBoards []string
	LeverBoards      []string
	SmartRecruiters  []string
	AshbyOrgs        []string
	AshbyAPIKey      string
	AdzunaAppID      string
	AdzunaAppKey     string
	Location         string
	PerBoardLimit    int
	Options          *fetch.Options
}

// Build returns the adapters enabled by the configuration, in a fixed order so
// merged results are deterministic for deterministic inputs.
func Build(cfg Config) []Adapter {
	if cfg.Options == nil {
		cfg.Options = fetch.DefaultOptions()
	}
	if cfg.PerBoardLimit <= 0 {
		cfg.PerBoardLimit = 50
	}

	var adapters []Adapter
	if len(cfg.GreenhouseBoards) > 0 {
		adapters = append(adapters, NewGreenhouse(cfg.GreenhouseBoards, cfg.PerBoardLimit, cfg.Options))
	}
	if len(cfg.LeverBoards) > 0 {
		adapters = append(adapters, NewLever(cfg.LeverBoards, cfg.PerBoardLimit, cfg.Options))
	}
	if len(cfg.AshbyOrgs) > 0 && cfg.AshbyAPIKey != "" {
		adapters = append(adapters, NewAshby(cfg.AshbyOrgs, cfg.AshbyAPIKey, cfg.PerBoardLimit, cfg.Options))
	}
	if len(cfg.SmartRecruiters) > 0 {
		adapters = append(adapters, NewSmartRecruiters(cfg.SmartRecruiters, cfg.PerBoardLimit, cfg.Options))
	}
	if cfg.AdzunaAppID != "" && cfg.AdzunaAppKey != "" {
		adapters = append(adapters, NewAdzuna(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.Location, cfg.PerBoardLimit, cfg.Options))
	}
	return adapters
}

// Only keeps adapters whose name is in the allowed set. An empty set keeps all.
func Only(adapters []Adapter, names []string) []Adapter {
	if len(names) == 0 {
		return adapters
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}
	var kept []Adapter
	for _, a := range adapters {
		if wanted[string(a.Name())] {
			kept = append(kept, a)
		}
	}
	return kept
}

// companyName turns a board slug into a display name ("morgan-stanley" is left
// as-is beyond capitalization; vendors rarely expose a clean company field).
func companyName(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	return strings.ToUpper(slug[:1]) + slug[1:]
}
