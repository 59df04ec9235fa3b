package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Liam-Hayes8/Job-Matcher/internal/aggregate"
	"github.com/Liam-Hayes8/Job-Matcher/internal/resume"
	"github.com/Liam-Hayes8/Job-Matcher/internal/scoring"
)

var (
	matchResumePath   string
	matchLimit        int
	matchSources      []string
	matchLocation     string
	matchInternOnly   bool
	matchSkipValidate bool
	matchAsJSON       bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run one matching pass and print the ranked jobs",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchResumePath, "resume", "", "Path to resume text file (required)")
	matchCmd.Flags().IntVar(&matchLimit, "limit", 20, "Maximum jobs to print")
	matchCmd.Flags().StringSliceVar(&matchSources, "sources", nil, "Restrict to these sources (e.g. greenhouse,lever)")
	matchCmd.Flags().StringVar(&matchLocation, "location", "", "Only keep postings matching this location (remote always passes)")
	matchCmd.Flags().BoolVar(&matchInternOnly, "intern-only", false, "Only keep internship postings")
	matchCmd.Flags().BoolVar(&matchSkipValidate, "skip-validation", false, "Skip apply-link liveness probes (faster, may return dead links)")
	matchCmd.Flags().BoolVar(&matchAsJSON, "json", false, "Print the full result as JSON")
	_ = matchCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	app, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer app.close()

	resumeText, err := os.ReadFile(matchResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	signal := resume.Extract(string(resumeText))
	if vec, err := app.embedder.Embed(ctx, string(resumeText)); err == nil {
		signal.Embedding = vec
	} else {
		app.logger.Warn("resume embedding failed, ranking by tokens only", zap.Error(err))
	}

	result, err := app.aggregator.Run(ctx, aggregate.Request{
		Signal:         signal,
		Limit:          matchLimit,
		Sources:        matchSources,
		Location:       matchLocation,
		SkipValidation: matchSkipValidate,
		Prefs:          scoring.Preferences{InternOnly: matchInternOnly},
	})
	if err != nil {
		return err
	}

	if matchAsJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	d := result.Diagnostics
	fmt.Printf("Queried %d sources, fetched %d jobs, %d live, %d returned (%.1fs)\n\n",
		d.SourcesQueried, d.FetchedTotal, d.AfterValidation, d.Returned, d.DurationSeconds)
	for i, job := range result.Jobs {
		fmt.Printf("%2d. [%.2f] %s | %s (%s)\n    %s\n", i+1, job.MatchScore, job.Title, job.Company, job.Location, job.ApplyURL)
	}
	return nil
}
