package scoring

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Liam-Hayes8/Job-Matcher/internal/embedding"
	"github.com/Liam-Hayes8/Job-Matcher/internal/resume"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// embedConcurrency bounds parallel embedding calls while scoring one request.
const embedConcurrency = 4

// Scorer ranks jobs against a resume signal. When the signal carries an
// embedding it uses the combined strategy; otherwise it falls back to the
// token heuristic. Scores are raw and unclamped here.
type Scorer struct {
	provider embedding.Provider
	logger   *zap.Logger
	now      func() time.Time
}

// NewScorer builds a Scorer. Pass a nil logger for no logging.
func NewScorer(provider embedding.Provider, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{provider: provider, logger: logger, now: time.Now}
}

// Score returns one ScoredJob per input job, in input order. A nil or empty
// signal degrades to the token heuristic with no tokens, so jobs come back
// in source order rather than panicking the pipeline.
func (s *Scorer) Score(ctx context.Context, jobs []types.RawJob, signal *types.ResumeSignal, prefs Preferences) []types.ScoredJob {
	if signal.Empty() {
		signal = &types.ResumeSignal{}
	}
	if len(signal.Embedding) > 0 && s.provider != nil {
		return s.scoreCombined(ctx, jobs, signal, prefs)
	}
	return s.scoreTokens(jobs, signal)
}

func (s *Scorer) scoreTokens(jobs []types.RawJob, signal *types.ResumeSignal) []types.ScoredJob {
	domain := DomainOf(signal.Tokens)
	s.logger.Debug("scoring with token heuristic", zap.String("resume_domain", domain))

	scored := make([]types.ScoredJob, len(jobs))
	for i, job := range jobs {
		scored[i] = types.ScoredJob{
			RawJob:     job,
			MatchScore: TokenScore(job, domain),
		}
	}
	return scored
}

func (s *Scorer) scoreCombined(ctx context.Context, jobs []types.RawJob, signal *types.ResumeSignal, prefs Preferences) []types.ScoredJob {
	now := s.now()
	scored := make([]types.ScoredJob, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)
	for i, job := range jobs {
		g.Go(func() error {
			scored[i] = s.scoreOne(gctx, job, signal, prefs, now)
			return nil
		})
	}
	_ = g.Wait()
	return scored
}

func (s *Scorer) scoreOne(ctx context.Context, job types.RawJob, signal *types.ResumeSignal, prefs Preferences, now time.Time) types.ScoredJob {
	text := job.Title + "\n" + job.Description

	var similarity float64
	if vec, err := s.provider.Embed(ctx, text); err == nil {
		similarity = Cosine(signal.Embedding, vec)
	} else {
		s.logger.Debug("job embedding failed", zap.String("job_id", job.ID), zap.Error(err))
	}

	jobSkills := resume.ExtractSkills(text)
	matching := intersect(signal.Skills, jobSkills)
	levelMatch := LevelMatch(signal.Level, JobLevel(text))

	score := Combined(similarity, len(matching), len(jobSkills), levelMatch)
	score = ApplyPenalties(score, job, prefs)
	score = applyFreshness(score, Freshness(job.PostedAt, now))

	return types.ScoredJob{
		RawJob:          job,
		MatchScore:      score,
		MatchingSkills:  matching,
		SimilarityScore: similarity,
		ExperienceMatch: levelMatch,
	}
}

// intersect keeps the resume skills that also appear in the job, preserving
// resume order.
func intersect(resumeSkills, jobSkills []string) []string {
	inJob := make(map[string]bool, len(jobSkills))
	for _, skill := range jobSkills {
		inJob[skill] = true
	}
	var matching []string
	for _, skill := range resumeSkills {
		if inJob[skill] {
			matching = append(matching, skill)
		}
	}
	return matching
}
