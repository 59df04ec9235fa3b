package scoring

import (
	"time"

	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// Combined-score weights. Similarity dominates; skills overlap and level fit
// refine the ordering.
const (
	weightSimilarity = 0.6
	weightSkills     = 0.3
	weightLevel      = 0.1
)

// Preferences are the candidate's stated constraints. Jobs violating one are
// penalized, not excluded, so a great match still surfaces.
type Preferences struct {
	RemotePreferred bool
	MinSalary       int
	JobType         types.JobType
	InternOnly      bool
}

// Combined blends similarity, skill overlap, and level fit into a base score
// in [0, 1].
func Combined(similarity float64, matchingSkills, jobSkills int, levelMatch float64) float64 {
	divisor := jobSkills
	if divisor < 1 {
		divisor = 1
	}
	skillRatio := float64(matchingSkills) / float64(divisor)
	return weightSimilarity*similarity + weightSkills*skillRatio + weightLevel*levelMatch
}

// ApplyPenalties discounts the score for each preference the job violates.
func ApplyPenalties(score float64, job types.RawJob, prefs Preferences) float64 {
	if prefs.RemotePreferred && job.Remote == types.RemoteNo {
		score *= 0.5
	}
	if prefs.MinSalary > 0 && job.SalaryMax != nil {
		if *job.SalaryMax < prefs.MinSalary {
			score *= 0.7
		} else if job.SalaryMin != nil && *job.SalaryMin < prefs.MinSalary {
			score *= 0.8
		}
	}
	if prefs.JobType != "" && job.JobType != "" && job.JobType != prefs.JobType {
		score *= 0.6
	}
	return score
}

// Freshness maps a posting's age to a step in [0.2, 1.0]. Unknown posting
// dates get a neutral-ish middle value rather than the worst step.
func Freshness(postedAt *time.Time, now time.Time) float64 {
	if postedAt == nil {
		return 0.6
	}
	age := now.Sub(*postedAt)
	switch {
	case age <= 24*time.Hour:
		return 1.0
	case age <= 3*24*time.Hour:
		return 0.9
	case age <= 7*24*time.Hour:
		return 0.8
	case age <= 14*24*time.Hour:
		return 0.6
	case age <= 30*24*time.Hour:
		return 0.4
	default:
		return 0.2
	}
}

// applyFreshness folds the freshness step into a final multiplier between
// 0.92 and 1.0 and caps the result at 1.0.
func applyFreshness(score float64, freshness float64) float64 {
	score *= 0.9 + 0.1*freshness
	if score > 1.0 {
		return 1.0
	}
	return score
}
