// Package scoring ranks jobs against a resume. Two strategies exist: an
// embedding-based combined score when a resume vector is available, and a
// domain token heuristic that needs nothing but text.
package scoring

import (
	"strings"

	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
	"github.com/Liam-Hayes8/Job-Matcher/internal/vocab"
)

// Resume domains recognized by the token heuristic.
const (
	DomainSoftware = "software"
	DomainFinance  = "finance"
	DomainGeneral  = "general"
)

// DomainOf classifies a resume token set. Software wins whenever any software
// token is present; finance requires finance tokens and no software ones.
func DomainOf(tokens map[string]bool) string {
	var hasSoftware, hasFinance bool
	for _, t := range vocab.SoftwareTokens {
		if tokens[t] {
			hasSoftware = true
			break
		}
	}
	for _, t := range vocab.FinanceTokens {
		if tokens[t] {
			hasFinance = true
			break
		}
	}
	switch {
	case hasSoftware:
		return DomainSoftware
	case hasFinance:
		return DomainFinance
	default:
		return DomainGeneral
	}
}

// TokenScore rates a job for a resume domain by counting domain vocabulary
// hits in the job text. A software resume rewards software hits and mildly
// penalizes finance ones; a finance resume does the reverse, harder, because
// finance titles often borrow engineering words.
func TokenScore(job types.RawJob, domain string) float64 {
	text := strings.ToLower(job.Title + " " + job.Description)

	var finHits, sweHits float64
	for _, t := range vocab.FinanceTokens {
		if strings.Contains(text, t) {
			finHits++
		}
	}
	for _, t := range vocab.SoftwareTokens {
		if strings.Contains(text, t) {
			sweHits++
		}
	}

	switch domain {
	case DomainSoftware:
		return 2*sweHits - 0.5*finHits
	case DomainFinance:
		return 2*finHits - sweHits
	default:
		return finHits + sweHits
	}
}

// IsInternship reports whether a title reads as an intern-level posting.
func IsInternship(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range vocab.InternshipMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
