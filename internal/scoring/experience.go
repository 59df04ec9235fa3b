package scoring

import (
	"strings"

	"github.com/Liam-Hayes8/Job-Matcher/internal/vocab"
)

// JobLevel classifies a job's seniority from its text. Keywords are checked
// in a fixed order and the first match wins, so "Senior Staff Engineer" is
// senior, not whatever "staff" alone would say.
func JobLevel(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range vocab.JobLevelKeywords {
		if strings.Contains(lower, entry.Keyword) {
			return entry.Level
		}
	}
	return vocab.LevelMid
}

// LevelMatch scores how well the resume's level fits the job's level.
// An exact fit is 1.0; one step apart is a partial fit; entry against
// senior barely counts.
func LevelMatch(resumeLevel, jobLevel string) float64 {
	if resumeLevel == jobLevel {
		return 1.0
	}
	pair := resumeLevel + ":" + jobLevel
	switch pair {
	case vocab.LevelSenior + ":" + vocab.LevelMid, vocab.LevelMid + ":" + vocab.LevelSenior:
		return 0.7
	case vocab.LevelMid + ":" + vocab.LevelEntry, vocab.LevelEntry + ":" + vocab.LevelMid:
		return 0.5
	default:
		return 0.3
	}
}
