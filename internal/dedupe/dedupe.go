// Package dedupe removes duplicate postings that surface through more than
// one source or board.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// Fingerprint returns a stable identity for a posting based on its normalized
// title, company, and location. Two postings with the same fingerprint are
// the same job regardless of which board they came from.
func Fingerprint(job types.RawJob) string {
	key := normalize(job.Title) + "|" + normalize(job.Company) + "|" + normalize(job.Location)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Jobs returns the input with duplicates removed, keeping the first
// occurrence and preserving order. The drop list records each discarded
// duplicate.
func Jobs(jobs []types.RawJob) ([]types.RawJob, []types.DropSample) {
	seen := make(map[string]string, len(jobs))
	var kept []types.RawJob
	var dropped []types.DropSample
	for _, job := range jobs {
		fp := Fingerprint(job)
		if firstID, ok := seen[fp]; ok {
			dropped = append(dropped, types.DropSample{
				JobID:   job.ID,
				Company: job.Company,
				Title:   job.Title,
				URL:     job.ApplyURL,
				Stage:   "dedup",
				Reason:  "duplicate of " + firstID,
			})
			continue
		}
		seen[fp] = job.ID
		kept = append(kept, job)
	}
	return kept, dropped
}

// normalize lowercases, trims, and collapses internal whitespace so cosmetic
// differences between boards do not defeat the fingerprint.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}
