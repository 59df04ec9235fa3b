package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

func TestJobsKeepsFirstOccurrence(t *testing.T) {
	jobs := []types.RawJob{
		{ID: "greenhouse_1", Title: "Software Engineer", Company: "Acme", Location: "NYC"},
		{ID: "lever_9", Title: "  software   ENGINEER ", Company: "acme", Location: "nyc"},
		{ID: "greenhouse_2", Title: "Software Engineer", Company: "Acme", Location: "SF"},
	}

	kept, dropped := Jobs(jobs)

	require.Len(t, kept, 2)
	assert.Equal(t, "greenhouse_1", kept[0].ID)
	assert.Equal(t, "greenhouse_2", kept[1].ID)

	require.Len(t, dropped, 1)
	assert.Equal(t, "lever_9", dropped[0].JobID)
	assert.Equal(t, "dedup", dropped[0].Stage)
	assert.Equal(t, "duplicate of greenhouse_1", dropped[0].Reason)
}

func TestJobsIdempotent(t *testing.T) {
	jobs := []types.RawJob{
		{ID: "a", Title: "Backend Engineer", Company: "Globex", Location: "Remote"},
		{ID: "b", Title: "Backend Engineer", Company: "Globex", Location: "Remote"},
		{ID: "c", Title: "Frontend Engineer", Company: "Globex", Location: "Remote"},
	}

	once, _ := Jobs(jobs)
	twice, dropped := Jobs(once)

	assert.Equal(t, once, twice)
	assert.Empty(t, dropped)
}

func TestFingerprintStable(t *testing.T) {
	a := types.RawJob{Title: "Data Engineer", Company: "Initech", Location: "Austin"}
	b := types.RawJob{Title: "data  engineer", Company: " INITECH ", Location: "austin"}
	c := types.RawJob{Title: "Data Engineer II", Company: "Initech", Location: "Austin"}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
}

func TestJobsEmptyInput(t *testing.T) {
	kept, dropped := Jobs(nil)
	assert.Empty(t, kept)
	assert.Empty(t, dropped)
}
