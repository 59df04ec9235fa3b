package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

const greenhouseBaseURL = "https://boards-api.greenhouse.io/v1/boards"

// Greenhouse fetches postings from the Greenhouse job board API for a set of
// company boards. The board API only lists published jobs, so a returned
// posting is open unless the payload says otherwise.
type Greenhouse struct {
	boards  []string
	limit   int
	opts    *fetch.Options
	baseURL string
}

// NewGreenhouse creates a Greenhouse adapter over the given board slugs.
func NewGreenhouse(boards []string, limit int, opts *fetch.Options) *Greenhouse {
	return &Greenhouse{boards: boards, limit: limit, opts: opts, baseURL: greenhouseBaseURL}
}

// Name implements Adapter.
func (g *Greenhouse) Name() types.Source { return types.SourceGreenhouse }

type greenhouseResponse struct {
	Jobs []greenhouseJob `json:"jobs"`
}

type greenhouseJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	AbsoluteURL string `json:"absolute_url"`
	UpdatedAt   string `json:"updated_at"`
	Status      string `json:"status"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

// Fetch implements Adapter. A failing board contributes nothing; the last
// error is returned only if every board failed.
func (g *Greenhouse) Fetch(ctx context.Context) ([]types.RawJob, error) {
	var jobs []types.RawJob
	var lastErr error
	for _, board := range g.boards {
		url := fmt.Sprintf("%s/%s/jobs?content=true", g.baseURL, board)
		var resp greenhouseResponse
		if err := fetch.JSON(ctx, url, g.opts, &resp); err != nil {
			lastErr = err
			continue
		}
		for i, j := range resp.Jobs {
			if i >= g.limit {
				break
			}
			if j.AbsoluteURL == "" {
				continue
			}
			jobs = append(jobs, types.RawJob{
				ID:          fmt.Sprintf("greenhouse_%d", j.ID),
				Title:       j.Title,
				Company:     companyName(board),
				Description: j.Content,
				Location:    j.Location.Name,
				ApplyURL:    j.AbsoluteURL,
				PostedAt:    parseRFC3339(j.UpdatedAt),
				Open:        j.Status == "" || j.Status == "open",
				Source:      types.SourceGreenhouse,
				JobType:     ClassifyJobType(j.Title),
				Remote:      ClassifyRemote(j.Title + " " + j.Content),
			})
		}
	}
	if jobs == nil && lastErr != nil {
		return nil, lastErr
	}
	return jobs, nil
}

func parseRFC3339(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
