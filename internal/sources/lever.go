package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

const leverBaseURL = "https://api.lever.co/v0/postings"

// Lever fetches postings from the public Lever postings API.
type Lever struct {
	boards  []string
	limit   int
	opts    *fetch.Options
	baseURL string
}

// NewLever creates a Lever adapter over the given company slugs.
func NewLever(boards []string, limit int, opts *fetch.Options) *Lever {
	return &Lever{boards: boards, limit: limit, opts: opts, baseURL: leverBaseURL}
}

// Name implements Adapter.
func (l *Lever) Name() types.Source { return types.SourceLever }

type leverPosting struct {
	ID               string `json:"id"`
	Text             string `json:"text"`
	DescriptionPlain string `json:"descriptionPlain"`
	HostedURL        string `json:"hostedUrl"`
	CreatedAt        int64  `json:"createdAt"`
	State            string `json:"state"`
	Categories       struct {
		Team     string `json:"team"`
		Location string `json:"location"`
	} `json:"categories"`
}

// Fetch implements Adapter.
func (l *Lever) Fetch(ctx context.Context) ([]types.RawJob, error) {
	var jobs []types.RawJob
	var lastErr error
	for _, board := range l.boards {
		url := fmt.Sprintf("%s/%s?mode=json", l.baseURL, board)
		var postings []leverPosting
		if err := fetch.JSON(ctx, url, l.opts, &postings); err != nil {
			lastErr = err
			continue
		}
		for i, p := range postings {
			if i >= l.limit {
				break
			}
			if p.HostedURL == "" {
				continue
			}
			var posted *time.Time
			if p.CreatedAt > 0 {
				t := time.UnixMilli(p.CreatedAt).UTC()
				posted = &t
			}
			jobs = append(jobs, types.RawJob{
				ID:          "lever_" + p.ID,
				Title:       p.Text,
				Company:     companyName(board),
				Description: p.DescriptionPlain,
				Location:    p.Categories.Location,
				ApplyURL:    p.HostedURL,
				PostedAt:    posted,
				Open:        p.State == "published",
				Source:      types.SourceLever,
				JobType:     ClassifyJobType(p.Text),
				Remote:      ClassifyRemote(p.Text + " " + p.DescriptionPlain),
			})
		}
	}
	if jobs == nil && lastErr != nil {
		return nil, lastErr
	}
	return jobs, nil
}
