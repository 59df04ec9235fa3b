package sources

import (
	"context"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

const ashbyListURL = "https://api.ashbyhq.com/v1/job-posting/list"

// Ashby fetches postings from the Ashby job posting API. Unlike the other
// board APIs this one needs an API key and speaks POST.
type Ashby struct {
	orgs    []string
	apiKey  string
	limit   int
	opts    *fetch.Options
	baseURL string
}

// NewAshby creates an Ashby adapter over the given organization IDs.
func NewAshby(orgs []string, apiKey string, limit int, opts *fetch.Options) *Ashby {
	return &Ashby{orgs: orgs, apiKey: apiKey, limit: limit, opts: opts, baseURL: ashbyListURL}
}

// Name implements Adapter.
func (a *Ashby) Name() types.Source { return types.SourceAshby }

type ashbyListRequest struct {
	OrganizationID string `json:"organizationId"`
	Limit          int    `json:"limit"`
}

type ashbyListResponse struct {
	JobPostings []ashbyPosting `json:"jobPostings"`
}

type ashbyPosting struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Location       string `json:"location"`
	ApplicationURL string `json:"applicationUrl"`
	IsActive       bool   `json:"isActive"`
	CreatedAt      string `json:"createdAt"`
}

// Fetch implements Adapter.
func (a *Ashby) Fetch(ctx context.Context) ([]types.RawJob, error) {
	base := a.opts
	if base == nil {
		base = fetch.DefaultOptions()
	}
	opts := *base
	headers := map[string]string{"Authorization": "Bearer " + a.apiKey}
	for k, v := range base.Headers {
		headers[k] = v
	}
	opts.Headers = headers

	var jobs []types.RawJob
	var lastErr error
	for _, org := range a.orgs {
		var resp ashbyListResponse
		req := ashbyListRequest{OrganizationID: org, Limit: a.limit}
		if err := fetch.PostJSON(ctx, a.baseURL, &opts, req, &resp); err != nil {
			lastErr = err
			continue
		}
		for _, p := range resp.JobPostings {
			if p.ApplicationURL == "" {
				continue
			}
			jobs = append(jobs, types.RawJob{
				ID:          "ashby_" + p.ID,
				Title:       p.Title,
				Company:     companyName(org),
				Description: p.Description,
				Location:    p.Location,
				ApplyURL:    p.ApplicationURL,
				PostedAt:    parseRFC3339(p.CreatedAt),
				Open:        p.IsActive,
				Source:      types.SourceAshby,
				JobType:     ClassifyJobType(p.Title),
				Remote:      ClassifyRemote(p.Title + " " + p.Description),
			})
		}
	}
	if jobs == nil && lastErr != nil {
		return nil, lastErr
	}
	return jobs, nil
}
