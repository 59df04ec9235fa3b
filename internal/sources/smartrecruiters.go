package sources

import (
	"context"
	"fmt"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

const smartRecruitersBaseURL = "https://api.smartrecruiters.com/v1/companies"

// SmartRecruiters fetches postings from the public SmartRecruiters posting API.
type SmartRecruiters struct {
	boards  []string
	limit   int
	opts    *fetch.Options
	baseURL string
}

// NewSmartRecruiters creates a SmartRecruiters adapter over company slugs.
func NewSmartRecruiters(boards []string, limit int, opts *fetch.Options) *SmartRecruiters {
	return &SmartRecruiters{boards: boards, limit: limit, opts: opts, baseURL: smartRecruitersBaseURL}
}

// Name implements Adapter.
func (s *SmartRecruiters) Name() types.Source { return types.SourceSmartRecruiter }

type smartRecruitersResponse struct {
	Content []smartRecruitersPosting `json:"content"`
}

type smartRecruitersPosting struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	ReleasedDate string `json:"releasedDate"`
	Location     struct {
		City string `json:"city"`
	} `json:"location"`
	ApplyURL string `json:"applyUrl"`
	JobAd    struct {
		Sections struct {
			JobDescription struct {
				Text string `json:"text"`
			} `json:"jobDescription"`
		} `json:"sections"`
	} `json:"jobAd"`
}

// Fetch implements Adapter.
func (s *SmartRecruiters) Fetch(ctx context.Context) ([]types.RawJob, error) {
	var jobs []types.RawJob
	var lastErr error
	for _, board := range s.boards {
		url := fmt.Sprintf("%s/%s/postings?limit=%d&status=published", s.baseURL, board, s.limit)
		var resp smartRecruitersResponse
		if err := fetch.JSON(ctx, url, s.opts, &resp); err != nil {
			lastErr = err
			continue
		}
		for _, p := range resp.Content {
			if p.ApplyURL == "" {
				continue
			}
			description := p.JobAd.Sections.JobDescription.Text
			jobs = append(jobs, types.RawJob{
				ID:          "smartrecruiters_" + p.ID,
				Title:       p.Name,
				Company:     companyName(board),
				Description: description,
				Location:    p.Location.City,
				ApplyURL:    p.ApplyURL,
				PostedAt:    parseRFC3339(p.ReleasedDate),
				Open:        p.Status == "PUBLISHED",
				Source:      types.SourceSmartRecruiter,
				JobType:     ClassifyJobType(p.Name),
				Remote:      ClassifyRemote(p.Name + " " + description),
			})
		}
	}
	if jobs == nil && lastErr != nil {
		return nil, lastErr
	}
	return jobs, nil
}
