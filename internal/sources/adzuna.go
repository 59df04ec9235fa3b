package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

const adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// adzunaCountries maps request locations to Adzuna country codes.
var adzunaCountries = map[string]string{
	"US": "us", "GB": "gb", "AU": "au", "BR": "br", "CA": "ca", "DE": "de",
	"FR": "fr", "IN": "in", "IT": "it", "MX": "mx", "NL": "nl", "NZ": "nz",
	"PL": "pl", "SG": "sg", "ES": "es", "SE": "se", "ZA": "za",
}

// Adzuna searches the Adzuna aggregator API. Adzuna only returns active
// postings, so every record is open.
type Adzuna struct {
	appID    string
	appKey   string
	location string
	limit    int
	opts     *fetch.Options
	baseURL  string
}

// NewAdzuna creates an Adzuna adapter.
func NewAdzuna(appID, appKey, location string, limit int, opts *fetch.Options) *Adzuna {
	return &Adzuna{appID: appID, appKey: appKey, location: location, limit: limit, opts: opts, baseURL: adzunaBaseURL}
}

// Name implements Adapter.
func (a *Adzuna) Name() types.Source { return types.SourceAdzuna }

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

type adzunaResult struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Created     string   `json:"created"`
	RedirectURL string   `json:"redirect_url"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

// Fetch implements Adapter.
func (a *Adzuna) Fetch(ctx context.Context) ([]types.RawJob, error) {
	country, ok := adzunaCountries[strings.ToUpper(a.location)]
	if !ok {
		country = "us"
	}

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", fmt.Sprintf("%d", min(a.limit, 50)))
	params.Set("what", "software engineer developer python javascript")
	params.Set("content-type", "application/json")

	searchURL := fmt.Sprintf("%s/%s/search/1?%s", a.baseURL, country, params.Encode())
	var resp adzunaResponse
	if err := fetch.JSON(ctx, searchURL, a.opts, &resp); err != nil {
		return nil, err
	}

	var jobs []types.RawJob
	for _, r := range resp.Results {
		if r.RedirectURL == "" {
			continue
		}
		jobs = append(jobs, types.RawJob{
			ID:          "adzuna_" + r.ID,
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Description: r.Description,
			Location:    r.Location.DisplayName,
			ApplyURL:    r.RedirectURL,
			PostedAt:    parseRFC3339(r.Created),
			Open:        true,
			Source:      types.SourceAdzuna,
			JobType:     ClassifyJobType(r.Title),
			Remote:      ClassifyRemote(r.Title + " " + r.Description),
			SalaryMin:   floatToInt(r.SalaryMin),
			SalaryMax:   floatToInt(r.SalaryMax),
		})
	}
	return jobs, nil
}

func floatToInt(f *float64) *int {
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}
