package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

func TestGreenhouseFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme/jobs", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("content"))
		_, _ = w.Write([]byte(`{"jobs":[
			{"id":101,"title":"Software Engineer Intern","content":"Build things remote","absolute_url":"https://boards.greenhouse.io/acme/jobs/101","updated_at":"2025-06-01T12:00:00Z","location":{"name":"New York"}},
			{"id":102,"title":"Accountant","content":"Ledger work","absolute_url":"","location":{"name":"Boston"}}
		]}`))
	}))
	defer srv.Close()

	g := NewGreenhouse([]string{"acme"}, 50, fetch.DefaultOptions())
	g.baseURL = srv.URL

	jobs, err := g.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "greenhouse_101", job.ID)
	assert.Equal(t, "Software Engineer Intern", job.Title)
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, "New York", job.Location)
	assert.True(t, job.Open)
	assert.Equal(t, types.SourceGreenhouse, job.Source)
	assert.Equal(t, types.JobTypeInternship, job.JobType)
	assert.Equal(t, types.RemoteYes, job.Remote)
	require.NotNil(t, job.PostedAt)
	assert.Equal(t, 2025, job.PostedAt.Year())
}

func TestGreenhouseFetchBoardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewGreenhouse([]string{"missing"}, 50, fetch.DefaultOptions())
	g.baseURL = srv.URL

	_, err := g.Fetch(context.Background())
	assert.Error(t, err)
}

func TestLeverFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"ab-12","text":"Backend Engineer","descriptionPlain":"Go services, hybrid office","hostedUrl":"https://jobs.lever.co/acme/ab-12","createdAt":1748736000000,"state":"published","categories":{"team":"Platform","location":"Austin"}},
			{"id":"cd-34","text":"Closed Role","descriptionPlain":"","hostedUrl":"https://jobs.lever.co/acme/cd-34","createdAt":0,"state":"internal","categories":{}}
		]`))
	}))
	defer srv.Close()

	l := NewLever([]string{"acme"}, 50, fetch.DefaultOptions())
	l.baseURL = srv.URL

	jobs, err := l.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "lever_ab-12", jobs[0].ID)
	assert.True(t, jobs[0].Open)
	assert.Equal(t, "Austin", jobs[0].Location)
	assert.Equal(t, types.RemoteHybrid, jobs[0].Remote)
	require.NotNil(t, jobs[0].PostedAt)

	assert.False(t, jobs[1].Open)
	assert.Nil(t, jobs[1].PostedAt)
}

func TestAshbyFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ashbyListRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "org-1", req.OrganizationID)

		_, _ = w.Write([]byte(`{"jobPostings":[
			{"id":"p1","title":"Data Engineer","description":"Pipelines, remote ok","location":"Denver","applicationUrl":"https://jobs.ashbyhq.com/org-1/p1","isActive":true,"createdAt":"2025-05-20T09:30:00Z"},
			{"id":"p2","title":"No Link Role","description":"","location":"","applicationUrl":"","isActive":true}
		]}`))
	}))
	defer srv.Close()

	a := NewAshby([]string{"org-1"}, "test-key", 50, fetch.DefaultOptions())
	a.baseURL = srv.URL

	jobs, err := a.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "ashby_p1", jobs[0].ID)
	assert.True(t, jobs[0].Open)
	assert.Equal(t, types.RemoteYes, jobs[0].Remote)
}

func TestSmartRecruitersFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme/postings", r.URL.Path)
		assert.Equal(t, "published", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"content":[
			{"id":"sr-1","name":"Platform Engineer","status":"PUBLISHED","releasedDate":"2025-06-10T00:00:00Z","location":{"city":"Seattle"},"applyUrl":"https://careers.smartrecruiters.com/acme/sr-1","jobAd":{"sections":{"jobDescription":{"text":"Kubernetes and Go"}}}}
		]}`))
	}))
	defer srv.Close()

	s := NewSmartRecruiters([]string{"acme"}, 50, fetch.DefaultOptions())
	s.baseURL = srv.URL

	jobs, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "smartrecruiters_sr-1", jobs[0].ID)
	assert.Equal(t, "Platform Engineer", jobs[0].Title)
	assert.Equal(t, "Seattle", jobs[0].Location)
	assert.Equal(t, "Kubernetes and Go", jobs[0].Description)
	assert.True(t, jobs[0].Open)
}

func TestAdzunaFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/us/search/1", r.URL.Path)
		assert.Equal(t, "id-1", r.URL.Query().Get("app_id"))
		assert.Equal(t, "key-1", r.URL.Query().Get("app_key"))
		_, _ = w.Write([]byte(`{"results":[
			{"id":"az-9","title":"Software Developer","description":"Remote role","created":"2025-06-12T08:00:00Z","redirect_url":"https://adzuna.com/land/az-9","salary_min":90000.0,"salary_max":120000.0,"company":{"display_name":"Globex"},"location":{"display_name":"Chicago, IL"}}
		]}`))
	}))
	defer srv.Close()

	a := NewAdzuna("id-1", "key-1", "US", 25, fetch.DefaultOptions())
	a.baseURL = srv.URL

	jobs, err := a.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "adzuna_az-9", job.ID)
	assert.Equal(t, "Globex", job.Company)
	assert.True(t, job.Open)
	require.NotNil(t, job.SalaryMin)
	assert.Equal(t, 90000, *job.SalaryMin)
	require.NotNil(t, job.SalaryMax)
	assert.Equal(t, 120000, *job.SalaryMax)
}

func TestBuildAndOnly(t *testing.T) {
	cfg := Config{
		GreenhouseBoards: []string{"acme"},
		LeverBoards:      []string{"acme"},
		AdzunaAppID:      "id",
		AdzunaAppKey:     "key",
	}
	adapters := Build(cfg)
	require.Len(t, adapters, 3)
	assert.Equal(t, types.SourceGreenhouse, adapters[0].Name())
	assert.Equal(t, types.SourceLever, adapters[1].Name())
	assert.Equal(t, types.SourceAdzuna, adapters[2].Name())

	kept := Only(adapters, []string{"lever"})
	require.Len(t, kept, 1)
	assert.Equal(t, types.SourceLever, kept[0].Name())

	assert.Len(t, Only(adapters, nil), 3)
}
