package links

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

func TestAllowlist(t *testing.T) {
	a := NewAllowlist(DefaultAllowedHosts)

	assert.True(t, a.Allows("https://boards.greenhouse.io/acme/jobs/1"))
	assert.True(t, a.Allows("https://jobs.eu.lever.co/acme/ab-12"))
	assert.True(t, a.Allows("https://acme.wd5.myworkdayjobs.com/en-US/careers/job/1"))
	assert.True(t, a.Allows("https://chp.tbe.taleo.net/chp03/ats/careers/req.jsp"))
	assert.False(t, a.Allows("https://example.com/jobs/1"))
	assert.False(t, a.Allows("https://evilboards.greenhouse.io.example.com/x"))
	assert.False(t, a.Allows("not a url"))
}

func TestAllowlistEmptyAllowsAll(t *testing.T) {
	assert.True(t, NewAllowlist(nil).Allows("https://example.com/anything"))
}

func TestCheckHeadOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	v := NewValidator(fetch.DefaultOptions(), nil)
	live, reason := v.Check(context.Background(), srv.URL+"/job/1", "Software Engineer")
	assert.True(t, live)
	assert.Empty(t, reason)
}

func TestCheckHeadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	v := NewValidator(fetch.DefaultOptions(), nil)
	live, reason := v.Check(context.Background(), srv.URL+"/job/1", "Software Engineer")
	assert.False(t, live)
	assert.Equal(t, "status 404", reason)
}

func TestCheckFallsBackToGetOnMethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_, _ = w.Write([]byte("<html><body>Apply now for this role</body></html>"))
	}))
	defer srv.Close()

	v := NewValidator(fetch.DefaultOptions(), nil)
	live, _ := v.Check(context.Background(), srv.URL+"/job/1", "Software Engineer")
	assert.True(t, live)
}

func TestCheckTombstonePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte("<html><body>This position is no longer available.</body></html>"))
	}))
	defer srv.Close()

	v := NewValidator(fetch.DefaultOptions(), nil)
	live, reason := v.Check(context.Background(), srv.URL+"/job/1", "Software Engineer")
	assert.False(t, live)
	assert.Contains(t, reason, "no longer available")
}

func TestCheckFailsClosedOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	v := NewValidator(fetch.DefaultOptions(), nil)
	live, reason := v.Check(context.Background(), url+"/job/1", "Software Engineer")
	assert.False(t, live)
	assert.Equal(t, "request failed", reason)
}

func TestCheckFailsClosedOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	v := NewValidator(&fetch.Options{Timeout: 20 * time.Millisecond, UserAgent: fetch.DefaultUserAgent}, nil)
	live, _ := v.Check(context.Background(), srv.URL+"/job/1", "Software Engineer")
	assert.False(t, live)
}

func TestCheckStrictHostTitleMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>Senior Software Engineer - Platform team. Apply today.</body></html>"))
	}))
	defer srv.Close()

	v := NewValidator(fetch.DefaultOptions(), nil)
	v.strictHosts = []string{"127.0.0.1"}

	live, _ := v.Check(context.Background(), srv.URL+"/job/1", "Senior Software Engineer")
	assert.True(t, live)

	live, reason := v.Check(context.Background(), srv.URL+"/job/1", "Quantitative Research Analyst")
	assert.False(t, live)
	assert.Equal(t, "title not found on page", reason)
}

func TestCheckStrictHostUsesRenderer(t *testing.T) {
	rendered := "<html><body>Data Platform Engineer opening at Initech</body></html>"
	v := NewValidator(fetch.DefaultOptions(), nil).WithRenderer(func(ctx context.Context, url string) (string, error) {
		return rendered, nil
	})
	v.strictHosts = []string{"127.0.0.1"}

	live, _ := v.Check(context.Background(), "http://127.0.0.1:1/job/1", "Data Platform Engineer")
	assert.True(t, live)
}

func TestFilterLivePreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/dead" {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	jobs := []types.RawJob{
		{ID: "a", Title: "First", ApplyURL: srv.URL + "/live"},
		{ID: "b", Title: "Second", ApplyURL: srv.URL + "/dead"},
		{ID: "c", Title: "Third", ApplyURL: srv.URL + "/live"},
	}

	v := NewValidator(fetch.DefaultOptions(), nil).WithConcurrency(2)
	live, dropped := v.FilterLive(context.Background(), jobs)

	require.Len(t, live, 2)
	assert.Equal(t, "a", live[0].ID)
	assert.Equal(t, "c", live[1].ID)

	require.Len(t, dropped, 1)
	assert.Equal(t, "b", dropped[0].JobID)
	assert.Equal(t, "validation", dropped[0].Stage)
	assert.Equal(t, "status 410", dropped[0].Reason)
}
