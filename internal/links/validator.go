// Package links verifies that apply URLs still lead to live postings. A link
// is treated as dead unless the probe proves otherwise, so network failures
// and timeouts drop the job rather than surface a broken link.
package links

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Liam-Hayes8/Job-Matcher/internal/fetch"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// DefaultConcurrency bounds parallel link probes per request.
const DefaultConcurrency = 8

// bodyScanLimit is how much of a page body is scanned for tombstone phrases.
const bodyScanLimit = 8000

// tombstonePhrases mark a posting page that still returns 200 but whose
// content says the job is gone.
var tombstonePhrases = []string{
	"no longer available",
	"job not found",
	"position closed",
	"no longer posted",
	"no vacancies",
}

// strictHosts serve a generic shell page for any job ID, so a 200 proves
// nothing. For these hosts the page must actually mention the job title.
var defaultStrictHosts = []string{
	"myworkdayjobs.com",
	"taleo.net",
}

// Renderer produces the HTML of a page after client-side scripts have run.
// Wired to a headless browser in production; swapped out in tests.
type Renderer func(ctx context.Context, url string) (string, error)

// Validator probes apply URLs and reports which jobs are still live.
type Validator struct {
	opts        *fetch.Options
	logger      *zap.Logger
	renderer    Renderer
	concurrency int
	strictHosts []string
}

// NewValidator builds a Validator with the given fetch options. Pass a nil
// logger for no logging.
func NewValidator(opts *fetch.Options, logger *zap.Logger) *Validator {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		opts:        opts,
		logger:      logger,
		concurrency: DefaultConcurrency,
		strictHosts: defaultStrictHosts,
	}
}

// WithRenderer enables browser-assisted probing for strict hosts.
func (v *Validator) WithRenderer(r Renderer) *Validator {
	v.renderer = r
	return v
}

// WithConcurrency overrides the probe parallelism.
func (v *Validator) WithConcurrency(n int) *Validator {
	if n > 0 {
		v.concurrency = n
	}
	return v
}

// FilterLive probes every job's apply URL concurrently and returns the live
// jobs in their original order, plus a drop record per dead link.
func (v *Validator) FilterLive(ctx context.Context, jobs []types.RawJob) ([]types.RawJob, []types.DropSample) {
	if len(jobs) == 0 {
		return nil, nil
	}

	type outcome struct {
		live   bool
		reason string
	}
	outcomes := make([]outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			live, reason := v.Check(gctx, job.ApplyURL, job.Title)
			outcomes[i] = outcome{live: live, reason: reason}
			return nil
		})
	}
	_ = g.Wait()

	var live []types.RawJob
	var dropped []types.DropSample
	for i, job := range jobs {
		if outcomes[i].live {
			live = append(live, job)
			continue
		}
		v.logger.Debug("dropping dead link",
			zap.String("job_id", job.ID),
			zap.String("url", job.ApplyURL),
			zap.String("reason", outcomes[i].reason))
		dropped = append(dropped, types.DropSample{
			JobID:   job.ID,
			Company: job.Company,
			Title:   job.Title,
			URL:     job.ApplyURL,
			Stage:   "validation",
			Reason:  outcomes[i].reason,
		})
	}
	return live, dropped
}

// Check probes a single URL. It returns whether the posting is live and, if
// not, a short human-readable reason.
func (v *Validator) Check(ctx context.Context, rawURL, title string) (bool, string) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return false, "invalid url"
	}

	if v.isStrictHost(parsed.Hostname()) {
		return v.checkStrict(ctx, rawURL, title)
	}

	status, err := v.head(ctx, rawURL)
	if err != nil {
		return false, "request failed"
	}
	if status == http.StatusForbidden || status == http.StatusMethodNotAllowed {
		return v.checkBody(ctx, rawURL)
	}
	if status < 200 || status >= 300 {
		return false, fmt.Sprintf("status %d", status)
	}
	return true, ""
}

func (v *Validator) isStrictHost(host string) bool {
	host = strings.ToLower(host)
	for _, s := range v.strictHosts {
		if host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}

func (v *Validator) head(ctx context.Context, rawURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", v.opts.UserAgent)

	resp, err := v.client().Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

// checkBody fetches the page and scans its visible text for tombstone phrases.
func (v *Validator) checkBody(ctx context.Context, rawURL string) (bool, string) {
	text, ok, reason := v.pageText(ctx, rawURL, false)
	if !ok {
		return false, reason
	}
	if phrase := findTombstone(text); phrase != "" {
		return false, "tombstone phrase: " + phrase
	}
	return true, ""
}

// checkStrict fetches the page (rendered, when a browser is wired in) and
// requires both a clean tombstone scan and enough of the title's words to
// appear in the page.
func (v *Validator) checkStrict(ctx context.Context, rawURL, title string) (bool, string) {
	text, ok, reason := v.pageText(ctx, rawURL, true)
	if !ok {
		return false, reason
	}
	if phrase := findTombstone(text); phrase != "" {
		return false, "tombstone phrase: " + phrase
	}
	if !titleAppears(text, title) {
		return false, "title not found on page"
	}
	return true, ""
}

// pageText returns the visible text of a page, capped at bodyScanLimit bytes
// of markup. A non-2xx status or a transport error fails the probe.
func (v *Validator) pageText(ctx context.Context, rawURL string, rendered bool) (string, bool, string) {
	if rendered && v.renderer != nil {
		html, err := v.renderer(ctx, rawURL)
		if err == nil {
			return fetch.VisibleText(html), true, ""
		}
		v.logger.Debug("render failed, falling back to plain fetch",
			zap.String("url", rawURL), zap.Error(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false, "request failed"
	}
	req.Header.Set("User-Agent", v.opts.UserAgent)

	resp, err := v.client().Do(req)
	if err != nil {
		return "", false, "request failed"
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false, fmt.Sprintf("status %d", resp.StatusCode)
	}
	body := fetch.ReadBodyPrefix(resp.Body, bodyScanLimit)
	return fetch.VisibleText(body), true, ""
}

func (v *Validator) client() *http.Client {
	return &http.Client{Timeout: v.opts.Timeout}
}

func findTombstone(text string) string {
	lower := strings.ToLower(text)
	for _, phrase := range tombstonePhrases {
		if strings.Contains(lower, phrase) {
			return phrase
		}
	}
	return ""
}

// titleAppears requires at least max(2, n/3) of the title's significant words
// (longer than 3 characters) to show up in the page text. Titles with no
// significant words pass.
func titleAppears(text, title string) bool {
	lower := strings.ToLower(text)
	var words []string
	for _, w := range strings.Fields(strings.ToLower(title)) {
		w = strings.Trim(w, ",.()[]-/")
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return true
	}
	needed := len(words) / 3
	if needed < 2 {
		needed = 2
	}
	if needed > len(words) {
		needed = len(words)
	}
	found := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			found++
		}
	}
	return found >= needed
}
