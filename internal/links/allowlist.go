package links

import (
	"net/url"
	"strings"
)

// DefaultAllowedHosts are the ATS hosts whose apply links we trust enough to
// surface. Workday and Taleo links pass the allow-list but get the stricter
// content validation in Validator.
var DefaultAllowedHosts = []string{
	"boards.greenhouse.io",
	"jobs.lever.co",
	"jobs.eu.lever.co",
	"jobs.ashbyhq.com",
	"careers.smartrecruiters.com",
	"myworkdayjobs.com",
	"taleo.net",
}

// Allowlist filters jobs by apply URL host. A nil or empty allow-list
// allows everything.
type Allowlist struct {
	hosts []string
}

// NewAllowlist builds an Allowlist from host suffixes. Hosts are matched
// exactly or as a dot-separated suffix, so "taleo.net" also covers
// "chp.tbe.taleo.net".
func NewAllowlist(hosts []string) *Allowlist {
	var cleaned []string
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			cleaned = append(cleaned, h)
		}
	}
	return &Allowlist{hosts: cleaned}
}

// Allows reports whether the URL's host is covered by the allow-list.
func (a *Allowlist) Allows(rawURL string) bool {
	if a == nil || len(a.hosts) == 0 {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, allowed := range a.hosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}
