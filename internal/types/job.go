// Package types defines the data model shared across the aggregation pipeline.
package types

import "time"

// Source identifies the ATS adapter a job was fetched from.
type Source string

const (
	SourceGreenhouse     Source = "greenhouse"
	SourceLever          Source = "lever"
	SourceAshby          Source = "ashby"
	SourceSmartRecruiter Source = "smartrecruiters"
	SourceAdzuna         Source = "adzuna"
)

// JobType is the employment type derived from vendor data or title keywords.
type JobType string

const (
	JobTypeInternship JobType = "Internship"
	JobTypeContract   JobType = "Contract"
	JobTypePartTime   JobType = "Part-time"
	JobTypeFullTime   JobType = "Full-time"
)

// RemoteStatus is the work arrangement derived from vendor data or free text.
type RemoteStatus string

const (
	RemoteYes    RemoteStatus = "Remote"
	RemoteHybrid RemoteStatus = "Hybrid"
	RemoteNo     RemoteStatus = "On-site"
)

// RawJob is one posting as normalized from a source adapter.
// ApplyURL must be non-empty for a job to survive the open-filter stage.
type RawJob struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	ApplyURL     string       `json:"apply_url"`
	PostedAt     *time.Time   `json:"posted_at,omitempty"`
	Open         bool         `json:"open"`
	Source       Source       `json:"source"`
	JobType      JobType      `json:"job_type,omitempty"`
	Remote       RemoteStatus `json:"remote,omitempty"`
	SalaryMin    *int         `json:"salary_min,omitempty"`
	SalaryMax    *int         `json:"salary_max,omitempty"`
	Requirements string       `json:"requirements,omitempty"`
	Benefits     string       `json:"benefits,omitempty"`
}

// ScoredJob is a RawJob plus relevance scores. MatchScore is the raw ranking
// score and may be negative or exceed 1.0 for the token heuristic; it is
// clamped to [0,1] only at the response boundary.
type ScoredJob struct {
	RawJob
	MatchScore      float64  `json:"match_score"`
	MatchingSkills  []string `json:"matching_skills,omitempty"`
	SimilarityScore float64  `json:"similarity_score,omitempty"`
	ExperienceMatch float64  `json:"experience_match,omitempty"`
}

// ResumeSignal holds the signals derived from resume text for one request.
// It is recomputed per request and never persisted.
type ResumeSignal struct {
	Tokens    map[string]bool
	Skills    []string
	Embedding []float64
	Level     string
}

// Empty reports whether no usable signal could be extracted from the resume.
func (s *ResumeSignal) Empty() bool {
	return s == nil || (len(s.Tokens) == 0 && len(s.Skills) == 0 && len(s.Embedding) == 0)
}

// DropSample records why a job was dropped, kept for a bounded number of jobs.
type DropSample struct {
	JobID   string `json:"job_id"`
	Company string `json:"company"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Stage   string `json:"stage"`
	Reason  string `json:"reason"`
}

// Diagnostics carries the per-stage counters for one aggregation run.
// Counters are captured at every stage boundary even when the stage
// changes nothing.
type Diagnostics struct {
	FetchedTotal    int          `json:"fetched_total"`
	AfterOpenFilter int          `json:"after_open_filter"`
	AfterValidation int          `json:"after_validation"`
	AfterDedup      int          `json:"after_dedup"`
	AfterAllowlist  int          `json:"after_allowlist"`
	AfterScore      int          `json:"after_score"`
	Returned        int          `json:"returned"`
	DurationSeconds float64      `json:"duration_seconds"`
	SourcesQueried  int          `json:"sources_queried"`
	DropSamples     []DropSample `json:"drop_samples,omitempty"`
}

// AggregationResult is the response for one aggregation request.
// It is constructed fresh per request and never mutated after return.
type AggregationResult struct {
	Jobs        []ScoredJob `json:"jobs"`
	Diagnostics Diagnostics `json:"diagnostics"`
}
