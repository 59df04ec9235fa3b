package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Liam-Hayes8/Job-Matcher/internal/aggregate"
	"github.com/Liam-Hayes8/Job-Matcher/internal/logger"
	"github.com/Liam-Hayes8/Job-Matcher/internal/resume"
	"github.com/Liam-Hayes8/Job-Matcher/internal/scoring"
	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// LiveJobsRequest is the request body for POST /api/v1/jobs/live. The
// pointer booleans default to true when omitted.
type LiveJobsRequest struct {
	ResumeText      string   `json:"resume_text" validate:"required,min=20"`
	Location        string   `json:"location"`
	MaxJobs         int      `json:"max_jobs" validate:"omitempty,min=1,max=100"`
	Sources         []string `json:"source_boards" validate:"omitempty,dive,oneof=greenhouse lever ashby smartrecruiters adzuna"`
	UseEmbeddings   *bool    `json:"use_embeddings"`
	ValidateLinks   *bool    `json:"validate_links"`
	SkipAllowlist   bool     `json:"skip_allowlist"`
	RemotePreferred bool     `json:"remote_preferred"`
	MinSalary       int      `json:"min_salary" validate:"omitempty,min=0"`
	JobType         string   `json:"job_type" validate:"omitempty,oneof=Internship Contract Part-time Full-time"`
	InternOnly      bool     `json:"internships_only"`
}

// RefreshResponse is the response for POST /api/v1/jobs/refresh.
type RefreshResponse struct {
	Stored int `json:"stored"`
}

// handleLiveJobs runs the aggregation pipeline for one resume.
func (s *Server) handleLiveJobs(w http.ResponseWriter, r *http.Request) {
	var req LiveJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	signal := resume.Extract(req.ResumeText)
	if s.embedder != nil && orTrue(req.UseEmbeddings) {
		if vec, err := s.embedder.Embed(ctx, req.ResumeText); err == nil {
			signal.Embedding = vec
		} else {
			s.logger.Warn("resume embedding failed, ranking by tokens only", zap.Error(err))
		}
	}

	s.logger.Info("matching request",
		zap.String("resume_preview", logger.TruncateForLog(req.ResumeText, 60)),
		zap.Int("max_jobs", req.MaxJobs))

	result, err := s.aggregator.Run(ctx, aggregate.Request{
		Signal:         signal,
		Limit:          req.MaxJobs,
		Sources:        req.Sources,
		Location:       req.Location,
		SkipValidation: !orTrue(req.ValidateLinks),
		SkipAllowlist:  req.SkipAllowlist,
		Prefs: scoring.Preferences{
			RemotePreferred: req.RemotePreferred,
			MinSalary:       req.MinSalary,
			JobType:         types.JobType(req.JobType),
			InternOnly:      req.InternOnly,
		},
	})
	if err != nil {
		s.logger.Error("aggregation failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "aggregation failed")
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

// handleRefresh re-fetches all sources into the job cache.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	stored, err := s.aggregator.RefreshCache(ctx)
	if err != nil {
		s.logger.Error("cache refresh failed", zap.Error(err))
		s.errorResponse(w, http.StatusServiceUnavailable, "cache refresh failed: "+err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, RefreshResponse{Stored: stored})
}

// handleGetJob serves one cached posting by its source-qualified ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.aggregator.CachedJob(r.Context(), r.PathValue("id"))
	if err != nil {
		s.logger.Error("job lookup failed", zap.Error(err))
		s.errorResponse(w, http.StatusServiceUnavailable, "job cache unavailable: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

// handleHealth reports liveness. Unauthenticated.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func orTrue(v *bool) bool { return v == nil || *v }

// validationMessage flattens the first validator error into a client-facing
// message.
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		first := errs[0]
		return "invalid field " + first.Field() + ": failed " + first.Tag() + " validation"
	}
	return "invalid request"
}
