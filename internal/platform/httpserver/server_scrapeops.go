package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	scrapeerrors "dttracker/contexts/scrape-ops/scrape-monitor-service/domain/errors"
	scrapehttp "dttracker/contexts/scrape-ops/scrape-monitor-service/transport/http"
)

func (s *Server) handleRegisterJob(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeScrapeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req scrapehttp.RegisterJobRequest
	if !s.decodeJSON(w, r, &req, writeScrapeError) {
		return
	}

	resp, err := s.scrapeops.Handler.RegisterJobHandler(r.Context(), req)
	if err != nil {
		writeScrapeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, ok := parseLimit(w, query.Get("limit"))
	if !ok {
		return
	}

	resp, err := s.scrapeops.Handler.ListJobsHandler(
		r.Context(),
		query.Get("status"),
		query.Get("platform"),
		limit,
	)
	if err != nil {
		writeScrapeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRetryJobs(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeScrapeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req scrapehttp.RetryJobsRequest
	if !s.decodeJSON(w, r, &req, writeScrapeError) {
		return
	}

	resp, err := s.scrapeops.Handler.RetryJobsHandler(r.Context(), req)
	if err != nil {
		writeScrapeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeScrapeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req scrapehttp.StartRunRequest
	if !s.decodeJSON(w, r, &req, writeScrapeError) {
		return
	}

	resp, err := s.scrapeops.Handler.StartRunHandler(r.Context(), userID, req)
	if err != nil {
		writeScrapeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleFinishRun(w http.ResponseWriter, r *http.Request) {
	userID := requireUserID(r)
	if userID == "" {
		writeScrapeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req scrapehttp.FinishRunRequest
	if !s.decodeJSON(w, r, &req, writeScrapeError) {
		return
	}

	resp, err := s.scrapeops.Handler.FinishRunHandler(r.Context(), r.PathValue("run_id"), req)
	if err != nil {
		writeScrapeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, ok := parseLimit(w, query.Get("limit"))
	if !ok {
		return
	}

	resp, err := s.scrapeops.Handler.ListRunsHandler(
		r.Context(),
		query.Get("from"),
		query.Get("to"),
		query.Get("platform"),
		query.Get("status"),
		limit,
	)
	if err != nil {
		writeScrapeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRunSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.scrapeops.Handler.RunSummaryHandler(r.Context())
	if err != nil {
		writeScrapeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseLimit(w http.ResponseWriter, raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		writeScrapeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return 0, false
	}
	return limit, true
}

func writeScrapeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scrapeerrors.ErrJobNotFound):
		writeScrapeError(w, http.StatusNotFound, "job_not_found", err.Error())
	case errors.Is(err, scrapeerrors.ErrRunNotFound):
		writeScrapeError(w, http.StatusNotFound, "run_not_found", err.Error())
	case errors.Is(err, scrapeerrors.ErrInvalidInput):
		writeScrapeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, scrapeerrors.ErrEmptySelection):
		writeScrapeError(w, http.StatusBadRequest, "empty_selection", err.Error())
	case errors.Is(err, scrapeerrors.ErrJobNotRunning),
		errors.Is(err, scrapeerrors.ErrJobAlreadyRunning),
		errors.Is(err, scrapeerrors.ErrRunAlreadyFinished):
		writeScrapeError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeScrapeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeScrapeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, scrapehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
