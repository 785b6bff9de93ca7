package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/application/commands"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/application/queries"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
	domainerrors "dttracker/contexts/scrape-ops/scrape-monitor-service/domain/errors"
	httptransport "dttracker/contexts/scrape-ops/scrape-monitor-service/transport/http"
)

type Handler struct {
	RegisterJob commands.RegisterJobUseCase
	RetryJobs   commands.RetryJobsUseCase
	StartRun    commands.StartRunUseCase
	FinishRun   commands.FinishRunUseCase
	ListJobs    queries.ListJobsUseCase
	ListRuns    queries.ListRunsUseCase
	RunSummary  queries.RunSummaryUseCase
	Logger      *slog.Logger
}

func (h Handler) RegisterJobHandler(ctx context.Context, req httptransport.RegisterJobRequest) (httptransport.RegisterJobResponse, error) {
	scheduledFor, err := parseOptionalTime(req.ScheduledFor)
	if err != nil {
		return httptransport.RegisterJobResponse{}, domainerrors.ErrInvalidInput
	}
	job, err := h.RegisterJob.Execute(ctx, commands.RegisterJobCommand{
		Platform:      req.Platform,
		ReferenceType: req.ReferenceType,
		ReferenceID:   req.ReferenceID,
		MaxAttempts:   req.MaxAttempts,
		ScheduledFor:  scheduledFor,
	})
	if err != nil {
		return httptransport.RegisterJobResponse{}, err
	}
	return httptransport.RegisterJobResponse{Job: mapJob(job)}, nil
}

func (h Handler) ListJobsHandler(ctx context.Context, status string, platform string, limit int) (httptransport.ListJobsResponse, error) {
	items, err := h.ListJobs.Execute(ctx, queries.ListJobsQuery{
		Status:   status,
		Platform: platform,
		Limit:    limit,
	})
	if err != nil {
		return httptransport.ListJobsResponse{}, err
	}
	result := make([]httptransport.ScrapeJobDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapJob(item))
	}
	return httptransport.ListJobsResponse{Items: result}, nil
}

func (h Handler) ListRunsHandler(ctx context.Context, from string, to string, platform string, status string, limit int) (httptransport.ListRunsResponse, error) {
	fromTime, err := parseOptionalTime(from)
	if err != nil {
		return httptransport.ListRunsResponse{}, domainerrors.ErrInvalidInput
	}
	toTime, err := parseOptionalTime(to)
	if err != nil {
		return httptransport.ListRunsResponse{}, domainerrors.ErrInvalidInput
	}

	query := queries.ListRunsQuery{
		Platform: platform,
		Status:   status,
		Limit:    limit,
	}
	if fromTime != nil {
		query.From = *fromTime
	}
	if toTime != nil {
		query.To = *toTime
	}

	items, err := h.ListRuns.Execute(ctx, query)
	if err != nil {
		return httptransport.ListRunsResponse{}, err
	}
	result := make([]httptransport.ScrapeRunDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapRun(item))
	}
	return httptransport.ListRunsResponse{Items: result}, nil
}

func (h Handler) RetryJobsHandler(ctx context.Context, req httptransport.RetryJobsRequest) (httptransport.RetryJobsResponse, error) {
	result, err := h.RetryJobs.Execute(ctx, commands.RetryJobsCommand{JobIDs: req.JobIDs})
	if err != nil {
		return httptransport.RetryJobsResponse{}, err
	}
	return httptransport.RetryJobsResponse{
		Success:        true,
		RequestedCount: result.RequestedCount,
		RetriedCount:   result.RetriedCount,
	}, nil
}

func (h Handler) StartRunHandler(ctx context.Context, actorID string, req httptransport.StartRunRequest) (httptransport.RunResponse, error) {
	run, err := h.StartRun.Execute(ctx, commands.StartRunCommand{
		JobID:   req.JobID,
		ActorID: actorID,
	})
	if err != nil {
		return httptransport.RunResponse{}, err
	}
	return httptransport.RunResponse{Run: mapRun(run)}, nil
}

func (h Handler) FinishRunHandler(ctx context.Context, runID string, req httptransport.FinishRunRequest) (httptransport.RunResponse, error) {
	run, err := h.FinishRun.Execute(ctx, commands.FinishRunCommand{
		RunID:      runID,
		Status:     entities.RunStatus(strings.TrimSpace(req.Status)),
		ItemsCount: req.ItemsCount,
		Error:      req.Error,
	})
	if err != nil {
		return httptransport.RunResponse{}, err
	}
	return httptransport.RunResponse{Run: mapRun(run)}, nil
}

func (h Handler) RunSummaryHandler(ctx context.Context) (httptransport.RunSummaryResponse, error) {
	summary, err := h.RunSummary.Execute(ctx)
	if err != nil {
		return httptransport.RunSummaryResponse{}, err
	}
	byPlatform := make(map[string]httptransport.PlatformSummaryDTO, len(summary.ByPlatform))
	for platform, item := range summary.ByPlatform {
		byPlatform[platform] = httptransport.PlatformSummaryDTO{
			Total:     item.Total,
			Succeeded: item.Succeeded,
		}
	}
	return httptransport.RunSummaryResponse{
		Total:      summary.Total,
		Succeeded:  summary.Succeeded,
		ByPlatform: byPlatform,
	}, nil
}

func mapJob(item entities.ScrapeJob) httptransport.ScrapeJobDTO {
	result := httptransport.ScrapeJobDTO{
		JobID:         item.JobID,
		Platform:      item.Platform,
		ReferenceType: string(item.ReferenceType),
		ReferenceID:   item.ReferenceID,
		Status:        string(item.Status),
		Attempts:      item.Attempts,
		MaxAttempts:   item.MaxAttempts,
		LastError:     item.LastError,
		ScheduledFor:  item.ScheduledFor.UTC().Format(time.RFC3339),
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.Format(time.RFC3339),
	}
	if item.NextRetryAt != nil {
		result.NextRetryAt = item.NextRetryAt.UTC().Format(time.RFC3339)
	}
	return result
}

func mapRun(item entities.ScrapeRun) httptransport.ScrapeRunDTO {
	result := httptransport.ScrapeRunDTO{
		RunID:      item.RunID,
		JobID:      item.JobID,
		ActorID:    item.ActorID,
		Status:     string(item.Status),
		StartedAt:  item.StartedAt.Format(time.RFC3339),
		DurationMS: item.DurationMS,
		ItemsCount: item.ItemsCount,
		Error:      item.Error,
		Platform:   item.Platform,
	}
	if item.FinishedAt != nil {
		result.FinishedAt = item.FinishedAt.UTC().Format(time.RFC3339)
	}
	return result
}

func parseOptionalTime(raw string) (*time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parse time: %w", err)
	}
	utc := parsed.UTC()
	return &utc, nil
}
