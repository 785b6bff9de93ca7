package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
	domainerrors "dttracker/contexts/scrape-ops/scrape-monitor-service/domain/errors"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	jobs map[string]entities.ScrapeJob
	runs map[string]entities.ScrapeRun
}

func NewStore(seed []entities.ScrapeJob) *Store {
	jobs := make(map[string]entities.ScrapeJob, len(seed))
	for _, item := range seed {
		jobs[item.JobID] = item
	}
	return &Store{
		jobs: jobs,
		runs: make(map[string]entities.ScrapeRun),
	}
}

func (s *Store) CreateJob(_ context.Context, job entities.ScrapeJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.JobID]; exists {
		return domainerrors.ErrInvalidInput
	}
	s.jobs[job.JobID] = job
	return nil
}

func (s *Store) UpdateJob(_ context.Context, job entities.ScrapeJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.JobID]; !exists {
		return domainerrors.ErrJobNotFound
	}
	s.jobs[job.JobID] = job
	return nil
}

func (s *Store) GetJob(_ context.Context, jobID string) (entities.ScrapeJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.jobs[strings.TrimSpace(jobID)]
	if !exists {
		return entities.ScrapeJob{}, domainerrors.ErrJobNotFound
	}
	return item, nil
}

func (s *Store) ListJobs(_ context.Context, filter ports.JobFilter) ([]entities.ScrapeJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ScrapeJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.Platform != "" && job.Platform != filter.Platform {
			continue
		}
		items = append(items, job)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ScheduledFor.Before(items[j].ScheduledFor)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) RequeueFailed(_ context.Context, jobIDs []string, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	retried := 0
	for _, id := range jobIDs {
		job, exists := s.jobs[strings.TrimSpace(id)]
		if !exists || !job.RetryEligible() {
			continue
		}
		job.Status = entities.JobStatusQueued
		job.NextRetryAt = nil
		job.ScheduledFor = now
		job.UpdatedAt = now
		s.jobs[job.JobID] = job
		retried++
	}
	return retried, nil
}

func (s *Store) ReleaseCooldown(_ context.Context, now time.Time, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	released := 0
	for id, job := range s.jobs {
		if released >= limit {
			break
		}
		if job.Status != entities.JobStatusCooldown {
			continue
		}
		if job.NextRetryAt == nil || job.NextRetryAt.After(now) {
			continue
		}
		job.Status = entities.JobStatusQueued
		job.NextRetryAt = nil
		job.ScheduledFor = now
		job.UpdatedAt = now
		s.jobs[id] = job
		released++
	}
	return released, nil
}

func (s *Store) AppendRun(_ context.Context, run entities.ScrapeRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.RunID]; exists {
		return domainerrors.ErrInvalidInput
	}
	s.runs[run.RunID] = run
	return nil
}

func (s *Store) UpdateRun(_ context.Context, run entities.ScrapeRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.RunID]; !exists {
		return domainerrors.ErrRunNotFound
	}
	s.runs[run.RunID] = run
	return nil
}

func (s *Store) GetRun(_ context.Context, runID string) (entities.ScrapeRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.runs[strings.TrimSpace(runID)]
	if !exists {
		return entities.ScrapeRun{}, domainerrors.ErrRunNotFound
	}
	return item, nil
}

func (s *Store) ListRuns(_ context.Context, filter ports.RunFilter) ([]entities.ScrapeRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.ScrapeRun, 0)
	for _, run := range s.runs {
		if !filter.From.IsZero() && run.StartedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && run.StartedAt.After(filter.To) {
			continue
		}
		if filter.Platform != "" && run.Platform != filter.Platform {
			continue
		}
		if filter.Status != "" && run.Status != filter.Status {
			continue
		}
		items = append(items, run)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].StartedAt.After(items[j].StartedAt)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) PruneRunsBefore(_ context.Context, cutoff time.Time, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, run := range s.runs {
		if pruned >= limit {
			break
		}
		if !run.IsFinished() {
			continue
		}
		if !run.StartedAt.Before(cutoff) {
			continue
		}
		delete(s.runs, id)
		pruned++
	}
	return pruned, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
