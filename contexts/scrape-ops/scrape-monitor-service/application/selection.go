package application

import "dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"

// RetrySelection is the operator's working set of job ids for bulk retry.
// It is view-local state, never persisted.
type RetrySelection struct {
	ids map[string]struct{}
}

func NewRetrySelection() *RetrySelection {
	return &RetrySelection{ids: make(map[string]struct{})}
}

func (s *RetrySelection) Toggle(jobID string) {
	if _, selected := s.ids[jobID]; selected {
		delete(s.ids, jobID)
		return
	}
	s.ids[jobID] = struct{}{}
}

// ToggleAllFailed flips between the empty selection and exactly the failed
// jobs among the loaded set. A partial selection snaps to all-failed first.
func (s *RetrySelection) ToggleAllFailed(loaded []entities.ScrapeJob) {
	failed := make(map[string]struct{})
	for _, job := range loaded {
		if job.Status == entities.JobStatusFailed {
			failed[job.JobID] = struct{}{}
		}
	}

	if len(s.ids) == len(failed) && len(failed) > 0 {
		allSelected := true
		for id := range failed {
			if _, ok := s.ids[id]; !ok {
				allSelected = false
				break
			}
		}
		if allSelected {
			s.Clear()
			return
		}
	}
	s.ids = failed
}

func (s *RetrySelection) Clear() {
	s.ids = make(map[string]struct{})
}

func (s *RetrySelection) Contains(jobID string) bool {
	_, ok := s.ids[jobID]
	return ok
}

func (s *RetrySelection) Len() int {
	return len(s.ids)
}

func (s *RetrySelection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	return ids
}
