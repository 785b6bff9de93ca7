package entities

import "time"

type RunStatus string

const (
	RunStatusStarted   RunStatus = "started"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
	RunStatusTimedOut  RunStatus = "timed_out"
)

// ScrapeRun is one execution attempt of a job. Rows are append-only; the
// platform is denormalized so run aggregation never joins back to jobs.
type ScrapeRun struct {
	RunID      string
	JobID      string
	ActorID    string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
	DurationMS *int64
	ItemsCount *int
	Error      string
	Platform   string
}

func (r ScrapeRun) IsFinished() bool {
	return r.Status != RunStatusStarted
}

func (r ScrapeRun) ValidateTimes() bool {
	if r.FinishedAt == nil {
		return true
	}
	return !r.FinishedAt.Before(r.StartedAt)
}

func IsSupportedRunStatus(value RunStatus) bool {
	switch value {
	case RunStatusStarted, RunStatusSucceeded, RunStatusFailed, RunStatusTimedOut:
		return true
	default:
		return false
	}
}
