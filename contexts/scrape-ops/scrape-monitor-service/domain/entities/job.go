package entities

import (
	"strings"
	"time"
)

type JobStatus string
type ReferenceType string

const (
	JobStatusQueued   JobStatus = "queued"
	JobStatusRunning  JobStatus = "running"
	JobStatusCooldown JobStatus = "cooldown"
	JobStatusSuccess  JobStatus = "success"
	JobStatusFailed   JobStatus = "failed"

	ReferenceTypeCreator ReferenceType = "creator"
	ReferenceTypePost    ReferenceType = "post"
	ReferenceTypeSound   ReferenceType = "sound"
)

// ScrapeJob is a scheduled unit of metric collection for one tracked entity.
type ScrapeJob struct {
	JobID         string
	Platform      string
	ReferenceType ReferenceType
	ReferenceID   string
	Status        JobStatus
	Attempts      int
	MaxAttempts   int
	LastError     string
	NextRetryAt   *time.Time
	ScheduledFor  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RetryEligible reports whether a manual retry may re-queue the job.
func (j ScrapeJob) RetryEligible() bool {
	return j.Status == JobStatusFailed && j.Attempts < j.MaxAttempts
}

func (j ScrapeJob) ValidateBasics() bool {
	return strings.TrimSpace(j.Platform) != "" &&
		strings.TrimSpace(j.ReferenceID) != "" &&
		IsSupportedReferenceType(j.ReferenceType) &&
		j.MaxAttempts > 0 &&
		j.Attempts >= 0 &&
		j.Attempts <= j.MaxAttempts
}

func IsSupportedReferenceType(value ReferenceType) bool {
	switch value {
	case ReferenceTypeCreator, ReferenceTypePost, ReferenceTypeSound:
		return true
	default:
		return false
	}
}

func IsSupportedJobStatus(value JobStatus) bool {
	switch value {
	case JobStatusQueued, JobStatusRunning, JobStatusCooldown, JobStatusSuccess, JobStatusFailed:
		return true
	default:
		return false
	}
}
