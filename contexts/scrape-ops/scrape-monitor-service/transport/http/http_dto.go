package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterJobRequest struct {
	Platform      string `json:"platform"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
	MaxAttempts   int    `json:"max_attempts,omitempty"`
	ScheduledFor  string `json:"scheduled_for,omitempty"`
}

type ScrapeJobDTO struct {
	JobID         string `json:"job_id"`
	Platform      string `json:"platform"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
	Status        string `json:"status"`
	Attempts      int    `json:"attempts"`
	MaxAttempts   int    `json:"max_attempts"`
	LastError     string `json:"last_error,omitempty"`
	NextRetryAt   string `json:"next_retry_at,omitempty"`
	ScheduledFor  string `json:"scheduled_for"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type ScrapeRunDTO struct {
	RunID      string `json:"run_id"`
	JobID      string `json:"job_id"`
	ActorID    string `json:"actor_id"`
	Status     string `json:"status"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at,omitempty"`
	DurationMS *int64 `json:"duration_ms,omitempty"`
	ItemsCount *int   `json:"items_count,omitempty"`
	Error      string `json:"error,omitempty"`
	Platform   string `json:"platform"`
}

type RegisterJobResponse struct {
	Job ScrapeJobDTO `json:"job"`
}

type ListJobsResponse struct {
	Items []ScrapeJobDTO `json:"items"`
}

type ListRunsResponse struct {
	Items []ScrapeRunDTO `json:"items"`
}

type RetryJobsRequest struct {
	JobIDs []string `json:"job_ids"`
}

type RetryJobsResponse struct {
	Success        bool `json:"success"`
	RequestedCount int  `json:"requested_count"`
	RetriedCount   int  `json:"retried_count"`
}

type StartRunRequest struct {
	JobID string `json:"job_id"`
}

type FinishRunRequest struct {
	Status     string `json:"status"`
	ItemsCount *int   `json:"items_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

type RunResponse struct {
	Run ScrapeRunDTO `json:"run"`
}

type PlatformSummaryDTO struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
}

type RunSummaryResponse struct {
	Total      int                           `json:"total"`
	Succeeded  int                           `json:"succeeded"`
	ByPlatform map[string]PlatformSummaryDTO `json:"by_platform"`
}
