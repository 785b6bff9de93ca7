package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"dttracker/contexts/scrape-ops/scrape-monitor-service/domain/entities"
	domainerrors "dttracker/contexts/scrape-ops/scrape-monitor-service/domain/errors"
	"dttracker/contexts/scrape-ops/scrape-monitor-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateJob(ctx context.Context, job entities.ScrapeJob) error {
	row := jobModelFromEntity(job)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateJob(ctx context.Context, job entities.ScrapeJob) error {
	result := r.db.WithContext(ctx).
		Model(&jobModel{}).
		Where("job_id = ?", strings.TrimSpace(job.JobID)).
		Updates(map[string]any{
			"status":        string(job.Status),
			"attempts":      job.Attempts,
			"last_error":    job.LastError,
			"next_retry_at": job.NextRetryAt,
			"scheduled_for": job.ScheduledFor,
			"updated_at":    job.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrJobNotFound
	}
	return nil
}

func (r *Repository) GetJob(ctx context.Context, jobID string) (entities.ScrapeJob, error) {
	var row jobModel
	err := r.db.WithContext(ctx).
		Where("job_id = ?", strings.TrimSpace(jobID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ScrapeJob{}, domainerrors.ErrJobNotFound
		}
		return entities.ScrapeJob{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListJobs(ctx context.Context, filter ports.JobFilter) ([]entities.ScrapeJob, error) {
	tx := r.db.WithContext(ctx).Model(&jobModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if strings.TrimSpace(filter.Platform) != "" {
		tx = tx.Where("platform = ?", strings.TrimSpace(filter.Platform))
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []jobModel
	if err := tx.Order("scheduled_for ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.ScrapeJob, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) RequeueFailed(ctx context.Context, jobIDs []string, now time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&jobModel{}).
		Where("job_id IN ?", jobIDs).
		Where("status = ?", string(entities.JobStatusFailed)).
		Where("attempts < max_attempts").
		Updates(map[string]any{
			"status":        string(entities.JobStatusQueued),
			"next_retry_at": nil,
			"scheduled_for": now,
			"updated_at":    now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *Repository) ReleaseCooldown(ctx context.Context, now time.Time, limit int) (int, error) {
	released := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []jobModel
		err := tx.
			Where("status = ?", string(entities.JobStatusCooldown)).
			Where("next_retry_at IS NOT NULL AND next_retry_at <= ?", now).
			Limit(limit).
			Find(&rows).
			Error
		if err != nil {
			return err
		}

		for _, row := range rows {
			update := tx.Model(&jobModel{}).
				Where("job_id = ? AND status = ?", row.JobID, string(entities.JobStatusCooldown)).
				Updates(map[string]any{
					"status":        string(entities.JobStatusQueued),
					"next_retry_at": nil,
					"scheduled_for": now,
					"updated_at":    now,
				})
			if update.Error != nil {
				return update.Error
			}
			released += int(update.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return released, nil
}

func (r *Repository) AppendRun(ctx context.Context, run entities.ScrapeRun) error {
	row := runModelFromEntity(run)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateRun(ctx context.Context, run entities.ScrapeRun) error {
	result := r.db.WithContext(ctx).
		Model(&runModel{}).
		Where("run_id = ?", strings.TrimSpace(run.RunID)).
		Updates(map[string]any{
			"status":      string(run.Status),
			"finished_at": run.FinishedAt,
			"duration_ms": run.DurationMS,
			"items_count": run.ItemsCount,
			"error":       run.Error,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRunNotFound
	}
	return nil
}

func (r *Repository) GetRun(ctx context.Context, runID string) (entities.ScrapeRun, error) {
	var row runModel
	err := r.db.WithContext(ctx).
		Where("run_id = ?", strings.TrimSpace(runID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ScrapeRun{}, domainerrors.ErrRunNotFound
		}
		return entities.ScrapeRun{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListRuns(ctx context.Context, filter ports.RunFilter) ([]entities.ScrapeRun, error) {
	tx := r.db.WithContext(ctx).Model(&runModel{})
	if !filter.From.IsZero() {
		tx = tx.Where("started_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		tx = tx.Where("started_at <= ?", filter.To)
	}
	if strings.TrimSpace(filter.Platform) != "" {
		tx = tx.Where("platform = ?", strings.TrimSpace(filter.Platform))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var rows []runModel
	if err := tx.Order("started_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.ScrapeRun, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) PruneRunsBefore(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	pruned := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		err := tx.Model(&runModel{}).
			Where("status <> ?", string(entities.RunStatusStarted)).
			Where("started_at < ?", cutoff).
			Limit(limit).
			Pluck("run_id", &ids).
			Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		result := tx.Where("run_id IN ?", ids).Delete(&runModel{})
		if result.Error != nil {
			return result.Error
		}
		pruned = int(result.RowsAffected)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pruned, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

type jobModel struct {
	JobID         string     `gorm:"column:job_id;primaryKey"`
	Platform      string     `gorm:"column:platform;index:idx_scrape_job_reference,unique"`
	ReferenceType string     `gorm:"column:reference_type;index:idx_scrape_job_reference,unique"`
	ReferenceID   string     `gorm:"column:reference_id;index:idx_scrape_job_reference,unique"`
	Status        string     `gorm:"column:status;index:idx_scrape_job_status"`
	Attempts      int        `gorm:"column:attempts"`
	MaxAttempts   int        `gorm:"column:max_attempts"`
	LastError     string     `gorm:"column:last_error"`
	NextRetryAt   *time.Time `gorm:"column:next_retry_at"`
	ScheduledFor  time.Time  `gorm:"column:scheduled_for"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (jobModel) TableName() string {
	return "scrape_jobs"
}

func jobModelFromEntity(item entities.ScrapeJob) jobModel {
	return jobModel{
		JobID:         strings.TrimSpace(item.JobID),
		Platform:      strings.TrimSpace(item.Platform),
		ReferenceType: string(item.ReferenceType),
		ReferenceID:   strings.TrimSpace(item.ReferenceID),
		Status:        string(item.Status),
		Attempts:      item.Attempts,
		MaxAttempts:   item.MaxAttempts,
		LastError:     item.LastError,
		NextRetryAt:   item.NextRetryAt,
		ScheduledFor:  item.ScheduledFor,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func (m jobModel) toEntity() entities.ScrapeJob {
	return entities.ScrapeJob{
		JobID:         m.JobID,
		Platform:      m.Platform,
		ReferenceType: entities.ReferenceType(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		Status:        entities.JobStatus(m.Status),
		Attempts:      m.Attempts,
		MaxAttempts:   m.MaxAttempts,
		LastError:     m.LastError,
		NextRetryAt:   m.NextRetryAt,
		ScheduledFor:  m.ScheduledFor,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

type runModel struct {
	RunID      string     `gorm:"column:run_id;primaryKey"`
	JobID      string     `gorm:"column:job_id;index:idx_scrape_run_job"`
	ActorID    string     `gorm:"column:actor_id"`
	Status     string     `gorm:"column:status"`
	StartedAt  time.Time  `gorm:"column:started_at;index:idx_scrape_run_started"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
	DurationMS *int64     `gorm:"column:duration_ms"`
	ItemsCount *int       `gorm:"column:items_count"`
	Error      string     `gorm:"column:error"`
	Platform   string     `gorm:"column:platform"`
}

func (runModel) TableName() string {
	return "scrape_runs"
}

func runModelFromEntity(item entities.ScrapeRun) runModel {
	return runModel{
		RunID:      strings.TrimSpace(item.RunID),
		JobID:      strings.TrimSpace(item.JobID),
		ActorID:    strings.TrimSpace(item.ActorID),
		Status:     string(item.Status),
		StartedAt:  item.StartedAt,
		FinishedAt: item.FinishedAt,
		DurationMS: item.DurationMS,
		ItemsCount: item.ItemsCount,
		Error:      item.Error,
		Platform:   item.Platform,
	}
}

func (m runModel) toEntity() entities.ScrapeRun {
	return entities.ScrapeRun{
		RunID:      m.RunID,
		JobID:      m.JobID,
		ActorID:    m.ActorID,
		Status:     entities.RunStatus(m.Status),
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
		DurationMS: m.DurationMS,
		ItemsCount: m.ItemsCount,
		Error:      m.Error,
		Platform:   m.Platform,
	}
}
