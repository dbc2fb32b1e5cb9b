package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"smartexam_backend/internal/model"
)

// AnalysisJobRepository persists analysis jobs and keeps a read-through
// cache of their reports in redis, keyed per job id.
type AnalysisJobRepository struct {
	DB        *gorm.DB
	Redis     *redis.Client
	ReportTTL time.Duration
}

func NewAnalysisJobRepository(db *gorm.DB, rdb *redis.Client, reportTTL time.Duration) *AnalysisJobRepository {
	return &AnalysisJobRepository{DB: db, Redis: rdb, ReportTTL: reportTTL}
}

func (r *AnalysisJobRepository) Create(job *model.AnalysisJob) error {
	return r.DB.Create(job).Error
}

func (r *AnalysisJobRepository) FindByID(id string) (*model.AnalysisJob, error) {
	var job model.AnalysisJob
	err := r.DB.First(&job, "id = ?", id).Error
	return &job, err
}

// FindPage returns one page of jobs, newest first, optionally filtered by
// status, together with the total count before paging.
func (r *AnalysisJobRepository) FindPage(page, limit int, status string) ([]model.AnalysisJob, int64, error) {
	var jobs []model.AnalysisJob
	var total int64

	query := r.DB.Model(&model.AnalysisJob{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *AnalysisJobRepository) Delete(ctx context.Context, id string) error {
	if err := r.DB.Delete(&model.AnalysisJob{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.Redis.Del(ctx, reportCacheKey(id))
	return nil
}

// GetReport returns the cached report for a job, falling back to the
// database row and refilling the cache on a miss. Cache failures degrade to
// the database silently.
func (r *AnalysisJobRepository) GetReport(ctx context.Context, id string) (json.RawMessage, error) {
	key := reportCacheKey(id)

	cached, err := r.Redis.Get(ctx, key).Bytes()
	if err == nil && len(cached) > 0 {
		return json.RawMessage(cached), nil
	}

	job, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	if len(job.Report) > 0 {
		r.Redis.Set(ctx, key, []byte(job.Report), r.ReportTTL)
	}
	return job.Report, nil
}

// CacheReport primes the cache right after a job completes, so the first
// report read does not hit the database.
func (r *AnalysisJobRepository) CacheReport(ctx context.Context, id string, report json.RawMessage) {
	if len(report) == 0 {
		return
	}
	r.Redis.Set(ctx, reportCacheKey(id), []byte(report), r.ReportTTL)
}

func reportCacheKey(id string) string {
	return "smartexam:report:" + id
}
