package repository

import (
	"context"
	"time"

	"github.com/hostelcare/hostel-backend/models"
	"gorm.io/gorm"
)

type CleaningLogRepository struct {
	scope Scope
}

// LogFilter narrows log queries. Zero values mean "no restriction".
type LogFilter struct {
	RoomNo string
	From   time.Time
	To     time.Time
	Limit  int
}

type WorkerCount struct {
	Name     string
	LogCount int64
}

type DayCount struct {
	Day      string
	LogCount int64
}

func (r *CleaningLogRepository) Create(ctx context.Context, log *models.CleaningLog) error {
	log.HostelName = r.scope.hostel
	return translate(r.scope.db.WithContext(ctx).Omit("Worker").Create(log).Error)
}

func (r *CleaningLogRepository) filtered(ctx context.Context, f LogFilter) *gorm.DB {
	q := r.scope.query(ctx, &models.CleaningLog{})
	if f.RoomNo != "" {
		q = q.Where("room_no = ?", f.RoomNo)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at <= ?", f.To)
	}
	return q
}

func (r *CleaningLogRepository) Count(ctx context.Context, f LogFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, f).Count(&count).Error
	return count, translate(err)
}

// List returns matching logs newest first with their worker preloaded. The
// preload is hostel-scoped too, so a foreign worker never surfaces.
func (r *CleaningLogRepository) List(ctx context.Context, f LogFilter) ([]models.CleaningLog, error) {
	q := r.filtered(ctx, f).
		Preload("Worker", "hostel_name = ?", r.scope.hostel).
		Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var logs []models.CleaningLog
	err := q.Find(&logs).Error
	return logs, translate(err)
}

// TaskLabels returns the cleaningType set of every log in the hostel.
func (r *CleaningLogRepository) TaskLabels(ctx context.Context) ([][]string, error) {
	var logs []models.CleaningLog
	if err := r.scope.query(ctx, &models.CleaningLog{}).Select("id", "cleaning_type").Find(&logs).Error; err != nil {
		return nil, translate(err)
	}
	labels := make([][]string, 0, len(logs))
	for _, l := range logs {
		labels = append(labels, l.CleaningType)
	}
	return labels, nil
}

// TopWorkers ranks the hostel's workers by number of logs.
func (r *CleaningLogRepository) TopWorkers(ctx context.Context, limit int) ([]WorkerCount, error) {
	var rows []WorkerCount
	err := r.scope.query(ctx, &models.CleaningLog{}).
		Select("workers.name AS name, COUNT(cleaning_logs.id) AS log_count").
		Joins("JOIN workers ON workers.id = cleaning_logs.worker_id AND workers.hostel_name = cleaning_logs.hostel_name").
		Group("workers.id, workers.name").
		Order("log_count DESC, workers.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, translate(err)
}

// DailyCounts groups logs created since from by submission day, oldest first.
func (r *CleaningLogRepository) DailyCounts(ctx context.Context, from time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := r.scope.query(ctx, &models.CleaningLog{}).
		Select("submission_date AS day, COUNT(*) AS log_count").
		Where("created_at >= ?", from).
		Group("submission_date").
		Order("submission_date ASC").
		Scan(&rows).Error
	return rows, translate(err)
}
