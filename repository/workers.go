package repository

import (
	"context"
	"database/sql"

	"github.com/hostelcare/hostel-backend/models"
)

type WorkerRepository struct {
	scope Scope
}

// WorkerWithStats is a worker joined with its cleaning log history.
type WorkerWithStats struct {
	models.Worker
	TotalJobs int64
	AvgRating sql.NullFloat64
}

func (r *WorkerRepository) Create(ctx context.Context, worker *models.Worker) error {
	worker.HostelName = r.scope.hostel
	return translate(r.scope.db.WithContext(ctx).Create(worker).Error)
}

func (r *WorkerRepository) FindByID(ctx context.Context, id uint) (*models.Worker, error) {
	var worker models.Worker
	if err := r.scope.query(ctx, &models.Worker{}).Where("id = ?", id).First(&worker).Error; err != nil {
		return nil, translate(err)
	}
	return &worker, nil
}

// PhoneTaken reports whether another worker in the hostel already uses phone.
// excludeID is ignored when zero.
func (r *WorkerRepository) PhoneTaken(ctx context.Context, phone string, excludeID uint) (bool, error) {
	q := r.scope.query(ctx, &models.Worker{}).Where("phone = ?", phone)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// Update writes the given columns of worker, matching on id and hostel.
func (r *WorkerRepository) Update(ctx context.Context, worker *models.Worker, columns ...string) error {
	res := r.scope.query(ctx, worker).Select(append(columns, "updated_at")).Updates(worker)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *WorkerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.scope.query(ctx, &models.Worker{}).Count(&count).Error
	return count, translate(err)
}

func (r *WorkerRepository) ListByStatus(ctx context.Context, status string) ([]models.Worker, error) {
	var workers []models.Worker
	err := r.scope.query(ctx, &models.Worker{}).
		Select("id", "name").
		Where("status = ?", status).
		Order("name ASC").
		Find(&workers).Error
	return workers, translate(err)
}

// ListWithStats returns every worker of the hostel with its job count and the
// mean of its rated logs, newest worker first. AvgRating is invalid for
// workers with no rated logs.
func (r *WorkerRepository) ListWithStats(ctx context.Context) ([]WorkerWithStats, error) {
	var rows []WorkerWithStats
	err := r.scope.query(ctx, &models.Worker{}).
		Select("workers.*, COUNT(cleaning_logs.id) AS total_jobs, AVG(cleaning_logs.rating) AS avg_rating").
		Joins("LEFT JOIN cleaning_logs ON cleaning_logs.worker_id = workers.id AND cleaning_logs.hostel_name = workers.hostel_name").
		Group("workers.id").
		Order("workers.created_at DESC, workers.id DESC").
		Scan(&rows).Error
	return rows, translate(err)
}
