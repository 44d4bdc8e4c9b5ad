package repository

import (
	"context"

	"github.com/hostelcare/hostel-backend/models"
	"gorm.io/gorm"
)

type IssueRepository struct {
	scope Scope
}

type IssueFilter struct {
	RoomNo   string
	Statuses []string
	Limit    int
}

func (r *IssueRepository) Create(ctx context.Context, issue *models.Issue) error {
	issue.HostelName = r.scope.hostel
	return translate(r.scope.db.WithContext(ctx).Create(issue).Error)
}

func (r *IssueRepository) filtered(ctx context.Context, f IssueFilter) *gorm.DB {
	q := r.scope.query(ctx, &models.Issue{})
	if f.RoomNo != "" {
		q = q.Where("room_no = ?", f.RoomNo)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	return q
}

func (r *IssueRepository) List(ctx context.Context, f IssueFilter) ([]models.Issue, error) {
	q := r.filtered(ctx, f).Order("created_at DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var issues []models.Issue
	err := q.Find(&issues).Error
	return issues, translate(err)
}

func (r *IssueRepository) Count(ctx context.Context, f IssueFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, f).Count(&count).Error
	return count, translate(err)
}

func (r *IssueRepository) FindByID(ctx context.Context, id uint) (*models.Issue, error) {
	var issue models.Issue
	if err := r.scope.query(ctx, &models.Issue{}).Where("id = ?", id).First(&issue).Error; err != nil {
		return nil, translate(err)
	}
	return &issue, nil
}

// Update writes the given columns, matching on id and hostel.
func (r *IssueRepository) Update(ctx context.Context, issue *models.Issue, columns ...string) error {
	res := r.scope.query(ctx, issue).Select(append(columns, "updated_at")).Updates(issue)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
