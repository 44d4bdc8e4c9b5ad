package services

import (
	"context"
	"errors"
	"time"

	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/repository"
	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

const msgAlreadyLogged = "You have already submitted a cleaning log for today!"

// SubmitLogInput is a cleaning confirmation. ImagePath, when set, points to
// an uploaded file on local disk.
type SubmitLogInput struct {
	WorkerID     uint
	CleaningType dto.LabelSet
	Feedback     string
	Rating       *int
	ImagePath    string
}

type CleaningLogService struct {
	db       *gorm.DB
	uploader ImageUploader
	now      Clock
}

func NewCleaningLogService(db *gorm.DB, uploader ImageUploader, now Clock) *CleaningLogService {
	if now == nil {
		now = time.Now
	}
	return &CleaningLogService{db: db, uploader: uploader, now: now}
}

// SubmitLog records today's cleaning for the caller's room. Room and hostel
// come from the caller, never from the request.
func (s *CleaningLogService) SubmitLog(ctx context.Context, caller CallerContext, in SubmitLogInput) (*dto.CleaningLogResponse, error) {
	if err := caller.Require(models.RoleStudent); err != nil {
		return nil, err
	}
	if in.WorkerID == 0 {
		return nil, utils.NewValidationError("Worker selection is required")
	}
	labels := in.CleaningType.Normalize()
	if len(labels) == 0 {
		return nil, utils.NewValidationError("At least one task must be selected")
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}

	tenant := repository.ForHostel(s.db, caller.HostelName)
	worker, err := tenant.Workers().FindByID(ctx, in.WorkerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Worker not found in your hostel")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to load worker", err)
	}

	now := s.now()
	logs := tenant.Logs()
	existing, err := logs.Count(ctx, repository.LogFilter{
		RoomNo: caller.RoomNo,
		From:   startOfDay(now),
		To:     endOfDay(now),
	})
	if err != nil {
		return nil, utils.NewInternalError("failed to check today's log", err)
	}
	if existing > 0 {
		return nil, utils.NewConflictError(msgAlreadyLogged)
	}

	entry := &models.CleaningLog{
		RoomID:         caller.ID,
		RoomNo:         caller.RoomNo,
		SubmissionDate: models.DayKey(now),
		WorkerID:       worker.ID,
		CleaningType:   labels,
		Status:         models.LogStatusVerified,
		Feedback:       in.Feedback,
		Rating:         in.Rating,
		ImageURL:       s.uploader.upload(ctx, in.ImagePath),
		CreatedAt:      now,
	}
	if err := logs.Create(ctx, entry); err != nil {
		// Unique index on (room, hostel, day) catches a concurrent submission
		// that slipped past the check above.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError(msgAlreadyLogged)
		}
		return nil, asServiceError(err, "failed to save cleaning log")
	}

	entry.Worker = worker
	resp := dto.NewCleaningLogResponse(entry)
	return &resp, nil
}

// GetMyRoomHistory lists the caller's room logs, newest first.
func (s *CleaningLogService) GetMyRoomHistory(ctx context.Context, caller CallerContext) ([]dto.CleaningLogResponse, error) {
	if err := caller.Require(models.RoleStudent); err != nil {
		return nil, err
	}
	logs, err := repository.ForHostel(s.db, caller.HostelName).Logs().List(ctx, repository.LogFilter{RoomNo: caller.RoomNo})
	if err != nil {
		return nil, utils.NewInternalError("failed to load history", err)
	}
	return dto.NewCleaningLogList(logs), nil
}

// GetAllLogs lists every log of the admin's hostel, newest first.
func (s *CleaningLogService) GetAllLogs(ctx context.Context, caller CallerContext) ([]dto.CleaningLogResponse, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	logs, err := repository.ForHostel(s.db, caller.HostelName).Logs().List(ctx, repository.LogFilter{})
	if err != nil {
		return nil, utils.NewInternalError("failed to load logs", err)
	}
	return dto.NewCleaningLogList(logs), nil
}
