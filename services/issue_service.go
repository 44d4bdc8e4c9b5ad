package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/repository"
	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

type RaiseIssueInput struct {
	IssueType   string
	Description string
	ImagePath   string
}

type ResolveIssueInput struct {
	Status        string
	AdminResponse *string
}

type IssueService struct {
	db       *gorm.DB
	uploader ImageUploader
	now      Clock
}

func NewIssueService(db *gorm.DB, uploader ImageUploader, now Clock) *IssueService {
	if now == nil {
		now = time.Now
	}
	return &IssueService{db: db, uploader: uploader, now: now}
}

func (s *IssueService) issues(caller CallerContext) *repository.IssueRepository {
	return repository.ForHostel(s.db, caller.HostelName).Issues()
}

func (s *IssueService) RaiseIssue(ctx context.Context, caller CallerContext, in RaiseIssueInput) (*models.Issue, error) {
	if err := caller.Require(models.RoleStudent); err != nil {
		return nil, err
	}
	issueType := strings.TrimSpace(in.IssueType)
	description := strings.TrimSpace(in.Description)
	if issueType == "" || description == "" {
		return nil, utils.NewValidationError("Issue Type and Description are required")
	}

	now := s.now()
	issue := &models.Issue{
		RoomID:      caller.ID,
		RoomNo:      caller.RoomNo,
		IssueType:   issueType,
		Description: description,
		ImageURL:    s.uploader.upload(ctx, in.ImagePath),
		Status:      models.IssueOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.issues(caller).Create(ctx, issue); err != nil {
		return nil, asServiceError(err, "failed to raise issue")
	}
	return issue, nil
}

func (s *IssueService) GetMyIssues(ctx context.Context, caller CallerContext) ([]models.Issue, error) {
	if err := caller.Require(models.RoleStudent); err != nil {
		return nil, err
	}
	issues, err := s.issues(caller).List(ctx, repository.IssueFilter{RoomNo: caller.RoomNo})
	if err != nil {
		return nil, utils.NewInternalError("failed to load issues", err)
	}
	return issues, nil
}

func (s *IssueService) GetIssuesByRoom(ctx context.Context, caller CallerContext, roomNo string) ([]models.Issue, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	roomNo = models.NormalizeRoomNo(roomNo)
	if roomNo == "" {
		return nil, utils.NewValidationError("Room number is required")
	}
	issues, err := s.issues(caller).List(ctx, repository.IssueFilter{RoomNo: roomNo})
	if err != nil {
		return nil, utils.NewInternalError("failed to load issues", err)
	}
	return issues, nil
}

func (s *IssueService) GetAllIssues(ctx context.Context, caller CallerContext) ([]models.Issue, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	issues, err := s.issues(caller).List(ctx, repository.IssueFilter{})
	if err != nil {
		return nil, utils.NewInternalError("failed to load issues", err)
	}
	return issues, nil
}

// ResolveIssue updates status and response of an issue in the admin's
// hostel. An id from another hostel is NotFound, same as an unknown id.
func (s *IssueService) ResolveIssue(ctx context.Context, caller CallerContext, id uint, in ResolveIssueInput) (*models.Issue, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	if id == 0 || in.Status == "" {
		return nil, utils.NewValidationError("Issue ID and Status are required")
	}
	if !models.IsValidIssueStatus(in.Status) {
		return nil, utils.NewValidationError("status must be Open, In Progress, Resolved or Closed")
	}

	repo := s.issues(caller)
	notFound := utils.NewNotFoundError("Issue not found or unauthorized to update")
	issue, err := repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to load issue", err)
	}

	issue.Status = in.Status
	issue.AdminResponse = ""
	if in.AdminResponse != nil {
		issue.AdminResponse = *in.AdminResponse
	}
	issue.UpdatedAt = s.now()
	if err := repo.Update(ctx, issue, "status", "admin_response"); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound
		}
		return nil, asServiceError(err, "failed to update issue")
	}
	return issue, nil
}
