package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/repository"
	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

type RoomService struct {
	db *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

// CreateStudentRoom provisions a student login in the admin's hostel. Room
// numbers are unique per hostel only; two hostels may both have "A1".
func (s *RoomService) CreateStudentRoom(ctx context.Context, caller CallerContext, req dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	roomNo := models.NormalizeRoomNo(req.RoomNo)
	if roomNo == "" || req.Password == "" {
		return nil, utils.NewValidationError("room_no and password are required")
	}

	users := repository.ForHostel(s.db, caller.HostelName).Users()
	conflict := utils.NewConflictError(fmt.Sprintf("Room %s already exists in %s", roomNo, caller.HostelName))

	_, err := users.FindStudent(ctx, roomNo)
	if err == nil {
		return nil, conflict
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewInternalError("failed to check room", err)
	}

	// Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		RoomNo:   &roomNo,
		Password: hashed,
		Role:     models.RoleStudent,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict
		}
		return nil, asServiceError(err, "failed to create room")
	}

	utils.InfoLogger.Printf("Student room created: %s (hostel=%s)", roomNo, caller.HostelName)
	return &dto.RoomResponse{User: dto.NewUserProfile(user)}, nil
}

// ListRooms returns the admin's student rooms ordered by room number.
func (s *RoomService) ListRooms(ctx context.Context, caller CallerContext) ([]dto.UserProfile, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	users, err := repository.ForHostel(s.db, caller.HostelName).Users().ListStudents(ctx)
	if err != nil {
		return nil, utils.NewInternalError("failed to list rooms", err)
	}
	out := make([]dto.UserProfile, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserProfile(&users[i]))
	}
	return out, nil
}

// asServiceError keeps AppErrors raised by model hooks and wraps everything
// else as Internal.
func asServiceError(err error, message string) error {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return utils.NewInternalError(message, err)
}
