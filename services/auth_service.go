package services

import (
	"context"
	"errors"
	"strings"

	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/repository"
	"github.com/hostelcare/hostel-backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TokenIssuer is the token half of the credential service.
type TokenIssuer interface {
	SignAccess(userID uint) (string, error)
	SignRefresh(userID uint) (string, error)
	ParseRefresh(token string) (*utils.CustomClaims, error)
}

type AuthService struct {
	db       *gorm.DB
	accounts *repository.AccountRepository
	tokens   TokenIssuer
}

func NewAuthService(db *gorm.DB, tokens TokenIssuer) *AuthService {
	return &AuthService{
		db:       db,
		accounts: repository.NewAccountRepository(db),
		tokens:   tokens,
	}
}

// LoginAdmin authenticates an admin inside the selected hostel. The hostel is
// a selector: the same username in another hostel is a different account.
func (s *AuthService) LoginAdmin(ctx context.Context, req dto.AdminLoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.HostelName == "" {
		return nil, utils.NewValidationError("Username, password, and hostel selection are required")
	}
	if !models.IsValidHostel(req.HostelName) {
		return nil, utils.NewValidationError("hostelName must be one of the registered hostels")
	}

	user, err := repository.ForHostel(s.db, req.HostelName).Users().FindAdmin(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewInvalidCredentialsError("Admin user does not exist in the selected hostel")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to look up admin", err)
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, utils.NewInvalidCredentialsError("Invalid Credentials.")
	}

	return s.login(ctx, user.ID)
}

// LoginStudent authenticates a room. Room numbers are case-insensitive.
func (s *AuthService) LoginStudent(ctx context.Context, req dto.StudentLoginRequest) (*dto.LoginResponse, error) {
	roomNo := models.NormalizeRoomNo(req.RoomNo)
	if roomNo == "" || req.Password == "" || req.HostelName == "" {
		return nil, utils.NewValidationError("Room number, password, and hostel selection are required")
	}
	if !models.IsValidHostel(req.HostelName) {
		return nil, utils.NewValidationError("hostelName must be one of the registered hostels")
	}

	user, err := repository.ForHostel(s.db, req.HostelName).Users().FindStudent(ctx, roomNo)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewInvalidCredentialsError("Room " + roomNo + " not found in " + req.HostelName)
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to look up room", err)
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, utils.NewInvalidCredentialsError("Room credentials invalid")
	}

	return s.login(ctx, user.ID)
}

func (s *AuthService) login(ctx context.Context, userID uint) (*dto.LoginResponse, error) {
	user, pair, err := s.issueTokens(ctx, userID)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
		"hostel":  user.HostelName,
	}).Info("login successful")

	return &dto.LoginResponse{User: dto.NewUserProfile(user), TokenPair: *pair}, nil
}

// issueTokens re-reads the user right before signing so a record deleted
// between authentication and minting is reported as 404, then persists the
// new refresh token.
func (s *AuthService) issueTokens(ctx context.Context, userID uint) (*models.User, *dto.TokenPair, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, utils.NewNotFoundError("User not found while generating tokens")
	}
	if err != nil {
		return nil, nil, utils.NewInternalError("Something went wrong while generating access & refresh tokens", err)
	}

	access, err := s.tokens.SignAccess(user.ID)
	if err != nil {
		return nil, nil, utils.NewInternalError("Something went wrong while generating access & refresh tokens", err)
	}
	refresh, err := s.tokens.SignRefresh(user.ID)
	if err != nil {
		return nil, nil, utils.NewInternalError("Something went wrong while generating access & refresh tokens", err)
	}

	if err := s.accounts.SetRefreshToken(ctx, user.ID, &refresh); err != nil {
		return nil, nil, utils.NewInternalError("Something went wrong while generating access & refresh tokens", err)
	}
	user.RefreshToken = &refresh

	return user, &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout clears the stored refresh token. Calling it twice is fine.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.accounts.SetRefreshToken(ctx, userID, nil); err != nil {
		return utils.NewInternalError("failed to log out", err)
	}
	return nil
}

// Refresh exchanges a valid refresh token for a new pair. The presented token
// must match the one stored on the user, so a token from before a logout or
// an earlier rotation is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	if refreshToken == "" {
		return nil, utils.NewUnauthenticatedError("Unauthorized request")
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, utils.NewUnauthenticatedError("Invalid refresh token")
	}

	user, err := s.accounts.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewUnauthenticatedError("Invalid refresh token")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to look up user", err)
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, utils.NewUnauthenticatedError("Refresh token is expired or used")
	}

	return s.login(ctx, user.ID)
}

// Profile returns the caller's own record.
func (s *AuthService) Profile(ctx context.Context, caller CallerContext) (*dto.UserProfile, error) {
	if err := caller.Require(models.RoleAdmin, models.RoleStudent); err != nil {
		return nil, err
	}
	user, err := s.accounts.FindByID(ctx, caller.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("User not found")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to load profile", err)
	}
	profile := dto.NewUserProfile(user)
	return &profile, nil
}

// Resolve turns a user id from an access token into a CallerContext.
func (s *AuthService) Resolve(ctx context.Context, userID uint) (CallerContext, error) {
	user, err := s.accounts.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return CallerContext{}, utils.NewUnauthenticatedError("Invalid Access Token")
	}
	if err != nil {
		return CallerContext{}, utils.NewInternalError("failed to resolve caller", err)
	}
	return NewCallerContext(user), nil
}
