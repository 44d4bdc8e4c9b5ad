package repository

import (
	"context"

	"github.com/hostelcare/hostel-backend/models"
	"gorm.io/gorm"
)

// UserRepository covers the hostel-scoped user lookups used by login and
// room provisioning.
type UserRepository struct {
	scope Scope
}

func (r *UserRepository) FindAdmin(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.scope.query(ctx, &models.User{}).
		Where("username = ? AND role = ?", username, models.RoleAdmin).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindStudent(ctx context.Context, roomNo string) (*models.User, error) {
	var user models.User
	err := r.scope.query(ctx, &models.User{}).
		Where("room_no = ? AND role = ?", models.NormalizeRoomNo(roomNo), models.RoleStudent).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Create stores user under the scope's hostel, whatever HostelName held.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.HostelName = r.scope.hostel
	return translate(r.scope.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) ListStudents(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.scope.query(ctx, &models.User{}).
		Where("role = ?", models.RoleStudent).
		Order("room_no ASC").
		Find(&users).Error
	return users, translate(err)
}

// AccountRepository resolves identities by primary key. It is deliberately
// unscoped: it runs before the caller's hostel is known.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// SetRefreshToken stores token, or clears it when token is nil. Hooks are
// skipped; only the one column changes.
func (r *AccountRepository) SetRefreshToken(ctx context.Context, id uint, token *string) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("refresh_token", token).Error)
}
