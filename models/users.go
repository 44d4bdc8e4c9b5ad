package models

import (
	"strings"
	"time"

	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// User is both a student room login and an admin account. Students carry
// RoomNo, admins carry Username; the other column stays NULL so the two
// composite unique indexes never collide across roles.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"_id"`
	RoomNo       *string   `gorm:"type:varchar(50);uniqueIndex:idx_users_room_hostel" json:"room_no,omitempty"`
	Username     *string   `gorm:"type:varchar(100);uniqueIndex:idx_users_username_hostel" json:"username,omitempty"`
	Password     string    `gorm:"type:varchar(255);not null" json:"-"`
	HostelName   string    `gorm:"type:varchar(100);not null;index;uniqueIndex:idx_users_room_hostel;uniqueIndex:idx_users_username_hostel" json:"hostelName"`
	Role         string    `gorm:"type:varchar(20);not null;index" json:"role"`
	RefreshToken *string   `gorm:"type:text" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if err := validateHostel(u.HostelName); err != nil {
		return err
	}
	switch u.Role {
	case RoleStudent:
		if u.RoomNo == nil || strings.TrimSpace(*u.RoomNo) == "" {
			return utils.NewValidationError("room_no is required for student accounts")
		}
		normalized := NormalizeRoomNo(*u.RoomNo)
		u.RoomNo = &normalized
	case RoleAdmin:
		if u.Username == nil || strings.TrimSpace(*u.Username) == "" {
			return utils.NewValidationError("username is required for admin accounts")
		}
	default:
		return utils.NewValidationError("role must be STUDENT or ADMIN")
	}
	return nil
}

// RoomNumber returns the room number or "" for admins.
func (u *User) RoomNumber() string {
	if u.RoomNo == nil {
		return ""
	}
	return *u.RoomNo
}

// NormalizeRoomNo is the canonical form of a room number: trimmed, upper case.
func NormalizeRoomNo(roomNo string) string {
	return strings.ToUpper(strings.TrimSpace(roomNo))
}
