package dto

import "github.com/hostelcare/hostel-backend/models"

type AdminLoginRequest struct {
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password"`
	HostelName string `json:"hostelName" form:"hostelName"`
}

type StudentLoginRequest struct {
	RoomNo     string `json:"room_no" form:"room_no"`
	Password   string `json:"password" form:"password"`
	HostelName string `json:"hostelName" form:"hostelName"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateRoomRequest struct {
	RoomNo   string `json:"room_no" form:"room_no"`
	Password string `json:"password" form:"password"`
}

// UserProfile is the public projection of a user; it never carries secrets.
type UserProfile struct {
	ID         uint   `json:"_id"`
	RoomNo     string `json:"room_no,omitempty"`
	Username   string `json:"username,omitempty"`
	Role       string `json:"role"`
	HostelName string `json:"hostelName"`
}

func NewUserProfile(u *models.User) UserProfile {
	p := UserProfile{
		ID:         u.ID,
		RoomNo:     u.RoomNumber(),
		Role:       u.Role,
		HostelName: u.HostelName,
	}
	if u.Username != nil {
		p.Username = *u.Username
	}
	return p
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	User UserProfile `json:"user"`
	TokenPair
}

type RoomResponse struct {
	User UserProfile `json:"user"`
}
