package models

import (
	"time"

	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

const LogStatusVerified = "Verified"

// CleaningLog is a student's confirmation that their room was cleaned.
// Logs are immutable once written. SubmissionDate backs the one-log-per-room-
// per-day rule with a unique index so concurrent submissions cannot both land.
type CleaningLog struct {
	ID             uint      `gorm:"primaryKey" json:"_id"`
	RoomID         uint      `gorm:"not null;index" json:"room_id"`
	RoomNo         string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_logs_room_day" json:"room_no"`
	HostelName     string    `gorm:"type:varchar(100);not null;index;uniqueIndex:idx_logs_room_day" json:"hostelName"`
	SubmissionDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_logs_room_day" json:"submissionDate"`
	WorkerID       uint      `gorm:"not null;index" json:"workerId"`
	Worker         *Worker   `gorm:"foreignKey:WorkerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CleaningType   []string  `gorm:"serializer:json;type:text;not null" json:"cleaningType"`
	Status         string    `gorm:"type:varchar(15);not null;default:'Verified'" json:"cleanstatus"`
	Feedback       string    `gorm:"type:text" json:"feedback"`
	Rating         *int      `json:"rating"`
	ImageURL       string    `gorm:"type:varchar(500)" json:"image"`
	CreatedAt      time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (l *CleaningLog) BeforeSave(tx *gorm.DB) error {
	if err := validateHostel(l.HostelName); err != nil {
		return err
	}
	if len(l.CleaningType) == 0 {
		return utils.NewValidationError("At least one task must be selected")
	}
	if l.Rating != nil && (*l.Rating < 1 || *l.Rating > 5) {
		return utils.NewValidationError("rating must be between 1 and 5")
	}
	if l.Status == "" {
		l.Status = LogStatusVerified
	}
	return nil
}
