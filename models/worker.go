package models

import (
	"strings"
	"time"

	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

const (
	WorkerActive   = "Active"
	WorkerInactive = "Inactive"
	// WorkerDisabled is reserved for accounts switched off outside the toggle flow.
	WorkerDisabled = "Disabled"

	DefaultBlock = "General"
)

type Worker struct {
	ID            uint      `gorm:"primaryKey" json:"_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_workers_phone_hostel" json:"phone"`
	HostelName    string    `gorm:"type:varchar(100);not null;index;uniqueIndex:idx_workers_phone_hostel" json:"hostelName"`
	AssignedBlock string    `gorm:"type:varchar(100);not null;default:'General'" json:"assigned_block"`
	Status        string    `gorm:"type:varchar(15);not null;default:'Active'" json:"status"`
	Rating        *float64  `json:"rating,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (w *Worker) BeforeSave(tx *gorm.DB) error {
	if err := validateHostel(w.HostelName); err != nil {
		return err
	}
	w.Name = strings.TrimSpace(w.Name)
	w.Phone = strings.TrimSpace(w.Phone)
	if w.Name == "" || w.Phone == "" {
		return utils.NewValidationError("Name and Phone are required")
	}
	if w.AssignedBlock == "" {
		w.AssignedBlock = DefaultBlock
	}
	switch w.Status {
	case "":
		w.Status = WorkerActive
	case WorkerActive, WorkerInactive, WorkerDisabled:
	default:
		return utils.NewValidationError("status must be Active, Inactive or Disabled")
	}
	if w.Rating != nil && (*w.Rating < 1 || *w.Rating > 5) {
		return utils.NewValidationError("rating must be between 1 and 5")
	}
	return nil
}
