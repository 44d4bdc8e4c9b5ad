package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	IssueOpen       = "Open"
	IssueInProgress = "In Progress"
	IssueResolved   = "Resolved"
	IssueClosed     = "Closed"
)

// PendingIssueStatuses are the statuses counted as outstanding on dashboards.
var PendingIssueStatuses = []string{IssueOpen, IssueInProgress}

func IsValidIssueStatus(status string) bool {
	switch status {
	case IssueOpen, IssueInProgress, IssueResolved, IssueClosed:
		return true
	}
	return false
}

type Issue struct {
	ID            uint      `gorm:"primaryKey" json:"_id"`
	RoomID        uint      `gorm:"not null;index" json:"room_id"`
	RoomNo        string    `gorm:"type:varchar(50);not null;index" json:"room_no"`
	HostelName    string    `gorm:"type:varchar(100);not null;index" json:"hostelName"`
	IssueType     string    `gorm:"type:varchar(100);not null" json:"issueType"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	ImageURL      string    `gorm:"type:varchar(500)" json:"image"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Open';index" json:"status"`
	AdminResponse string    `gorm:"type:text" json:"adminResponse"`
	CreatedAt     time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (i *Issue) BeforeSave(tx *gorm.DB) error {
	if err := validateHostel(i.HostelName); err != nil {
		return err
	}
	if i.Status == "" {
		i.Status = IssueOpen
	}
	return nil
}
