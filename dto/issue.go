package dto

import "time"

type RaiseIssueRequest struct {
	IssueType   string `json:"issueType" form:"issueType"`
	Description string `json:"description" form:"description"`
}

type ResolveIssueRequest struct {
	Status        string  `json:"status"`
	AdminResponse *string `json:"adminResponse"`
}

// IssueSummary is the projection shown in the admin dashboard.
type IssueSummary struct {
	ID          uint      `json:"_id"`
	RoomNo      string    `json:"room_no"`
	IssueType   string    `json:"issueType"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
