package dto

import (
	"time"

	"github.com/hostelcare/hostel-backend/models"
)

type SubmitLogRequest struct {
	WorkerID     EntityID `json:"worker"`
	CleaningType LabelSet `json:"cleaningType"`
	Feedback     string   `json:"feedback"`
	Rating       *int     `json:"rating"`
}

type CleaningLogResponse struct {
	ID           uint       `json:"_id"`
	RoomID       uint       `json:"room_id"`
	RoomNo       string     `json:"room_no"`
	HostelName   string     `json:"hostelName"`
	Worker       *WorkerRef `json:"worker"`
	CleaningType []string   `json:"cleaningType"`
	Status       string     `json:"cleanstatus"`
	Feedback     string     `json:"feedback"`
	Rating       *int       `json:"rating"`
	Image        string     `json:"image"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func NewCleaningLogResponse(l *models.CleaningLog) CleaningLogResponse {
	worker := NewWorkerRef(l.Worker)
	if worker == nil {
		worker = &WorkerRef{ID: l.WorkerID}
	}
	return CleaningLogResponse{
		ID:           l.ID,
		RoomID:       l.RoomID,
		RoomNo:       l.RoomNo,
		HostelName:   l.HostelName,
		Worker:       worker,
		CleaningType: l.CleaningType,
		Status:       l.Status,
		Feedback:     l.Feedback,
		Rating:       l.Rating,
		Image:        l.ImageURL,
		CreatedAt:    l.CreatedAt,
	}
}

func NewCleaningLogList(logs []models.CleaningLog) []CleaningLogResponse {
	out := make([]CleaningLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, NewCleaningLogResponse(&logs[i]))
	}
	return out
}
