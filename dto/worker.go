package dto

import (
	"time"

	"github.com/hostelcare/hostel-backend/models"
)

type WorkerRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	AssignedBlock string `json:"assigned_block"`
}

// WorkerRef is the minimal worker projection used by selection lists and
// joined into logs.
type WorkerRef struct {
	ID   uint   `json:"_id"`
	Name string `json:"name"`
}

type WorkerStats struct {
	ID            uint      `json:"_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	AssignedBlock string    `json:"assigned_block"`
	Status        string    `json:"status"`
	HostelName    string    `json:"hostelName"`
	TotalJobs     int64     `json:"totalJobs"`
	Rating        *float64  `json:"rating"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewWorkerRef(w *models.Worker) *WorkerRef {
	if w == nil {
		return nil
	}
	return &WorkerRef{ID: w.ID, Name: w.Name}
}
