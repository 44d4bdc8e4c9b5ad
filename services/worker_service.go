package services

import (
	"context"
	"errors"
	"strings"

	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/repository"
	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

const msgPhoneTaken = "Worker with this phone number already exists in this hostel"

type WorkerService struct {
	db *gorm.DB
}

func NewWorkerService(db *gorm.DB) *WorkerService {
	return &WorkerService{db: db}
}

func (s *WorkerService) workers(caller CallerContext) *repository.WorkerRepository {
	return repository.ForHostel(s.db, caller.HostelName).Workers()
}

func (s *WorkerService) AddWorker(ctx context.Context, caller CallerContext, req dto.WorkerRequest) (*models.Worker, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || phone == "" {
		return nil, utils.NewValidationError("Name and Phone are required")
	}

	repo := s.workers(caller)
	taken, err := repo.PhoneTaken(ctx, phone, 0)
	if err != nil {
		return nil, utils.NewInternalError("failed to check phone", err)
	}
	if taken {
		return nil, utils.NewConflictError(msgPhoneTaken)
	}

	block := strings.TrimSpace(req.AssignedBlock)
	if block == "" {
		block = models.DefaultBlock
	}
	worker := &models.Worker{
		Name:          name,
		Phone:         phone,
		AssignedBlock: block,
		Status:        models.WorkerActive,
	}
	if err := repo.Create(ctx, worker); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewConflictError(msgPhoneTaken)
		}
		return nil, asServiceError(err, "failed to add worker")
	}
	return worker, nil
}

// findWorker loads a worker in the caller's hostel. A worker of another
// hostel is reported exactly like a missing one.
func (s *WorkerService) findWorker(ctx context.Context, repo *repository.WorkerRepository, id uint) (*models.Worker, error) {
	worker, err := repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Worker not found in your hostel")
	}
	if err != nil {
		return nil, utils.NewInternalError("failed to load worker", err)
	}
	return worker, nil
}

// EditWorker applies the non-empty fields of req.
func (s *WorkerService) EditWorker(ctx context.Context, caller CallerContext, id uint, req dto.WorkerRequest) (*models.Worker, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	repo := s.workers(caller)
	worker, err := s.findWorker(ctx, repo, id)
	if err != nil {
		return nil, err
	}

	if phone := strings.TrimSpace(req.Phone); phone != "" && phone != worker.Phone {
		taken, err := repo.PhoneTaken(ctx, phone, worker.ID)
		if err != nil {
			return nil, utils.NewInternalError("failed to check phone", err)
		}
		if taken {
			return nil, utils.NewConflictError(msgPhoneTaken)
		}
		worker.Phone = phone
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		worker.Name = name
	}
	if block := strings.TrimSpace(req.AssignedBlock); block != "" {
		worker.AssignedBlock = block
	}

	if err := repo.Update(ctx, worker, "name", "phone", "assigned_block"); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, utils.NewConflictError(msgPhoneTaken)
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NewNotFoundError("Worker not found in your hostel")
		}
		return nil, asServiceError(err, "failed to update worker")
	}
	return worker, nil
}

// ToggleWorkerStatus flips Active to Inactive and anything else to Active.
func (s *WorkerService) ToggleWorkerStatus(ctx context.Context, caller CallerContext, id uint) (*models.Worker, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	repo := s.workers(caller)
	worker, err := s.findWorker(ctx, repo, id)
	if err != nil {
		return nil, err
	}

	if worker.Status == models.WorkerActive {
		worker.Status = models.WorkerInactive
	} else {
		worker.Status = models.WorkerActive
	}
	if err := repo.Update(ctx, worker, "status"); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("Worker not found in your hostel")
		}
		return nil, asServiceError(err, "failed to update worker")
	}
	return worker, nil
}

// ListActiveWorkers is the selection list shown to students and admins.
func (s *WorkerService) ListActiveWorkers(ctx context.Context, caller CallerContext) ([]dto.WorkerRef, error) {
	if err := caller.Require(models.RoleAdmin, models.RoleStudent); err != nil {
		return nil, err
	}
	workers, err := s.workers(caller).ListByStatus(ctx, models.WorkerActive)
	if err != nil {
		return nil, utils.NewInternalError("failed to list workers", err)
	}
	out := make([]dto.WorkerRef, 0, len(workers))
	for i := range workers {
		out = append(out, *dto.NewWorkerRef(&workers[i]))
	}
	return out, nil
}

// ListWorkersWithStats reports a null rating, not zero, for workers without
// rated logs.
func (s *WorkerService) ListWorkersWithStats(ctx context.Context, caller CallerContext) ([]dto.WorkerStats, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	rows, err := s.workers(caller).ListWithStats(ctx)
	if err != nil {
		return nil, utils.NewInternalError("failed to list workers", err)
	}
	out := make([]dto.WorkerStats, 0, len(rows))
	for _, r := range rows {
		var rating *float64
		if r.AvgRating.Valid {
			v := r.AvgRating.Float64
			rating = &v
		}
		out = append(out, dto.WorkerStats{
			ID:            r.ID,
			Name:          r.Name,
			Phone:         r.Phone,
			AssignedBlock: r.AssignedBlock,
			Status:        r.Status,
			HostelName:    r.HostelName,
			TotalJobs:     r.TotalJobs,
			Rating:        rating,
			CreatedAt:     r.CreatedAt,
		})
	}
	return out, nil
}
