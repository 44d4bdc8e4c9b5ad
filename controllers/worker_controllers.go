package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/services"
	"github.com/hostelcare/hostel-backend/utils"
)

type WorkerController struct {
	Workers *services.WorkerService
}

func NewWorkerController(workers *services.WorkerService) *WorkerController {
	return &WorkerController{Workers: workers}
}

func (wc *WorkerController) AddWorker(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	var req dto.WorkerRequest
	if !bindJSON(c, &req) {
		return
	}
	worker, err := wc.Workers.AddWorker(c.Request.Context(), cc, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Worker added successfully", worker)
}

func (wc *WorkerController) EditWorker(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.WorkerRequest
	if !bindJSON(c, &req) {
		return
	}
	worker, err := wc.Workers.EditWorker(c.Request.Context(), cc, id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Worker updated successfully", worker)
}

func (wc *WorkerController) ToggleStatus(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	worker, err := wc.Workers.ToggleWorkerStatus(c.Request.Context(), cc, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Worker marked as "+worker.Status, worker)
}

func (wc *WorkerController) ListActive(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	workers, err := wc.Workers.ListActiveWorkers(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active workers fetched successfully", workers)
}

func (wc *WorkerController) ListWithStats(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	workers, err := wc.Workers.ListWorkersWithStats(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Workers fetched successfully", workers)
}
