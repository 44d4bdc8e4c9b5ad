package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/services"
	"github.com/hostelcare/hostel-backend/utils"
)

type CleaningLogController struct {
	Logs      *services.CleaningLogService
	UploadDir string
}

func NewCleaningLogController(logs *services.CleaningLogService, uploadDir string) *CleaningLogController {
	return &CleaningLogController{Logs: logs, UploadDir: uploadDir}
}

// SubmitLog accepts JSON or a multipart form with an optional image.
func (clc *CleaningLogController) SubmitLog(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}

	in, err := clc.submitInput(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	path, cleanup := saveImage(c, clc.UploadDir)
	defer cleanup()
	in.ImagePath = path

	res, err := clc.Logs.SubmitLog(c.Request.Context(), cc, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Cleaning confirmed successfully", res)
}

func (clc *CleaningLogController) submitInput(c *gin.Context) (services.SubmitLogInput, error) {
	if !isMultipart(c) {
		var req dto.SubmitLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if utils.KindOf(err) == utils.KindValidation {
				return services.SubmitLogInput{}, err
			}
			return services.SubmitLogInput{}, utils.NewValidationError("Invalid request body")
		}
		return services.SubmitLogInput{
			WorkerID:     uint(req.WorkerID),
			CleaningType: req.CleaningType,
			Feedback:     req.Feedback,
			Rating:       req.Rating,
		}, nil
	}

	in := services.SubmitLogInput{Feedback: c.PostForm("feedback")}
	id, err := dto.ParseEntityID(c.PostForm("worker"))
	if err != nil {
		return in, err
	}
	in.WorkerID = uint(id)
	labels := c.PostFormArray("cleaningType")
	if len(labels) == 0 {
		labels = c.PostFormArray("cleaningType[]")
	}
	in.CleaningType = dto.LabelSet(labels)
	if raw := strings.TrimSpace(c.PostForm("rating")); raw != "" {
		r, err := strconv.Atoi(raw)
		if err != nil {
			return in, utils.NewValidationError("Rating must be between 1 and 5")
		}
		in.Rating = &r
	}
	return in, nil
}

func (clc *CleaningLogController) MyHistory(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	logs, err := clc.Logs.GetMyRoomHistory(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cleaning history fetched successfully", logs)
}

func (clc *CleaningLogController) AllLogs(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	logs, err := clc.Logs.GetAllLogs(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All logs fetched", logs)
}
