package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/services"
	"github.com/hostelcare/hostel-backend/utils"
)

type IssueController struct {
	Issues    *services.IssueService
	UploadDir string
}

func NewIssueController(issues *services.IssueService, uploadDir string) *IssueController {
	return &IssueController{Issues: issues, UploadDir: uploadDir}
}

func (ic *IssueController) RaiseIssue(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}

	var req dto.RaiseIssueRequest
	if isMultipart(c) {
		req.IssueType = c.PostForm("issueType")
		req.Description = c.PostForm("description")
	} else if !bindJSON(c, &req) {
		return
	}

	path, cleanup := saveImage(c, ic.UploadDir)
	defer cleanup()

	issue, err := ic.Issues.RaiseIssue(c.Request.Context(), cc, services.RaiseIssueInput{
		IssueType:   req.IssueType,
		Description: req.Description,
		ImagePath:   path,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Issue raised successfully", issue)
}

func (ic *IssueController) MyIssues(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	issues, err := ic.Issues.GetMyIssues(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My issues fetched successfully", issues)
}

func (ic *IssueController) RoomIssues(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	issues, err := ic.Issues.GetIssuesByRoom(c.Request.Context(), cc, c.Param("room_no"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Room issues fetched successfully", issues)
}

func (ic *IssueController) AllIssues(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	issues, err := ic.Issues.GetAllIssues(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All issues fetched successfully", issues)
}

func (ic *IssueController) ResolveIssue(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ResolveIssueRequest
	if !bindJSON(c, &req) {
		return
	}
	issue, err := ic.Issues.ResolveIssue(c.Request.Context(), cc, id, services.ResolveIssueInput{
		Status:        req.Status,
		AdminResponse: req.AdminResponse,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Issue updated successfully", issue)
}
