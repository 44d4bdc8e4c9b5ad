package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/services"
	"github.com/hostelcare/hostel-backend/utils"
)

type AdminController struct {
	Rooms      *services.RoomService
	Dashboards *services.DashboardService
}

func NewAdminController(rooms *services.RoomService, dashboards *services.DashboardService) *AdminController {
	return &AdminController{Rooms: rooms, Dashboards: dashboards}
}

func (ac *AdminController) CreateRoom(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	var req dto.CreateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := ac.Rooms.CreateStudentRoom(c.Request.Context(), cc, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Student room created successfully", res)
}

func (ac *AdminController) ListRooms(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	rooms, err := ac.Rooms.ListRooms(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Rooms fetched successfully", rooms)
}

func (ac *AdminController) Dashboard(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	res, err := ac.Dashboards.AdminDashboard(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard data fetched", res)
}

type StudentController struct {
	Dashboards *services.DashboardService
}

func NewStudentController(dashboards *services.DashboardService) *StudentController {
	return &StudentController{Dashboards: dashboards}
}

func (sc *StudentController) Dashboard(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	res, err := sc.Dashboards.StudentDashboard(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Student dashboard fetched", res)
}
