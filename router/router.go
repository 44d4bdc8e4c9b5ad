package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/controllers"
	"github.com/hostelcare/hostel-backend/middlewares"
	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/services"
	"github.com/hostelcare/hostel-backend/storage"
	"github.com/hostelcare/hostel-backend/utils"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs. Zero-valued optional fields get
// defaults in SetupRouter.
type Deps struct {
	DB     *gorm.DB
	Tokens *utils.TokenManager
	Store  storage.BlobStore
	Now    services.Clock

	CORSOrigin         string
	TrustedProxies     []string
	Cookies            controllers.CookieOptions
	LoginRatePerMinute int
	UploadTimeout      time.Duration
	UploadDir          string
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Store == nil {
		d.Store = storage.NewDisabledStore()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.LoginRatePerMinute <= 0 {
		d.LoginRatePerMinute = 10
	}
	if d.CORSOrigin == "" {
		d.CORSOrigin = "http://localhost:5173"
	}

	r := gin.New()
	// nil trusts no proxy, so ClientIP is the socket peer.
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		utils.ErrorLogger.WithError(err).Error("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(d.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	uploader := services.ImageUploader{Store: d.Store, Timeout: d.UploadTimeout}

	authSvc := services.NewAuthService(d.DB, d.Tokens)
	dashSvc := services.NewDashboardService(d.DB, d.Now)

	authCtrl := controllers.NewAuthController(authSvc, d.Cookies)
	adminCtrl := controllers.NewAdminController(services.NewRoomService(d.DB), dashSvc)
	studentCtrl := controllers.NewStudentController(dashSvc)
	workerCtrl := controllers.NewWorkerController(services.NewWorkerService(d.DB))
	logCtrl := controllers.NewCleaningLogController(services.NewCleaningLogService(d.DB, uploader, d.Now), d.UploadDir)
	issueCtrl := controllers.NewIssueController(services.NewIssueService(d.DB, uploader, d.Now), d.UploadDir)

	loginLimiter := middlewares.NewLoginRateLimiter(d.LoginRatePerMinute)
	requireAuth := middlewares.AuthMiddleware(d.Tokens, authSvc)
	adminOnly := middlewares.RequireRole(models.RoleAdmin)
	studentOnly := middlewares.RequireRole(models.RoleStudent)

	api := r.Group("/api/v1")

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	api.GET("/ping", func(c *gin.Context) {
		utils.RespondJSON(c, http.StatusOK, "pong", nil)
	})
	api.POST("/admin/login", loginLimiter.Handler(), authCtrl.AdminLogin)
	api.POST("/student/login", loginLimiter.Handler(), authCtrl.StudentLogin)
	api.POST("/auth/refresh", authCtrl.Refresh)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	authed := api.Group("")
	authed.Use(requireAuth)
	authed.GET("/me", authCtrl.Me)
	authed.GET("/workers/active", workerCtrl.ListActive)

	admin := authed.Group("")
	admin.Use(adminOnly)
	{
		admin.POST("/admin/logout", authCtrl.Logout("User logged out successfully"))
		admin.POST("/admin/rooms", adminCtrl.CreateRoom)
		admin.GET("/admin/rooms", adminCtrl.ListRooms)
		admin.GET("/admin/dashboard", adminCtrl.Dashboard)

		admin.POST("/workers", workerCtrl.AddWorker)
		admin.GET("/workers", workerCtrl.ListWithStats)
		admin.PATCH("/workers/:id", workerCtrl.EditWorker)
		admin.PATCH("/workers/:id/toggle", workerCtrl.ToggleStatus)

		admin.GET("/logs", logCtrl.AllLogs)

		admin.GET("/issues", issueCtrl.AllIssues)
		admin.GET("/issues/room/:room_no", issueCtrl.RoomIssues)
		admin.PATCH("/issues/:id", issueCtrl.ResolveIssue)
	}

	student := authed.Group("")
	student.Use(studentOnly)
	{
		student.POST("/student/logout", authCtrl.Logout("Student logged out successfully"))
		student.GET("/student/dashboard", studentCtrl.Dashboard)

		student.POST("/logs", logCtrl.SubmitLog)
		student.GET("/logs/me", logCtrl.MyHistory)

		student.POST("/issues", issueCtrl.RaiseIssue)
		student.GET("/issues/me", issueCtrl.MyIssues)
	}

	return r
}
