package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/config"
	"github.com/hostelcare/hostel-backend/controllers"
	"github.com/hostelcare/hostel-backend/database"
	"github.com/hostelcare/hostel-backend/router"
	"github.com/hostelcare/hostel-backend/storage"
	"github.com/hostelcare/hostel-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.InitLogger(cfg.LogFormat, cfg.LogLevel)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if cfg.SeedAdmins != "" {
		seeds, err := database.ParseAdminSeeds(cfg.SeedAdmins)
		if err != nil {
			utils.ErrorLogger.Fatalf("Invalid SEED_ADMINS: %v", err)
		}
		created, err := database.SeedAdmins(context.Background(), db, seeds)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed admins: %v", err)
		}
		utils.InfoLogger.Printf("Admin seeding done, %d created", created)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		utils.ErrorLogger.Fatalf("Upload dir %s unusable: %v", cfg.UploadDir, err)
	}

	tokens := utils.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)

	r := router.SetupRouter(router.Deps{
		DB:     db,
		Tokens: tokens,
		Store:  blobStore(cfg),
		Now:    time.Now,

		CORSOrigin:     cfg.CORSOrigin,
		TrustedProxies: cfg.TrustedProxies,
		Cookies: controllers.CookieOptions{
			Secure:     cfg.CookieSecure,
			AccessTTL:  cfg.AccessTokenExpiry,
			RefreshTTL: cfg.RefreshTokenExpiry,
		},
		LoginRatePerMinute: cfg.LoginRatePerMinute,
		UploadTimeout:      cfg.UploadTimeout,
		UploadDir:          cfg.UploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// blobStore picks the configured backend. A backend that fails to
// initialise falls back to the disabled store; uploads are optional.
func blobStore(cfg *config.Config) storage.BlobStore {
	switch cfg.BlobBackend {
	case "cloudinary":
		if cfg.CloudinaryURL == "" {
			break
		}
		s, err := storage.NewCloudinaryStore(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			utils.ErrorLogger.Printf("Cloudinary init failed: %v", err)
			break
		}
		return s
	case "b2":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s, err := storage.NewB2Store(ctx, cfg.B2AccountID, cfg.B2AppKey, cfg.B2Bucket, "hostelcare")
		if err != nil {
			utils.ErrorLogger.Printf("B2 init failed: %v", err)
			break
		}
		return s
	}
	utils.InfoLogger.Warn("No blob storage configured, image uploads disabled")
	return storage.NewDisabledStore()
}
