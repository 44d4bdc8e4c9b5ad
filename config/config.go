package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hostelcare/hostel-backend/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	LogFormat string
	LogLevel  string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
	CookieSecure       bool

	CORSOrigin         string
	TrustedProxies     []string
	LoginRatePerMinute int

	BlobBackend      string
	CloudinaryURL    string
	CloudinaryFolder string
	B2AccountID      string
	B2AppKey         string
	B2Bucket         string
	UploadTimeout    time.Duration
	UploadDir        string

	// SeedAdmins is "hostel|username|password" entries separated by ";".
	SeedAdmins string
}

// ErrMissingSecret is returned by Load in release mode when a token secret
// is not configured.
var ErrMissingSecret = errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set in release mode")

// Load reads .env (if present) and the process environment. Outside release
// mode missing token secrets fall back to development values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port:    GetEnv("PORT", "8080"),
		GinMode: GetEnv("GIN_MODE", "debug"),

		LogFormat: GetEnv("LOG_FORMAT", "text"),
		LogLevel:  GetEnv("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(GetEnv("DB_DRIVER", "mysql")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBPort:      GetEnv("DB_PORT", ""),
		DBUser:      GetEnv("DB_USER", "root"),
		DBPassword:  GetEnv("DB_PASSWORD", ""),
		DBName:      GetEnv("DB_NAME", "hostelcare"),
		DBSSLMode:   GetEnv("DB_SSLMODE", "disable"),
		SQLitePath:  GetEnv("SQLITE_PATH", "hostelcare.db"),

		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		AccessTokenExpiry:  getDuration("ACCESS_TOKEN_EXPIRY", 24*time.Hour),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		RefreshTokenExpiry: getDuration("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour),
		CookieSecure:       getBool("COOKIE_SECURE", true),

		CORSOrigin:         GetEnv("CORS_ORIGIN", "http://localhost:5173"),
		TrustedProxies:     getList("TRUSTED_PROXIES"),
		LoginRatePerMinute: getInt("LOGIN_RATE_PER_MINUTE", 10),

		BlobBackend:      strings.ToLower(GetEnv("BLOB_BACKEND", "cloudinary")),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: GetEnv("CLOUDINARY_FOLDER", "hostelcare"),
		B2AccountID:      os.Getenv("B2_ACCOUNT_ID"),
		B2AppKey:         os.Getenv("B2_APP_KEY"),
		B2Bucket:         os.Getenv("B2_BUCKET"),
		UploadTimeout:    getDuration("UPLOAD_TIMEOUT", 30*time.Second),
		UploadDir:        GetEnv("UPLOAD_DIR", os.TempDir()),

		SeedAdmins: os.Getenv("SEED_ADMINS"),
	}

	if cfg.GinMode == "release" && (cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "") {
		return nil, ErrMissingSecret
	}
	if cfg.AccessTokenSecret == "" {
		utils.InfoLogger.Warn("ACCESS_TOKEN_SECRET not set, using development secret")
		cfg.AccessTokenSecret = "dev-access-secret"
	}
	if cfg.RefreshTokenSecret == "" {
		utils.InfoLogger.Warn("REFRESH_TOKEN_SECRET not set, using development secret")
		cfg.RefreshTokenSecret = "dev-refresh-secret"
	}
	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("15m") or a plain number of seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	utils.InfoLogger.Warnf("invalid duration for %s: %q, using %s", key, raw, defaultValue)
	return defaultValue
}

// getList splits a comma separated variable, dropping blanks. Unset is nil.
func getList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}
