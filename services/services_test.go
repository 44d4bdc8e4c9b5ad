package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/repository"
	"github.com/hostelcare/hostel-backend/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	hostelA = "Sahyadri"
	hostelB = "Vindya"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Worker{}, &models.CleaningLog{}, &models.Issue{}))
	return db
}

// fixedClock returns a movable clock pinned to a known local time.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{t: time.Date(2024, 5, 15, 10, 0, 0, 0, time.Local)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

// fakeStore records uploads and returns url, or err when set.
type fakeStore struct {
	url   string
	err   error
	calls []string
}

func (f *fakeStore) Upload(_ context.Context, localPath string) (string, error) {
	f.calls = append(f.calls, localPath)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

var errStoreDown = errors.New("store unavailable")

func seedAdmin(t *testing.T, db *gorm.DB, hostel, username, password string) CallerContext {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{Username: &username, Password: hashed, Role: models.RoleAdmin}
	require.NoError(t, repository.ForHostel(db, hostel).Users().Create(context.Background(), u))
	return NewCallerContext(u)
}

func seedStudent(t *testing.T, db *gorm.DB, hostel, room, password string) CallerContext {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{RoomNo: &room, Password: hashed, Role: models.RoleStudent}
	require.NoError(t, repository.ForHostel(db, hostel).Users().Create(context.Background(), u))
	return NewCallerContext(u)
}

func seedWorker(t *testing.T, db *gorm.DB, hostel, name, phone string) *models.Worker {
	t.Helper()
	w := &models.Worker{Name: name, Phone: phone}
	require.NoError(t, repository.ForHostel(db, hostel).Workers().Create(context.Background(), w))
	return w
}

func requireKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, utils.KindOf(err), err.Error())
}

func intPtr(i int) *int { return &i }
