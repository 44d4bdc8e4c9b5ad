package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hostelcare/hostel-backend/models"
	"github.com/stretchr/testify/assert"
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

func addWorker(t *testing.T, db *gorm.DB, hostel, name, phone string) *models.Worker {
	t.Helper()
	w := &models.Worker{Name: name, Phone: phone}
	require.NoError(t, ForHostel(db, hostel).Workers().Create(context.Background(), w))
	return w
}

func addLog(t *testing.T, db *gorm.DB, hostel, room string, worker uint, at time.Time, rating *int, labels ...string) *models.CleaningLog {
	t.Helper()
	l := &models.CleaningLog{
		RoomID:         1,
		RoomNo:         room,
		SubmissionDate: models.DayKey(at),
		WorkerID:       worker,
		CleaningType:   labels,
		Rating:         rating,
		CreatedAt:      at,
	}
	require.NoError(t, ForHostel(db, hostel).Logs().Create(context.Background(), l))
	return l
}

func intPtr(i int) *int { return &i }

func TestScope_CreateForcesHostel(t *testing.T) {
	db := setupTestDB(t)
	w := &models.Worker{Name: "Ravi", Phone: "1", HostelName: hostelB}
	require.NoError(t, ForHostel(db, hostelA).Workers().Create(context.Background(), w))
	assert.Equal(t, hostelA, w.HostelName)
}

func TestScope_ReadsNeverCrossTenants(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	wa := addWorker(t, db, hostelA, "Ravi", "1")
	wb := addWorker(t, db, hostelB, "Suma", "2")

	_, err := ForHostel(db, hostelA).Workers().FindByID(ctx, wb.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := ForHostel(db, hostelA).Workers().FindByID(ctx, wa.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", found.Name)

	count, err := ForHostel(db, hostelB).Workers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestScope_UpdateNeverCrossesTenants(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	wb := addWorker(t, db, hostelB, "Suma", "2")
	wb.Name = "Hijacked"
	err := ForHostel(db, hostelA).Workers().Update(ctx, wb, "name")
	assert.ErrorIs(t, err, ErrNotFound)

	reloaded, err := ForHostel(db, hostelB).Workers().FindByID(ctx, wb.ID)
	require.NoError(t, err)
	assert.Equal(t, "Suma", reloaded.Name)
}

func TestWorkers_DuplicatePhoneIsPerHostel(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	addWorker(t, db, hostelA, "Ravi", "555")
	addWorker(t, db, hostelB, "Suma", "555")

	err := ForHostel(db, hostelA).Workers().Create(ctx, &models.Worker{Name: "Other", Phone: "555"})
	assert.ErrorIs(t, err, ErrDuplicate)

	taken, err := ForHostel(db, hostelA).Workers().PhoneTaken(ctx, "555", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestWorkers_ListWithStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	busy := addWorker(t, db, hostelA, "Busy", "1")
	idle := addWorker(t, db, hostelA, "Idle", "2")
	addLog(t, db, hostelA, "A1", busy.ID, now, intPtr(4), "Sweeping")
	addLog(t, db, hostelA, "A2", busy.ID, now, intPtr(2), "Mopping")
	addLog(t, db, hostelA, "A3", busy.ID, now, nil, "Mopping")

	rows, err := ForHostel(db, hostelA).Workers().ListWithStats(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]WorkerWithStats{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	assert.Equal(t, int64(3), byName["Busy"].TotalJobs)
	assert.True(t, byName["Busy"].AvgRating.Valid)
	assert.InDelta(t, 3.0, byName["Busy"].AvgRating.Float64, 0.001)
	assert.Equal(t, int64(0), byName[idle.Name].TotalJobs)
	assert.False(t, byName[idle.Name].AvgRating.Valid)
}

func TestLogs_OnePerRoomPerDay(t *testing.T) {
	db := setupTestDB(t)
	w := addWorker(t, db, hostelA, "Ravi", "1")
	now := time.Now()
	addLog(t, db, hostelA, "A1", w.ID, now, nil, "Sweeping")

	dup := &models.CleaningLog{
		RoomNo: "A1", SubmissionDate: models.DayKey(now), WorkerID: w.ID,
		CleaningType: []string{"Mopping"}, CreatedAt: now,
	}
	err := ForHostel(db, hostelA).Logs().Create(context.Background(), dup)
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same room number in another hostel is a different room.
	wb := addWorker(t, db, hostelB, "Suma", "1")
	addLog(t, db, hostelB, "A1", wb.ID, now, nil, "Sweeping")
}

func TestLogs_ListAndAggregates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	ravi := addWorker(t, db, hostelA, "Ravi", "1")
	suma := addWorker(t, db, hostelA, "Suma", "2")
	foreign := addWorker(t, db, hostelB, "Foreign", "3")

	addLog(t, db, hostelA, "A1", ravi.ID, now.AddDate(0, 0, -2), nil, "Sweeping")
	addLog(t, db, hostelA, "A1", ravi.ID, now.AddDate(0, 0, -1), nil, "Sweeping", "Mopping")
	addLog(t, db, hostelA, "A2", suma.ID, now, nil, "Mopping")
	addLog(t, db, hostelB, "B1", foreign.ID, now, nil, "Dusting")

	logs := ForHostel(db, hostelA).Logs()

	list, err := logs.List(ctx, LogFilter{RoomNo: "A1"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	require.NotNil(t, list[0].Worker)
	assert.Equal(t, "Ravi", list[0].Worker.Name)

	top, err := logs.TopWorkers(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, WorkerCount{Name: "Ravi", LogCount: 2}, top[0])

	labels, err := logs.TaskLabels(ctx)
	require.NoError(t, err)
	assert.Len(t, labels, 3)

	days, err := logs.DailyCounts(ctx, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, models.DayKey(now.AddDate(0, 0, -2)), days[0].Day)
	assert.Equal(t, models.DayKey(now), days[2].Day)

	count, err := logs.Count(ctx, LogFilter{From: now.Add(-time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIssues_FilterAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := ForHostel(db, hostelA).Issues()

	open := &models.Issue{RoomNo: "A1", IssueType: "Plumbing", Description: "Leak"}
	require.NoError(t, repo.Create(ctx, open))
	closed := &models.Issue{RoomNo: "A1", IssueType: "Electrical", Description: "Fan", Status: models.IssueClosed}
	require.NoError(t, repo.Create(ctx, closed))
	other := &models.Issue{RoomNo: "A1", IssueType: "Plumbing", Description: "Tap"}
	require.NoError(t, ForHostel(db, hostelB).Issues().Create(ctx, other))

	pending, err := repo.Count(ctx, IssueFilter{Statuses: models.PendingIssueStatuses})
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending)

	all, err := repo.List(ctx, IssueFilter{RoomNo: "A1"})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.FindByID(ctx, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	open.Status = models.IssueResolved
	open.AdminResponse = "Fixed"
	require.NoError(t, repo.Update(ctx, open, "status", "admin_response"))
	reloaded, err := repo.FindByID(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IssueResolved, reloaded.Status)
	assert.Equal(t, "Fixed", reloaded.AdminResponse)
}

func TestUsers_LookupsAndRefreshToken(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	room := "a1"
	student := &models.User{RoomNo: &room, Password: "x", Role: models.RoleStudent}
	require.NoError(t, ForHostel(db, hostelA).Users().Create(ctx, student))
	name := "warden"
	admin := &models.User{Username: &name, Password: "x", Role: models.RoleAdmin}
	require.NoError(t, ForHostel(db, hostelA).Users().Create(ctx, admin))

	found, err := ForHostel(db, hostelA).Users().FindStudent(ctx, " A1")
	require.NoError(t, err)
	assert.Equal(t, student.ID, found.ID)

	_, err = ForHostel(db, hostelB).Users().FindStudent(ctx, "A1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ForHostel(db, hostelB).Users().FindAdmin(ctx, "warden")
	assert.ErrorIs(t, err, ErrNotFound)

	rooms, err := ForHostel(db, hostelA).Users().ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	accounts := NewAccountRepository(db)
	token := "tok"
	require.NoError(t, accounts.SetRefreshToken(ctx, admin.ID, &token))
	u, err := accounts.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, u.RefreshToken)
	assert.Equal(t, "tok", *u.RefreshToken)

	require.NoError(t, accounts.SetRefreshToken(ctx, admin.ID, nil))
	u, err = accounts.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Nil(t, u.RefreshToken)

	_, err = accounts.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
