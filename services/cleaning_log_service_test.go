package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/models"
	"github.com/hostelcare/hostel-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitLog(t *testing.T) {
	db := setupTestDB(t)
	clock := newFixedClock()
	store := &fakeStore{url: "https://cdn.example/img.jpg"}
	svc := NewCleaningLogService(db, ImageUploader{Store: store}, clock.Now)
	ctx := context.Background()

	student := seedStudent(t, db, hostelA, "A1", "pw")
	w := seedWorker(t, db, hostelA, "Ravi", "1")

	res, err := svc.SubmitLog(ctx, student, SubmitLogInput{
		WorkerID:     w.ID,
		CleaningType: dto.LabelSet{"Sweeping", " Mopping", "Sweeping"},
		Rating:       intPtr(5),
		ImagePath:    "/tmp/room.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "A1", res.RoomNo)
	assert.Equal(t, hostelA, res.HostelName)
	assert.Equal(t, student.ID, res.RoomID)
	assert.Equal(t, []string{"Sweeping", "Mopping"}, res.CleaningType)
	assert.Equal(t, models.LogStatusVerified, res.Status)
	assert.Equal(t, "https://cdn.example/img.jpg", res.Image)
	require.NotNil(t, res.Worker)
	assert.Equal(t, "Ravi", res.Worker.Name)
	assert.Equal(t, []string{"/tmp/room.jpg"}, store.calls)
}

func TestSubmitLog_OncePerDay(t *testing.T) {
	db := setupTestDB(t)
	clock := newFixedClock()
	svc := NewCleaningLogService(db, ImageUploader{}, clock.Now)
	ctx := context.Background()

	student := seedStudent(t, db, hostelA, "A1", "pw")
	w := seedWorker(t, db, hostelA, "Ravi", "1")
	in := SubmitLogInput{WorkerID: w.ID, CleaningType: dto.LabelSet{"Sweeping"}}

	_, err := svc.SubmitLog(ctx, student, in)
	require.NoError(t, err)

	clock.Set(clock.Now().Add(14 * time.Hour).Add(-time.Minute))
	_, err = svc.SubmitLog(ctx, student, in)
	requireKind(t, err, utils.KindConflict)
	assert.Contains(t, err.Error(), "already submitted a cleaning log for today")

	// Next calendar day is allowed.
	clock.Set(clock.Now().Add(2 * time.Minute))
	_, err = svc.SubmitLog(ctx, student, in)
	require.NoError(t, err)
}

func TestSubmitLog_ConcurrentSubmissionsLandOnce(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	clock := newFixedClock()
	svc := NewCleaningLogService(db, ImageUploader{}, clock.Now)
	student := seedStudent(t, db, hostelA, "A1", "pw")
	w := seedWorker(t, db, hostelA, "Ravi", "1")

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitLog(context.Background(), student, SubmitLogInput{
				WorkerID: w.ID, CleaningType: dto.LabelSet{"Sweeping"},
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		requireKind(t, err, utils.KindConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestSubmitLog_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCleaningLogService(db, ImageUploader{}, newFixedClock().Now)
	ctx := context.Background()
	student := seedStudent(t, db, hostelA, "A1", "pw")
	admin := seedAdmin(t, db, hostelA, "warden", "pw")
	w := seedWorker(t, db, hostelA, "Ravi", "1")
	foreign := seedWorker(t, db, hostelB, "Suma", "2")

	_, err := svc.SubmitLog(ctx, student, SubmitLogInput{CleaningType: dto.LabelSet{"Sweeping"}})
	requireKind(t, err, utils.KindValidation)

	_, err = svc.SubmitLog(ctx, student, SubmitLogInput{WorkerID: w.ID, CleaningType: dto.LabelSet{" ", ""}})
	requireKind(t, err, utils.KindValidation)

	_, err = svc.SubmitLog(ctx, student, SubmitLogInput{WorkerID: w.ID, CleaningType: dto.LabelSet{"Sweeping"}, Rating: intPtr(0)})
	requireKind(t, err, utils.KindValidation)

	_, err = svc.SubmitLog(ctx, student, SubmitLogInput{WorkerID: foreign.ID, CleaningType: dto.LabelSet{"Sweeping"}})
	requireKind(t, err, utils.KindNotFound)

	_, err = svc.SubmitLog(ctx, admin, SubmitLogInput{WorkerID: w.ID, CleaningType: dto.LabelSet{"Sweeping"}})
	requireKind(t, err, utils.KindForbidden)
}

func TestSubmitLog_UploadFailureIsNotFatal(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeStore{err: errStoreDown}
	svc := NewCleaningLogService(db, ImageUploader{Store: store, Timeout: time.Second}, newFixedClock().Now)
	student := seedStudent(t, db, hostelA, "A1", "pw")
	w := seedWorker(t, db, hostelA, "Ravi", "1")

	res, err := svc.SubmitLog(context.Background(), student, SubmitLogInput{
		WorkerID: w.ID, CleaningType: dto.LabelSet{"Sweeping"}, ImagePath: "/tmp/x.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "", res.Image)
	assert.Len(t, store.calls, 1)
}

func TestLogHistories(t *testing.T) {
	db := setupTestDB(t)
	clock := newFixedClock()
	svc := NewCleaningLogService(db, ImageUploader{}, clock.Now)
	ctx := context.Background()

	a1 := seedStudent(t, db, hostelA, "A1", "pw")
	a2 := seedStudent(t, db, hostelA, "A2", "pw")
	b1 := seedStudent(t, db, hostelB, "A1", "pw")
	adminA := seedAdmin(t, db, hostelA, "warden", "pw")
	wa := seedWorker(t, db, hostelA, "Ravi", "1")
	wb := seedWorker(t, db, hostelB, "Suma", "1")

	submit := func(c CallerContext, worker uint) {
		_, err := svc.SubmitLog(ctx, c, SubmitLogInput{WorkerID: worker, CleaningType: dto.LabelSet{"Sweeping"}})
		require.NoError(t, err)
	}
	submit(a1, wa.ID)
	submit(a2, wa.ID)
	submit(b1, wb.ID)
	clock.Set(clock.Now().AddDate(0, 0, 1))
	submit(a1, wa.ID)

	mine, err := svc.GetMyRoomHistory(ctx, a1)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.True(t, mine[0].CreatedAt.After(mine[1].CreatedAt))
	for _, l := range mine {
		assert.Equal(t, "A1", l.RoomNo)
		assert.Equal(t, hostelA, l.HostelName)
	}

	all, err := svc.GetAllLogs(ctx, adminA)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.GetAllLogs(ctx, a1)
	requireKind(t, err, utils.KindForbidden)
}
