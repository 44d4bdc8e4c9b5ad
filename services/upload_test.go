package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hostelcare/hostel-backend/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hangingStore blocks until the upload context is done.
type hangingStore struct {
	calls atomic.Int32
}

func (s *hangingStore) Upload(ctx context.Context, _ string) (string, error) {
	s.calls.Add(1)
	<-ctx.Done()
	return "", ctx.Err()
}

func TestImageUploader_Timeout(t *testing.T) {
	store := &hangingStore{}
	u := ImageUploader{Store: store, Timeout: 50 * time.Millisecond}

	start := time.Now()
	url := u.upload(context.Background(), "/tmp/room.jpg")
	assert.Equal(t, "", url)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.EqualValues(t, 1, store.calls.Load())
}

func TestImageUploader_SkipsWithoutPathOrStore(t *testing.T) {
	store := &hangingStore{}
	assert.Equal(t, "", ImageUploader{Store: store}.upload(context.Background(), ""))
	assert.Equal(t, "", ImageUploader{}.upload(context.Background(), "/tmp/room.jpg"))
	assert.EqualValues(t, 0, store.calls.Load())
}

func TestSubmitLog_UploadTimeoutKeepsLog(t *testing.T) {
	db := setupTestDB(t)
	store := &hangingStore{}
	svc := NewCleaningLogService(db, ImageUploader{Store: store, Timeout: 50 * time.Millisecond}, newFixedClock().Now)
	student := seedStudent(t, db, hostelA, "A1", "pw")
	w := seedWorker(t, db, hostelA, "Ravi", "1")

	start := time.Now()
	res, err := svc.SubmitLog(context.Background(), student, SubmitLogInput{
		WorkerID: w.ID, CleaningType: dto.LabelSet{"Sweeping"}, ImagePath: "/tmp/room.jpg",
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "", res.Image)
	assert.EqualValues(t, 1, store.calls.Load())
}

func TestRaiseIssue_UploadTimeoutKeepsIssue(t *testing.T) {
	db := setupTestDB(t)
	store := &hangingStore{}
	svc := NewIssueService(db, ImageUploader{Store: store, Timeout: 50 * time.Millisecond}, newFixedClock().Now)
	student := seedStudent(t, db, hostelA, "A1", "pw")

	start := time.Now()
	issue, err := svc.RaiseIssue(context.Background(), student, RaiseIssueInput{
		IssueType: "Plumbing", Description: "Leaking tap", ImagePath: "/tmp/leak.jpg",
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "", issue.ImageURL)
	assert.NotZero(t, issue.ID)
	assert.EqualValues(t, 1, store.calls.Load())
}
