package services

import (
	"context"
	"time"

	"github.com/hostelcare/hostel-backend/storage"
	"github.com/hostelcare/hostel-backend/utils"
	"github.com/sirupsen/logrus"
)

// ImageUploader pushes optional attachments to the blob store. Failures are
// logged and yield an empty URL; they never fail the surrounding request.
type ImageUploader struct {
	Store   storage.BlobStore
	Timeout time.Duration
}

func (u ImageUploader) upload(ctx context.Context, localPath string) string {
	if localPath == "" || u.Store == nil {
		return ""
	}
	timeout := u.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url, err := u.Store.Upload(ctx, localPath)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"path": localPath,
		}).WithError(err).Error("image upload failed, continuing without image")
		return ""
	}
	return url
}
