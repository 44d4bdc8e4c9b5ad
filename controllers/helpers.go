package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostelcare/hostel-backend/middlewares"
	"github.com/hostelcare/hostel-backend/services"
	"github.com/hostelcare/hostel-backend/utils"
	"github.com/sirupsen/logrus"
)

// caller returns the resolved caller or writes a 401 and reports false.
func caller(c *gin.Context) (services.CallerContext, bool) {
	cc, ok := middlewares.CallerFrom(c)
	if !ok {
		utils.RespondError(c, utils.NewUnauthenticatedError("Unauthorized request"))
		return services.CallerContext{}, false
	}
	return cc, true
}

// bindJSON decodes the body into dst. Decoding errors are reported as
// validation errors.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			utils.RespondError(c, appErr)
		} else {
			utils.RespondError(c, utils.NewValidationError("Invalid request body"))
		}
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, utils.NewValidationError("Invalid "+name))
		return 0, false
	}
	return uint(id), true
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// saveImage stores the optional "image" form file under dir and returns its
// path and a cleanup func. A missing or unsavable file yields an empty path;
// the request continues without an image.
func saveImage(c *gin.Context, dir string) (string, func()) {
	noop := func() {}
	if !isMultipart(c) {
		return "", noop
	}
	file, err := c.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			utils.InfoLogger.WithError(err).Warn("could not read image part")
		}
		return "", noop
	}

	if dir == "" {
		dir = os.TempDir()
	}
	name := fmt.Sprintf("%s_%s", uuid.NewString(), filepath.Base(file.Filename))
	path := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, path); err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"file": file.Filename,
		}).WithError(err).Error("failed to save uploaded image")
		return "", noop
	}
	return path, func() { _ = os.Remove(path) }
}
