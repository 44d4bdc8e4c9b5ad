package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIResponse is the success envelope every handler returns.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// APIError is the error envelope. It never carries driver or store details.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(code, APIResponse{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    code < http.StatusBadRequest,
	})
}

// RespondError writes the error envelope for err. AppErrors keep their kind
// and message; anything else collapses to a generic 500.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError("Internal server error", err)
	}

	code := appErr.StatusCode()
	message := appErr.Message
	if code >= http.StatusInternalServerError {
		ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		if message == "" {
			message = "Internal server error"
		}
	}

	c.JSON(code, APIError{
		StatusCode: code,
		Message:    message,
		Success:    false,
	})
}

// AbortWithError is RespondError for middlewares.
func AbortWithError(c *gin.Context, err error) {
	RespondError(c, err)
	c.Abort()
}
