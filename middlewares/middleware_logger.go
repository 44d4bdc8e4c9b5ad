package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/utils"
	"github.com/sirupsen/logrus"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := logrus.Fields{
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
			"path":    path,
		}
		if caller, ok := CallerFrom(c); ok {
			fields["user_id"] = caller.ID
			fields["hostel"] = caller.HostelName
		}
		utils.InfoLogger.WithFields(fields).Info("request")
	}
}
