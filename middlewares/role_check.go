package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/utils"
)

// RequireRole lets the request through only when the resolved caller holds
// one of roles. It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			utils.AbortWithError(c, utils.NewUnauthenticatedError("Unauthorized request"))
			return
		}
		if err := caller.Require(roles...); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
