package middlewares

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/services"
	"github.com/hostelcare/hostel-backend/utils"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	callerKey = "caller"
)

// AccessTokenParser is the verification half of the credential service.
type AccessTokenParser interface {
	ParseAccess(token string) (*utils.CustomClaims, error)
}

// CallerResolver loads the identity behind a token's user id.
type CallerResolver interface {
	Resolve(ctx context.Context, userID uint) (services.CallerContext, error)
}

// AuthMiddleware resolves the caller once per request. The token is read
// from the accessToken cookie first, then from a Bearer header.
func AuthMiddleware(tokens AccessTokenParser, resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerOrCookie(c)
		if tokenString == "" {
			utils.AbortWithError(c, utils.NewUnauthenticatedError("Unauthorized request"))
			return
		}

		claims, err := tokens.ParseAccess(tokenString)
		if err != nil {
			utils.AbortWithError(c, utils.NewUnauthenticatedError("Invalid Access Token"))
			return
		}

		caller, err := resolver.Resolve(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

func bearerOrCookie(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (services.CallerContext, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return services.CallerContext{}, false
	}
	caller, ok := v.(services.CallerContext)
	return caller, ok
}
