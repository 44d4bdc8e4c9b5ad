package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostelcare/hostel-backend/dto"
	"github.com/hostelcare/hostel-backend/middlewares"
	"github.com/hostelcare/hostel-backend/services"
	"github.com/hostelcare/hostel-backend/utils"
)

// CookieOptions controls the auth cookies set on login.
type CookieOptions struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthController struct {
	Auth    *services.AuthService
	Cookies CookieOptions
}

func NewAuthController(auth *services.AuthService, cookies CookieOptions) *AuthController {
	return &AuthController{Auth: auth, Cookies: cookies}
}

// applySameSite precedes every auth cookie write, clearing ones included.
func (ac *AuthController) applySameSite(c *gin.Context) {
	if ac.Cookies.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
}

func (ac *AuthController) setAuthCookies(c *gin.Context, pair dto.TokenPair) {
	ac.applySameSite(c)
	c.SetCookie(middlewares.AccessTokenCookie, pair.AccessToken, int(ac.Cookies.AccessTTL.Seconds()), "/", "", ac.Cookies.Secure, true)
	c.SetCookie(middlewares.RefreshTokenCookie, pair.RefreshToken, int(ac.Cookies.RefreshTTL.Seconds()), "/", "", ac.Cookies.Secure, true)
}

func (ac *AuthController) clearAuthCookies(c *gin.Context) {
	ac.applySameSite(c)
	c.SetCookie(middlewares.AccessTokenCookie, "", -1, "/", "", ac.Cookies.Secure, true)
	c.SetCookie(middlewares.RefreshTokenCookie, "", -1, "/", "", ac.Cookies.Secure, true)
}

func (ac *AuthController) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := ac.Auth.LoginAdmin(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ac.setAuthCookies(c, res.TokenPair)
	utils.RespondJSON(c, http.StatusOK, "Admin logged in successfully", res)
}

func (ac *AuthController) StudentLogin(c *gin.Context) {
	var req dto.StudentLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := ac.Auth.LoginStudent(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ac.setAuthCookies(c, res.TokenPair)
	utils.RespondJSON(c, http.StatusOK, "Student logged in successfully", res)
}

// Logout serves both /admin/logout and /student/logout; message differs.
func (ac *AuthController) Logout(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := caller(c)
		if !ok {
			return
		}
		if err := ac.Auth.Logout(c.Request.Context(), cc.ID); err != nil {
			utils.RespondError(c, err)
			return
		}
		ac.clearAuthCookies(c)
		utils.RespondJSON(c, http.StatusOK, message, nil)
	}
}

// Refresh reads the refresh token from its cookie, falling back to the body.
func (ac *AuthController) Refresh(c *gin.Context) {
	token, _ := c.Cookie(middlewares.RefreshTokenCookie)
	if token == "" {
		var req dto.RefreshRequest
		if c.Request.ContentLength != 0 {
			_ = c.ShouldBindJSON(&req)
		}
		token = req.RefreshToken
	}
	res, err := ac.Auth.Refresh(c.Request.Context(), token)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	ac.setAuthCookies(c, res.TokenPair)
	utils.RespondJSON(c, http.StatusOK, "Access token refreshed", res)
}

func (ac *AuthController) Me(c *gin.Context) {
	cc, ok := caller(c)
	if !ok {
		return
	}
	profile, err := ac.Auth.Profile(c.Request.Context(), cc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current user fetched successfully", profile)
}
