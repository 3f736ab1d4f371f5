package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/apiclient"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/ids"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/middleware"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/service"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/store"
)

func (h HandlerSet) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":   "landing",
		"viewer": viewerOf(c),
	})
}

func (h HandlerSet) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":        "login",
		"callbackUrl": h.safeCallback(c.Query("callbackUrl")),
	})
}

func (h HandlerSet) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

func (h HandlerSet) ForgotPasswordPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "forgot-password"})
}

func (h HandlerSet) ResetPasswordPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":  "reset-password",
		"token": c.Query("token"),
	})
}

func (h HandlerSet) VerifyAccountPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":  "verify-account",
		"email": c.Query("email"),
	})
}

type loginRequest struct {
	Email       string `form:"email" json:"email" binding:"required,email"`
	Password    string `form:"password" json:"password" binding:"required"`
	CallbackURL string `form:"callbackUrl" json:"callbackUrl"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	if h.auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sign-in is unavailable"})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), apiclient.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, h.clientInfo(c))
	if err != nil {
		h.authFailure(c, err, "Invalid email or password")
		return
	}

	h.log.Info().Str("user_id", result.User.ID).Msg("user signed in")
	h.setSessionCookie(c, result.Token, result.Session.ExpiresAt)
	c.Redirect(http.StatusSeeOther, h.safeCallback(req.CallbackURL))
}

type registerRequest struct {
	Name     string `form:"name" json:"name" binding:"required,max=100"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=8"`
	Phone    string `form:"phone" json:"phone"`
}

func (h HandlerSet) RegisterAccount(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}
	if h.auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "registration is unavailable"})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), apiclient.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}, h.clientInfo(c))
	if err != nil {
		h.authFailure(c, err, "Registration failed")
		return
	}

	if result.Token == "" {
		q := url.Values{}
		q.Set("email", req.Email)
		c.Redirect(http.StatusSeeOther, "/auth/verify-account?"+q.Encode())
		return
	}

	h.setSessionCookie(c, result.Token, result.Session.ExpiresAt)
	c.Redirect(http.StatusSeeOther, h.dashboardPath())
}

type forgotPasswordRequest struct {
	Email string `form:"email" json:"email" binding:"required,email"`
}

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.api.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.authFailure(c, err, "Unable to send the reset email")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the account exists, a reset link has been sent.",
	})
}

type resetPasswordRequest struct {
	Token    string `form:"token" json:"token" binding:"required"`
	Password string `form:"password" json:"password" binding:"required,min=8"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.api.ResetPassword(c.Request.Context(), apiclient.ResetPasswordInput{
		Token:    req.Token,
		Password: req.Password,
	}); err != nil {
		h.authFailure(c, err, "The reset link is invalid or has expired")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type verifyAccountRequest struct {
	Email string `form:"email" json:"email" binding:"required,email"`
	Code  string `form:"code" json:"code" binding:"required"`
}

func (h HandlerSet) VerifyAccount(c *gin.Context) {
	var req verifyAccountRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.api.VerifyAccount(c.Request.Context(), apiclient.VerifyAccountInput{
		Email: req.Email,
		Code:  req.Code,
	}); err != nil {
		h.authFailure(c, err, "The verification code is invalid")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h HandlerSet) Logout(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok && h.auth != nil {
		if err := h.auth.Logout(c.Request.Context(), sess.ID); err != nil {
			h.log.Error().Err(err).Str("session_id", sess.ID).Msg("logout failed")
		}
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, h.loginPath())
}

func (h HandlerSet) clientInfo(c *gin.Context) service.ClientInfo {
	return service.ClientInfo{
		DeviceID:  h.deviceID(c, ids.New),
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}

// authFailure maps a failed auth call. Backend rejections keep the backend's
// message and fall back to rejected when it sent none.
func (h HandlerSet) authFailure(c *gin.Context, err error, rejected string) {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		status := http.StatusUnprocessableEntity
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			status = http.StatusUnauthorized
		}
		message := apiErr.Message
		if message == "" {
			message = rejected
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("auth request failed")
	c.JSON(statusFor(err, http.StatusInternalServerError), gin.H{
		"error": store.WrapError(err).Message,
	})
}
