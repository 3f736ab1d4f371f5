package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/avatar"
)

type captchaRequest struct {
	Token string `json:"token"`
}

// VerifyCaptcha proxies a captcha token to the provider. Only the verdict is
// returned; provider failures collapse into one generic error.
func (h HandlerSet) VerifyCaptcha(c *gin.Context) {
	var req captchaRequest
	_ = c.ShouldBindJSON(&req)
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "captcha token is required",
		})
		return
	}

	if h.captcha == nil {
		h.log.Error().Msg("captcha verifier not configured")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "captcha verification failed",
		})
		return
	}

	ok, err := h.captcha.Verify(c.Request.Context(), req.Token, c.ClientIP())
	if err != nil {
		h.log.Warn().Err(err).Msg("captcha verification failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "captcha verification failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": ok})
}

func (h HandlerSet) Avatar(c *gin.Context) {
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		size = avatar.DefaultSize
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", avatar.Render(c.Query("name"), size))
}
