package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quanganh208/hotel-management-front-end-sub002/internal/middleware"
	"github.com/quanganh208/hotel-management-front-end-sub002/internal/repository"
)

type sessionResponse struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"deviceId"`
	IPAddress  string    `json:"ipAddress"`
	UserAgent  string    `json:"userAgent"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	Current    bool      `json:"current"`
}

func (h HandlerSet) ListSessions(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok || h.auth == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessions, err := h.auth.Sessions(c.Request.Context(), sess.UserID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", sess.UserID).Msg("list sessions failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load sessions"})
		return
	}

	resp := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, sessionResponse{
			ID:         s.ID,
			DeviceID:   s.DeviceID,
			IPAddress:  s.IPAddress,
			UserAgent:  s.UserAgent,
			CreatedAt:  s.CreatedAt,
			LastSeenAt: s.LastSeenAt,
			ExpiresAt:  s.ExpiresAt,
			Current:    s.ID == sess.ID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     "sessions",
		"viewer":   viewerOf(c),
		"sessions": resp,
	})
}

func (h HandlerSet) RevokeSession(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok || h.auth == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	deviceID := c.Param("deviceId")
	if currentDevice, err := c.Cookie(deviceCookie); err == nil && currentDevice == deviceID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Use sign out to end the current session"})
		return
	}

	if err := h.auth.RevokeDevice(c.Request.Context(), sess.UserID, deviceID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		h.log.Error().Err(err).Str("device_id", deviceID).Msg("revoke session failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to revoke session"})
		return
	}

	c.Status(http.StatusNoContent)
}
