package handlers

import (
	"errors"
	"net/http"
	"strings"

	"wheelparty/internal/service"

	"github.com/gin-gonic/gin"
)

// Запрос спина: угол и сегмент возвращаются сразу, исход применится
// после паузы на анимацию. Повторный запрос во время полета - 409.
func (h *Handler) RequestSpin(c *gin.Context) {
	var req struct {
		RiggedFor string `json:"rigged_for"`
	}
	// тело опционально
	_ = c.BindJSON(&req)

	handle, err := h.Matches.RequestSpin(c.Param("id"), req.RiggedFor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		case errors.Is(err, service.ErrSpinInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "spin in flight"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, handle)
}

// Взведение подкрутки - только с токеном ведущего этого матча
func (h *Handler) ArmRig(c *gin.Context) {
	matchID := c.Param("id")
	if !h.authorizeHost(c, matchID) {
		return
	}

	var req struct {
		PlayerID string `json:"player_id"`
		Favored  []int  `json:"favored,omitempty"`
	}
	if err := c.BindJSON(&req); err != nil || req.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Matches.ArmRig(matchID, req.PlayerID, req.Favored); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Снятие подкрутки - только с токеном ведущего
func (h *Handler) DisarmRig(c *gin.Context) {
	matchID := c.Param("id")
	if !h.authorizeHost(c, matchID) {
		return
	}

	if err := h.Matches.DisarmRig(matchID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// проверяет Bearer-токен ведущего и что он выдан для этого матча
func (h *Handler) authorizeHost(c *gin.Context, matchID string) bool {
	auth := c.GetHeader("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == "" || token == auth {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "host token required"})
		return false
	}

	tokenMatch, err := service.ParseHostToken(token)
	if err != nil || tokenMatch != matchID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid host token"})
		return false
	}
	return true
}
