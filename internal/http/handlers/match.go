package handlers

import (
	"errors"
	"net/http"

	"wheelparty/internal/game"
	"wheelparty/internal/service"

	"github.com/gin-gonic/gin"
)

// Создание матча: возвращает ID и токен ведущего
func (h *Handler) CreateMatch(c *gin.Context) {
	var req struct {
		Mode        string `json:"mode"`
		TargetScore int    `json:"target_score"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	mode := game.Mode(req.Mode)
	if mode == "" {
		mode = game.ModeNormal
	}
	if mode == game.ModeNormal && req.TargetScore <= 0 {
		req.TargetScore = 500
	}

	matchID, hostToken, err := h.Matches.CreateMatch(mode, req.TargetScore)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"match_id":   matchID,
		"host_token": hostToken,
		"segments":   game.SegmentsForMode(mode),
	})
}

// Состояние матча
func (h *Handler) GetMatch(c *gin.Context) {
	state, err := h.Matches.GetState(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// Добавление игрока (только в фазе настройки)
func (h *Handler) AddPlayer(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	p, err := h.Matches.AddPlayer(c.Param("id"), req.Name)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrMatchNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	// имя запоминаем для будущих подсказок
	h.Roster.RememberName(c.Request.Context(), p.Name)

	c.JSON(http.StatusOK, gin.H{"player": p})
}

// Удаление игрока (только в фазе настройки)
func (h *Handler) RemovePlayer(c *gin.Context) {
	if err := h.Matches.RemovePlayer(c.Param("id"), c.Param("pid")); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrMatchNotFound) || errors.Is(err, game.ErrPlayerNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Старт матча
func (h *Handler) StartMatch(c *gin.Context) {
	matchID := c.Param("id")
	if err := h.Matches.StartMatch(matchID); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, service.ErrMatchNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	state, _ := h.Matches.GetState(matchID)
	c.JSON(http.StatusOK, state)
}

// Сброс матча: отменяет незавершенный спин, возвращает в настройку
func (h *Handler) ResetMatch(c *gin.Context) {
	if err := h.Matches.ResetMatch(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Финальная таблица мест
func (h *Handler) Rankings(c *gin.Context) {
	rankings, err := h.Matches.Rankings(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rankings": rankings})
}

// Конфигурация колеса матча
func (h *Handler) Segments(c *gin.Context) {
	segments, err := h.Matches.Segments(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": segments})
}

// Подсказки имен для набора состава
func (h *Handler) SuggestedNames(c *gin.Context) {
	names := h.Roster.SuggestedNames(c.Request.Context(), 12)
	c.JSON(http.StatusOK, gin.H{"names": names})
}
