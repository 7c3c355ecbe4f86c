package handlers

import (
	"time"

	"wheelparty/internal/http/middleware"
	"wheelparty/internal/service"
	"wheelparty/internal/ws"

	"github.com/gin-gonic/gin"
)

// Handler связывает HTTP-маршруты с сервисами
type Handler struct {
	Matches *service.MatchService
	Roster  *service.RosterService
	Hub     *ws.Hub
}

func NewHandler(matches *service.MatchService, roster *service.RosterService, hub *ws.Hub) *Handler {
	return &Handler{
		Matches: matches,
		Roster:  roster,
		Hub:     hub,
	}
}

// RegisterRoutes вешает все маршруты приложения
func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	api.Use(middleware.RateLimit(60, time.Minute))
	{
		api.POST("/match", h.CreateMatch)
		api.GET("/match/:id", h.GetMatch)
		api.POST("/match/:id/players", h.AddPlayer)
		api.DELETE("/match/:id/players/:pid", h.RemovePlayer)
		api.POST("/match/:id/start", h.StartMatch)
		api.POST("/match/:id/spin", h.RequestSpin)
		api.POST("/match/:id/reset", h.ResetMatch)
		api.GET("/match/:id/rankings", h.Rankings)
		api.GET("/match/:id/segments", h.Segments)
		api.GET("/names", h.SuggestedNames)

		// только для ведущего
		api.POST("/match/:id/rig", h.ArmRig)
		api.DELETE("/match/:id/rig", h.DisarmRig)
	}

	r.GET("/ws/match/:id", h.Spectate)
}
