package handlers

import (
	"log"
	"net/http"

	"wheelparty/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// фронтенд живет на другом домене
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Spectate подключает зрителя к живой трансляции событий матча
func (h *Handler) Spectate(c *gin.Context) {
	matchID := c.Param("id")
	if _, err := h.Matches.GetState(matchID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Spectate: апгрейд не удался матч=%s: %v", matchID, err)
		return
	}

	client := ws.NewClient(matchID, conn, h.Hub)
	go client.Run()
}
