package ws

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second
)

// Client - подключение одного зрителя
type Client struct {
	MatchID string
	Conn    *websocket.Conn
	Send    chan []byte

	hub  *Hub
	done chan struct{}
}

func NewClient(matchID string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		MatchID: matchID,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		hub:     hub,
		done:    make(chan struct{}),
	}
}

// Run подписывает клиента и запускает его циклы чтения и записи.
// Возвращается после разрыва соединения.
func (c *Client) Run() {
	c.hub.Subscribe(c.MatchID, c)
	go c.writePump()
	c.readPump()
}

// читает входящие только чтобы держать соединение и поймать разрыв -
// зрители ничего не присылают
func (c *Client) readPump() {
	defer func() {
		c.hub.Unsubscribe(c.MatchID, c)
		// Send не закрываем - hub может дописывать; writePump
		// останавливается по done
		close(c.done)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Client.readPump: разрыв соединения матч=%s: %v", c.MatchID, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case data := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
