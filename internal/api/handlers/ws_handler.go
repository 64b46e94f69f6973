package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jianshanacademy/camp-portal/internal/events"
	"github.com/jianshanacademy/camp-portal/pkg/response"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WatchApplicationsHandler streams status-change events to the admin
// dashboard so the table updates without polling.
func WatchApplicationsHandler(hub *events.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "websocket upgrade failed: " + err.Error()})
			return
		}

		eventCh, cancel := hub.Subscribe()
		defer cancel()

		conn.SetReadLimit(4096)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		done := make(chan struct{})

		// Writer goroutine: events plus heartbeat pings.
		go func() {
			defer func() { _ = conn.Close() }()

			pingTicker := time.NewTicker(pingPeriod)
			defer pingTicker.Stop()

			for {
				select {
				case ev, ok := <-eventCh:
					if !ok {
						_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
						return
					}

					data, err := json.Marshal(ev)
					if err != nil {
						continue
					}

					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
						return
					}

				case <-pingTicker.C:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}

				case <-done:
					return
				}
			}
		}()

		// Reader loop keeps the pong handler fed and detects disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket error: %v", err)
				}
				break
			}
		}
		close(done)
	}
}
