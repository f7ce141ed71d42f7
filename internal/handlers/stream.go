package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/townhub-dev/townhub/db"
	"github.com/townhub-dev/townhub/internal/notifications"
	"github.com/townhub-dev/townhub/internal/types"
	"github.com/townhub-dev/townhub/internal/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// NotificationStream upgrades the connection and keeps one notification
// channel alive until the client goes away. Each open connection pulls
// independently; delivery records in the store keep two tabs of the same
// user from repeating event notifications, up to a benign race between
// simultaneous ticks.
func NotificationStream(c *gin.Context) {
	currentUser, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	connID := uuid.NewString()

	streamCtx, cancel := context.WithCancel(c.Request.Context())

	defer func() {
		cancel()
		conn.Close()
		log.Printf("Notification stream %s closed for user %d", connID, currentUser.ID)
	}()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	// The channel goroutine and the ping ticker share the connection.
	var writeMu sync.Mutex

	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}

		return conn.WriteJSON(v)
	}

	// Readiness frame before any data frames.
	err = writeJSON(map[string]string{
		"type":    "connected",
		"message": "Notification stream established",
	})

	if err != nil {
		log.Printf("Failed to send readiness frame on stream %s: %v", connID, err)
		return
	}

	service := notifications.NewService(db.DB)

	channel := notifications.NewChannel(currentUser.ID, types.StreamInterval, service, service, func(payload types.StreamPayload) error {
		return writeJSON(payload)
	})

	go channel.Run(streamCtx)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-streamCtx.Done():
				return
			case <-ticker.C:
				writeMu.Lock()
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					writeMu.Unlock()
					log.Printf("Failed to set write deadline on stream %s: %v", connID, err)
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					writeMu.Unlock()
					log.Printf("Ping failed on stream %s: %v", connID, err)
					return
				}
				writeMu.Unlock()
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline on stream %s: %v", connID, err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Stream %s error for user %d: %v", connID, currentUser.ID, err)
			}
			break
		}
	}
}
