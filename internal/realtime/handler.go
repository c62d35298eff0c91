package realtime

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Salsabil-210/comhabits/internal/auth"
	"github.com/Salsabil-210/comhabits/internal/config"
)

const (
	sendBuffer     = 32
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := config.Cfg.CorsAllowedOrigin
		return origin == "*" || origin == "" || r.Header.Get("Origin") == origin
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Connect upgrades the request. Browsers cannot set headers on websocket
// requests, so the token may come as ?token=.
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		tokenStr = auth.TokenFromRequest(r)
	}
	claims, err := auth.ValidateJWT(tokenStr)
	if err != nil {
		log.WithError(err).Warn("Websocket connection with invalid token")
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "invalid token")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.WriteError(w, http.StatusUnauthorized, config.CodeUnauthorized, "invalid token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	ch := make(chan Event, sendBuffer)
	h.hub.Register(userID, ch)
	log.WithField("user_id", userID).Info("Realtime connection opened")

	go writePump(conn, ch)
	readPump(conn)

	h.hub.Detach(userID, ch)
	log.WithField("user_id", userID).Info("Realtime connection closed")
}

func writePump(conn *websocket.Conn, ch <-chan Event) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames; it returns when the peer goes away.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
