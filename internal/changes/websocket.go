package changes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Message is the text frame sent to browsers on every signal.
const Message = "changed"

const writeWait = 5 * time.Second

// Handler streams change signals to websocket clients.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewHandler accepts connections from allowedOrigin, or from any origin
// when allowedOrigin is empty.
func NewHandler(hub *Hub, allowedOrigin string) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Stream godoc
// @Summary Subscribe to change signals
// @Description Upgrades to a websocket that receives the text frame "changed" after every write.
// @Tags Changes
// @Router /changes/ws [get]
func (h *Handler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("Could not open websocket connection")
		return
	}
	defer conn.Close()

	// A burst of writes collapses into one pending frame.
	signals := make(chan struct{}, 1)
	unsubscribe := h.hub.Subscribe(func() {
		select {
		case signals <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case <-signals:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(Message)); err != nil {
				return
			}
		}
	}
}
