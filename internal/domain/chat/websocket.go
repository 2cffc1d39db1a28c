package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	wsWriteWait  = 10 * time.Second
	wsMaxMessage = 256 << 10
)

// WSHandler serves the chat widget over a websocket. Every inbound frame
// carries the whole conversation and is answered with delta frames and a
// closing done or error frame.
type WSHandler struct {
	service  *Service
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates the websocket handler. An empty allowedOrigins list
// accepts any origin.
func NewWSHandler(service *Service, log *zap.Logger, allowedOrigins []string) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WSHandler{
		service: service,
		log:     log.Named("chat.ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// wsConn serializes writes; gorilla connections allow one concurrent writer.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.conn.WriteJSON(v)
}

func (w *wsConn) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
}

// HandleWebSocket handles GET /api/v1/chat/ws
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	ws := &wsConn{conn: conn}

	done := make(chan struct{})
	defer func() {
		close(done)
		_ = conn.Close()
	}()

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	go h.pingLoop(ws, done)
	h.readLoop(c, ws)
}

func (h *WSHandler) pingLoop(ws *wsConn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := ws.ping(); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) readLoop(c *gin.Context, ws *wsConn) {
	for {
		_, raw, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Info("websocket closed", zap.Error(err))
			}
			return
		}

		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			if ws.writeJSON(NewErrorEvent("INVALID_JSON", "Failed to parse message")) != nil {
				return
			}
			continue
		}

		err = h.service.Reply(c.Request.Context(), req.Messages, func(delta string) error {
			return ws.writeJSON(NewDeltaEvent(delta))
		})

		var event *WSServerMessage
		switch {
		case err == nil:
			event = NewDoneEvent()
		case errors.Is(err, ErrEmptyConversation):
			event = NewErrorEvent("EMPTY_CONVERSATION", "No messages to send")
		default:
			h.log.Warn("websocket chat reply failed", zap.Error(err))
			event = NewErrorEvent("COMPLETION_FAILED", "Failed to process request")
		}
		if ws.writeJSON(event) != nil {
			return
		}
		_ = ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	}
}
