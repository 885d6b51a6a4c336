package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler serves the command protocol over WebSocket. Each text or
// binary message carries one request and is answered with one text message.
type WebSocketHandler struct {
	dispatcher  Dispatcher
	config      ConnectionConfig
	connections *ConnectionManager
	upgrader    websocket.Upgrader
	baseCtx     context.Context
}

// NewWebSocketHandler creates a new WebSocket handler. ctx bounds the
// lifetime of every connection it accepts.
func NewWebSocketHandler(ctx context.Context, d Dispatcher, config ConnectionConfig, cm *ConnectionManager) *WebSocketHandler {
	config = config.withDefaults()
	if cm == nil {
		cm = NewConnectionManager()
	}
	return &WebSocketHandler{
		dispatcher:  d,
		config:      config,
		connections: cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		baseCtx: ctx,
	}
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}

// HandleConnectionStats returns statistics about live connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connections.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// HandleConnection upgrades the request and serves it until the client
// leaves or the handler context ends.
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Str("remote_addr", r.RemoteAddr).Msg("failed to upgrade WebSocket connection")
		return
	}

	c := &connection{
		ID:          uuid.New().String(),
		Transport:   TransportWebSocket,
		RemoteAddr:  r.RemoteAddr,
		ConnectedAt: time.Now(),
		closer:      conn,
	}
	h.connections.register(c)
	defer func() {
		_ = conn.Close()
		h.connections.unregister(c)
	}()

	ctx, cancel := context.WithCancel(h.baseCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	logger := log.With().
		Str("conn_id", c.ID).
		Str("remote_addr", c.RemoteAddr).
		Logger()
	ctx = logger.WithContext(ctx)

	// frames above the limit fail the read and close the connection
	conn.SetReadLimit(int64(h.config.MaxMessageSize))
	h.extendDeadline(conn)
	conn.SetPongHandler(func(string) error {
		h.extendDeadline(conn)
		return nil
	})
	go h.pingLoop(ctx, conn)

	for {
		msgType, message, err := conn.ReadMessage()
		if err != nil {
			switch {
			case errors.Is(err, websocket.ErrReadLimit):
				logger.Warn().Int("max_bytes", h.config.MaxMessageSize).Msg("WebSocket message too large")
			case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure):
				logger.Warn().Err(err).Msg("unexpected WebSocket close")
			}
			return
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		h.extendDeadline(conn)

		out := handleFrame(ctx, h.dispatcher, message)
		_ = conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			logger.Warn().Err(err).Msg("failed to write WebSocket response")
			return
		}
	}
}

func (h *WebSocketHandler) extendDeadline(conn *websocket.Conn) {
	if h.config.IdleTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(h.config.IdleTimeout))
	}
}

// pingLoop keeps the connection alive. WriteControl may run concurrently
// with the handler's writes.
func (h *WebSocketHandler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(h.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(h.config.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
