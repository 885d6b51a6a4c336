package gateway

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Transports a connection can arrive on.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// connection is one live client.
type connection struct {
	ID          string
	Transport   string
	RemoteAddr  string
	ConnectedAt time.Time
	closer      io.Closer
}

// ConnectionManager tracks live connections across transports
type ConnectionManager struct {
	mu    sync.RWMutex
	conns map[string]*connection
}

// NewConnectionManager creates an empty connection manager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		conns: make(map[string]*connection),
	}
}

func (cm *ConnectionManager) register(c *connection) {
	cm.mu.Lock()
	cm.conns[c.ID] = c
	total := len(cm.conns)
	cm.mu.Unlock()

	log.Info().
		Str("conn_id", c.ID).
		Str("transport", c.Transport).
		Str("remote_addr", c.RemoteAddr).
		Int("total_connections", total).
		Msg("connection opened")
}

func (cm *ConnectionManager) unregister(c *connection) {
	cm.mu.Lock()
	_, ok := cm.conns[c.ID]
	delete(cm.conns, c.ID)
	cm.mu.Unlock()

	if ok {
		log.Info().
			Str("conn_id", c.ID).
			Str("transport", c.Transport).
			Dur("duration", time.Since(c.ConnectedAt)).
			Msg("connection closed")
	}
}

// Count returns the number of live connections.
func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.conns)
}

// Stats returns live connection counts per transport.
func (cm *ConnectionManager) Stats() map[string]int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	stats := map[string]int{
		"total_connections": len(cm.conns),
		TransportTCP:        0,
		TransportWebSocket:  0,
	}
	for _, c := range cm.conns {
		stats[c.Transport]++
	}
	return stats
}

// CloseAll closes every live connection. Handlers observe the closed
// transport and unregister themselves.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.RLock()
	closers := make([]io.Closer, 0, len(cm.conns))
	for _, c := range cm.conns {
		closers = append(closers, c.closer)
	}
	cm.mu.RUnlock()

	for _, c := range closers {
		_ = c.Close()
	}
}
