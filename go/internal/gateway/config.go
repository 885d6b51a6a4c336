package gateway

import (
	"net/http"
	"time"
)

// DefaultMaxMessageSize bounds one request frame.
const DefaultMaxMessageSize = 1 << 20

// ConnectionConfig holds settings shared by the TCP and WebSocket listeners
type ConnectionConfig struct {
	// MaxMessageSize is the largest accepted frame in bytes, delimiter excluded.
	MaxMessageSize int
	// MaxConnections caps concurrent TCP connections; zero means no cap.
	MaxConnections int
	// IdleTimeout closes a connection that sends nothing for this long; zero
	// disables it.
	IdleTimeout  time.Duration
	WriteTimeout time.Duration

	PingInterval    time.Duration
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default connection settings
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxMessageSize:  DefaultMaxMessageSize,
		MaxConnections:  0,
		IdleTimeout:     0,
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

func (c ConnectionConfig) withDefaults() ConnectionConfig {
	d := DefaultConnectionConfig()
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	return c
}
