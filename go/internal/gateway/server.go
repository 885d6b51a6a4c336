package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/netutil"
)

// Server accepts TCP clients and serves newline-delimited JSON requests, one
// goroutine per connection. Requests on one connection are handled strictly
// in order.
type Server struct {
	dispatcher  Dispatcher
	config      ConnectionConfig
	connections *ConnectionManager

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer creates a TCP server dispatching to d
func NewServer(d Dispatcher, config ConnectionConfig, cm *ConnectionManager) *Server {
	if cm == nil {
		cm = NewConnectionManager()
	}
	return &Server{
		dispatcher:  d,
		config:      config.withDefaults(),
		connections: cm,
	}
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then closes every
// open connection and waits for the handlers to return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.config.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.config.MaxConnections)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	log.Info().
		Str("addr", ln.Addr().String()).
		Int("max_connections", s.config.MaxConnections).
		Msg("TCP server listening")

	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()

	var acceptErr error
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
				acceptErr = fmt.Errorf("failed to accept connection: %w", err)
			}
			break
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}

	s.connections.CloseAll()
	s.wg.Wait()
	log.Info().Msg("TCP server stopped")
	return acceptErr
}

// Addr returns the bound address once Serve has started.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	c := &connection{
		ID:          uuid.New().String(),
		Transport:   TransportTCP,
		RemoteAddr:  conn.RemoteAddr().String(),
		ConnectedAt: time.Now(),
		closer:      conn,
	}
	s.connections.register(c)
	defer func() {
		_ = conn.Close()
		s.connections.unregister(c)
	}()

	logger := log.With().
		Str("conn_id", c.ID).
		Str("remote_addr", c.RemoteAddr).
		Logger()
	ctx = logger.WithContext(ctx)

	frames := NewFrameReader(conn, s.config.MaxMessageSize)
	for {
		if s.config.IdleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))
		}

		frame, err := frames.ReadFrame()
		var out []byte
		switch {
		case err == nil:
			out = handleFrame(ctx, s.dispatcher, frame)
		case errors.Is(err, ErrFrameTooLarge):
			out = oversizeResponse(&logger, s.config.MaxMessageSize)
		default:
			logClosed(&logger, err)
			return
		}

		if err := s.write(conn, out); err != nil {
			logger.Warn().Err(err).Msg("failed to write response")
			return
		}
	}
}

func (s *Server) write(conn net.Conn, doc []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	_, err := conn.Write(encodeFrame(doc))
	return err
}

func logClosed(logger *zerolog.Logger, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
		logger.Debug().Msg("client disconnected")
	case errors.As(err, &netErr) && netErr.Timeout():
		logger.Info().Msg("idle connection timed out")
	default:
		logger.Warn().Err(err).Msg("connection read failed")
	}
}
