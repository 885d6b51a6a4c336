package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mcdev12/leaguekeeper/go/internal/auth"
	"github.com/mcdev12/leaguekeeper/go/internal/config"
	"github.com/mcdev12/leaguekeeper/go/internal/gateway"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
)

func connectionConfig(cfg config.ServerConfig) gateway.ConnectionConfig {
	cc := gateway.DefaultConnectionConfig()
	cc.MaxMessageSize = cfg.MaxMessageSize
	cc.MaxConnections = cfg.MaxConnections
	cc.IdleTimeout = cfg.IdleTimeout
	if cfg.WriteTimeout > 0 {
		cc.WriteTimeout = cfg.WriteTimeout
	}
	return cc
}

// run serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	store, err := storage.Open(cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	log.Info().Str("dir", store.Dir()).Msg("storage ready")

	clock := clockwork.NewRealClock()
	sessions := auth.NewManager(clock, cfg.Session.Timeout)
	publisher := setupPublisher(ctx, cfg.NATS)
	defer publisher.Close()

	services := setupServices(store, sessions, publisher, clock)
	if err := services.Users.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	go sessions.RunSweeper(ctx, cfg.Session.SweepInterval)

	cm := gateway.NewConnectionManager()
	connCfg := connectionConfig(cfg.Server)

	errCh := make(chan error, 2)
	if cfg.Server.WSAddr != "" {
		ws := gateway.NewWebSocketHandler(ctx, services.Router, connCfg, cm)
		httpServer := setupHTTPServer(cfg.Server.WSAddr, ws, cm)
		go func() {
			log.Info().Str("addr", httpServer.Addr).Msg("HTTP server starting")
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("HTTP server failed: %w", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("HTTP server shutdown failed")
			}
		}()
	}

	tcp := gateway.NewServer(services.Router, connCfg, cm)
	go func() {
		errCh <- tcp.ListenAndServe(ctx, cfg.Server.Addr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		// the TCP server closes its connections once ctx is done
		if err := <-errCh; err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}

func setupHTTPServer(addr string, ws *gateway.WebSocketHandler, cm *gateway.ConnectionManager) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	ws.RegisterRoutes(mux)
	setupHealthCheck(mux)
	setupInfo(mux, cm)

	return &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(c.Handler(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}

func setupInfo(mux *http.ServeMux, cm *gateway.ConnectionManager) {
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		info := map[string]any{
			"service":     "leagued",
			"connections": cm.Count(),
		}
		if err := json.NewEncoder(w).Encode(info); err != nil {
			log.Error().Err(err).Msg("failed to write info response")
		}
	})
}
