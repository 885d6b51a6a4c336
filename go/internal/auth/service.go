package auth

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// Authenticator verifies credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// LoginRequest is the payload of LOGIN.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful LOGIN.
type LoginResponse struct {
	SessionID string          `json:"session_id"`
	User      models.UserInfo `json:"user"`
}

// Service exposes the session commands.
type Service struct {
	users    Authenticator
	sessions *Manager
}

// NewService creates the session command service.
func NewService(users Authenticator, sessions *Manager) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
	}
}

var _ command.Registrar = (*Service)(nil)

// Register binds the session commands.
func (s *Service) Register(r *command.Router) {
	r.HandlePublic("LOGIN", s.Login)
	r.HandlePublic("PING", s.Ping)
	r.Handle("LOGOUT", s.Logout)
	r.Handle("GET_USER_INFO", s.GetUserInfo)
}

// Login checks credentials and opens a session.
func (s *Service) Login(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req LoginRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	req.Username = strings.TrimSpace(req.Username)

	var missing []string
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields(call.Command, missing...)
	}

	user, err := s.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeUnauthorized {
			log.Warn().Str("username", req.Username).Msg("Failed login attempt")
		}
		return nil, err
	}

	session := s.sessions.Create(*user)
	log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Msg("User logged in")

	return &command.Result{
		Message: "Login successful",
		Data: LoginResponse{
			SessionID: session.ID,
			User:      user.Info(),
		},
		SessionID: session.ID,
	}, nil
}

// Logout ends the caller's session.
func (s *Service) Logout(_ context.Context, call *command.Call) (*command.Result, error) {
	s.sessions.Logout(call.SessionID)
	log.Info().Str("username", call.User.Username).Msg("User logged out")
	return command.OK("Logout successful", nil), nil
}

// Ping answers liveness probes without a session.
func (s *Service) Ping(context.Context, *command.Call) (*command.Result, error) {
	return command.OK("Pong", map[string]any{
		"server_time": s.sessions.clock.Now().UTC(),
	}), nil
}

// GetUserInfo returns the caller's account without its password hash.
func (s *Service) GetUserInfo(_ context.Context, call *command.Call) (*command.Result, error) {
	return command.OK("User info retrieved", call.User.Info()), nil
}
