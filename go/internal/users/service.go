package users

import (
	"context"

	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// UsersApp defines what the service layer needs from the users application
type UsersApp interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
}

// Service exposes account management commands.
type Service struct {
	app UsersApp
}

// NewService creates a new users command service
func NewService(app UsersApp) *Service {
	return &Service{
		app: app,
	}
}

var _ command.Registrar = (*Service)(nil)

// Register binds the account commands.
func (s *Service) Register(r *command.Router) {
	r.Handle("ADD_USER", s.AddUser)
}

// AddUser creates an account. The response never carries the password hash.
func (s *Service) AddUser(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req CreateUserRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}

	user, err := s.app.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("User added successfully", user.Info()), nil
}
