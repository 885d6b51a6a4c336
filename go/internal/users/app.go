package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// invalidCredentials is deliberately identical for unknown users and wrong
// passwords.
const invalidCredentials = "Invalid username or password"

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	CreateUser(ctx context.Context, user models.User) (bool, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	HasAdmin(ctx context.Context) (bool, error)
	CountUsers(ctx context.Context) (int, error)
}

// App handles account business logic
type App struct {
	repo     UsersRepository
	hashCost int
}

// Option configures an App.
type Option func(*App)

// WithHashCost overrides the bcrypt cost used for new password hashes.
func WithHashCost(cost int) Option {
	return func(a *App) {
		a.hashCost = cost
	}
}

// NewApp creates a new users App
func NewApp(repo UsersRepository, opts ...Option) *App {
	a := &App{
		repo:     repo,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreateUser creates a new account with a hashed password. Usernames are
// unique.
func (a *App) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := a.validateCreateUserRequest(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), a.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	permissions := make([]string, 0, len(req.Permissions))
	for _, p := range req.Permissions {
		if p = strings.TrimSpace(p); p != "" {
			permissions = append(permissions, p)
		}
	}

	user := models.User{
		ID:          models.NewID(),
		Username:    req.Username,
		Password:    string(hash),
		Role:        role,
		Permissions: permissions,
	}

	created, err := a.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperrors.Newf(apperrors.CodeConflict, "User %s already exists", req.Username)
	}

	log.Info().
		Str("user_id", user.ID).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("Created user")
	return &user, nil
}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("User")
	}
	return user, nil
}

// Authenticate verifies a username and password pair.
func (a *App) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.New(apperrors.CodeUnauthorized, invalidCredentials)
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator when no account holds the
// admin role. Repeated calls are no-ops.
func (a *App) EnsureAdmin(ctx context.Context, username, password string) error {
	hasAdmin, err := a.repo.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if hasAdmin {
		return nil
	}

	_, err = a.CreateUser(ctx, CreateUserRequest{
		Username:    username,
		Password:    password,
		Role:        models.RoleAdmin,
		Permissions: []string{models.PermissionAll},
	})
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Warn().
		Str("username", username).
		Msg("Seeded default admin account, rotate its password")
	return nil
}

// validateCreateUserRequest validates create user request
func (a *App) validateCreateUserRequest(req CreateUserRequest) error {
	var missing []string
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return apperrors.MissingFields("ADD_USER", missing...)
	}
	if len(req.Password) > maxPasswordBytes {
		return apperrors.Newf(apperrors.CodeValidation, "Password cannot be longer than %d bytes", maxPasswordBytes)
	}
	if req.Role != "" && req.Role != models.RoleAdmin && req.Role != models.RoleUser {
		return apperrors.Newf(apperrors.CodeValidation, "Invalid role: %s", req.Role)
	}
	return nil
}
