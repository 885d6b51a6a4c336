package users

import (
	"context"
	"fmt"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
)

// Repository implements user data access over the users collection.
type Repository struct {
	users *storage.Collection[models.User]
}

// NewRepository creates a new users repository
func NewRepository(store *storage.Store) *Repository {
	return &Repository{
		users: storage.NewCollection[models.User](store, storage.Users),
	}
}

// CreateUser inserts a user unless the username is already taken. The check
// and the insert happen under one collection gate. It reports false on a
// username clash.
func (r *Repository) CreateUser(ctx context.Context, user models.User) (bool, error) {
	created := false
	err := r.users.Modify(ctx, func(records []models.User) ([]models.User, bool, error) {
		for _, u := range records {
			if u.Username == user.Username {
				return records, false, nil
			}
		}
		created = true
		return append(records, user), true, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, ok, err := r.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	found, err := r.users.FindBy(ctx, func(u models.User) bool { return u.Username == username })
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// HasAdmin reports whether any account holds the admin role.
func (r *Repository) HasAdmin(ctx context.Context) (bool, error) {
	admins, err := r.users.FindBy(ctx, func(u models.User) bool { return u.Role == models.RoleAdmin })
	if err != nil {
		return false, fmt.Errorf("failed to find admins: %w", err)
	}
	return len(admins) > 0, nil
}

// CountUsers returns the number of stored accounts.
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	n, err := r.users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
