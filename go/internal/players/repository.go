package players

import (
	"context"
	"fmt"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
)

// Repository implements player data access operations
type Repository struct {
	players *storage.Collection[models.Player]
}

// NewRepository creates a new players repository
func NewRepository(store *storage.Store) *Repository {
	return &Repository{
		players: storage.NewCollection[models.Player](store, storage.Players),
	}
}

// CreatePlayer stores a new player
func (r *Repository) CreatePlayer(ctx context.Context, player models.Player) (*models.Player, error) {
	created, err := r.players.Create(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return &created, nil
}

// GetPlayer retrieves a player by ID, or nil if absent
func (r *Repository) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	player, ok, err := r.players.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &player, nil
}

// ListPlayers returns players matching the filter; empty filter fields match
// everything.
func (r *Repository) ListPlayers(ctx context.Context, filter ListPlayersRequest) ([]models.Player, error) {
	players, err := r.players.FindBy(ctx, func(p models.Player) bool {
		if filter.Club != "" && p.Club != filter.Club {
			return false
		}
		if filter.NationalTeam != "" && p.NationalTeam != filter.NationalTeam {
			return false
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// UpdatePlayer applies patch to the stored player, or returns nil if absent
func (r *Repository) UpdatePlayer(ctx context.Context, id string, patch PlayerPatch) (*models.Player, error) {
	player, found, err := r.players.Patch(ctx, id, func(p *models.Player) error {
		patch.Apply(p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &player, nil
}

// DeletePlayer deletes a player by ID and reports whether it existed
func (r *Repository) DeletePlayer(ctx context.Context, id string) (bool, error) {
	removed, err := r.players.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete player: %w", err)
	}
	return removed, nil
}
