package nationalteams

import (
	"context"
	"fmt"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
)

// Repository implements national team data access operations
type Repository struct {
	teams *storage.Collection[models.NationalTeam]
}

// NewRepository creates a new national teams repository
func NewRepository(store *storage.Store) *Repository {
	return &Repository{
		teams: storage.NewCollection[models.NationalTeam](store, storage.NationalTeams),
	}
}

// CreateNationalTeam stores a new national team
func (r *Repository) CreateNationalTeam(ctx context.Context, team models.NationalTeam) (*models.NationalTeam, error) {
	created, err := r.teams.Create(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("failed to create national team: %w", err)
	}
	return &created, nil
}

// GetNationalTeam retrieves a national team by ID, or nil if absent
func (r *Repository) GetNationalTeam(ctx context.Context, id string) (*models.NationalTeam, error) {
	team, ok, err := r.teams.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get national team: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &team, nil
}

// ListNationalTeams returns every national team
func (r *Repository) ListNationalTeams(ctx context.Context) ([]models.NationalTeam, error) {
	teams, err := r.teams.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list national teams: %w", err)
	}
	return teams, nil
}

// UpdateNationalTeam applies patch to the stored team, or returns nil if absent
func (r *Repository) UpdateNationalTeam(ctx context.Context, id string, patch NationalTeamPatch) (*models.NationalTeam, error) {
	team, found, err := r.teams.Patch(ctx, id, func(t *models.NationalTeam) error {
		patch.Apply(t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update national team: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &team, nil
}

// DeleteNationalTeam deletes a national team by ID and reports whether it existed
func (r *Repository) DeleteNationalTeam(ctx context.Context, id string) (bool, error) {
	removed, err := r.teams.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete national team: %w", err)
	}
	return removed, nil
}
