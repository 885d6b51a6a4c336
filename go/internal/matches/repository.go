package matches

import (
	"context"
	"fmt"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
)

// Repository implements match data access operations
type Repository struct {
	matches *storage.Collection[models.Match]
}

// NewRepository creates a new matches repository
func NewRepository(store *storage.Store) *Repository {
	return &Repository{
		matches: storage.NewCollection[models.Match](store, storage.Matches),
	}
}

// CreateMatch stores a new match
func (r *Repository) CreateMatch(ctx context.Context, match models.Match) (*models.Match, error) {
	created, err := r.matches.Create(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return &created, nil
}

// GetMatch retrieves a match by ID, or nil if absent
func (r *Repository) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	match, ok, err := r.matches.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &match, nil
}

// ListMatches returns matches matching the filter
func (r *Repository) ListMatches(ctx context.Context, filter ListMatchesRequest) ([]models.Match, error) {
	matches, err := r.matches.FindBy(ctx, func(m models.Match) bool {
		if filter.Team != "" && m.HomeTeam != filter.Team && m.AwayTeam != filter.Team {
			return false
		}
		if filter.Status != "" && m.Status != filter.Status {
			return false
		}
		if filter.MatchType != "" && m.MatchType != filter.MatchType {
			return false
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// UpdateMatch runs mutate against the stored match in one read-modify-write.
// It returns nil when the match does not exist; an error from mutate aborts
// the write and is returned unwrapped.
func (r *Repository) UpdateMatch(ctx context.Context, id string, mutate func(*models.Match) error) (*models.Match, error) {
	var mutateErr error
	match, found, err := r.matches.Patch(ctx, id, func(m *models.Match) error {
		mutateErr = mutate(m)
		return mutateErr
	})
	if mutateErr != nil {
		return nil, mutateErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &match, nil
}

// DeleteMatch deletes a match by ID and reports whether it existed
func (r *Repository) DeleteMatch(ctx context.Context, id string) (bool, error) {
	removed, err := r.matches.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete match: %w", err)
	}
	return removed, nil
}
