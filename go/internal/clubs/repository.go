package clubs

import (
	"context"
	"fmt"

	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
)

// Repository implements club data access operations
type Repository struct {
	clubs *storage.Collection[models.Club]
}

// NewRepository creates a new clubs repository
func NewRepository(store *storage.Store) *Repository {
	return &Repository{
		clubs: storage.NewCollection[models.Club](store, storage.Clubs),
	}
}

// CreateClub stores a new club
func (r *Repository) CreateClub(ctx context.Context, club models.Club) (*models.Club, error) {
	created, err := r.clubs.Create(ctx, club)
	if err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return &created, nil
}

// GetClub retrieves a club by ID, or nil if absent
func (r *Repository) GetClub(ctx context.Context, id string) (*models.Club, error) {
	club, ok, err := r.clubs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &club, nil
}

// ListClubs returns clubs matching the filter in insertion order
func (r *Repository) ListClubs(ctx context.Context, filter ListClubsRequest) ([]models.Club, error) {
	clubs, err := r.clubs.FindBy(ctx, func(c models.Club) bool {
		if filter.League != "" && c.League != filter.League {
			return false
		}
		if filter.LeagueLevel != "" && c.LeagueLevel != filter.LeagueLevel {
			return false
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// UpdateClub applies patch to the stored club and also returns the level the
// club was in before. It returns nil if the club is absent.
func (r *Repository) UpdateClub(ctx context.Context, id string, patch ClubPatch) (*models.Club, string, error) {
	var previousLevel string
	club, found, err := r.clubs.Patch(ctx, id, func(c *models.Club) error {
		previousLevel = c.LeagueLevel
		patch.Apply(c)
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to update club: %w", err)
	}
	if !found {
		return nil, "", nil
	}
	return &club, previousLevel, nil
}

// DeleteClub deletes a club by ID and reports whether it existed
func (r *Repository) DeleteClub(ctx context.Context, id string) (bool, error) {
	removed, err := r.clubs.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete club: %w", err)
	}
	return removed, nil
}

// AssignLevel points every listed club at levelID in one write. Unknown ids
// are skipped; the number of clubs changed is returned.
func (r *Repository) AssignLevel(ctx context.Context, clubIDs []string, levelID string) (int, error) {
	wanted := make(map[string]bool, len(clubIDs))
	for _, id := range clubIDs {
		wanted[id] = true
	}
	n, err := r.clubs.UpdateBy(ctx,
		func(c models.Club) bool { return wanted[c.ID] },
		func(c *models.Club) { c.LeagueLevel = levelID },
	)
	if err != nil {
		return 0, fmt.Errorf("failed to assign clubs to level: %w", err)
	}
	return n, nil
}

// MoveClubs applies a club id to level id mapping in one write.
func (r *Repository) MoveClubs(ctx context.Context, moves map[string]string) (int, error) {
	if len(moves) == 0 {
		return 0, nil
	}
	n, err := r.clubs.UpdateBy(ctx,
		func(c models.Club) bool { _, ok := moves[c.ID]; return ok },
		func(c *models.Club) { c.LeagueLevel = moves[c.ID] },
	)
	if err != nil {
		return 0, fmt.Errorf("failed to move clubs: %w", err)
	}
	return n, nil
}

// RecordResult adds a league result to both clubs' stats in one write and
// returns the levels of the clubs it changed. A club that no longer exists is
// skipped.
func (r *Repository) RecordResult(ctx context.Context, homeID, awayID string, homeGoals, awayGoals int) ([]string, error) {
	var levels []string
	_, err := r.clubs.UpdateBy(ctx,
		func(c models.Club) bool { return c.ID == homeID || c.ID == awayID },
		func(c *models.Club) {
			if c.ID == homeID {
				c.Stats.Record(homeGoals, awayGoals)
			} else {
				c.Stats.Record(awayGoals, homeGoals)
			}
			levels = append(levels, c.LeagueLevel)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}
	return levels, nil
}
