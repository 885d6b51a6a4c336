package leagues

import (
	"context"
	"fmt"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
)

// Repository implements league and league level data access operations
type Repository struct {
	leagues *storage.Collection[models.League]
	levels  *storage.Collection[models.LeagueLevel]
}

// NewRepository creates a new leagues repository
func NewRepository(store *storage.Store) *Repository {
	return &Repository{
		leagues: storage.NewCollection[models.League](store, storage.Leagues),
		levels:  storage.NewCollection[models.LeagueLevel](store, storage.LeagueLevels),
	}
}

// CreateLeague stores a new league
func (r *Repository) CreateLeague(ctx context.Context, league models.League) (*models.League, error) {
	created, err := r.leagues.Create(ctx, league)
	if err != nil {
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return &created, nil
}

// GetLeague retrieves a league by ID, or nil if absent
func (r *Repository) GetLeague(ctx context.Context, id string) (*models.League, error) {
	league, ok, err := r.leagues.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &league, nil
}

// ListLeagues returns every league
func (r *Repository) ListLeagues(ctx context.Context) ([]models.League, error) {
	leagues, err := r.leagues.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	return leagues, nil
}

// UpdateLeague applies patch to the stored league, or returns nil if absent
func (r *Repository) UpdateLeague(ctx context.Context, id string, patch LeaguePatch) (*models.League, error) {
	league, found, err := r.leagues.Patch(ctx, id, func(l *models.League) error {
		patch.Apply(l)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update league: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &league, nil
}

// DeleteLeague deletes a league by ID and reports whether it existed
func (r *Repository) DeleteLeague(ctx context.Context, id string) (bool, error) {
	removed, err := r.leagues.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete league: %w", err)
	}
	return removed, nil
}

// LinkLevel appends levelID to the league's level list if not present. A
// missing league is ignored.
func (r *Repository) LinkLevel(ctx context.Context, leagueID, levelID string) error {
	_, _, err := r.leagues.Patch(ctx, leagueID, func(l *models.League) error {
		for _, id := range l.LeagueLevels {
			if id == levelID {
				return nil
			}
		}
		l.LeagueLevels = append(l.LeagueLevels, levelID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to link level to league: %w", err)
	}
	return nil
}

// UnlinkLevel removes levelID from the league's level list. A missing league
// is ignored.
func (r *Repository) UnlinkLevel(ctx context.Context, leagueID, levelID string) error {
	_, _, err := r.leagues.Patch(ctx, leagueID, func(l *models.League) error {
		kept := make([]string, 0, len(l.LeagueLevels))
		for _, id := range l.LeagueLevels {
			if id != levelID {
				kept = append(kept, id)
			}
		}
		l.LeagueLevels = kept
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to unlink level from league: %w", err)
	}
	return nil
}

// CreateLevel stores a new level. Tiers are unique within a league; the check
// and insert share one collection gate. A level created without a tier keeps
// tier zero and is ordered by name.
func (r *Repository) CreateLevel(ctx context.Context, level models.LeagueLevel) (*models.LeagueLevel, error) {
	err := r.levels.Modify(ctx, func(records []models.LeagueLevel) ([]models.LeagueLevel, bool, error) {
		if level.Tier > 0 {
			for _, l := range records {
				if l.LeagueID == level.LeagueID && l.Tier == level.Tier {
					return nil, false, apperrors.Newf(apperrors.CodeConflict, "Tier %d already exists in this league", level.Tier)
				}
			}
		}
		return append(records, level), true, nil
	})
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create league level: %w", err)
	}
	return &level, nil
}

// GetLevel retrieves a level by ID, or nil if absent
func (r *Repository) GetLevel(ctx context.Context, id string) (*models.LeagueLevel, error) {
	level, ok, err := r.levels.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get league level: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &level, nil
}

// ListLevels returns the levels of one league, or all levels when leagueID is
// empty.
func (r *Repository) ListLevels(ctx context.Context, leagueID string) ([]models.LeagueLevel, error) {
	levels, err := r.levels.FindBy(ctx, func(l models.LeagueLevel) bool {
		return leagueID == "" || l.LeagueID == leagueID
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list league levels: %w", err)
	}
	return levels, nil
}

// PatchLevel applies a level patch, refusing a tier already used by
// another level of the same league.
func (r *Repository) PatchLevel(ctx context.Context, id string, patch LevelPatch) (*models.LeagueLevel, error) {
	var (
		result models.LeagueLevel
		found  bool
	)
	err := r.levels.Modify(ctx, func(records []models.LeagueLevel) ([]models.LeagueLevel, bool, error) {
		idx := -1
		for i := range records {
			if records[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return records, false, nil
		}
		found = true
		target := &records[idx]
		if patch.Tier != nil {
			for i, l := range records {
				if i != idx && l.LeagueID == target.LeagueID && l.Tier == *patch.Tier {
					return nil, false, apperrors.Newf(apperrors.CodeConflict, "Tier %d already exists in this league", *patch.Tier)
				}
			}
			target.Tier = *patch.Tier
		}
		if patch.Name != nil {
			target.Name = *patch.Name
		}
		result = *target
		return records, true, nil
	})
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update league level: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

// DeleteLevel deletes a level by ID and reports whether it existed
func (r *Repository) DeleteLevel(ctx context.Context, id string) (bool, error) {
	removed, err := r.levels.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete league level: %w", err)
	}
	return removed, nil
}

// ReplaceLevelClubs sets clubs[] of every listed level and clears its cached
// rankings, all in one write.
func (r *Repository) ReplaceLevelClubs(ctx context.Context, clubsByLevel map[string][]string) error {
	_, err := r.levels.UpdateBy(ctx,
		func(l models.LeagueLevel) bool { _, ok := clubsByLevel[l.ID]; return ok },
		func(l *models.LeagueLevel) {
			l.Clubs = append([]string{}, clubsByLevel[l.ID]...)
			l.Rankings = []models.Ranking{}
		},
	)
	if err != nil {
		return fmt.Errorf("failed to refresh level clubs: %w", err)
	}
	return nil
}

// SetRankings caches a computed table on the level. A missing level is
// ignored.
func (r *Repository) SetRankings(ctx context.Context, levelID string, rankings []models.Ranking) error {
	_, _, err := r.levels.Patch(ctx, levelID, func(l *models.LeagueLevel) error {
		l.Rankings = rankings
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache rankings: %w", err)
	}
	return nil
}

// AssignClubs makes clubIDs the club list of levelID and removes those clubs
// from every other level, clearing the cached rankings of each level touched.
// It returns nil when the level does not exist.
func (r *Repository) AssignClubs(ctx context.Context, levelID string, clubIDs []string) (*models.LeagueLevel, error) {
	var (
		result models.LeagueLevel
		found  bool
	)
	moving := make(map[string]bool, len(clubIDs))
	for _, id := range clubIDs {
		moving[id] = true
	}

	err := r.levels.Modify(ctx, func(records []models.LeagueLevel) ([]models.LeagueLevel, bool, error) {
		idx := -1
		for i := range records {
			if records[i].ID == levelID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return records, false, nil
		}
		found = true

		for i := range records {
			if i == idx {
				continue
			}
			kept, removed := without(records[i].Clubs, moving)
			if removed {
				records[i].Clubs = kept
				records[i].Rankings = []models.Ranking{}
			}
		}
		records[idx].Clubs = append([]string{}, clubIDs...)
		records[idx].Rankings = []models.Ranking{}
		result = records[idx]
		return records, true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign clubs to level: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

// MoveClub takes clubID off fromLevel's club list and adds it to toLevel's,
// clearing both cached tables. Either level may be empty or missing.
func (r *Repository) MoveClub(ctx context.Context, clubID, fromLevel, toLevel string) error {
	_, err := r.levels.UpdateBy(ctx,
		func(l models.LeagueLevel) bool { return l.ID != "" && (l.ID == fromLevel || l.ID == toLevel) },
		func(l *models.LeagueLevel) {
			l.Rankings = []models.Ranking{}
			if l.ID == toLevel {
				if !contains(l.Clubs, clubID) {
					l.Clubs = append(l.Clubs, clubID)
				}
				return
			}
			l.Clubs, _ = without(l.Clubs, map[string]bool{clubID: true})
		},
	)
	if err != nil {
		return fmt.Errorf("failed to move club between levels: %w", err)
	}
	return nil
}

// ClearRankings drops the cached tables of the given levels.
func (r *Repository) ClearRankings(ctx context.Context, levelIDs ...string) error {
	if len(levelIDs) == 0 {
		return nil
	}
	stale := make(map[string]bool, len(levelIDs))
	for _, id := range levelIDs {
		stale[id] = true
	}
	_, err := r.levels.UpdateBy(ctx,
		func(l models.LeagueLevel) bool { return stale[l.ID] },
		func(l *models.LeagueLevel) { l.Rankings = []models.Ranking{} },
	)
	if err != nil {
		return fmt.Errorf("failed to clear level rankings: %w", err)
	}
	return nil
}

func without(ids []string, drop map[string]bool) ([]string, bool) {
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kept, len(kept) != len(ids)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
