package clubs

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// ClubsRepository defines what the app layer needs from the repository
type ClubsRepository interface {
	CreateClub(ctx context.Context, club models.Club) (*models.Club, error)
	GetClub(ctx context.Context, id string) (*models.Club, error)
	ListClubs(ctx context.Context, filter ListClubsRequest) ([]models.Club, error)
	UpdateClub(ctx context.Context, id string, patch ClubPatch) (*models.Club, string, error)
	DeleteClub(ctx context.Context, id string) (bool, error)
	RecordResult(ctx context.Context, homeID, awayID string, homeGoals, awayGoals int) ([]string, error)
}

// LevelSync keeps league level club lists and cached tables in step with
// club changes.
type LevelSync interface {
	MoveClub(ctx context.Context, clubID, fromLevel, toLevel string) error
	ClearRankings(ctx context.Context, levelIDs ...string) error
}

// App handles club business logic
type App struct {
	repo   ClubsRepository
	levels LevelSync
}

// NewApp creates a new clubs App
func NewApp(repo ClubsRepository, levels LevelSync) *App {
	return &App{
		repo:   repo,
		levels: levels,
	}
}

// CreateClub creates a club with empty stats
func (a *App) CreateClub(ctx context.Context, req CreateClubRequest) (*models.Club, error) {
	if err := a.validateCreateClubRequest(req); err != nil {
		return nil, err
	}

	club := models.Club{
		ID:          models.NewID(),
		Name:        strings.TrimSpace(req.Name),
		League:      req.League,
		LeagueLevel: req.LeagueLevel,
		HomeStadium: strings.TrimSpace(req.HomeStadium),
		Coach:       strings.TrimSpace(req.Coach),
		Players:     append([]string{}, req.Players...),
	}

	created, err := a.repo.CreateClub(ctx, club)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("club_id", created.ID).
		Str("name", created.Name).
		Str("league_level", created.LeagueLevel).
		Msg("Created club")
	return created, nil
}

// GetClub retrieves a club by ID
func (a *App) GetClub(ctx context.Context, id string) (*models.Club, error) {
	club, err := a.repo.GetClub(ctx, id)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, apperrors.NotFound("Club")
	}
	return club, nil
}

// ListClubs returns clubs, optionally filtered by league or level
func (a *App) ListClubs(ctx context.Context, filter ListClubsRequest) ([]models.Club, error) {
	return a.repo.ListClubs(ctx, filter)
}

// UpdateClub applies a whitelisted partial update
func (a *App) UpdateClub(ctx context.Context, id string, patch ClubPatch) (*models.Club, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	club, previousLevel, err := a.repo.UpdateClub(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, apperrors.NotFound("Club")
	}

	if previousLevel != club.LeagueLevel {
		err = a.levels.MoveClub(ctx, club.ID, previousLevel, club.LeagueLevel)
	} else {
		err = a.levels.ClearRankings(ctx, club.LeagueLevel)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("club_id", id).
		Str("league_level", club.LeagueLevel).
		Msg("Updated club")
	return club, nil
}

// DeleteClub deletes a club by ID and takes it off its level
func (a *App) DeleteClub(ctx context.Context, id string) error {
	club, err := a.repo.GetClub(ctx, id)
	if err != nil {
		return err
	}
	if club == nil {
		return apperrors.NotFound("Club")
	}

	removed, err := a.repo.DeleteClub(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("Club")
	}
	if err := a.levels.MoveClub(ctx, id, club.LeagueLevel, ""); err != nil {
		return err
	}

	log.Info().Str("club_id", id).Msg("Deleted club")
	return nil
}

// RecordResult applies a league result to both clubs' stats and drops the
// cached tables of their levels.
func (a *App) RecordResult(ctx context.Context, homeID, awayID string, homeGoals, awayGoals int) error {
	levels, err := a.repo.RecordResult(ctx, homeID, awayID, homeGoals, awayGoals)
	if err != nil {
		return err
	}
	return a.levels.ClearRankings(ctx, levels...)
}

// validateCreateClubRequest validates create club request
func (a *App) validateCreateClubRequest(req CreateClubRequest) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"league", req.League},
		{"league_level", req.LeagueLevel},
		{"home_stadium", req.HomeStadium},
		{"coach", req.Coach},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.MissingFields("ADD_CLUB", missing...)
	}
	return nil
}
