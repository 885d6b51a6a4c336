package leagues

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// LeaguesRepository defines what the app layer needs from the repository
type LeaguesRepository interface {
	CreateLeague(ctx context.Context, league models.League) (*models.League, error)
	GetLeague(ctx context.Context, id string) (*models.League, error)
	ListLeagues(ctx context.Context) ([]models.League, error)
	UpdateLeague(ctx context.Context, id string, patch LeaguePatch) (*models.League, error)
	DeleteLeague(ctx context.Context, id string) (bool, error)
	LinkLevel(ctx context.Context, leagueID, levelID string) error
	UnlinkLevel(ctx context.Context, leagueID, levelID string) error

	CreateLevel(ctx context.Context, level models.LeagueLevel) (*models.LeagueLevel, error)
	GetLevel(ctx context.Context, id string) (*models.LeagueLevel, error)
	ListLevels(ctx context.Context, leagueID string) ([]models.LeagueLevel, error)
	PatchLevel(ctx context.Context, id string, patch LevelPatch) (*models.LeagueLevel, error)
	DeleteLevel(ctx context.Context, id string) (bool, error)
	AssignClubs(ctx context.Context, levelID string, clubIDs []string) (*models.LeagueLevel, error)
}

// ClubAssigner points clubs at a league level.
type ClubAssigner interface {
	AssignLevel(ctx context.Context, clubIDs []string, levelID string) (int, error)
}

// App handles leagues business logic
type App struct {
	repo  LeaguesRepository
	clubs ClubAssigner
}

// NewApp creates a new leagues App
func NewApp(repo LeaguesRepository, clubs ClubAssigner) *App {
	return &App{
		repo:  repo,
		clubs: clubs,
	}
}

// CreateLeague creates a new league. Absent promotion rules default to 2/2.
func (a *App) CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error) {
	if err := a.validateCreateLeagueRequest(req); err != nil {
		return nil, err
	}

	league := models.League{
		ID:                       models.NewID(),
		Name:                     strings.TrimSpace(req.Name),
		Season:                   strings.TrimSpace(req.Season),
		LeagueLevels:             []string{},
		PromotionRelegationRules: models.DefaultPromotionRules(),
	}
	req.PromotionRelegationRules.applyTo(&league.PromotionRelegationRules)

	created, err := a.repo.CreateLeague(ctx, league)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("league_id", created.ID).
		Str("name", created.Name).
		Str("season", created.Season).
		Msg("Created league")
	return created, nil
}

// GetLeague retrieves a league by ID
func (a *App) GetLeague(ctx context.Context, id string) (*models.League, error) {
	league, err := a.repo.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	if league == nil {
		return nil, apperrors.NotFound("League")
	}
	return league, nil
}

// ListLeagues returns every league
func (a *App) ListLeagues(ctx context.Context) ([]models.League, error) {
	return a.repo.ListLeagues(ctx)
}

// UpdateLeague applies a whitelisted partial update
func (a *App) UpdateLeague(ctx context.Context, id string, patch LeaguePatch) (*models.League, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	league, err := a.repo.UpdateLeague(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if league == nil {
		return nil, apperrors.NotFound("League")
	}

	log.Info().Str("league_id", id).Msg("Updated league")
	return league, nil
}

// DeleteLeague deletes a league by ID. Its levels and clubs are left in place
// and keep their now dangling league reference.
func (a *App) DeleteLeague(ctx context.Context, id string) error {
	removed, err := a.repo.DeleteLeague(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("League")
	}

	log.Info().Str("league_id", id).Msg("Deleted league")
	return nil
}

// ListLevels returns a league's levels from the top tier down, or every level
// in storage order when leagueID is empty.
func (a *App) ListLevels(ctx context.Context, leagueID string) ([]models.LeagueLevel, error) {
	levels, err := a.repo.ListLevels(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if leagueID != "" {
		SortLevels(levels)
	}
	return levels, nil
}

// GetLevel retrieves a level by ID
func (a *App) GetLevel(ctx context.Context, id string) (*models.LeagueLevel, error) {
	level, err := a.repo.GetLevel(ctx, id)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, apperrors.NotFound("League level")
	}
	return level, nil
}

// CreateLevel adds a level to an existing league and links it from the
// league's level list.
func (a *App) CreateLevel(ctx context.Context, req CreateLevelRequest) (*models.LeagueLevel, error) {
	var missing []string
	if strings.TrimSpace(req.LeagueID) == "" {
		missing = append(missing, "league_id")
	}
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields("ADD_LEAGUE_LEVEL", missing...)
	}
	if req.Tier != nil && *req.Tier < 1 {
		return nil, apperrors.New(apperrors.CodeValidation, "Tier must be 1 or greater")
	}

	if _, err := a.GetLeague(ctx, req.LeagueID); err != nil {
		return nil, err
	}

	level := models.LeagueLevel{
		ID:       models.NewID(),
		Name:     strings.TrimSpace(req.Name),
		LeagueID: req.LeagueID,
		Clubs:    []string{},
		Rankings: []models.Ranking{},
	}
	if req.Tier != nil {
		level.Tier = *req.Tier
	}

	created, err := a.repo.CreateLevel(ctx, level)
	if err != nil {
		return nil, err
	}
	if err := a.repo.LinkLevel(ctx, created.LeagueID, created.ID); err != nil {
		return nil, err
	}

	log.Info().
		Str("level_id", created.ID).
		Str("league_id", created.LeagueID).
		Int("tier", created.Tier).
		Msg("Created league level")
	return created, nil
}

// UpdateLevel applies a whitelisted partial update
func (a *App) UpdateLevel(ctx context.Context, id string, patch LevelPatch) (*models.LeagueLevel, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	level, err := a.repo.PatchLevel(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, apperrors.NotFound("League level")
	}

	log.Info().Str("level_id", id).Msg("Updated league level")
	return level, nil
}

// DeleteLevel unlinks a level from its league and deletes it. Clubs still
// pointing at it keep a dangling reference.
func (a *App) DeleteLevel(ctx context.Context, id string) error {
	level, err := a.GetLevel(ctx, id)
	if err != nil {
		return err
	}

	if err := a.repo.UnlinkLevel(ctx, level.LeagueID, id); err != nil {
		return err
	}
	removed, err := a.repo.DeleteLevel(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("League level")
	}

	log.Info().Str("level_id", id).Str("league_id", level.LeagueID).Msg("Deleted league level")
	return nil
}

// SetClubs replaces a level's club list, drops the listed clubs from any
// other level and points each listed club at the level. Unknown club ids are
// kept in the list but change nothing.
func (a *App) SetClubs(ctx context.Context, req SetClubsRequest) (*models.LeagueLevel, error) {
	var missing []string
	if strings.TrimSpace(req.LevelID) == "" {
		missing = append(missing, "level_id")
	}
	if req.ClubIDs == nil {
		missing = append(missing, "club_ids")
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields("SET_CLUBS_TO_LEVEL", missing...)
	}

	clubIDs := dedupe(req.ClubIDs)
	level, err := a.repo.AssignClubs(ctx, req.LevelID, clubIDs)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, apperrors.NotFound("League level")
	}

	assigned, err := a.clubs.AssignLevel(ctx, clubIDs, level.ID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("level_id", level.ID).
		Int("clubs", len(clubIDs)).
		Int("assigned", assigned).
		Msg("Set clubs to league level")
	return level, nil
}

// validateCreateLeagueRequest validates create league request
func (a *App) validateCreateLeagueRequest(req CreateLeagueRequest) error {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Season) == "" {
		missing = append(missing, "season")
	}
	if len(missing) > 0 {
		return apperrors.MissingFields("ADD_LEAGUE", missing...)
	}
	return req.PromotionRelegationRules.validate()
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
