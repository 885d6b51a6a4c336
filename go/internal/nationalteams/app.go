package nationalteams

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// NationalTeamsRepository defines what the app layer needs from the repository
type NationalTeamsRepository interface {
	CreateNationalTeam(ctx context.Context, team models.NationalTeam) (*models.NationalTeam, error)
	GetNationalTeam(ctx context.Context, id string) (*models.NationalTeam, error)
	ListNationalTeams(ctx context.Context) ([]models.NationalTeam, error)
	UpdateNationalTeam(ctx context.Context, id string, patch NationalTeamPatch) (*models.NationalTeam, error)
	DeleteNationalTeam(ctx context.Context, id string) (bool, error)
}

// App handles national team business logic
type App struct {
	repo NationalTeamsRepository
}

// NewApp creates a new national teams App
func NewApp(repo NationalTeamsRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreateNationalTeam creates a national team
func (a *App) CreateNationalTeam(ctx context.Context, req CreateNationalTeamRequest) (*models.NationalTeam, error) {
	var missing []string
	if strings.TrimSpace(req.CountryName) == "" {
		missing = append(missing, "country_name")
	}
	if strings.TrimSpace(req.Coach) == "" {
		missing = append(missing, "coach")
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields("ADD_NATIONAL_TEAM", missing...)
	}

	team := models.NationalTeam{
		ID:          models.NewID(),
		CountryName: strings.TrimSpace(req.CountryName),
		Coach:       strings.TrimSpace(req.Coach),
		Players:     append([]string{}, req.Players...),
	}

	created, err := a.repo.CreateNationalTeam(ctx, team)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("national_team_id", created.ID).
		Str("country", created.CountryName).
		Msg("Created national team")
	return created, nil
}

// GetNationalTeam retrieves a national team by ID
func (a *App) GetNationalTeam(ctx context.Context, id string) (*models.NationalTeam, error) {
	team, err := a.repo.GetNationalTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperrors.NotFound("National team")
	}
	return team, nil
}

// ListNationalTeams returns every national team
func (a *App) ListNationalTeams(ctx context.Context) ([]models.NationalTeam, error) {
	return a.repo.ListNationalTeams(ctx)
}

// UpdateNationalTeam applies a whitelisted partial update
func (a *App) UpdateNationalTeam(ctx context.Context, id string, patch NationalTeamPatch) (*models.NationalTeam, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	team, err := a.repo.UpdateNationalTeam(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperrors.NotFound("National team")
	}

	log.Info().Str("national_team_id", id).Msg("Updated national team")
	return team, nil
}

// DeleteNationalTeam deletes a national team by ID
func (a *App) DeleteNationalTeam(ctx context.Context, id string) error {
	removed, err := a.repo.DeleteNationalTeam(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("National team")
	}

	log.Info().Str("national_team_id", id).Msg("Deleted national team")
	return nil
}
