package players

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// PlayersRepository defines what the app layer needs from the repository
type PlayersRepository interface {
	CreatePlayer(ctx context.Context, player models.Player) (*models.Player, error)
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context, filter ListPlayersRequest) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id string, patch PlayerPatch) (*models.Player, error)
	DeletePlayer(ctx context.Context, id string) (bool, error)
}

// App handles player business logic
type App struct {
	repo PlayersRepository
}

// NewApp creates a new players App
func NewApp(repo PlayersRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreatePlayer registers a player with a fresh id
func (a *App) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error) {
	if err := a.validateCreatePlayerRequest(req); err != nil {
		return nil, err
	}

	player := models.Player{
		ID:           models.NewID(),
		Name:         strings.TrimSpace(req.Name),
		Position:     strings.TrimSpace(req.Position),
		QQ:           strings.TrimSpace(req.QQ),
		GameID:       strings.TrimSpace(req.GameID),
		Club:         req.Club,
		NationalTeam: req.NationalTeam,
	}
	if req.Stats != nil {
		player.Stats = *req.Stats
	}

	created, err := a.repo.CreatePlayer(ctx, player)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("player_id", created.ID).
		Str("name", created.Name).
		Msg("Created player")
	return created, nil
}

// GetPlayer retrieves a player by ID
func (a *App) GetPlayer(ctx context.Context, id string) (*models.Player, error) {
	player, err := a.repo.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, apperrors.NotFound("Player")
	}
	return player, nil
}

// ListPlayers returns players, optionally filtered by club or national team
func (a *App) ListPlayers(ctx context.Context, filter ListPlayersRequest) ([]models.Player, error) {
	return a.repo.ListPlayers(ctx, filter)
}

// UpdatePlayer applies a whitelisted partial update
func (a *App) UpdatePlayer(ctx context.Context, id string, patch PlayerPatch) (*models.Player, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	player, err := a.repo.UpdatePlayer(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, apperrors.NotFound("Player")
	}

	log.Info().Str("player_id", id).Msg("Updated player")
	return player, nil
}

// DeletePlayer deletes a player by ID
func (a *App) DeletePlayer(ctx context.Context, id string) error {
	removed, err := a.repo.DeletePlayer(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("Player")
	}

	log.Info().Str("player_id", id).Msg("Deleted player")
	return nil
}

// validateCreatePlayerRequest validates create player request
func (a *App) validateCreatePlayerRequest(req CreatePlayerRequest) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"position", req.Position},
		{"qq", req.QQ},
		{"game_id", req.GameID},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.MissingFields("ADD_PLAYER", missing...)
	}
	if req.Stats != nil && !statsValid(*req.Stats) {
		return apperrors.New(apperrors.CodeValidation, "Player stats cannot be negative")
	}
	return nil
}
