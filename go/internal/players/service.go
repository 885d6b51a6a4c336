package players

import (
	"context"

	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// PlayersApp defines what the service layer needs from the players application
type PlayersApp interface {
	CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error)
	GetPlayer(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context, filter ListPlayersRequest) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id string, patch PlayerPatch) (*models.Player, error)
	DeletePlayer(ctx context.Context, id string) error
}

// Service binds the player commands to the app
type Service struct {
	app PlayersApp
}

// NewService creates a new players command service
func NewService(app PlayersApp) *Service {
	return &Service{
		app: app,
	}
}

var _ command.Registrar = (*Service)(nil)

// Register binds the player commands.
func (s *Service) Register(r *command.Router) {
	r.Handle("GET_PLAYERS", s.GetPlayers)
	r.Handle("GET_PLAYER", s.GetPlayer)
	r.Handle("ADD_PLAYER", s.AddPlayer)
	r.Handle("UPDATE_PLAYER", s.UpdatePlayer)
	r.Handle("DELETE_PLAYER", s.DeletePlayer)
}

// GetPlayers lists players
func (s *Service) GetPlayers(ctx context.Context, call *command.Call) (*command.Result, error) {
	var filter ListPlayersRequest
	if err := command.Decode(call, &filter); err != nil {
		return nil, err
	}
	players, err := s.app.ListPlayers(ctx, filter)
	if err != nil {
		return nil, err
	}
	return command.OK("Players retrieved", players), nil
}

// GetPlayer retrieves one player
func (s *Service) GetPlayer(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	player, err := s.app.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return command.OK("Player retrieved", player), nil
}

// AddPlayer registers a player
func (s *Service) AddPlayer(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req CreatePlayerRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	player, err := s.app.CreatePlayer(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("Player created", player), nil
}

// UpdatePlayer applies a partial update
func (s *Service) UpdatePlayer(ctx context.Context, call *command.Call) (*command.Result, error) {
	var patch PlayerPatch
	id, err := command.DecodeUpdate(call, &patch)
	if err != nil {
		return nil, err
	}
	player, err := s.app.UpdatePlayer(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return command.OK("Player updated", player), nil
}

// DeletePlayer removes a player
func (s *Service) DeletePlayer(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	if err := s.app.DeletePlayer(ctx, id); err != nil {
		return nil, err
	}
	return command.OK("Player deleted", nil), nil
}
