package nationalteams

import (
	"context"

	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// NationalTeamsApp defines what the service layer needs from the application
type NationalTeamsApp interface {
	CreateNationalTeam(ctx context.Context, req CreateNationalTeamRequest) (*models.NationalTeam, error)
	GetNationalTeam(ctx context.Context, id string) (*models.NationalTeam, error)
	ListNationalTeams(ctx context.Context) ([]models.NationalTeam, error)
	UpdateNationalTeam(ctx context.Context, id string, patch NationalTeamPatch) (*models.NationalTeam, error)
	DeleteNationalTeam(ctx context.Context, id string) error
}

// Service binds the national team commands to the app
type Service struct {
	app NationalTeamsApp
}

// NewService creates a new national teams command service
func NewService(app NationalTeamsApp) *Service {
	return &Service{
		app: app,
	}
}

var _ command.Registrar = (*Service)(nil)

// Register binds the national team commands.
func (s *Service) Register(r *command.Router) {
	r.Handle("GET_NATIONAL_TEAMS", s.GetNationalTeams)
	r.Handle("GET_NATIONAL_TEAM", s.GetNationalTeam)
	r.Handle("ADD_NATIONAL_TEAM", s.AddNationalTeam)
	r.Handle("UPDATE_NATIONAL_TEAM", s.UpdateNationalTeam)
	r.Handle("DELETE_NATIONAL_TEAM", s.DeleteNationalTeam)
}

// GetNationalTeams lists national teams
func (s *Service) GetNationalTeams(ctx context.Context, _ *command.Call) (*command.Result, error) {
	teams, err := s.app.ListNationalTeams(ctx)
	if err != nil {
		return nil, err
	}
	return command.OK("National teams retrieved", teams), nil
}

// GetNationalTeam retrieves one national team
func (s *Service) GetNationalTeam(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	team, err := s.app.GetNationalTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	return command.OK("National team retrieved", team), nil
}

// AddNationalTeam creates a national team
func (s *Service) AddNationalTeam(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req CreateNationalTeamRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	team, err := s.app.CreateNationalTeam(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("National team created", team), nil
}

// UpdateNationalTeam applies a partial update
func (s *Service) UpdateNationalTeam(ctx context.Context, call *command.Call) (*command.Result, error) {
	var patch NationalTeamPatch
	id, err := command.DecodeUpdate(call, &patch)
	if err != nil {
		return nil, err
	}
	team, err := s.app.UpdateNationalTeam(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return command.OK("National team updated", team), nil
}

// DeleteNationalTeam removes a national team
func (s *Service) DeleteNationalTeam(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	if err := s.app.DeleteNationalTeam(ctx, id); err != nil {
		return nil, err
	}
	return command.OK("National team deleted", nil), nil
}
