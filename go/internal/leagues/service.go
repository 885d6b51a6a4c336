package leagues

import (
	"context"

	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// LeaguesApp defines what the service layer needs from the leagues application
type LeaguesApp interface {
	CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error)
	GetLeague(ctx context.Context, id string) (*models.League, error)
	ListLeagues(ctx context.Context) ([]models.League, error)
	UpdateLeague(ctx context.Context, id string, patch LeaguePatch) (*models.League, error)
	DeleteLeague(ctx context.Context, id string) error

	ListLevels(ctx context.Context, leagueID string) ([]models.LeagueLevel, error)
	GetLevel(ctx context.Context, id string) (*models.LeagueLevel, error)
	CreateLevel(ctx context.Context, req CreateLevelRequest) (*models.LeagueLevel, error)
	UpdateLevel(ctx context.Context, id string, patch LevelPatch) (*models.LeagueLevel, error)
	DeleteLevel(ctx context.Context, id string) error
	SetClubs(ctx context.Context, req SetClubsRequest) (*models.LeagueLevel, error)
}

// Service binds the league and league level commands to the app
type Service struct {
	app LeaguesApp
}

// NewService creates a new leagues command service
func NewService(app LeaguesApp) *Service {
	return &Service{
		app: app,
	}
}

var _ command.Registrar = (*Service)(nil)

// Register binds the league and league level commands.
func (s *Service) Register(r *command.Router) {
	r.Handle("GET_LEAGUES", s.GetLeagues)
	r.Handle("GET_LEAGUE", s.GetLeague)
	r.Handle("ADD_LEAGUE", s.AddLeague)
	r.Handle("UPDATE_LEAGUE", s.UpdateLeague)
	r.Handle("DELETE_LEAGUE", s.DeleteLeague)

	r.Handle("GET_LEAGUE_LEVELS", s.GetLeagueLevels)
	r.Handle("GET_LEAGUE_LEVEL", s.GetLeagueLevel)
	r.Handle("ADD_LEAGUE_LEVEL", s.AddLeagueLevel)
	r.Handle("UPDATE_LEAGUE_LEVEL", s.UpdateLeagueLevel)
	r.Handle("DELETE_LEAGUE_LEVEL", s.DeleteLeagueLevel)
	r.Handle("SET_CLUBS_TO_LEVEL", s.SetClubsToLevel)
}

// GetLeagues lists leagues
func (s *Service) GetLeagues(ctx context.Context, _ *command.Call) (*command.Result, error) {
	leagues, err := s.app.ListLeagues(ctx)
	if err != nil {
		return nil, err
	}
	return command.OK("Leagues retrieved", leagues), nil
}

// GetLeague retrieves one league
func (s *Service) GetLeague(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	league, err := s.app.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	return command.OK("League retrieved", league), nil
}

// AddLeague creates a league
func (s *Service) AddLeague(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req CreateLeagueRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	league, err := s.app.CreateLeague(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("League created", league), nil
}

// UpdateLeague applies a partial update
func (s *Service) UpdateLeague(ctx context.Context, call *command.Call) (*command.Result, error) {
	var patch LeaguePatch
	id, err := command.DecodeUpdate(call, &patch)
	if err != nil {
		return nil, err
	}
	league, err := s.app.UpdateLeague(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return command.OK("League updated", league), nil
}

// DeleteLeague removes a league
func (s *Service) DeleteLeague(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	if err := s.app.DeleteLeague(ctx, id); err != nil {
		return nil, err
	}
	return command.OK("League deleted", nil), nil
}

// GetLeagueLevels lists the levels of a league, or every level
func (s *Service) GetLeagueLevels(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req ListLevelsRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	levels, err := s.app.ListLevels(ctx, req.LeagueID)
	if err != nil {
		return nil, err
	}
	return command.OK("League levels retrieved", levels), nil
}

// GetLeagueLevel retrieves one level
func (s *Service) GetLeagueLevel(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	level, err := s.app.GetLevel(ctx, id)
	if err != nil {
		return nil, err
	}
	return command.OK("League level retrieved", level), nil
}

// AddLeagueLevel creates a level in a league
func (s *Service) AddLeagueLevel(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req CreateLevelRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	level, err := s.app.CreateLevel(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("League level added", level), nil
}

// UpdateLeagueLevel applies a partial update
func (s *Service) UpdateLeagueLevel(ctx context.Context, call *command.Call) (*command.Result, error) {
	var patch LevelPatch
	id, err := command.DecodeUpdate(call, &patch)
	if err != nil {
		return nil, err
	}
	level, err := s.app.UpdateLevel(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return command.OK("League level updated", level), nil
}

// DeleteLeagueLevel removes a level
func (s *Service) DeleteLeagueLevel(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	if err := s.app.DeleteLevel(ctx, id); err != nil {
		return nil, err
	}
	return command.OK("League level deleted", nil), nil
}

// SetClubsToLevel assigns clubs to a level
func (s *Service) SetClubsToLevel(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req SetClubsRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	level, err := s.app.SetClubs(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("Clubs set to league level", level), nil
}
