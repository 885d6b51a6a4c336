package promotion

import (
	"context"
	"strings"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// PromotionApp defines what the service layer needs from the engine
type PromotionApp interface {
	Execute(ctx context.Context, leagueID string) (*Result, error)
	CalculateClubRankings(ctx context.Context, levelID string) ([]models.Ranking, error)
	GetLeagueTable(ctx context.Context, levelID string) ([]models.Ranking, error)
}

// Service binds the promotion and table commands to the engine
type Service struct {
	app PromotionApp
}

// NewService creates a new promotion command service
func NewService(app PromotionApp) *Service {
	return &Service{
		app: app,
	}
}

var _ command.Registrar = (*Service)(nil)

// Register binds the promotion and table commands.
func (s *Service) Register(r *command.Router) {
	r.Handle("EXECUTE_PROMOTION_RELEGATION", s.ExecutePromotionRelegation)
	r.Handle("CALCULATE_RANKINGS", s.CalculateRankings)
	r.Handle("GET_LEAGUE_TABLE", s.GetLeagueTable)
}

// ExecutePromotionRelegation runs end-of-season moves for a league
func (s *Service) ExecutePromotionRelegation(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req ExecuteRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	leagueID := strings.TrimSpace(req.LeagueID)
	if leagueID == "" {
		return nil, apperrors.MissingFields(call.Command, "league_id")
	}

	result, err := s.app.Execute(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return command.OK("Promotion/relegation executed", result), nil
}

// CalculateRankings recomputes and caches a level's table
func (s *Service) CalculateRankings(ctx context.Context, call *command.Call) (*command.Result, error) {
	levelID, err := decodeLevelID(call)
	if err != nil {
		return nil, err
	}
	rankings, err := s.app.CalculateClubRankings(ctx, levelID)
	if err != nil {
		return nil, err
	}
	return command.OK("Rankings calculated", rankings), nil
}

// GetLeagueTable returns a level's table
func (s *Service) GetLeagueTable(ctx context.Context, call *command.Call) (*command.Result, error) {
	levelID, err := decodeLevelID(call)
	if err != nil {
		return nil, err
	}
	rankings, err := s.app.GetLeagueTable(ctx, levelID)
	if err != nil {
		return nil, err
	}
	return command.OK("League table retrieved", rankings), nil
}

func decodeLevelID(call *command.Call) (string, error) {
	var req LevelRequest
	if err := command.Decode(call, &req); err != nil {
		return "", err
	}
	id := strings.TrimSpace(req.LevelID)
	if id == "" {
		return "", apperrors.MissingFields(call.Command, "level_id")
	}
	return id, nil
}
