package matches

import (
	"context"

	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// MatchesApp defines what the service layer needs from the matches application
type MatchesApp interface {
	CreateMatch(ctx context.Context, req CreateMatchRequest) (*models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	ListMatches(ctx context.Context, filter ListMatchesRequest) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id string, patch MatchPatch) (*models.Match, error)
	RecordResult(ctx context.Context, req RecordResultRequest) (*models.Match, error)
	DeleteMatch(ctx context.Context, id string) error
}

// Service binds the match commands to the app
type Service struct {
	app MatchesApp
}

// NewService creates a new matches command service
func NewService(app MatchesApp) *Service {
	return &Service{
		app: app,
	}
}

var _ command.Registrar = (*Service)(nil)

// Register binds the match commands.
func (s *Service) Register(r *command.Router) {
	r.Handle("GET_MATCHES", s.GetMatches)
	r.Handle("GET_MATCH", s.GetMatch)
	r.Handle("ADD_MATCH", s.AddMatch)
	r.Handle("UPDATE_MATCH", s.UpdateMatch)
	r.Handle("DELETE_MATCH", s.DeleteMatch)
	r.Handle("RECORD_MATCH_RESULT", s.RecordMatchResult)
}

// GetMatches lists matches
func (s *Service) GetMatches(ctx context.Context, call *command.Call) (*command.Result, error) {
	var filter ListMatchesRequest
	if err := command.Decode(call, &filter); err != nil {
		return nil, err
	}
	matches, err := s.app.ListMatches(ctx, filter)
	if err != nil {
		return nil, err
	}
	return command.OK("Matches retrieved", matches), nil
}

// GetMatch retrieves one match
func (s *Service) GetMatch(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	match, err := s.app.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return command.OK("Match retrieved", match), nil
}

// AddMatch schedules a match
func (s *Service) AddMatch(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req CreateMatchRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	match, err := s.app.CreateMatch(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("Match created", match), nil
}

// UpdateMatch applies a partial update
func (s *Service) UpdateMatch(ctx context.Context, call *command.Call) (*command.Result, error) {
	var patch MatchPatch
	id, err := command.DecodeUpdate(call, &patch)
	if err != nil {
		return nil, err
	}
	match, err := s.app.UpdateMatch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return command.OK("Match updated", match), nil
}

// RecordMatchResult completes a match with its final score
func (s *Service) RecordMatchResult(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req RecordResultRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	match, err := s.app.RecordResult(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("Match result recorded", match), nil
}

// DeleteMatch removes a match
func (s *Service) DeleteMatch(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	if err := s.app.DeleteMatch(ctx, id); err != nil {
		return nil, err
	}
	return command.OK("Match deleted", nil), nil
}
