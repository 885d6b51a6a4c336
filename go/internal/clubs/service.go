package clubs

import (
	"context"

	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// ClubsApp defines what the service layer needs from the clubs application
type ClubsApp interface {
	CreateClub(ctx context.Context, req CreateClubRequest) (*models.Club, error)
	GetClub(ctx context.Context, id string) (*models.Club, error)
	ListClubs(ctx context.Context, filter ListClubsRequest) ([]models.Club, error)
	UpdateClub(ctx context.Context, id string, patch ClubPatch) (*models.Club, error)
	DeleteClub(ctx context.Context, id string) error
}

// Service binds the club commands to the app
type Service struct {
	app ClubsApp
}

// NewService creates a new clubs command service
func NewService(app ClubsApp) *Service {
	return &Service{
		app: app,
	}
}

var _ command.Registrar = (*Service)(nil)

// Register binds the club commands.
func (s *Service) Register(r *command.Router) {
	r.Handle("GET_CLUBS", s.GetClubs)
	r.Handle("GET_CLUB", s.GetClub)
	r.Handle("ADD_CLUB", s.AddClub)
	r.Handle("UPDATE_CLUB", s.UpdateClub)
	r.Handle("DELETE_CLUB", s.DeleteClub)
}

// GetClubs lists clubs
func (s *Service) GetClubs(ctx context.Context, call *command.Call) (*command.Result, error) {
	var filter ListClubsRequest
	if err := command.Decode(call, &filter); err != nil {
		return nil, err
	}
	clubs, err := s.app.ListClubs(ctx, filter)
	if err != nil {
		return nil, err
	}
	return command.OK("Clubs retrieved", clubs), nil
}

// GetClub retrieves one club
func (s *Service) GetClub(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	club, err := s.app.GetClub(ctx, id)
	if err != nil {
		return nil, err
	}
	return command.OK("Club retrieved", club), nil
}

// AddClub creates a club
func (s *Service) AddClub(ctx context.Context, call *command.Call) (*command.Result, error) {
	var req CreateClubRequest
	if err := command.Decode(call, &req); err != nil {
		return nil, err
	}
	club, err := s.app.CreateClub(ctx, req)
	if err != nil {
		return nil, err
	}
	return command.OK("Club created", club), nil
}

// UpdateClub applies a partial update
func (s *Service) UpdateClub(ctx context.Context, call *command.Call) (*command.Result, error) {
	var patch ClubPatch
	id, err := command.DecodeUpdate(call, &patch)
	if err != nil {
		return nil, err
	}
	club, err := s.app.UpdateClub(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return command.OK("Club updated", club), nil
}

// DeleteClub removes a club
func (s *Service) DeleteClub(ctx context.Context, call *command.Call) (*command.Result, error) {
	id, err := command.DecodeID(call)
	if err != nil {
		return nil, err
	}
	if err := s.app.DeleteClub(ctx, id); err != nil {
		return nil, err
	}
	return command.OK("Club deleted", nil), nil
}
