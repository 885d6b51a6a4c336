package matches

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// MatchesRepository defines what the app layer needs from the repository
type MatchesRepository interface {
	CreateMatch(ctx context.Context, match models.Match) (*models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	ListMatches(ctx context.Context, filter ListMatchesRequest) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id string, mutate func(*models.Match) error) (*models.Match, error)
	DeleteMatch(ctx context.Context, id string) (bool, error)
}

// ResultRecorder applies a league result to the two clubs' standings.
type ResultRecorder interface {
	RecordResult(ctx context.Context, homeID, awayID string, homeGoals, awayGoals int) error
}

// App handles match business logic
type App struct {
	repo  MatchesRepository
	clubs ResultRecorder
}

// NewApp creates a new matches App
func NewApp(repo MatchesRepository, clubs ResultRecorder) *App {
	return &App{
		repo:  repo,
		clubs: clubs,
	}
}

// CreateMatch schedules a match
func (a *App) CreateMatch(ctx context.Context, req CreateMatchRequest) (*models.Match, error) {
	if err := a.validateCreateMatchRequest(&req); err != nil {
		return nil, err
	}

	match := models.Match{
		ID:          models.NewID(),
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		MatchTime:   req.MatchTime,
		Location:    strings.TrimSpace(req.Location),
		GoalScorers: []models.GoalScorer{},
		Status:      models.MatchStatusScheduled,
		MatchType:   req.MatchType,
	}

	created, err := a.repo.CreateMatch(ctx, match)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("match_id", created.ID).
		Str("home_team", created.HomeTeam).
		Str("away_team", created.AwayTeam).
		Str("match_type", string(created.MatchType)).
		Msg("Created match")
	return created, nil
}

// GetMatch retrieves a match by ID
func (a *App) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	match, err := a.repo.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, apperrors.NotFound("Match")
	}
	return match, nil
}

// ListMatches returns matches, optionally filtered
func (a *App) ListMatches(ctx context.Context, filter ListMatchesRequest) ([]models.Match, error) {
	return a.repo.ListMatches(ctx, filter)
}

// UpdateMatch applies a whitelisted partial update
func (a *App) UpdateMatch(ctx context.Context, id string, patch MatchPatch) (*models.Match, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	match, err := a.repo.UpdateMatch(ctx, id, patch.Apply)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, apperrors.NotFound("Match")
	}

	log.Info().Str("match_id", id).Msg("Updated match")
	return match, nil
}

// RecordResult sets the final score and completes the match. League matches
// also update both clubs' stats. A match can be completed only once.
func (a *App) RecordResult(ctx context.Context, req RecordResultRequest) (*models.Match, error) {
	var missing []string
	if strings.TrimSpace(req.ID) == "" {
		missing = append(missing, "id")
	}
	if req.Home == nil {
		missing = append(missing, "home")
	}
	if req.Away == nil {
		missing = append(missing, "away")
	}
	if len(missing) > 0 {
		return nil, apperrors.MissingFields("RECORD_MATCH_RESULT", missing...)
	}
	if *req.Home < 0 || *req.Away < 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "Score cannot be negative")
	}

	var previous models.Match
	match, err := a.repo.UpdateMatch(ctx, req.ID, func(m *models.Match) error {
		if m.Status == models.MatchStatusCompleted {
			return apperrors.New(apperrors.CodeValidation, "Match result already recorded")
		}
		previous = *m
		m.Score = models.Score{Home: *req.Home, Away: *req.Away}
		if req.GoalScorers != nil {
			m.GoalScorers = append([]models.GoalScorer{}, req.GoalScorers...)
		}
		m.Status = models.MatchStatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, apperrors.NotFound("Match")
	}

	if match.MatchType == models.MatchTypeLeague {
		if err := a.clubs.RecordResult(ctx, match.HomeTeam, match.AwayTeam, match.Score.Home, match.Score.Away); err != nil {
			a.reopen(ctx, previous)
			return nil, err
		}
	}

	log.Info().
		Str("match_id", match.ID).
		Int("home", match.Score.Home).
		Int("away", match.Score.Away).
		Msg("Recorded match result")
	return match, nil
}

// reopen restores a match whose club stats could not be written, so the
// result can be recorded again.
func (a *App) reopen(ctx context.Context, previous models.Match) {
	_, err := a.repo.UpdateMatch(ctx, previous.ID, func(m *models.Match) error {
		m.Score = previous.Score
		m.GoalScorers = previous.GoalScorers
		m.Status = previous.Status
		return nil
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("match_id", previous.ID).
			Msg("Match completed but club stats were not updated")
		return
	}
	log.Warn().
		Str("match_id", previous.ID).
		Msg("Club stats update failed, match reopened")
}

// DeleteMatch deletes a match by ID
func (a *App) DeleteMatch(ctx context.Context, id string) error {
	removed, err := a.repo.DeleteMatch(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NotFound("Match")
	}

	log.Info().Str("match_id", id).Msg("Deleted match")
	return nil
}

// validateCreateMatchRequest validates and defaults a create match request
func (a *App) validateCreateMatchRequest(req *CreateMatchRequest) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"home_team", req.HomeTeam},
		{"away_team", req.AwayTeam},
		{"match_time", req.MatchTime},
		{"location", req.Location},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.MissingFields("ADD_MATCH", missing...)
	}
	if req.HomeTeam == req.AwayTeam {
		return apperrors.New(apperrors.CodeValidation, "A club cannot play itself")
	}
	if req.MatchType == "" {
		req.MatchType = models.MatchTypeLeague
	}
	if !req.MatchType.Valid() {
		return apperrors.Newf(apperrors.CodeValidation, "Invalid match type: %s", req.MatchType)
	}
	return nil
}
