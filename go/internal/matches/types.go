package matches

import (
	"strings"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// CreateMatchRequest represents the data needed to schedule a match
type CreateMatchRequest struct {
	HomeTeam  string           `json:"home_team"`
	AwayTeam  string           `json:"away_team"`
	MatchTime string           `json:"match_time"`
	Location  string           `json:"location"`
	MatchType models.MatchType `json:"match_type"`
}

// ListMatchesRequest optionally narrows GET_MATCHES. Team matches either side.
type ListMatchesRequest struct {
	Team      string             `json:"team"`
	Status    models.MatchStatus `json:"status"`
	MatchType models.MatchType   `json:"match_type"`
}

// RecordResultRequest is the payload of RECORD_MATCH_RESULT.
type RecordResultRequest struct {
	ID          string              `json:"id"`
	Home        *int                `json:"home"`
	Away        *int                `json:"away"`
	GoalScorers []models.GoalScorer `json:"goal_scorers"`
}

// MatchPatch lists the fields UPDATE_MATCH may change. Completion goes
// through RECORD_MATCH_RESULT so club stats stay in step.
type MatchPatch struct {
	HomeTeam    *string              `json:"home_team"`
	AwayTeam    *string              `json:"away_team"`
	MatchTime   *string              `json:"match_time"`
	Location    *string              `json:"location"`
	Score       *models.Score        `json:"score"`
	GoalScorers *[]models.GoalScorer `json:"goal_scorers"`
	Status      *models.MatchStatus  `json:"status"`
	MatchType   *models.MatchType    `json:"match_type"`
}

// Validate checks the patch on its own.
func (p MatchPatch) Validate() error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"home_team", p.HomeTeam},
		{"away_team", p.AwayTeam},
		{"match_time", p.MatchTime},
		{"location", p.Location},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return apperrors.Newf(apperrors.CodeValidation, "Field %s cannot be empty", f.name)
		}
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return apperrors.Newf(apperrors.CodeValidation, "Invalid match status: %s", *p.Status)
		}
		if *p.Status == models.MatchStatusCompleted {
			return apperrors.New(apperrors.CodeValidation, "Use RECORD_MATCH_RESULT to complete a match")
		}
	}
	if p.MatchType != nil && !p.MatchType.Valid() {
		return apperrors.Newf(apperrors.CodeValidation, "Invalid match type: %s", *p.MatchType)
	}
	if p.Score != nil && (p.Score.Home < 0 || p.Score.Away < 0) {
		return apperrors.New(apperrors.CodeValidation, "Score cannot be negative")
	}
	return nil
}

// Apply copies the set fields onto match. A completed match only accepts
// changes to its time and location.
func (p MatchPatch) Apply(match *models.Match) error {
	if match.Status == models.MatchStatusCompleted &&
		(p.HomeTeam != nil || p.AwayTeam != nil || p.Score != nil || p.GoalScorers != nil || p.Status != nil || p.MatchType != nil) {
		return apperrors.New(apperrors.CodeValidation, "Match is completed, its result cannot be changed")
	}

	if p.HomeTeam != nil {
		match.HomeTeam = *p.HomeTeam
	}
	if p.AwayTeam != nil {
		match.AwayTeam = *p.AwayTeam
	}
	if match.HomeTeam == match.AwayTeam {
		return apperrors.New(apperrors.CodeValidation, "A club cannot play itself")
	}
	if p.MatchTime != nil {
		match.MatchTime = *p.MatchTime
	}
	if p.Location != nil {
		match.Location = *p.Location
	}
	if p.Score != nil {
		match.Score = *p.Score
	}
	if p.GoalScorers != nil {
		match.GoalScorers = append([]models.GoalScorer{}, *p.GoalScorers...)
	}
	if p.Status != nil {
		match.Status = *p.Status
	}
	if p.MatchType != nil {
		match.MatchType = *p.MatchType
	}
	return nil
}
