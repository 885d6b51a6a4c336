package clubs

import (
	"strings"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// CreateClubRequest represents the data needed to create a club
type CreateClubRequest struct {
	Name        string   `json:"name"`
	League      string   `json:"league"`
	LeagueLevel string   `json:"league_level"`
	HomeStadium string   `json:"home_stadium"`
	Coach       string   `json:"coach"`
	Players     []string `json:"players"`
}

// ListClubsRequest optionally narrows GET_CLUBS.
type ListClubsRequest struct {
	League      string `json:"league"`
	LeagueLevel string `json:"league_level"`
}

// ClubPatch lists the fields UPDATE_CLUB may change.
type ClubPatch struct {
	Name        *string           `json:"name"`
	League      *string           `json:"league"`
	LeagueLevel *string           `json:"league_level"`
	HomeStadium *string           `json:"home_stadium"`
	Coach       *string           `json:"coach"`
	Players     *[]string         `json:"players"`
	Stats       *models.ClubStats `json:"stats"`
}

// Validate rejects blanking a required field and negative counters.
func (p ClubPatch) Validate() error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"name", p.Name},
		{"league", p.League},
		{"league_level", p.LeagueLevel},
		{"home_stadium", p.HomeStadium},
		{"coach", p.Coach},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return apperrors.Newf(apperrors.CodeValidation, "Field %s cannot be empty", f.name)
		}
	}
	if p.Stats != nil && !p.Stats.Valid() {
		return apperrors.New(apperrors.CodeValidation, "Club stats cannot be negative")
	}
	return nil
}

// Apply copies the set fields onto club. Goal difference is always derived
// from goals for and against.
func (p ClubPatch) Apply(club *models.Club) {
	if p.Name != nil {
		club.Name = *p.Name
	}
	if p.League != nil {
		club.League = *p.League
	}
	if p.LeagueLevel != nil {
		club.LeagueLevel = *p.LeagueLevel
	}
	if p.HomeStadium != nil {
		club.HomeStadium = *p.HomeStadium
	}
	if p.Coach != nil {
		club.Coach = *p.Coach
	}
	if p.Players != nil {
		club.Players = append([]string{}, *p.Players...)
	}
	if p.Stats != nil {
		club.Stats = *p.Stats
		club.Stats.GoalDifference = club.Stats.GoalsFor - club.Stats.GoalsAgainst
	}
}
