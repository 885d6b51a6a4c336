package nationalteams

import (
	"strings"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// CreateNationalTeamRequest represents the data needed to create a national team
type CreateNationalTeamRequest struct {
	CountryName string   `json:"country_name"`
	Coach       string   `json:"coach"`
	Players     []string `json:"players"`
}

// NationalTeamPatch lists the fields UPDATE_NATIONAL_TEAM may change.
type NationalTeamPatch struct {
	CountryName *string   `json:"country_name"`
	Coach       *string   `json:"coach"`
	Players     *[]string `json:"players"`
}

// Validate rejects blanking a required field.
func (p NationalTeamPatch) Validate() error {
	if p.CountryName != nil && strings.TrimSpace(*p.CountryName) == "" {
		return apperrors.New(apperrors.CodeValidation, "Field country_name cannot be empty")
	}
	if p.Coach != nil && strings.TrimSpace(*p.Coach) == "" {
		return apperrors.New(apperrors.CodeValidation, "Field coach cannot be empty")
	}
	return nil
}

// Apply copies the set fields onto team.
func (p NationalTeamPatch) Apply(team *models.NationalTeam) {
	if p.CountryName != nil {
		team.CountryName = *p.CountryName
	}
	if p.Coach != nil {
		team.Coach = *p.Coach
	}
	if p.Players != nil {
		team.Players = append([]string{}, *p.Players...)
	}
}
