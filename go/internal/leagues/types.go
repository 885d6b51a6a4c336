package leagues

import (
	"strings"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// CreateLeagueRequest represents the data needed to create a new league
type CreateLeagueRequest struct {
	Name                     string                 `json:"name"`
	Season                   string                 `json:"season"`
	PromotionRelegationRules *PromotionRulesRequest `json:"promotion_relegation_rules"`
}

// PromotionRulesRequest carries optional promote/relegate counts. Absent
// counts keep their current or default value.
type PromotionRulesRequest struct {
	Promote  *int `json:"promote"`
	Relegate *int `json:"relegate"`
}

func (r *PromotionRulesRequest) validate() error {
	if r == nil {
		return nil
	}
	if (r.Promote != nil && *r.Promote < 0) || (r.Relegate != nil && *r.Relegate < 0) {
		return apperrors.New(apperrors.CodeValidation, "Promotion and relegation counts cannot be negative")
	}
	return nil
}

func (r *PromotionRulesRequest) applyTo(rules *models.PromotionRules) {
	if r == nil {
		return
	}
	if r.Promote != nil {
		rules.Promote = *r.Promote
	}
	if r.Relegate != nil {
		rules.Relegate = *r.Relegate
	}
}

// LeaguePatch lists the fields UPDATE_LEAGUE may change. The level list is
// maintained by the level commands.
type LeaguePatch struct {
	Name                     *string                `json:"name"`
	Season                   *string                `json:"season"`
	PromotionRelegationRules *PromotionRulesRequest `json:"promotion_relegation_rules"`
}

// Validate rejects blanking a required field and negative counts.
func (p LeaguePatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperrors.New(apperrors.CodeValidation, "Field name cannot be empty")
	}
	if p.Season != nil && strings.TrimSpace(*p.Season) == "" {
		return apperrors.New(apperrors.CodeValidation, "Field season cannot be empty")
	}
	return p.PromotionRelegationRules.validate()
}

// Apply copies the set fields onto league.
func (p LeaguePatch) Apply(league *models.League) {
	if p.Name != nil {
		league.Name = *p.Name
	}
	if p.Season != nil {
		league.Season = *p.Season
	}
	p.PromotionRelegationRules.applyTo(&league.PromotionRelegationRules)
}

// CreateLevelRequest is the payload of ADD_LEAGUE_LEVEL. Without a tier the
// level goes below the league's current lowest tier.
type CreateLevelRequest struct {
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
	Tier     *int   `json:"tier"`
}

// ListLevelsRequest optionally narrows GET_LEAGUE_LEVELS to one league.
type ListLevelsRequest struct {
	LeagueID string `json:"league_id"`
}

// LevelPatch lists the fields UPDATE_LEAGUE_LEVEL may change. Clubs are set
// with SET_CLUBS_TO_LEVEL and rankings are derived.
type LevelPatch struct {
	Name *string `json:"name"`
	Tier *int    `json:"tier"`
}

// Validate rejects a blank name and non-positive tiers.
func (p LevelPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return apperrors.New(apperrors.CodeValidation, "Field name cannot be empty")
	}
	if p.Tier != nil && *p.Tier < 1 {
		return apperrors.New(apperrors.CodeValidation, "Tier must be 1 or greater")
	}
	return nil
}

// SetClubsRequest is the payload of SET_CLUBS_TO_LEVEL.
type SetClubsRequest struct {
	LevelID string   `json:"level_id"`
	ClubIDs []string `json:"club_ids"`
}
