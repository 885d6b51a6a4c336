package players

import (
	"strings"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// CreatePlayerRequest represents the data needed to register a player
type CreatePlayerRequest struct {
	Name         string              `json:"name"`
	Position     string              `json:"position"`
	QQ           string              `json:"qq"`
	GameID       string              `json:"game_id"`
	Club         string              `json:"club"`
	NationalTeam string              `json:"national_team"`
	Stats        *models.PlayerStats `json:"stats"`
}

// ListPlayersRequest optionally narrows GET_PLAYERS.
type ListPlayersRequest struct {
	Club         string `json:"club"`
	NationalTeam string `json:"national_team"`
}

// PlayerPatch lists the fields UPDATE_PLAYER may change. Nil fields are left
// untouched.
type PlayerPatch struct {
	Name         *string             `json:"name"`
	Position     *string             `json:"position"`
	QQ           *string             `json:"qq"`
	GameID       *string             `json:"game_id"`
	Club         *string             `json:"club"`
	NationalTeam *string             `json:"national_team"`
	Stats        *models.PlayerStats `json:"stats"`
}

// Validate rejects blanking a required field.
func (p PlayerPatch) Validate() error {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"name", p.Name},
		{"position", p.Position},
		{"qq", p.QQ},
		{"game_id", p.GameID},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return apperrors.Newf(apperrors.CodeValidation, "Field %s cannot be empty", f.name)
		}
	}
	if p.Stats != nil && !statsValid(*p.Stats) {
		return apperrors.New(apperrors.CodeValidation, "Player stats cannot be negative")
	}
	return nil
}

// Apply copies the set fields onto player.
func (p PlayerPatch) Apply(player *models.Player) {
	if p.Name != nil {
		player.Name = *p.Name
	}
	if p.Position != nil {
		player.Position = *p.Position
	}
	if p.QQ != nil {
		player.QQ = *p.QQ
	}
	if p.GameID != nil {
		player.GameID = *p.GameID
	}
	if p.Club != nil {
		player.Club = *p.Club
	}
	if p.NationalTeam != nil {
		player.NationalTeam = *p.NationalTeam
	}
	if p.Stats != nil {
		player.Stats = *p.Stats
	}
}

func statsValid(s models.PlayerStats) bool {
	return s.Goals >= 0 && s.Assists >= 0 && s.Apps >= 0 && s.YellowCards >= 0 && s.RedCards >= 0
}
