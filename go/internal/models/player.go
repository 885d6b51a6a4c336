package models

// PlayerStats are cumulative per-player counters.
type PlayerStats struct {
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	Apps        int `json:"apps"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
}

// Player is a registered player. Club and NationalTeam are ids and may dangle.
type Player struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Position     string      `json:"position"`
	QQ           string      `json:"qq"`
	GameID       string      `json:"game_id"`
	Club         string      `json:"club"`
	NationalTeam string      `json:"national_team"`
	Stats        PlayerStats `json:"stats"`
}

// GetID returns the record id.
func (p Player) GetID() string { return p.ID }

