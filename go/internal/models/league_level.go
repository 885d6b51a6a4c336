package models

import "encoding/json"

// Ranking is one row of a level's cached table.
type Ranking struct {
	Rank           int    `json:"rank"`
	ClubID         string `json:"club_id"`
	ClubName       string `json:"club_name"`
	Points         int    `json:"points"`
	GoalDifference int    `json:"goal_difference"`
	GoalsFor       int    `json:"goals_for"`
}

// LeagueLevel is one tier of a league. Tier 1 is the top division; zero means
// no explicit tier, and such levels are ordered by name below tiered ones.
type LeagueLevel struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	LeagueID string    `json:"league_id"`
	Tier     int       `json:"tier"`
	Clubs    []string  `json:"clubs"`
	Rankings []Ranking `json:"rankings"`
}

// GetID returns the record id.
func (l LeagueLevel) GetID() string { return l.ID }

// UnmarshalJSON tolerates older records with missing fields.
func (l *LeagueLevel) UnmarshalJSON(data []byte) error {
	type alias LeagueLevel
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = LeagueLevel(aux)
	l.Clubs = nonNil(l.Clubs)
	l.Rankings = nonNil(l.Rankings)
	return nil
}
