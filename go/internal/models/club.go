package models

import "encoding/json"

// ClubStats is a club's league record. GoalDifference must equal
// GoalsFor - GoalsAgainst; ranking relies on it.
type ClubStats struct {
	Points         int `json:"points"`
	Played         int `json:"played"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`
}

// Record adds one league result: 3 points for a win, 1 for a draw.
func (s *ClubStats) Record(goalsFor, goalsAgainst int) {
	s.Played++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	switch {
	case goalsFor > goalsAgainst:
		s.Wins++
		s.Points += 3
	case goalsFor == goalsAgainst:
		s.Draws++
		s.Points++
	default:
		s.Losses++
	}
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
}

// Valid reports whether every counter is non-negative.
func (s ClubStats) Valid() bool {
	return s.Points >= 0 && s.Played >= 0 && s.Wins >= 0 && s.Draws >= 0 &&
		s.Losses >= 0 && s.GoalsFor >= 0 && s.GoalsAgainst >= 0
}

// Club is a team competing in a league level.
type Club struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	League      string    `json:"league"`
	LeagueLevel string    `json:"league_level"`
	HomeStadium string    `json:"home_stadium"`
	Coach       string    `json:"coach"`
	Players     []string  `json:"players"`
	Stats       ClubStats `json:"stats"`
}

// GetID returns the record id.
func (c Club) GetID() string { return c.ID }

// UnmarshalJSON tolerates older records with missing fields.
func (c *Club) UnmarshalJSON(data []byte) error {
	type alias Club
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Club(aux)
	c.Players = nonNil(c.Players)
	return nil
}
