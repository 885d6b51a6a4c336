package models

import "encoding/json"

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// Valid reports whether s is a known status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusInProgress, MatchStatusCompleted:
		return true
	}
	return false
}

// MatchType distinguishes competitions. Only league matches count toward
// club stats.
type MatchType string

const (
	MatchTypeLeague   MatchType = "league"
	MatchTypeCup      MatchType = "cup"
	MatchTypeFriendly MatchType = "friendly"
)

// Valid reports whether t is a known match type.
func (t MatchType) Valid() bool {
	switch t {
	case MatchTypeLeague, MatchTypeCup, MatchTypeFriendly:
		return true
	}
	return false
}

// Score is the final or running score.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// GoalScorer records a single goal.
type GoalScorer struct {
	PlayerID string `json:"player_id"`
	Team     string `json:"team"`
	Minute   int    `json:"minute"`
}

// Match is a fixture between two clubs. HomeTeam/AwayTeam are club ids.
type Match struct {
	ID          string       `json:"id"`
	HomeTeam    string       `json:"home_team"`
	AwayTeam    string       `json:"away_team"`
	MatchTime   string       `json:"match_time"`
	Location    string       `json:"location"`
	Score       Score        `json:"score"`
	GoalScorers []GoalScorer `json:"goal_scorers"`
	Status      MatchStatus  `json:"status"`
	MatchType   MatchType    `json:"match_type"`
}

// GetID returns the record id.
func (m Match) GetID() string { return m.ID }

// UnmarshalJSON defaults status to scheduled and type to league.
func (m *Match) UnmarshalJSON(data []byte) error {
	type alias Match
	aux := alias{Status: MatchStatusScheduled, MatchType: MatchTypeLeague}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Match(aux)
	m.GoalScorers = nonNil(m.GoalScorers)
	return nil
}
