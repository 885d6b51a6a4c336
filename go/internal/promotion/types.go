package promotion

import "github.com/mcdev12/leaguekeeper/go/internal/models"

// NotEnoughLevelsMessage is reported when a league has fewer than two levels.
const NotEnoughLevelsMessage = "Not enough league levels to perform promotion/relegation"

// ExecuteRequest is the payload of EXECUTE_PROMOTION_RELEGATION.
type ExecuteRequest struct {
	LeagueID string `json:"league_id"`
}

// LevelRequest is the payload of the ranking commands.
type LevelRequest struct {
	LevelID string `json:"level_id"`
}

// Move records one club changing level.
type Move struct {
	Club      string `json:"club"`
	ClubID    string `json:"club_id"`
	FromLevel string `json:"from_level"`
	ToLevel   string `json:"to_level"`
}

// Result is the outcome of one promotion/relegation run.
type Result struct {
	Promoted  []Move `json:"promoted"`
	Relegated []Move `json:"relegated"`
	// Message is set when the run was skipped.
	Message string `json:"message,omitempty"`
}

// Moves returns the total number of clubs moved.
func (r Result) Moves() int {
	return len(r.Promoted) + len(r.Relegated)
}

func emptyResult() *Result {
	return &Result{Promoted: []Move{}, Relegated: []Move{}}
}

// ExecutedPayload is the body of the promotion.executed event.
type ExecutedPayload struct {
	LeagueID  string `json:"league_id"`
	Season    string `json:"season"`
	Promoted  []Move `json:"promoted"`
	Relegated []Move `json:"relegated"`
}

// rankingOf builds a table row for club at the 1-based position rank.
func rankingOf(rank int, club models.Club) models.Ranking {
	return models.Ranking{
		Rank:           rank,
		ClubID:         club.ID,
		ClubName:       club.Name,
		Points:         club.Stats.Points,
		GoalDifference: club.Stats.GoalDifference,
		GoalsFor:       club.Stats.GoalsFor,
	}
}
