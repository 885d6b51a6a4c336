package leagues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/testutil"
)

func TestService_LeagueAndLevels(t *testing.T) {
	env := setupTestEnv(t)
	r := testutil.NewRouter(NewService(env.app))

	resp := testutil.Call(t, r, "ADD_LEAGUE", map[string]any{
		"name": "Premier", "season": "2024",
		"promotion_relegation_rules": map[string]int{"promote": 1, "relegate": 1},
	})
	var league models.League
	testutil.DecodeData(t, resp, &league)
	assert.Equal(t, models.PromotionRules{Promote: 1, Relegate: 1}, league.PromotionRelegationRules)

	resp = testutil.Call(t, r, "ADD_LEAGUE_LEVEL", map[string]any{"league_id": league.ID, "name": "Level 1"})
	var level models.LeagueLevel
	testutil.DecodeData(t, resp, &level)
	assert.Equal(t, "League level added", resp.Message)

	resp = testutil.Call(t, r, "GET_LEAGUE_LEVELS", map[string]any{"league_id": league.ID})
	var levels []models.LeagueLevel
	testutil.DecodeData(t, resp, &levels)
	require.Len(t, levels, 1)
	assert.Equal(t, level.ID, levels[0].ID)

	resp = testutil.Call(t, r, "UPDATE_LEAGUE_LEVEL", map[string]any{
		"id": level.ID, "updates": map[string]any{"clubs": []string{"x"}},
	})
	assert.Equal(t, apperrors.CodeValidation, resp.Code, "clubs go through SET_CLUBS_TO_LEVEL")

	resp = testutil.Call(t, r, "SET_CLUBS_TO_LEVEL", map[string]any{"level_id": level.ID, "club_ids": []string{"c1"}})
	testutil.DecodeData(t, resp, &level)
	assert.Equal(t, []string{"c1"}, level.Clubs)

	resp = testutil.Call(t, r, "DELETE_LEAGUE", map[string]any{"id": league.ID})
	assert.Equal(t, command.StatusSuccess, resp.Status)

	resp = testutil.Call(t, r, "GET_LEAGUE", map[string]any{"id": league.ID})
	assert.Equal(t, "League not found", resp.Message)
}
