package nationalteams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/testutil"
)

func setupTestRouter(t *testing.T) *command.Router {
	t.Helper()
	return testutil.NewRouter(NewService(NewApp(NewRepository(testutil.NewStore(t)))))
}

func TestService_Lifecycle(t *testing.T) {
	r := setupTestRouter(t)

	resp := testutil.Call(t, r, "ADD_NATIONAL_TEAM", map[string]any{"country_name": "China", "coach": "Zhang"})
	var team models.NationalTeam
	testutil.DecodeData(t, resp, &team)
	require.NotEmpty(t, team.ID)
	assert.Equal(t, []string{}, team.Players)

	resp = testutil.Call(t, r, "UPDATE_NATIONAL_TEAM", map[string]any{
		"id":      team.ID,
		"updates": map[string]any{"players": []string{"p1", "p2"}},
	})
	var updated models.NationalTeam
	testutil.DecodeData(t, resp, &updated)
	assert.Equal(t, []string{"p1", "p2"}, updated.Players)
	assert.Equal(t, "Zhang", updated.Coach)

	resp = testutil.Call(t, r, "GET_NATIONAL_TEAM", map[string]any{"id": team.ID})
	var got models.NationalTeam
	testutil.DecodeData(t, resp, &got)
	assert.Equal(t, updated, got)

	resp = testutil.Call(t, r, "DELETE_NATIONAL_TEAM", map[string]any{"id": team.ID})
	assert.Equal(t, command.StatusSuccess, resp.Status)

	resp = testutil.Call(t, r, "DELETE_NATIONAL_TEAM", map[string]any{"id": team.ID})
	assert.Equal(t, apperrors.CodeNotFound, resp.Code)
	assert.Equal(t, "National team not found", resp.Message)
}

func TestService_AddRequiresFields(t *testing.T) {
	r := setupTestRouter(t)

	resp := testutil.Call(t, r, "ADD_NATIONAL_TEAM", map[string]any{"country_name": "China"})
	assert.Equal(t, apperrors.CodeValidation, resp.Code)
	assert.Equal(t, "Missing required fields for ADD_NATIONAL_TEAM: [coach]", resp.Message)
}

func TestService_UpdateRejectsBlankCoach(t *testing.T) {
	r := setupTestRouter(t)

	resp := testutil.Call(t, r, "ADD_NATIONAL_TEAM", map[string]any{"country_name": "Japan", "coach": "Mori"})
	var team models.NationalTeam
	testutil.DecodeData(t, resp, &team)

	resp = testutil.Call(t, r, "UPDATE_NATIONAL_TEAM", map[string]any{
		"id":      team.ID,
		"updates": map[string]any{"coach": " "},
	})
	assert.Equal(t, apperrors.CodeValidation, resp.Code)
}
