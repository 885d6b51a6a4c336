package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeague_MissingRulesDefaultToTwoTwo(t *testing.T) {
	var league League
	require.NoError(t, json.Unmarshal([]byte(`{"id":"l1","name":"Premier","season":"2024"}`), &league))

	assert.Equal(t, DefaultPromotionRules(), league.PromotionRelegationRules)
	assert.NotNil(t, league.LeagueLevels)
}

func TestLeague_PartialRulesKeepDefaultForAbsentKey(t *testing.T) {
	var league League
	require.NoError(t, json.Unmarshal([]byte(`{"id":"l1","promotion_relegation_rules":{"promote":1}}`), &league))

	assert.Equal(t, 1, league.PromotionRelegationRules.Promote)
	assert.Equal(t, DefaultRelegate, league.PromotionRelegationRules.Relegate)
}

func TestMatch_Defaults(t *testing.T) {
	var match Match
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m1","home_team":"a","away_team":"b"}`), &match))

	assert.Equal(t, MatchStatusScheduled, match.Status)
	assert.Equal(t, MatchTypeLeague, match.MatchType)
	assert.Empty(t, match.GoalScorers)
	assert.NotNil(t, match.GoalScorers)
}

func TestUser_DefaultsAndPermissions(t *testing.T) {
	var user User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","username":"bob"}`), &user))

	assert.Equal(t, RoleUser, user.Role)
	assert.False(t, user.IsAdmin())
	assert.False(t, user.HasPermission("get_players"))

	user.Permissions = []string{"get_players"}
	assert.True(t, user.HasPermission("get_players"))
	assert.False(t, user.HasPermission("add_player"))

	user.Permissions = []string{PermissionAll}
	assert.True(t, user.HasPermission("add_player"))
}

func TestUser_InfoOmitsPassword(t *testing.T) {
	user := User{ID: "u1", Username: "bob", Password: "hash", Role: RoleAdmin}

	data, err := json.Marshal(user.Info())
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hash")
	assert.NotContains(t, string(data), "password")
	assert.Contains(t, string(data), `"permissions":[]`)
}

func TestClub_EmptyListsEncodeAsArrays(t *testing.T) {
	var club Club
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","name":"A"}`), &club))

	data, err := json.Marshal(club)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"players":[]`)
}

func TestLeagueLevel_TierZeroForLegacyRecords(t *testing.T) {
	var level LeagueLevel
	require.NoError(t, json.Unmarshal([]byte(`{"id":"lv","name":"Level 1","league_id":"l1"}`), &level))

	assert.Equal(t, 0, level.Tier)
	assert.NotNil(t, level.Rankings)
}

func TestClubStats_Record(t *testing.T) {
	var s ClubStats
	s.Record(3, 1)
	s.Record(2, 2)
	s.Record(0, 4)

	assert.Equal(t, ClubStats{
		Points:         4,
		Played:         3,
		Wins:           1,
		Draws:          1,
		Losses:         1,
		GoalsFor:       5,
		GoalsAgainst:   7,
		GoalDifference: -2,
	}, s)
	assert.True(t, s.Valid(), "negative goal difference is allowed")
	assert.False(t, ClubStats{Points: -1}.Valid())
}
