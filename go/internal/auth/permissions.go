package auth

import (
	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// sessionOnly marks commands that any logged-in user may run.
const sessionOnly = ""

// commandPermissions maps every session-gated command to the capability it
// needs. Commands missing from this table are refused for everyone.
var commandPermissions = map[string]string{
	"LOGOUT":        sessionOnly,
	"GET_USER_INFO": sessionOnly,

	"ADD_USER": "add_user",

	"GET_PLAYERS":   "get_players",
	"GET_PLAYER":    "get_players",
	"ADD_PLAYER":    "add_player",
	"UPDATE_PLAYER": "update_player",
	"DELETE_PLAYER": "delete_player",

	"GET_CLUBS":   "get_clubs",
	"GET_CLUB":    "get_clubs",
	"ADD_CLUB":    "add_club",
	"UPDATE_CLUB": "update_club",
	"DELETE_CLUB": "delete_club",

	"GET_LEAGUES":   "get_leagues",
	"GET_LEAGUE":    "get_leagues",
	"ADD_LEAGUE":    "add_league",
	"UPDATE_LEAGUE": "update_league",
	"DELETE_LEAGUE": "delete_league",

	"GET_LEAGUE_LEVELS":   "get_league_levels",
	"GET_LEAGUE_LEVEL":    "get_league_levels",
	"ADD_LEAGUE_LEVEL":    "add_league_level",
	"UPDATE_LEAGUE_LEVEL": "update_league_level",
	"DELETE_LEAGUE_LEVEL": "delete_league_level",
	"SET_CLUBS_TO_LEVEL":  "set_clubs_to_level",

	"GET_NATIONAL_TEAMS":   "get_national_teams",
	"GET_NATIONAL_TEAM":    "get_national_teams",
	"ADD_NATIONAL_TEAM":    "add_national_team",
	"UPDATE_NATIONAL_TEAM": "update_national_team",
	"DELETE_NATIONAL_TEAM": "delete_national_team",

	"GET_MATCHES":         "get_matches",
	"GET_MATCH":           "get_matches",
	"ADD_MATCH":           "add_match",
	"UPDATE_MATCH":        "update_match",
	"DELETE_MATCH":        "delete_match",
	"RECORD_MATCH_RESULT": "update_match",

	"EXECUTE_PROMOTION_RELEGATION": "execute_promotion_relegation",
	"CALCULATE_RANKINGS":           "get_league_levels",
	"GET_LEAGUE_TABLE":             "get_league_levels",
}

// RequiredPermission returns the capability a command needs. ok is false for
// commands that are not mapped.
func RequiredPermission(cmd string) (permission string, ok bool) {
	permission, ok = commandPermissions[cmd]
	return permission, ok
}

// Authorize reports whether user may run cmd. Admins pass every mapped
// command; unmapped commands are always refused.
func (m *Manager) Authorize(user models.User, cmd string) error {
	permission, ok := RequiredPermission(cmd)
	if !ok {
		return errForbidden()
	}
	if permission == sessionOnly || user.HasPermission(permission) {
		return nil
	}
	return errForbidden()
}

func errForbidden() error {
	return apperrors.New(apperrors.CodeForbidden, "Forbidden: You don't have permission to perform this action")
}
