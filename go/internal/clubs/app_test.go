package clubs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/testutil"
)

type levelMove struct {
	club, from, to string
}

type recordingLevelSync struct {
	moves   []levelMove
	cleared []string
}

func (r *recordingLevelSync) MoveClub(_ context.Context, clubID, fromLevel, toLevel string) error {
	r.moves = append(r.moves, levelMove{clubID, fromLevel, toLevel})
	return nil
}

func (r *recordingLevelSync) ClearRankings(_ context.Context, levelIDs ...string) error {
	r.cleared = append(r.cleared, levelIDs...)
	return nil
}

func setupTestApp(t *testing.T) (*App, *Repository) {
	t.Helper()
	app, repo, _ := setupTestAppWithSync(t)
	return app, repo
}

func setupTestAppWithSync(t *testing.T) (*App, *Repository, *recordingLevelSync) {
	t.Helper()
	repo := NewRepository(testutil.NewStore(t))
	levels := &recordingLevelSync{}
	return NewApp(repo, levels), repo, levels
}

func newClub(name, level string) CreateClubRequest {
	return CreateClubRequest{
		Name:        name,
		League:      "league-1",
		LeagueLevel: level,
		HomeStadium: name + " Park",
		Coach:       "Coach " + name,
	}
}

func TestCreateClub(t *testing.T) {
	ctx := context.Background()
	app, _ := setupTestApp(t)

	club, err := app.CreateClub(ctx, newClub("Rovers", "lvl-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, club.ID)
	assert.Equal(t, models.ClubStats{}, club.Stats)
	assert.Equal(t, []string{}, club.Players)

	got, err := app.GetClub(ctx, club.ID)
	require.NoError(t, err)
	assert.Equal(t, club, got)
}

func TestCreateClub_MissingFields(t *testing.T) {
	app, _ := setupTestApp(t)

	_, err := app.CreateClub(context.Background(), CreateClubRequest{Name: "Rovers"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "ADD_CLUB")
}

func TestUpdateClub_DerivesGoalDifference(t *testing.T) {
	ctx := context.Background()
	app, _ := setupTestApp(t)
	club, err := app.CreateClub(ctx, newClub("Rovers", "lvl-1"))
	require.NoError(t, err)

	updated, err := app.UpdateClub(ctx, club.ID, ClubPatch{
		Stats: &models.ClubStats{Points: 7, GoalsFor: 9, GoalsAgainst: 4, GoalDifference: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stats.GoalDifference)

	_, err = app.UpdateClub(ctx, club.ID, ClubPatch{Stats: &models.ClubStats{Wins: -1}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateClub_SyncsLevels(t *testing.T) {
	ctx := context.Background()
	app, _, levels := setupTestAppWithSync(t)
	club, err := app.CreateClub(ctx, newClub("Rovers", "lvl-1"))
	require.NoError(t, err)

	moved := "lvl-2"
	_, err = app.UpdateClub(ctx, club.ID, ClubPatch{LeagueLevel: &moved})
	require.NoError(t, err)
	assert.Equal(t, []levelMove{{club.ID, "lvl-1", "lvl-2"}}, levels.moves)
	assert.Empty(t, levels.cleared)

	_, err = app.UpdateClub(ctx, club.ID, ClubPatch{Stats: &models.ClubStats{Points: 3}})
	require.NoError(t, err)
	assert.Equal(t, []string{"lvl-2"}, levels.cleared)
	assert.Len(t, levels.moves, 1)
}

func TestDeleteClub_LeavesLevel(t *testing.T) {
	ctx := context.Background()
	app, _, levels := setupTestAppWithSync(t)
	club, err := app.CreateClub(ctx, newClub("Rovers", "lvl-1"))
	require.NoError(t, err)

	require.NoError(t, app.DeleteClub(ctx, club.ID))
	assert.Equal(t, []levelMove{{club.ID, "lvl-1", ""}}, levels.moves)
}

func TestDeleteClub_MissingLeavesListUnchanged(t *testing.T) {
	ctx := context.Background()
	app, _ := setupTestApp(t)
	_, err := app.CreateClub(ctx, newClub("Rovers", "lvl-1"))
	require.NoError(t, err)

	err = app.DeleteClub(ctx, "does-not-exist")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := app.ListClubs(ctx, ListClubsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRepository_AssignAndMove(t *testing.T) {
	ctx := context.Background()
	app, repo := setupTestApp(t)
	a, err := app.CreateClub(ctx, newClub("A", "lvl-2"))
	require.NoError(t, err)
	b, err := app.CreateClub(ctx, newClub("B", "lvl-2"))
	require.NoError(t, err)

	n, err := repo.AssignLevel(ctx, []string{a.ID, "ghost"}, "lvl-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	inTop, err := repo.ListClubs(ctx, ListClubsRequest{LeagueLevel: "lvl-1"})
	require.NoError(t, err)
	require.Len(t, inTop, 1)
	assert.Equal(t, a.ID, inTop[0].ID)

	n, err = repo.MoveClubs(ctx, map[string]string{a.ID: "lvl-2", b.ID: "lvl-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := repo.GetClub(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "lvl-1", got.LeagueLevel)
}

func TestRecordResult_UpdatesStatsAndClearsTables(t *testing.T) {
	ctx := context.Background()
	app, repo, levels := setupTestAppWithSync(t)
	home, err := app.CreateClub(ctx, newClub("Home", "lvl-1"))
	require.NoError(t, err)
	away, err := app.CreateClub(ctx, newClub("Away", "lvl-2"))
	require.NoError(t, err)

	require.NoError(t, app.RecordResult(ctx, home.ID, away.ID, 2, 1))
	assert.ElementsMatch(t, []string{"lvl-1", "lvl-2"}, levels.cleared)

	h, err := repo.GetClub(ctx, home.ID)
	require.NoError(t, err)
	a, err := repo.GetClub(ctx, away.ID)
	require.NoError(t, err)

	assert.Equal(t, models.ClubStats{Points: 3, Played: 1, Wins: 1, GoalsFor: 2, GoalsAgainst: 1, GoalDifference: 1}, h.Stats)
	assert.Equal(t, models.ClubStats{Played: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1}, a.Stats)
}
