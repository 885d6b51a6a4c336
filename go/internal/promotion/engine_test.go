package promotion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/clubs"
	"github.com/mcdev12/leaguekeeper/go/internal/events"
	"github.com/mcdev12/leaguekeeper/go/internal/leagues"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
	"github.com/mcdev12/leaguekeeper/go/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type testEnv struct {
	engine    *Engine
	leagues   *leagues.Repository
	clubs     *clubs.Repository
	publisher *recordingPublisher
	clock     *clockwork.FakeClock
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := testutil.NewStore(t)
	env := testEnv{
		leagues:   leagues.NewRepository(store),
		clubs:     clubs.NewRepository(store),
		publisher: &recordingPublisher{},
		clock:     clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
	}
	env.engine = NewEngine(env.leagues, env.clubs, WithPublisher(env.publisher), WithClock(env.clock))
	return env
}

func (env testEnv) league(t *testing.T, id string, promote, relegate int) {
	t.Helper()
	_, err := env.leagues.CreateLeague(context.Background(), models.League{
		ID:                       id,
		Name:                     "League " + id,
		Season:                   "2024",
		LeagueLevels:             []string{},
		PromotionRelegationRules: models.PromotionRules{Promote: promote, Relegate: relegate},
	})
	require.NoError(t, err)
}

func (env testEnv) level(t *testing.T, leagueID, id, name string, tier int) {
	t.Helper()
	_, err := env.leagues.CreateLevel(context.Background(), models.LeagueLevel{
		ID: id, Name: name, LeagueID: leagueID, Tier: tier,
	})
	require.NoError(t, err)
}

func (env testEnv) club(t *testing.T, id, levelID string, stats models.ClubStats) {
	t.Helper()
	_, err := env.clubs.CreateClub(context.Background(), models.Club{
		ID: id, Name: id, LeagueLevel: levelID, Players: []string{}, Stats: stats,
	})
	require.NoError(t, err)
}

func (env testEnv) levelOf(t *testing.T, clubID string) string {
	t.Helper()
	club, err := env.clubs.GetClub(context.Background(), clubID)
	require.NoError(t, err)
	require.NotNil(t, club)
	return club.LeagueLevel
}

func pts(points int) models.ClubStats {
	return models.ClubStats{Points: points}
}

// two levels, one club up and one down per run
func setupScenario(t *testing.T) testEnv {
	env := setupTestEnv(t)
	env.league(t, "L", 1, 1)
	env.level(t, "L", "lvl-2", "Level 2", 2)
	env.level(t, "L", "lvl-1", "Level 1", 1)
	env.club(t, "A", "lvl-2", pts(10))
	env.club(t, "B", "lvl-2", pts(4))
	env.club(t, "C", "lvl-1", pts(8))
	env.club(t, "D", "lvl-1", pts(2))
	return env
}

func TestExecute_PromotesTopAndRelegatesBottom(t *testing.T) {
	ctx := context.Background()
	env := setupScenario(t)

	result, err := env.engine.Execute(ctx, "L")
	require.NoError(t, err)

	assert.Equal(t, []Move{{Club: "A", ClubID: "A", FromLevel: "Level 2", ToLevel: "Level 1"}}, result.Promoted)
	assert.Equal(t, []Move{{Club: "D", ClubID: "D", FromLevel: "Level 1", ToLevel: "Level 2"}}, result.Relegated)
	assert.Empty(t, result.Message)

	assert.Equal(t, "lvl-1", env.levelOf(t, "A"))
	assert.Equal(t, "lvl-2", env.levelOf(t, "B"))
	assert.Equal(t, "lvl-1", env.levelOf(t, "C"))
	assert.Equal(t, "lvl-2", env.levelOf(t, "D"))

	top, err := env.leagues.GetLevel(ctx, "lvl-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, top.Clubs)
	assert.Empty(t, top.Rankings)

	bottom, err := env.leagues.GetLevel(ctx, "lvl-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D"}, bottom.Clubs)
}

func TestExecute_SecondRunRanksNewAssignment(t *testing.T) {
	ctx := context.Background()
	env := setupScenario(t)

	_, err := env.engine.Execute(ctx, "L")
	require.NoError(t, err)

	result, err := env.engine.Execute(ctx, "L")
	require.NoError(t, err)

	// Level 1 now holds A(10) and C(8); Level 2 holds B(4) and D(2).
	assert.Equal(t, []Move{{Club: "B", ClubID: "B", FromLevel: "Level 2", ToLevel: "Level 1"}}, result.Promoted)
	assert.Equal(t, []Move{{Club: "C", ClubID: "C", FromLevel: "Level 1", ToLevel: "Level 2"}}, result.Relegated)
	assert.Equal(t, "lvl-1", env.levelOf(t, "B"))
	assert.Equal(t, "lvl-2", env.levelOf(t, "C"))
}

func TestExecute_PublishesEvent(t *testing.T) {
	env := setupScenario(t)

	_, err := env.engine.Execute(context.Background(), "L")
	require.NoError(t, err)

	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, events.TypePromotionExecuted, event.Type)
	assert.Equal(t, "L", event.LeagueID)
	assert.Equal(t, env.clock.Now(), event.OccurredAt)

	payload, ok := event.Payload.(ExecutedPayload)
	require.True(t, ok)
	assert.Equal(t, "2024", payload.Season)
	assert.Len(t, payload.Promoted, 1)
	assert.Len(t, payload.Relegated, 1)
}

func TestExecute_PublishFailureDoesNotFailRun(t *testing.T) {
	env := setupScenario(t)
	env.publisher.err = errors.New("broker down")

	result, err := env.engine.Execute(context.Background(), "L")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Moves())
	assert.Equal(t, "lvl-1", env.levelOf(t, "A"))
}

func TestExecute_NotEnoughLevels(t *testing.T) {
	env := setupTestEnv(t)
	env.league(t, "L", 2, 2)
	env.level(t, "L", "only", "Level 1", 1)
	env.club(t, "A", "only", pts(3))

	result, err := env.engine.Execute(context.Background(), "L")
	require.NoError(t, err)
	assert.Equal(t, NotEnoughLevelsMessage, result.Message)
	assert.Empty(t, result.Promoted)
	assert.Empty(t, result.Relegated)
	assert.Empty(t, env.publisher.events)
	assert.Equal(t, "only", env.levelOf(t, "A"))
}

func TestExecute_UnknownLeague(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.engine.Execute(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestExecute_CountsAreClamped(t *testing.T) {
	env := setupTestEnv(t)
	env.league(t, "L", 5, 5)
	env.level(t, "L", "top", "Premier", 1)
	env.level(t, "L", "mid", "Championship", 2)
	env.level(t, "L", "low", "League One", 3)
	env.club(t, "T1", "top", pts(1))
	env.club(t, "M1", "mid", pts(9))
	env.club(t, "M2", "mid", pts(5))

	result, err := env.engine.Execute(context.Background(), "L")
	require.NoError(t, err)

	// the middle level is smaller than promote+relegate; promotion wins
	require.Len(t, result.Promoted, 2)
	assert.Equal(t, "M1", result.Promoted[0].ClubID)
	assert.Equal(t, "M2", result.Promoted[1].ClubID)
	require.Len(t, result.Relegated, 1)
	assert.Equal(t, "T1", result.Relegated[0].ClubID)
	assert.Equal(t, "Championship", result.Relegated[0].ToLevel)

	assert.Equal(t, "mid", env.levelOf(t, "T1"))
	assert.Equal(t, "top", env.levelOf(t, "M1"))
}

func TestExecute_IgnoresOtherLeagues(t *testing.T) {
	env := setupScenario(t)
	env.league(t, "other", 1, 1)
	env.level(t, "other", "o1", "Level 1", 1)
	env.level(t, "other", "o2", "Level 2", 2)
	env.club(t, "X", "o2", pts(50))

	_, err := env.engine.Execute(context.Background(), "L")
	require.NoError(t, err)
	assert.Equal(t, "o2", env.levelOf(t, "X"))
}

func TestRankClubs_TieBreakers(t *testing.T) {
	in := []models.Club{
		{ID: "a", Stats: models.ClubStats{Points: 10, GoalDifference: 1, GoalsFor: 5}},
		{ID: "b", Stats: models.ClubStats{Points: 10, GoalDifference: 3, GoalsFor: 2}},
		{ID: "c", Stats: models.ClubStats{Points: 10, GoalDifference: 1, GoalsFor: 7}},
		{ID: "d", Stats: models.ClubStats{Points: 12}},
		{ID: "e", Stats: models.ClubStats{Points: 10, GoalDifference: 1, GoalsFor: 5}},
	}

	ranked := RankClubs(in)

	var ids []string
	for _, c := range ranked {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"d", "b", "c", "a", "e"}, ids)
	assert.Equal(t, "a", in[0].ID, "input untouched")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name                      string
		n, promote, relegate      int
		canPromote, canRelegate   bool
		wantPromote, wantRelegate int
	}{
		{"middle level", 10, 2, 2, true, true, 2, 2},
		{"top level", 10, 2, 2, false, true, 0, 2},
		{"bottom level", 10, 2, 2, true, false, 2, 0},
		{"small level", 3, 2, 2, true, true, 2, 1},
		{"empty level", 0, 2, 2, true, true, 0, 0},
		{"negative counts", 4, -1, -3, true, true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, r := split(tt.n, tt.promote, tt.relegate, tt.canPromote, tt.canRelegate)
			assert.Equal(t, tt.wantPromote, p)
			assert.Equal(t, tt.wantRelegate, r)
		})
	}
}

func TestGetLeagueTable_FillsCacheLazily(t *testing.T) {
	ctx := context.Background()
	env := setupScenario(t)

	table, err := env.engine.GetLeagueTable(ctx, "lvl-2")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, models.Ranking{Rank: 1, ClubID: "A", ClubName: "A", Points: 10}, table[0])
	assert.Equal(t, 2, table[1].Rank)

	level, err := env.leagues.GetLevel(ctx, "lvl-2")
	require.NoError(t, err)
	assert.Equal(t, table, level.Rankings)

	// cached rows are served even after stats move on
	_, _, err = env.clubs.UpdateClub(ctx, "B", clubs.ClubPatch{Stats: &models.ClubStats{Points: 30}})
	require.NoError(t, err)
	cached, err := env.engine.GetLeagueTable(ctx, "lvl-2")
	require.NoError(t, err)
	assert.Equal(t, "A", cached[0].ClubID)

	fresh, err := env.engine.CalculateClubRankings(ctx, "lvl-2")
	require.NoError(t, err)
	assert.Equal(t, "B", fresh[0].ClubID)
}

func TestGetLeagueTable_ConcurrentWithExecuteNeverCachesMovedClubs(t *testing.T) {
	ctx := context.Background()
	env := setupScenario(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := env.engine.Execute(ctx, "L")
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := env.engine.GetLeagueTable(ctx, "lvl-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	level, err := env.leagues.GetLevel(ctx, "lvl-1")
	require.NoError(t, err)
	for _, row := range level.Rankings {
		assert.Equal(t, "lvl-1", env.levelOf(t, row.ClubID), "cached row for %s", row.ClubID)
	}
}

func TestRankings_UnknownLevel(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.engine.GetLeagueTable(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = env.engine.CalculateClubRankings(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
