package promotion

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/apperrors"
	"github.com/mcdev12/leaguekeeper/go/internal/clubs"
	"github.com/mcdev12/leaguekeeper/go/internal/events"
	"github.com/mcdev12/leaguekeeper/go/internal/leagues"
	"github.com/mcdev12/leaguekeeper/go/internal/models"
)

// LeaguesRepository defines what the engine needs from league storage
type LeaguesRepository interface {
	GetLeague(ctx context.Context, id string) (*models.League, error)
	GetLevel(ctx context.Context, id string) (*models.LeagueLevel, error)
	ListLevels(ctx context.Context, leagueID string) ([]models.LeagueLevel, error)
	ReplaceLevelClubs(ctx context.Context, clubsByLevel map[string][]string) error
	SetRankings(ctx context.Context, levelID string, rankings []models.Ranking) error
}

// ClubsRepository defines what the engine needs from club storage
type ClubsRepository interface {
	ListClubs(ctx context.Context, filter clubs.ListClubsRequest) ([]models.Club, error)
	MoveClubs(ctx context.Context, moves map[string]string) (int, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithPublisher sets where promotion events are sent.
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) {
		e.publisher = p
	}
}

// WithClock sets the clock used to stamp events.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// Engine runs promotion/relegation and maintains cached league tables.
type Engine struct {
	leagues   LeaguesRepository
	clubs     ClubsRepository
	publisher events.Publisher
	clock     clockwork.Clock

	// mu serializes runs and table computation.
	mu sync.Mutex
}

// NewEngine creates a new promotion Engine
func NewEngine(leagues LeaguesRepository, clubs ClubsRepository, opts ...Option) *Engine {
	e := &Engine{
		leagues:   leagues,
		clubs:     clubs,
		publisher: events.NoopPublisher{},
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute moves the top clubs of every level but the top one up a tier and
// the bottom clubs of every level but the lowest one down a tier. All moves
// are computed from one snapshot of the clubs collection and written
// together.
func (e *Engine) Execute(ctx context.Context, leagueID string) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	league, err := e.leagues.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if league == nil {
		return nil, apperrors.NotFound("League")
	}

	levels, err := e.leagues.ListLevels(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	leagues.SortLevels(levels)

	if len(levels) < 2 {
		result := emptyResult()
		result.Message = NotEnoughLevelsMessage
		log.Info().
			Str("league_id", leagueID).
			Int("levels", len(levels)).
			Msg("skipped promotion/relegation")
		return result, nil
	}

	snapshot, err := e.clubs.ListClubs(ctx, clubs.ListClubsRequest{})
	if err != nil {
		return nil, err
	}

	byLevel := make(map[string][]models.Club, len(levels))
	for _, club := range snapshot {
		byLevel[club.LeagueLevel] = append(byLevel[club.LeagueLevel], club)
	}

	rules := league.PromotionRelegationRules
	result := emptyResult()
	moves := make(map[string]string)

	for i, level := range levels {
		ranked := RankClubs(byLevel[level.ID])
		promote, relegate := split(len(ranked), rules.Promote, rules.Relegate, i > 0, i < len(levels)-1)

		for _, club := range ranked[:promote] {
			above := levels[i-1]
			moves[club.ID] = above.ID
			result.Promoted = append(result.Promoted, Move{
				Club:      club.Name,
				ClubID:    club.ID,
				FromLevel: level.Name,
				ToLevel:   above.Name,
			})
		}
		for _, club := range ranked[len(ranked)-relegate:] {
			below := levels[i+1]
			moves[club.ID] = below.ID
			result.Relegated = append(result.Relegated, Move{
				Club:      club.Name,
				ClubID:    club.ID,
				FromLevel: level.Name,
				ToLevel:   below.Name,
			})
		}
	}

	if len(moves) > 0 {
		if _, err := e.clubs.MoveClubs(ctx, moves); err != nil {
			return nil, err
		}
	}

	membership := make(map[string][]string, len(levels))
	for _, level := range levels {
		membership[level.ID] = []string{}
	}
	for _, club := range snapshot {
		target := club.LeagueLevel
		if to, moved := moves[club.ID]; moved {
			target = to
		}
		if _, ok := membership[target]; ok {
			membership[target] = append(membership[target], club.ID)
		}
	}
	if err := e.leagues.ReplaceLevelClubs(ctx, membership); err != nil {
		return nil, err
	}

	log.Info().
		Str("league_id", leagueID).
		Int("promoted", len(result.Promoted)).
		Int("relegated", len(result.Relegated)).
		Msg("executed promotion/relegation")

	if result.Moves() > 0 {
		e.publish(ctx, league, result)
	}

	return result, nil
}

func (e *Engine) publish(ctx context.Context, league *models.League, result *Result) {
	event := events.NewEvent(events.TypePromotionExecuted, league.ID, e.clock.Now(), ExecutedPayload{
		LeagueID:  league.ID,
		Season:    league.Season,
		Promoted:  result.Promoted,
		Relegated: result.Relegated,
	})
	if err := e.publisher.Publish(ctx, event); err != nil {
		log.Warn().
			Err(err).
			Str("league_id", league.ID).
			Str("event_id", event.ID).
			Msg("failed to publish promotion event")
	}
}

// CalculateClubRankings ranks the clubs assigned to a level and caches the
// table on the level.
func (e *Engine) CalculateClubRankings(ctx context.Context, levelID string) ([]models.Ranking, error) {
	level, err := e.leagues.GetLevel(ctx, levelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, apperrors.NotFound("League level")
	}
	return e.rank(ctx, levelID)
}

// rank holds the run lock so a table computed from pre-run clubs cannot be
// cached after a run has cleared it.
func (e *Engine) rank(ctx context.Context, levelID string) ([]models.Ranking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	members, err := e.clubs.ListClubs(ctx, clubs.ListClubsRequest{LeagueLevel: levelID})
	if err != nil {
		return nil, err
	}
	table := Table(RankClubs(members))
	if err := e.leagues.SetRankings(ctx, levelID, table); err != nil {
		return nil, err
	}
	return table, nil
}

// GetLeagueTable returns the cached table of a level, computing it first when
// the cache is empty.
func (e *Engine) GetLeagueTable(ctx context.Context, levelID string) ([]models.Ranking, error) {
	level, err := e.leagues.GetLevel(ctx, levelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, apperrors.NotFound("League level")
	}
	if len(level.Rankings) > 0 {
		return level.Rankings, nil
	}
	return e.rank(ctx, levelID)
}
