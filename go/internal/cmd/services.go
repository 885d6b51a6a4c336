package main

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguekeeper/go/internal/auth"
	"github.com/mcdev12/leaguekeeper/go/internal/clubs"
	"github.com/mcdev12/leaguekeeper/go/internal/command"
	"github.com/mcdev12/leaguekeeper/go/internal/config"
	"github.com/mcdev12/leaguekeeper/go/internal/events"
	"github.com/mcdev12/leaguekeeper/go/internal/leagues"
	"github.com/mcdev12/leaguekeeper/go/internal/matches"
	"github.com/mcdev12/leaguekeeper/go/internal/nationalteams"
	"github.com/mcdev12/leaguekeeper/go/internal/players"
	"github.com/mcdev12/leaguekeeper/go/internal/promotion"
	"github.com/mcdev12/leaguekeeper/go/internal/storage"
	"github.com/mcdev12/leaguekeeper/go/internal/users"
)

type Services struct {
	Router    *command.Router
	Sessions  *auth.Manager
	Users     *users.App
	Publisher events.Publisher
}

func setupServices(store *storage.Store, sessions *auth.Manager, publisher events.Publisher, clock clockwork.Clock) *Services {
	// Wire up dependency injection chain
	// Store → Repository layer → App layer → Service layer → Router

	// Users
	userRepo := users.NewRepository(store)
	userApp := users.NewApp(userRepo)
	userService := users.NewService(userApp)

	// Sessions
	authService := auth.NewService(userApp, sessions)

	// Players
	playerRepo := players.NewRepository(store)
	playerApp := players.NewApp(playerRepo)
	playerService := players.NewService(playerApp)

	// Leagues and levels, clubs
	leagueRepo := leagues.NewRepository(store)
	clubRepo := clubs.NewRepository(store)
	clubApp := clubs.NewApp(clubRepo, leagueRepo)
	clubService := clubs.NewService(clubApp)
	leagueApp := leagues.NewApp(leagueRepo, clubRepo)
	leagueService := leagues.NewService(leagueApp)

	// National teams
	nationalTeamRepo := nationalteams.NewRepository(store)
	nationalTeamApp := nationalteams.NewApp(nationalTeamRepo)
	nationalTeamService := nationalteams.NewService(nationalTeamApp)

	// Matches
	matchRepo := matches.NewRepository(store)
	matchApp := matches.NewApp(matchRepo, clubApp)
	matchService := matches.NewService(matchApp)

	// Promotion
	engine := promotion.NewEngine(leagueRepo, clubRepo,
		promotion.WithPublisher(publisher),
		promotion.WithClock(clock),
	)
	promotionService := promotion.NewService(engine)

	router := command.NewRouter(sessions, sessions)
	for _, s := range []command.Registrar{
		authService,
		userService,
		playerService,
		clubService,
		leagueService,
		nationalTeamService,
		matchService,
		promotionService,
	} {
		s.Register(router)
	}

	return &Services{
		Router:    router,
		Sessions:  sessions,
		Users:     userApp,
		Publisher: publisher,
	}
}

// setupPublisher connects to NATS when configured. An unreachable broker
// degrades to dropping events rather than blocking startup.
func setupPublisher(ctx context.Context, cfg config.NATSConfig) events.Publisher {
	if cfg.URL == "" {
		log.Info().Msg("NATS not configured, domain events disabled")
		return events.NoopPublisher{}
	}

	jsCfg := events.DefaultJetStreamConfig()
	jsCfg.URL = cfg.URL
	if cfg.Stream != "" {
		jsCfg.StreamName = cfg.Stream
	}
	if cfg.SubjectPrefix != "" {
		jsCfg.SubjectPrefix = cfg.SubjectPrefix
	}

	publisher, err := events.NewJetStreamPublisher(ctx, jsCfg)
	if err != nil {
		log.Warn().Err(err).Str("url", cfg.URL).Msg("failed to connect to NATS, domain events disabled")
		return events.NoopPublisher{}
	}

	log.Info().
		Str("url", cfg.URL).
		Str("stream", jsCfg.StreamName).
		Msg("publishing domain events to JetStream")
	return publisher
}
