package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/DhavalSuthar-24/leaguehub/config"
	_ "github.com/DhavalSuthar-24/leaguehub/docs"
	"github.com/DhavalSuthar-24/leaguehub/internal/auth"
	"github.com/DhavalSuthar-24/leaguehub/internal/changes"
	"github.com/DhavalSuthar-24/leaguehub/internal/event"
	"github.com/DhavalSuthar-24/leaguehub/internal/export"
	"github.com/DhavalSuthar-24/leaguehub/internal/kit"
	"github.com/DhavalSuthar-24/leaguehub/internal/match"
	"github.com/DhavalSuthar-24/leaguehub/internal/notification"
	"github.com/DhavalSuthar-24/leaguehub/internal/player"
	"github.com/DhavalSuthar-24/leaguehub/internal/registration"
	"github.com/DhavalSuthar-24/leaguehub/internal/scheduler"
	"github.com/DhavalSuthar-24/leaguehub/internal/scout"
	"github.com/DhavalSuthar-24/leaguehub/internal/store"
	"github.com/DhavalSuthar-24/leaguehub/internal/team"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/routes"
)

func setupLogger(development bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if development {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// @title League Hub REST API
// @version 1.0
// @description Players, teams, matches, events, kits and scouting for a sports league.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func run() error {
	err := config.Initialize(func(c *config.Config) {
		setupLogger(c.IsDevelopment())
	})
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	cfg := config.GetConfig()

	err = config.DB.AutoMigrate(
		&user.User{}, &player.Player{}, &team.Team{}, &team.TeamInvitation{},
		&notification.Notification{}, &event.Event{},
		&match.Match{}, &match.MatchRequest{},
		&registration.PlayerRegistrationRequest{},
		&kit.Kit{}, &kit.KitRequest{},
		&scout.ScoutProfile{}, &scout.ScoutActivity{},
	)
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	log.Info().Msg("AutoMigrate successful")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	// abort stops goroutines already started before returning err.
	abort := func(err error) error {
		stop()
		_ = g.Wait()
		return err
	}

	hub := changes.NewHub()
	var feed store.Publisher = hub
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		relay := changes.NewRelay(hub, changes.NewRedisBroker(client), cfg.Redis.Channel)
		feed = relay
		g.Go(func() error { return relay.Run(ctx) })
	}
	st := store.New(config.DB, feed)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		admins := auth.NewService(user.NewUserRepository(st), cfg.JWT.AccessTokenSecret, cfg.JWT.AccessTokenExpiryMinutes)
		if err := admins.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return abort(fmt.Errorf("create admin account: %w", err))
		}
	}

	sched, err := scheduler.New()
	if err != nil {
		return abort(fmt.Errorf("create scheduler: %w", err))
	}
	if err := sched.ScheduleBackups(cfg.Backup.Cron, cfg.Backup.Dir, export.NewService(st)); err != nil {
		return abort(fmt.Errorf("schedule backups: %w", err))
	}
	sched.Start()

	server := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: routes.SetupRoutes(cfg, st, hub),
	}

	g.Go(func() error {
		log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := sched.Stop(); err != nil {
			log.Warn().Err(err).Msg("Scheduler did not stop cleanly")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
