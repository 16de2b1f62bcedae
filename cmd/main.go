package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bigredconnect/sessiond/internal/config"
	"github.com/bigredconnect/sessiond/internal/handlers"
	"github.com/bigredconnect/sessiond/internal/logger"
	"github.com/bigredconnect/sessiond/internal/repository"
	"github.com/bigredconnect/sessiond/internal/repository/memory"
	redis_repo "github.com/bigredconnect/sessiond/internal/repository/redis"
	"github.com/bigredconnect/sessiond/internal/router"
	"github.com/bigredconnect/sessiond/internal/server"
	"github.com/bigredconnect/sessiond/internal/service"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.AppEnv)
	log.Logger = log.Logger.With().Str("instance", uuid.NewString()).Logger()

	sessions, profiles, transient := buildRepositories(cfg)

	clock := service.NewSystemClock(cfg.Guard.Location)
	bookings := service.NewBookingState()

	guardSvc := service.NewGuardService(sessions, profiles, clock, cfg.Guard)
	logoutSvc := service.NewLogoutService(
		sessions,
		profiles,
		transient,
		service.NewNotifier(cfg.Notify),
		cfg.Guard.EntryURL,
		cfg.Notify.Timeout,
	)

	enforcer := service.NewEnforcer(guardSvc, logoutSvc, bookings, cfg.Guard.Tick)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	enforcer.Start(ctx)

	app := server.New()
	router.SetupGuardRoutes(app, handlers.NewGuardHandler(
		guardSvc,
		logoutSvc,
		bookings,
		clock,
		cfg.Guard.ReservationLookahead,
		enforcer,
	))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Session guard starting")
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down session guard...")

	enforcer.Stop()
	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	logoutSvc.Wait()

	log.Info().Msg("Session guard stopped gracefully.")
}

// buildRepositories wires Redis-backed state when an address is
// configured and reachable, and falls back to the in-memory stores
// otherwise. The guard must keep running either way; without durable
// state it simply recomputes a fresh window.
func buildRepositories(cfg *config.Config) (repository.SessionStateRepository, repository.ProfileRepository, repository.TransientRepository) {
	if cfg.Redis.Address == "" {
		log.Warn().Msg("No Redis address configured, using in-memory session state")
		return memory.NewMemorySessionStateRepository(), memory.NewMemoryProfileRepository(), memory.NewMemoryTransientRepository()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis unreachable, using in-memory session state")
		return memory.NewMemorySessionStateRepository(), memory.NewMemoryProfileRepository(), memory.NewMemoryTransientRepository()
	}

	return redis_repo.NewRedisSessionStateRepository(client),
		redis_repo.NewRedisProfileRepository(client),
		redis_repo.NewRedisTransientRepository(client)
}
