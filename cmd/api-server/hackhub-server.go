package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hackhub/db"
	"hackhub/db/migrations"
	"hackhub/internal/auth"
	"hackhub/internal/cache"
	"hackhub/internal/config"
	"hackhub/internal/handlers"
	"hackhub/internal/logger"
	"hackhub/internal/moderation"
	"hackhub/internal/sweep"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := sqlx.Connect("postgres", cfg.PostgresConn)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot connect to DB")
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn.DB); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	store := db.NewStorage(dbConn)

	// кэш необязателен: без REDIS_URL список читается из базы
	var publicCache moderation.PublicCache
	var invalidator sweep.Invalidator
	if cfg.RedisURL != "" {
		pc, err := cache.New(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache")
		} else {
			defer pc.Close()
			publicCache, invalidator = pc, pc
		}
	}

	clock := clockwork.NewRealClock()
	svc := moderation.NewService(store, publicCache)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		log.Warn().Msg("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set, login disabled")
	}
	login := auth.NewLogin(auth.Credentials{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash}, tokens)

	scheduler := sweep.New(store, invalidator, clock)
	if cfg.SweepOnStart {
		// догоняем пропущенную полночь, если сервер был выключен
		if _, err := scheduler.RunOnce(ctx, clock.Now()); err != nil {
			log.Error().Err(err).Msg("startup sweep failed")
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	h := handlers.NewHandler(store, svc, auth.NewGate(tokens), login, clock)
	router := handlers.NewRouter(h, handlers.RouterOptions{
		CORSOrigins:      cfg.CORSOrigins,
		RateLimitEnabled: cfg.RLEnabled,
		SubmitLimit:      cfg.RLSubmitLimit,
		RateWindow:       cfg.RLWindow,
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	log.Info().Str("addr", cfg.ServerAddress).Msg("Starting server")
	if err := serve(ctx, srv, 10*time.Second); err != nil {
		log.Error().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

// serve работает до отмены ctx или ошибки сервера, после чего останавливает
// сервер. Ошибка возвращается вызывающему, чтобы отработали его defer.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
