package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rodainahassan/gatehouse/internal/application/auth"
	"github.com/rodainahassan/gatehouse/internal/application/ports"
	"github.com/rodainahassan/gatehouse/internal/config"
	infraauth "github.com/rodainahassan/gatehouse/internal/infrastructure/auth"
	httprouter "github.com/rodainahassan/gatehouse/internal/infrastructure/http"
	"github.com/rodainahassan/gatehouse/internal/infrastructure/http/handlers"
	"github.com/rodainahassan/gatehouse/internal/infrastructure/http/middleware"
	"github.com/rodainahassan/gatehouse/internal/infrastructure/persistence/postgres"
	"github.com/rodainahassan/gatehouse/internal/infrastructure/queue"
	"github.com/rodainahassan/gatehouse/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	if err := postgres.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	accounts := postgres.NewAccountRepository(pool)

	var mail ports.MailEnqueuer
	var mailWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		enq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer enq.Close()
		mail = enq
		mailWorker = queue.NewWorker(asynqOpt, cfg.Mail.From, log)
		go func() {
			if err := mailWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("mail worker stopped")
			}
		}()
	} else {
		mail = queue.NewNoopEnqueuer()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	tokens := security.NewTokenSource(security.DefaultTokenBytes)
	sessions := infraauth.NewSessionIssuer([]byte(cfg.Session.Secret), "gatehouse", cfg.Session.TTL)

	signupUC := auth.NewSignup(accounts, hasher, tokens, mail, cfg.Frontend.URI, cfg.Token.TTL)
	loginUC := auth.NewLogin(accounts, hasher, sessions)
	verifyUC := auth.NewVerifyAccount(accounts)
	forgotUC := auth.NewForgotPassword(accounts, tokens, mail, cfg.Frontend.URI, cfg.Token.TTL)
	checkResetUC := auth.NewCheckResetToken(accounts)
	resetUC := auth.NewResetPassword(accounts, hasher)
	changeUC := auth.NewChangePassword(accounts, hasher)

	authHandler := handlers.NewAuthHandler(signupUC, loginUC, verifyUC, forgotUC, checkResetUC, resetUC, changeUC, log)
	accountHandler := handlers.NewAccountHandler(accounts)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.PerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	sessionGate := middleware.NewSessionGate(sessions)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		AccountHandler: accountHandler,
		HealthHandler:  healthHandler,
		RequireSession: sessionGate.RequireSession,
		RequireGuest:   middleware.RequireGuest,
		Log:            log,
		Secure:         middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		CORS:           middleware.CORS([]string{cfg.Frontend.URI}),
		IPRateLimit:    ipLimit,
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if mailWorker != nil {
		mailWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
