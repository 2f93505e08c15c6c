package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"youapp-client/internal/config"
	"youapp-client/internal/db"
	apihttp "youapp-client/internal/http"
	"youapp-client/internal/repository"
	"youapp-client/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		accountRepo repository.AccountRepository = repository.NewInMemoryAccountRepository()
		profileRepo repository.ProfileRepository = repository.NewInMemoryProfileRepository()
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		accountRepo = repository.NewPgAccountRepository(pool)
		profileRepo = repository.NewPgProfileRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
	}

	var (
		loginLimiter service.LoginRateLimiter
		denylist     service.TokenDenylist
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, time.Minute, cfg.LoginRateLimitPerMinute)
			denylist = service.NewRedisTokenDenylist(redisClient)
		}
		cancel()
	}
	if loginLimiter == nil {
		loginLimiter = service.NewLoginRateLimiter(cfg.LoginRateLimitPerMinute)
	}

	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}
	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute, denylist)

	accountSvc := service.NewAccountService(logger, accountRepo, jwtSvc, loginLimiter)
	profileSvc := service.NewProfileRecordService(logger, profileRepo, accountRepo)
	authHandler := apihttp.NewAuthHandler(logger, accountSvc)
	profileHandler := apihttp.NewProfileHandler(logger, profileSvc)
	router := apihttp.NewRouter(logger, authHandler, profileHandler, jwtSvc, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
