package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learning-platform-api/internal/config"
	pg "learning-platform-api/internal/infra/db/postgres"
	"learning-platform-api/internal/infra/logging"
	"learning-platform-api/internal/infra/metrics"
	stripegw "learning-platform-api/internal/infra/payment"
	red "learning-platform-api/internal/infra/redis"
	"learning-platform-api/internal/infra/security"
	"learning-platform-api/internal/infra/web"
	"learning-platform-api/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "development mode (console logs)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, int32(cfg.Database.PoolSize))
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Repositories ----
	txm := pg.NewTxManager(pool)
	userRepo := pg.NewUserRepo(pool)
	courseRepo := pg.NewCourseRepoCacheDecorator(pg.NewCourseRepo(pool), redisClient, cfg.Redis.TTL)
	lessonRepo := pg.NewLessonRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	payRepo := pg.NewPaymentRepo(pool)

	// ---- Gateway (API key injected here, never a package global) ----
	gateway := stripegw.NewStripeGateway(cfg.Stripe.APIKey, cfg.Stripe.BaseURL)

	// ---- Use cases ----
	hasher := security.NewPasswordHasher()
	userUC := usecase.NewUserUseCase(userRepo, hasher, logger)
	courseUC := usecase.NewCourseUseCase(courseRepo, lessonRepo, subRepo, logger)
	lessonUC := usecase.NewLessonUseCase(lessonRepo, courseRepo, txm, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo, courseRepo, logger)
	payUC := usecase.NewPaymentUseCase(payRepo, courseRepo, lessonRepo, gateway, cfg.Stripe.Currency, logger)

	// ---- HTTP ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	srv := web.NewServer(userUC, courseUC, lessonUC, subUC, payUC, auth, rateLimiter, cfg.Stripe, cfg.Auth, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
