package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; deployed environments set variables directly.
	envErr := godotenv.Load()

	log, err := newLogger(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Warn("no .env file found, using process environment")
	}

	if err := run(log); err != nil {
		// Fatal would exit before the deferred Sync runs.
		log.Error("server stopped", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := newDBPool(ctx, cfg.DBURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()
	log.Info("DB pool ready")

	var a *assistant
	if cfg.GeminiAPIKey != "" {
		a = newAssistant(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		log.Warn("GEMINI_API_KEY not set, /api/chat disabled")
	}

	h := newHandler(&pgStore{db: pool}, a, log)

	scheduler, err := startRollover(h.planner, cfg.RolloverSchedule, cfg.RolloverWorkers)
	if err != nil {
		return err
	}
	defer func() { <-scheduler.Stop().Done() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())
	if err := router.SetTrustedProxies(nil); err != nil {
		return err
	}
	h.registerRoutes(router)

	srv := &http.Server{Addr: cfg.Addr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("rollover", cfg.RolloverSchedule))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
