package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"weekplanner/internal/config"
	"weekplanner/internal/database"
	"weekplanner/internal/generation"
	"weekplanner/internal/llm"
	"weekplanner/internal/metrics"
	"weekplanner/internal/ratelimit"
	"weekplanner/internal/server"
	"weekplanner/internal/store"
)

func main() {
	// .env is a local-development convenience; in production the
	// variables come from the environment directly.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "metrics-cleanup" {
		runMetricsCleanup(cfg, os.Args[2:])
		return
	}

	ctx := context.Background()

	textGen, err := newTextGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize generation backend: %v", err)
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to redis at %s: %v", cfg.RedisAddr, err)
	}
	defer rdb.Close()

	db, err := database.NewDB(cfg.MetricsDBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	planner := generation.NewPlanner(textGen)
	planStore := store.NewPlanStore(store.NewRedisKV(rdb))
	limiter := ratelimit.NewLimiter(rdb)
	metricsStore := metrics.NewStore(db.SQL)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(planner, planStore, limiter, metricsStore, cfg).Router(),
	}

	go func() {
		slog.Info("listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}

// newTextGenerator prefers Gemini when both backends are configured.
func newTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, error) {
	if cfg.GeminiAPIKey != "" {
		return llm.NewGeminiClient(ctx, cfg)
	}
	return llm.NewGroqClient(cfg), nil
}

func runMetricsCleanup(cfg *config.Config, args []string) {
	cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
	cleanupCmd.Parse(args)

	db, err := database.NewDB(cfg.MetricsDBPath)
	if err != nil {
		log.Fatalf("Failed to open metrics database: %v", err)
	}
	defer db.Close()

	affected, err := metrics.NewStore(db.SQL).Cleanup(*days)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Removed %d old metric records.\n", affected)
}
