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

	"github.com/rs/zerolog"

	"github.com/simaogato/patrimonio-backend/internal/adapter/httpapi"
	"github.com/simaogato/patrimonio-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/patrimonio-backend/internal/config"
	"github.com/simaogato/patrimonio-backend/internal/usecase/allocation"
	"github.com/simaogato/patrimonio-backend/internal/usecase/dashboard"
	"github.com/simaogato/patrimonio-backend/internal/usecase/goal"
	"github.com/simaogato/patrimonio-backend/internal/usecase/investment"
	"github.com/simaogato/patrimonio-backend/internal/usecase/reference"
	"github.com/simaogato/patrimonio-backend/internal/usecase/seeder"
)

func main() {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.DevMode {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	// 2. Database
	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// 3. Repositories
	investmentRepo := postgres.NewInvestmentRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	targetRepo := postgres.NewAllocationTargetRepository(db)
	referenceRepo := postgres.NewReferenceRepository(db)

	// 4. Services (use cases)
	goalService := goal.NewGoalService(goalRepo, investmentRepo)
	investmentService := investment.NewInvestmentService(investmentRepo, goalService)
	allocationService := allocation.NewAllocationService(targetRepo)
	referenceService := reference.NewReferenceService(referenceRepo)
	dashboardService := dashboard.NewDashboardService(investmentRepo, goalRepo, targetRepo, referenceRepo)

	// Seed default asset classes
	if err := seeder.NewReferenceSeeder(referenceRepo).Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed asset classes")
	}
	log.Info().Msg("Asset classes seeded")

	// 5. HTTP server
	api := httpapi.New(httpapi.Config{
		Log:         log,
		JWTSecret:   cfg.JWTSecret,
		Investments: investmentService,
		Goals:       goalService,
		Allocation:  allocationService,
		Reference:   referenceService,
		Dashboard:   dashboardService,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	waitForShutdown(server, log)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *http.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
	log.Info().Msg("HTTP server stopped")
}
