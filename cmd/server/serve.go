package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/leondli/centriq/internal/adapter/handler"
	"github.com/leondli/centriq/internal/adapter/repository"
	"github.com/leondli/centriq/internal/infrastructure/config"
	"github.com/leondli/centriq/internal/infrastructure/database"
	"github.com/leondli/centriq/internal/infrastructure/server"
	"github.com/leondli/centriq/internal/usecase/call"
	"github.com/leondli/centriq/internal/usecase/tag"
	"github.com/leondli/centriq/internal/usecase/task"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close()

	log.Info().Msg("Starting Centriq Backend...")

	if cfg.Database.MigrateOnStart {
		if err := database.MigrateUp(ctx, db); err != nil {
			log.Error().Err(err).Msg("Failed to run migrations")
			return err
		}
	}

	// Initialize repositories
	tagRepo := repository.NewTagRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	callRepo := repository.NewCallRepository(db)
	callTaskRepo := repository.NewCallTaskRepository(db)
	transactor := repository.NewTransactor(db)

	// Initialize use cases
	tagUseCase := tag.NewUseCase(tagRepo, taskRepo)
	taskUseCase := task.NewUseCase(taskRepo, tagRepo, callRepo, callTaskRepo, transactor)
	callUseCase := call.NewUseCase(callRepo, tagRepo, transactor, config.CallsLimits)

	// Initialize handlers
	handlers := &handler.Handlers{
		Call:         handler.NewCallHandler(callUseCase, taskUseCase),
		Tag:          handler.NewTagHandler(tagUseCase),
		Task:         handler.NewTaskHandler(taskUseCase),
		TemplateTask: handler.NewTemplateTaskHandler(taskUseCase),
	}

	// Initialize HTTP server
	srv := server.New(cfg)
	health := func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}
	handler.RegisterRoutes(srv.Router(), handlers, health, srv.Metrics().Endpoint())

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Failed to start server")
			return err
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}
