package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"floral-studio/internal/auth"
	"floral-studio/internal/job"
	"floral-studio/internal/metrics"
	"floral-studio/internal/repository"
	"floral-studio/internal/router"
	"floral-studio/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the studio HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	gin.SetMode(cfg.Server.Mode)

	logger.Info("Starting Floral Studio",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	m := metrics.NewWithLogger(logger)

	infra, err := openInfrastructure(ctx, cfg, m)
	if err != nil {
		logger.Error("Failed to initialize storage", zap.Error(err))
		return err
	}
	defer infra.close()

	authenticator, err := auth.New(cfg.Auth)
	if err != nil {
		return err
	}

	repos := service.Repositories{
		Users:      repository.NewUserRepository(infra.db),
		Clients:    repository.NewClientRepository(infra.db),
		Designs:    repository.NewDesignRepository(infra.db),
		MoodBoards: repository.NewMoodBoardRepository(infra.db),
		Images:     repository.NewImageRepository(infra.db),
	}

	studio := service.NewStudioService(repos, infra.imageStore, authenticator, m, logger)
	defer studio.Close()
	if err := studio.Refresh(ctx); err != nil {
		logger.Warn("Initial snapshot load failed", zap.Error(err))
	}

	intake := service.NewIntakeService(infra.preferenceStore(), m, logger)
	messages := service.NewMessageService(repository.NewMessageRepository(infra.db), repos.Users, repos.Designs, studio, m, logger)

	collector := metrics.NewBusinessMetricsCollector(infra.db, m, logger, cfg.Jobs.MetricsInterval)
	collector.Start()
	defer collector.Stop()

	cleanup := job.NewCleanupJob(repos.Images, infra.imageStore, cfg.Jobs.CleanupGracePeriod, m, logger)
	scheduler, err := job.Schedule(cfg.Jobs.CleanupSchedule, cleanup, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
		logger.Info("Cleanup scheduler stopped")
	}()

	r := router.Setup(router.Config{
		DB:             infra.db,
		Redis:          infra.redis,
		Logger:         logger,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Metrics:        m,
		StudioService:  studio,
		IntakeService:  intake,
		MessageService: messages,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case err := <-serverErr:
		logger.Error("Server failed", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server exited")
	return nil
}
