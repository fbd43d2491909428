package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"floral-studio/internal/job"
	"floral-studio/internal/repository"
)

var gracePeriodOverride time.Duration

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove image files no image record references, once",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		grace := cfg.Jobs.CleanupGracePeriod
		if gracePeriodOverride > 0 {
			grace = gracePeriodOverride
		}

		infra, err := openInfrastructure(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer infra.close()

		cleanup := job.NewCleanupJob(repository.NewImageRepository(infra.db), infra.imageStore, grace, nil, logger)
		result, err := cleanup.RunOnce(ctx)
		if err != nil {
			return err
		}

		logger.Info("Cleanup finished",
			zap.Int("scanned", result.Scanned),
			zap.Int("removed", result.Removed),
			zap.Int("failed", result.Failed),
		)
		if result.Failed > 0 {
			return fmt.Errorf("%d orphan images could not be removed", result.Failed)
		}
		return nil
	},
}

func init() {
	cleanupCmd.Flags().DurationVar(&gracePeriodOverride, "grace", 0, "keep unreferenced files younger than this (default from config)")
}
