package cmd

import (
	"stay-booking/internal/data/repository"
	"stay-booking/internal/usecase"
	"stay-booking/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the sample host and listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.InitDB(cmd.Context(), config.Database)
			if err != nil {
				logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer db.Close()

			// seeding never touches sessions, so no redis client
			repos := repository.NewRepository(db, nil, logger)
			listings := usecase.NewListingService(repos, logger)

			created, err := listings.Seed(cmd.Context(), usecase.DefaultSeedData())
			if err != nil {
				logger.Error("Seeding failed", zap.Error(err))
				return err
			}

			logger.Info("Seed complete", zap.Int("listings_created", created))
			return nil
		},
	}
}
