package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stay-booking/internal/data/repository"
	"stay-booking/internal/wire"
	"stay-booking/pkg/database"
	"stay-booking/pkg/metrics"
	"stay-booking/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("Starting application",
				zap.String("app", config.App.Name),
				zap.String("port", config.App.Port),
				zap.Bool("debug", config.App.Debug),
			)

			db, err := database.InitDB(cmd.Context(), config.Database)
			if err != nil {
				logger.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer db.Close()
			logger.Info("Database connected successfully")

			rdb, err := database.InitRedis(cmd.Context(), config.Redis)
			if err != nil {
				logger.Error("Failed to connect to redis", zap.Error(err))
				return err
			}
			defer rdb.Close()
			logger.Info("Redis connected successfully")

			repos := repository.NewRepository(db, rdb, logger)
			tokens := utils.NewTokenManager(config.JWT)
			m := metrics.New(prometheus.DefaultRegisterer)

			app := wire.Wiring(repos, tokens, config, m, prometheus.DefaultGatherer, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return APIServer(ctx, app.Router, config.App.Port, logger)
		},
	}
}

// APIServer listens on port until ctx is cancelled, then drains in-flight
// requests.
func APIServer(ctx context.Context, handler http.Handler, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
