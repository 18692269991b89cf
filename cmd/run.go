package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tourney/config"
	"tourney/database"
	"tourney/events"
	"tourney/metrics"
	"tourney/repository"
	"tourney/service"
	"tourney/web"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.WithField("environment", cfg.Environment).Info("Starting tourney engine")

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	eventBus := events.NewBus()

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	collector.Observe(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	walletService := service.NewWalletService(uowFactory)
	tournamentService := service.NewTournamentService(uowFactory)
	registrationService := service.NewRegistrationService(uowFactory)
	depositService := service.NewDepositService(uowFactory)
	prizeService := service.NewPrizeService(uowFactory)

	handler := web.New(cfg, db, walletService, tournamentService, registrationService, depositService, prizeService)

	apiServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler.Routes(),
	}

	metricsServer := metrics.StartServer(cfg.MetricsAddr, db.Health)
	log.WithField("addr", cfg.MetricsAddr).Info("Metrics listener started")

	serverErrors := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("API listening")
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("API server shutdown failed")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Metrics server shutdown failed")
	}

	log.Info("Shutdown completed")
	return nil
}
