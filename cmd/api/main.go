package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/http/handlers"
	httpapi "server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/ledger"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	client, err := infra.NewMongoClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDBName)

	donors := repo.NewDonorRepository(db)
	if err := donors.EnsureIndexes(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to create donor indexes")
	}

	app := &handlers.App{
		Cfg:       cfg,
		Logger:    logger,
		Donors:    donors,
		Donations: repo.NewDonationRepository(db),
		Expenses:  repo.NewExpenseRepository(db),
		RefData:   repo.NewReferenceDataRepository(db),
		Hadith:    repo.NewHadithRepository(db),
		Ledger:    ledger.New(donors, logger),
	}

	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
