package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/handler"
	"github.com/MKhiriev/go-sched/internal/limiter"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/server"
	"github.com/MKhiriev/go-sched/internal/service"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/workers"
	"github.com/MKhiriev/go-sched/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("server", false).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("server", cfg.App.Debug)
	if cfg.App.SessionSecretGenerated {
		log.Warn().Msg("no session secret configured, sessions will not survive a restart")
	}

	db, err := store.NewConnect(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	services, err := service.NewServices(store.NewStorages(db, log), *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	loginLimiter := limiter.New(cfg.Server.LoginRate, cfg.Server.LoginBurst)

	handlers, err := handler.NewHandlers(services, cfg.Server, loginLimiter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, workers.NewWorkers(cfg.Workers, loginLimiter, log), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(buildInfo models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", buildInfo.BuildVersion())
	fmt.Printf("Build date: %s\n", buildInfo.BuildDate())
	fmt.Printf("Build commit: %s\n", buildInfo.BuildCommit())
}
