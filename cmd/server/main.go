package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/task-manager/internal/adapter"
	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/handler"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/MKhiriev/task-manager/internal/server"
	"github.com/MKhiriev/task-manager/internal/service"
	"github.com/MKhiriev/task-manager/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("task-manager-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("version", cfg.App.Version).Msg("received configs")

	ctx := context.Background()
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(context.Background()); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	notifier, err := adapter.NewNotifier(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail notifier")
	}

	services, err := service.NewServices(storages, notifier, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Err(err).Msg("server stopped")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
