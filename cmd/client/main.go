package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-garage/internal/adapter"
	"github.com/MKhiriev/go-garage/internal/client"
	"github.com/MKhiriev/go-garage/internal/config"
	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/service"
	"github.com/MKhiriev/go-garage/internal/store"
	"github.com/MKhiriev/go-garage/internal/tui"
	"github.com/MKhiriev/go-garage/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("go-garage-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	var garageAdapter adapter.GarageAdapter
	var storages *store.ClientStorages
	if cfg.App.Mode == config.ModeRemote {
		garageAdapter, err = adapter.NewHTTPGarageAdapter(cfg.Adapter, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create garage adapter")
		}
	} else {
		storages, err = store.NewClientStorages(context.Background(), cfg.Storage, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create local storage")
		}
		defer storages.Close()
	}

	services, err := service.NewClientServices(cfg, storages, garageAdapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}

	ui, err := tui.New(services, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Error().Err(err).Msg("client run error")
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
