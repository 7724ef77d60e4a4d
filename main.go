package main

import (
	"wellness-go/internal/assistant"
	"wellness-go/internal/client"
	"wellness-go/internal/config"
	logger "wellness-go/internal/logging"
	"wellness-go/internal/models"
	"wellness-go/internal/router"
	"wellness-go/internal/services"

	"go.uber.org/zap"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(logger.DefaultOptions("."))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Load the canned catalogs at startup
	catalog, err := models.LoadMoodCatalog(config.Conf.Mood.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load mood catalog", zap.Error(err))
	}
	script, err := assistant.LoadScript(config.Conf.Mood.AssistantPath)
	if err != nil {
		log.Fatal("Failed to load assistant script", zap.Error(err))
	}

	// Upstream client and per-session engines
	api := client.New(config.Conf.Upstream.BaseURL, config.Conf.Upstream.Timeout(), log)
	manager := services.NewManager(api, script, log)

	// The scheduler beats the countdowns and notification sweeps.
	scheduler := services.NewScheduler(log, manager)
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router, passing the logger to it
	r := router.Setup(log, manager, catalog)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
