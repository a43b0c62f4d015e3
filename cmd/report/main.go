// cmd/report/main.go
package main

import (
	"log"

	"manad-service/internal/api"
	"manad-service/internal/api/handlers"
	"manad-service/internal/api/responses"
	"manad-service/internal/config"
	"manad-service/internal/core/manad"
	"manad-service/internal/logging"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("Erro ao carregar .env: %v", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	responses.InitLogger(logger)

	manadService := manad.NewService()
	manadHandler := handlers.NewManadHandler(manadService, cfg.ReportPrefix)

	router := api.NewRouter(manadHandler)

	logger.Info("🚀 Report Service (Go) iniciado", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Falha ao iniciar o servidor de relatórios", zap.Error(err))
	}
}
