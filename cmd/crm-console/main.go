package main

import (
	"fmt"
	"os"
	"time"

	"github.com/advisio/crm-console/internal/auth"
	"github.com/advisio/crm-console/internal/config"
	"github.com/advisio/crm-console/internal/db"
	"github.com/advisio/crm-console/internal/excel"
	httphandler "github.com/advisio/crm-console/internal/http"
	"github.com/advisio/crm-console/internal/http/middleware"
	"github.com/advisio/crm-console/internal/logger"
	"github.com/advisio/crm-console/internal/pdf"
	"github.com/advisio/crm-console/internal/repository"
	"github.com/advisio/crm-console/internal/service"
	"github.com/advisio/crm-console/internal/validate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	accessTTL, err := time.ParseDuration(cfg.Auth.AccessTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid JWT_ACCESS_TTL")
	}
	tokens := auth.NewManager(cfg.Auth.AccessSecret, accessTTL)

	clientRepo := repository.NewClientRepository(database)
	advisorRepo := repository.NewAdvisorRepository(database)
	contractRepo := repository.NewContractRepository(database)
	userRepo := repository.NewUserRepository(database)

	validator := validate.New()
	workbookGenerator := excel.NewGenerator()
	sheetGenerator, err := pdf.NewGenerator()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	authService := service.NewAuthService(userRepo, tokens)
	clientService := service.NewClientService(clientRepo, validator)
	advisorService := service.NewAdvisorService(advisorRepo, validator)
	contractService := service.NewContractService(contractRepo, clientRepo, advisorRepo, validator)
	exportService := service.NewExportService(contractRepo, clientRepo, advisorRepo, workbookGenerator, sheetGenerator)

	handler := httphandler.NewHandler(authService, clientService, advisorService, contractService, exportService, log)
	authMiddleware := middleware.Auth(tokens)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting crm console service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
