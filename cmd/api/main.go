package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"finhealth/internal/config"
	"finhealth/internal/crypto"
	"finhealth/internal/database"
	"finhealth/internal/external"
	"finhealth/internal/finance"
	"finhealth/internal/handlers"
	"finhealth/internal/logger"
	"finhealth/internal/middleware"
	"finhealth/internal/narrative"
	"finhealth/internal/server"
	"finhealth/internal/services"
	"finhealth/internal/validator"

	_ "finhealth/internal/docs" // Import swagger docs
)

// @title           Financial Health Assessment API
// @version         1.0
// @description     Analyses SME transaction files into financial metrics, risk, credit readiness, projections, tax estimates and a narrative report.

// @host      localhost:8000
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key issued to the deployment.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	sealer, err := crypto.NewSealer(appConfig.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialise encryption: %w", err)
	}

	thresholds := finance.DefaultThresholds()
	if appConfig.RiskThresholdsFile != "" {
		thresholds, err = finance.LoadThresholds(appConfig.RiskThresholdsFile)
		if err != nil {
			return fmt.Errorf("failed to load risk thresholds: %w", err)
		}
		log.Infof("Loaded risk thresholds from %s", appConfig.RiskThresholdsFile)
	}
	evaluator := finance.NewEvaluator(thresholds)

	// Narrative: Gemini when a key is configured, template otherwise
	var generator narrative.Generator
	var translator narrative.Translator
	if appConfig.GeminiAPIKey != "" {
		model, err := narrative.NewGeminiModel(context.Background(), appConfig.GeminiAPIKey, appConfig.GeminiModel)
		if err != nil {
			log.Warnw("Gemini unavailable, using template narratives", "error", err)
		} else {
			generator = narrative.NewLLMGenerator(model)
			translator = narrative.NewLLMTranslator(model)
			log.Infow("Gemini narrative enabled", "model", appConfig.GeminiModel)
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, using template narratives")
	}

	verifier := external.NewDefaultConnector(appConfig.BankingAPIURL, appConfig.GSTAPIURL,
		appConfig.ExternalAPIKey, appConfig.ExternalTimeout)

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	recordService := services.NewRecordService(db, sealer)
	shareTokens := middleware.NewShareTokens(appConfig.JWTSecret, appConfig.ShareLinkTTL)
	shareService := services.NewShareService(recordService, shareTokens, auditService)
	reportService := services.NewReportService(evaluator)
	analysisService := services.NewAnalysisService(services.AnalysisDeps{
		Evaluator:        evaluator,
		TaxRules:         finance.DefaultTaxRules(),
		Verifier:         verifier,
		Narrator:         narrative.NewCoordinator(generator, nil, appConfig.LLMTimeout),
		Translator:       translator,
		TranslateTimeout: appConfig.LLMTimeout,
		Records:          recordService,
		Audit:            auditService,
	})

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database handle: %w", err)
	}

	validator.Register()

	router := server.NewRouter(server.Handlers{
		Health:   handlers.NewHealthHandler(sqlDB),
		Analysis: handlers.NewAnalysisHandler(analysisService, appConfig.MaxUploadMB<<20),
		Report:   handlers.NewReportHandler(reportService, recordService),
		Record:   handlers.NewRecordHandler(recordService, shareService, auditService),
	}, server.Options{
		APIKey:      appConfig.APIKey,
		ShareTokens: shareTokens,
		Swagger:     !appConfig.IsProduction(),
	})

	log.Infof("Share links stay valid for %s", shareTokens.TTL())
	if appConfig.APIKey == "" {
		log.Warn("API_KEY not set, /api/v1 routes are unauthenticated")
	}
	log.Infof("Starting Financial Health Assessment API on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
