package main

import (
	"errors"
	"log"

	api "email-agent-backend/cmd/api"
	emaildomain "email-agent-backend/internal/email/domain"
	emailRepo "email-agent-backend/internal/email/repository"
	emailUsecase "email-agent-backend/internal/email/usecase"
	processingUsecase "email-agent-backend/internal/processing/usecase"
	promptdomain "email-agent-backend/internal/prompt/domain"
	promptRepo "email-agent-backend/internal/prompt/repository"
	promptUsecase "email-agent-backend/internal/prompt/usecase"
	"email-agent-backend/pkg/ai"
	"email-agent-backend/pkg/config"
	"email-agent-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&emaildomain.Email{}, &promptdomain.PromptConfig{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	emailRepository := emailRepo.NewGormEmailRepository(db)
	promptRepository := promptRepo.NewGormPromptRepository(db)

	// Initialize AI client. A missing provider is not fatal: the processing
	// layer falls back to rule-based extraction and templated replies.
	aiClient, err := ai.NewTextClient(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiApiKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			log.Printf("[WARN] No AI provider configured, running with fallback processing only")
		} else {
			log.Printf("[WARN] Failed to initialize AI client: %v", err)
		}
		aiClient = nil
	} else {
		log.Printf("AI client initialized with provider %s (model %s)", cfg.AIProvider, aiClient.Model())
	}

	// Initialize use cases (dependency injection)
	promptUsecaseInstance := promptUsecase.NewPromptUsecase(promptRepository)
	processingUsecaseInstance := processingUsecase.NewProcessingUsecase(emailRepository, promptUsecaseInstance, aiClient, cfg.ProcessDelay)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(emailRepository, cfg)

	// Initialize HTTP handler
	handler := api.NewHandler(emailUsecaseInstance, promptUsecaseInstance, processingUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
