package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yumcart/backend/config"
	"github.com/yumcart/backend/internal/api"
	"github.com/yumcart/backend/internal/database"
	"github.com/yumcart/backend/internal/router"
	"github.com/yumcart/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	// Services
	authService := service.NewAuthService(cfg.JWTSecret)
	llmService := service.NewLLMService(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL)
	spoonacularService := service.NewSpoonacularService(cfg.SpoonacularAPIKey, cfg.SpoonacularAPIURL)
	draftService := service.NewDraftService(redisClient, cfg.DraftTTL)
	storageService := service.NewStorageService(s3Config)
	recipeService := service.NewRecipeService(db)

	// The heuristic analyzer only substitutes for the LLM when explicitly
	// enabled; the default is to fail the generation request.
	var fallback service.Analyzer
	if cfg.MockAnalysisFallback {
		log.Println("Mock analysis fallback enabled")
		fallback = service.NewMockAnalyzer(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	enrichmentService := service.NewEnrichmentService(llmService, fallback, spoonacularService)

	recipeHandler := api.NewRecipeHandler(
		enrichmentService,
		draftService,
		storageService,
		recipeService,
		spoonacularService,
		authService,
		cfg.DraftTTL,
	)

	// Expired-draft sweeper
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	cleanupService := service.NewCleanupService(draftService, storageService, cfg.CleanupInterval)
	go cleanupService.Start(cleanupCtx)

	engine := router.SetupRouter(recipeHandler)

	srv := &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	cancelCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
