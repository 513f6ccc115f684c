package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/malecare/trialbot/api"
	"github.com/malecare/trialbot/config"
	"github.com/malecare/trialbot/metrics"
	"github.com/malecare/trialbot/nlp"
	"github.com/malecare/trialbot/registry"
	"github.com/malecare/trialbot/service"
	"github.com/malecare/trialbot/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting trial match chatbot...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Registry: %s", cfg.RegistryBaseURL)
	log.Printf("NLP Mode: %s", cfg.NLPMode)

	// Register metrics
	metrics.MustRegister()

	// Initialize session store
	sessions := store.NewMemoryStore()

	// Select NLP implementations (once, at startup)
	intents, entities := nlp.New(cfg.NLPMode, cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Initialize trial registry client
	trials := registry.NewClient(cfg.RegistryBaseURL, cfg.SearchTimeout)

	// Initialize orchestrator service
	svc := service.New(sessions, intents, entities, trials)

	// Initialize handler
	h := api.NewHandler(svc)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Chatbot API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Chatbot stopped")
}
