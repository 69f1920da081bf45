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

	"github.com/probeai/interviewd/internal/adapter/provider"
	"github.com/probeai/interviewd/internal/config"
	"github.com/probeai/interviewd/internal/service"
	"github.com/probeai/interviewd/internal/store"
	v1 "github.com/probeai/interviewd/internal/transport/http/v1"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting interviewd...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Store backend: %s", cfg.StoreBackend)
	log.Printf("Session timeout: %s", cfg.SessionTimeout)
	log.Printf("Provider model: %s", cfg.ProviderModel)

	// Initialize store
	var st store.Store
	switch cfg.StoreBackend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.DatabaseURL, cfg.SessionTimeout)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		st = s
	case "memory":
		st = store.NewMemoryStore(cfg.SessionTimeout)
	default:
		log.Fatalf("Unknown store backend: %s", cfg.StoreBackend)
	}
	defer st.Close()

	// Initialize reasoning provider
	p := provider.NewProvider(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.ProviderModel, cfg.ProviderTimeout)

	// Initialize service
	svc := service.New(st, p, cfg)

	// Initialize handler
	h := v1.NewHandler(svc, cfg.MaxAudioSize)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)

	// Background sweep of expired sessions
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := st.SweepExpired(context.Background())
				if err != nil {
					log.Printf("ERROR: session sweep failed: %v", err)
				} else if n > 0 {
					log.Printf("Swept %d expired sessions", n)
				}
			case <-sweepDone:
				return
			}
		}
	}()

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down interviewd...")
	close(sweepDone)

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Interviewd stopped")
}
