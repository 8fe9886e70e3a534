package main

import (
	"fmt"
	"log"
	"net/http"

	"sobordos/internal/config"
	"sobordos/internal/handler"
	"sobordos/internal/router"
	"sobordos/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize services
	reconSvc := service.NewReconService(&cfg.Upload)

	// Initialize handlers
	reconH := handler.NewReconHandler(reconSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, reconH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
