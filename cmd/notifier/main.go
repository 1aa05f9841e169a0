package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cradle/internal/config"
	"cradle/internal/logger"
	"cradle/internal/notifier"
)

func main() {
	log.Println("Starting notifier service...")

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Separate NATS client ID so the API and notifier can connect side by side
	cfg.NATS.ClientID = "cradle-notifier"

	notifierService, err := notifier.NewNotifierService(cfg)
	if err != nil {
		log.Fatalf("Failed to create notifier service: %v", err)
	}

	if err := notifierService.Start(); err != nil {
		log.Fatalf("Failed to start notifier: %v", err)
	}

	log.Println("Notifier service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down notifier service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := notifierService.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Notifier service stopped")
}
