package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"GoldPulse/internal/di"
	"GoldPulse/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.yaml", "config file path")
	flag.Parse()

	// .env is optional; real environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, relying on actual environment variables")
	}

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s symbol=%s port=%d", cfg.Environment, cfg.Market.Symbol, cfg.Server.Port)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
