package main

import (
	"flag"
	"log"

	"docquiz/internal/config"
	"docquiz/internal/database"
)

func main() {
	source := flag.String("source", "file://database/migrations", "migration source URL")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.RunMigrations(*source, cfg.Database.Path); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Printf("Migrations applied to %s", cfg.Database.Path)
}
