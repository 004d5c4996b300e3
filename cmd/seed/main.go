package main

import (
	"log"

	"ezpoints/config"
	"ezpoints/internal/database"
)

func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedBadges(db); err != nil {
		log.Fatalf("seed badges: %v", err)
	}
	if err := database.SeedRewards(db); err != nil {
		log.Fatalf("seed rewards: %v", err)
	}
	log.Println("seed complete")
}
