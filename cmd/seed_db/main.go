package main

import (
	"context"
	"flag"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/racquetek/booking-api/functions/gateway/helpers"
	"github.com/racquetek/booking-api/functions/gateway/services"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "how long to wait for the store")
	flag.Parse()

	cfg, err := helpers.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.IsProd() {
		log.Fatalf("Refusing to seed with GO_ENV=%s", cfg.GoEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := services.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer store.Close()

	if err := services.NewSeedService(store, cfg.SeedAdminEmail, cfg.SeedAdminPassword).Seed(ctx); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %s store", cfg.StoreDriver)
}
