package main

import (
	"context"
	"log"
	"os"

	"techforge_app_go/config"
	"techforge_app_go/db"
	"techforge_app_go/models"
	"techforge_app_go/services"
)

// Seeds project listings from a catalog YAML file, or from the built-in
// catalog when no file is given. Existing slugs are skipped.
func main() {
	cfg := config.Load()

	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.ProjectListing{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("Failed to read catalog file: %v", err)
		}
		log.Printf("Seeding catalog from %s...", os.Args[1])
		if err := services.SeedCatalogFrom(db.DB, data); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	} else {
		log.Println("Seeding built-in catalog...")
		if err := services.SeedCatalog(db.DB); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	// Drop cached listings so the site picks up new entries immediately
	if cfg.RedisURL != "" {
		cache, err := services.NewRedisListingCache(cfg.RedisURL, cfg.CatalogCacheTTL)
		if err != nil {
			log.Printf("[WARNING] Could not reach Redis, cached listings expire in %s: %v", cfg.CatalogCacheTTL, err)
		} else {
			defer cache.Close()
			if err := cache.Invalidate(context.Background()); err != nil {
				log.Printf("[WARNING] %v", err)
			}
		}
	}

	log.Println("Catalog seed completed successfully!")
}
