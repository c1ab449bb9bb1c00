package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"techforge_app_go/config"
	"techforge_app_go/db"
	"techforge_app_go/models"
	"techforge_app_go/services"
)

// Exports leads to an XLSX workbook in the configured storage
func main() {
	day := flag.String("day", "", "export a single day (YYYY-MM-DD), defaults to yesterday")
	from := flag.String("from", "", "start of a custom range (YYYY-MM-DD)")
	until := flag.String("until", "", "last day of a custom range, inclusive (YYYY-MM-DD)")
	flag.Parse()

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

	if err := db.AutoMigrate(&models.Lead{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	services.InitializeStorage(cfg)
	exporter := services.NewLeadExporter(services.NewLeadService(db.DB), services.Storage)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var (
		result *services.StorageResult
		count  int
		err    error
	)

	switch {
	case *from != "" || *until != "":
		if *from == "" || *until == "" {
			log.Fatal("-from and -until must be used together")
		}
		start, end, rangeErr := services.ParseDayRange(*from, *until)
		if rangeErr != nil {
			log.Fatalf("Invalid range: %v", rangeErr)
		}
		key := services.GenerateStorageKey("exports/leads/ranges", fmt.Sprintf("leads_%s_%s.xlsx", *from, *until))
		result, count, err = exporter.ExportRange(ctx, start, end, key)
	case *day != "":
		result, count, err = exporter.ExportDay(ctx, mustParseDay(*day))
	default:
		result, count, err = exporter.ExportDay(ctx, time.Now().AddDate(0, 0, -1))
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fmt.Printf("✓ Exported %d leads\n", count)
	fmt.Printf("  Key: %s\n", result.Key)
	if result.URL != "" {
		fmt.Printf("  URL: %s\n", result.URL)
	}
}

func mustParseDay(s string) time.Time {
	t, err := services.ParseDate(s)
	if err != nil {
		log.Fatalf("Invalid date %q: %v", s, err)
	}
	return t
}
