package jobs

import (
	"context"
	"log"
	"time"

	"techforge_app_go/services"
)

// DayExporter exports the leads of one day
type DayExporter interface {
	ExportDay(ctx context.Context, day time.Time) (*services.StorageResult, int, error)
}

// ExportPreviousDay exports the leads received on the day before now
func ExportPreviousDay(ctx context.Context, exporter DayExporter, now time.Time) {
	day := now.AddDate(0, 0, -1)
	result, count, err := exporter.ExportDay(ctx, day)
	if err != nil {
		log.Printf("[JOB] Lead export for %s failed: %v", day.Format("2006-01-02"), err)
		return
	}
	log.Printf("[JOB] Exported %d leads for %s to %s", count, day.Format("2006-01-02"), result.Key)
}

// PruneOldExports removes stored exports older than retention
func PruneOldExports(ctx context.Context, store services.ExportStore, retention time.Duration, now time.Time) int {
	removed, err := services.PruneExports(ctx, store, now.Add(-retention))
	if err != nil {
		log.Printf("[JOB] Export prune failed after %d removals: %v", removed, err)
		return removed
	}
	if removed > 0 {
		log.Printf("[JOB] Pruned %d exports older than %s", removed, retention)
	}
	return removed
}
