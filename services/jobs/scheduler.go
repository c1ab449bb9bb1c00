package jobs

import (
	"context"
	"log"
	"time"

	"techforge_app_go/config"
	"techforge_app_go/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler runs the background lead jobs
type Scheduler struct {
	cron *cron.Cron
}

// StartScheduler registers the daily lead export on cfg.LeadExportSchedule,
// an hourly retry of failed lead notifications and, when a retention is
// set, a nightly prune of old exports
func StartScheduler(database *gorm.DB, cfg *config.Config, exporter *services.LeadExporter, store services.ExportStore) (*Scheduler, error) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.LeadExportSchedule, func() {
		log.Println("[CRON] Running daily lead export...")
		ExportPreviousDay(context.Background(), exporter, time.Now().In(loc))
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc("30 * * * *", func() {
		RetryLeadNotifications(database, cfg)
	}); err != nil {
		return nil, err
	}

	if cfg.ExportRetention > 0 {
		if _, err := c.AddFunc("15 3 * * *", func() {
			PruneOldExports(context.Background(), store, cfg.ExportRetention, time.Now())
		}); err != nil {
			return nil, err
		}
	}

	c.Start()
	log.Println("[CRON] Scheduler started")
	return &Scheduler{cron: c}, nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[CRON] Scheduler stopped")
}
