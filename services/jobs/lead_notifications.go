package jobs

import (
	"context"
	"log"
	"time"

	"techforge_app_go/config"
	"techforge_app_go/services"

	"gorm.io/gorm"
)

// Leads younger than notificationGrace may still have an email in flight
const (
	notificationGrace  = 10 * time.Minute
	notificationWindow = 7 * 24 * time.Hour
)

// RetryLeadNotifications resends the team notification for leads from the
// last week that were never marked notified
func RetryLeadNotifications(database *gorm.DB, cfg *config.Config) {
	if cfg.LeadNotifyEmail == "" {
		return
	}

	ctx := context.Background()
	leadService := services.NewLeadService(database)

	now := time.Now()
	leads, err := leadService.PendingNotifications(ctx, now.Add(-notificationWindow), now.Add(-notificationGrace))
	if err != nil {
		log.Printf("[JOB] %v", err)
		return
	}
	if len(leads) == 0 {
		return
	}

	log.Printf("[JOB] Retrying notifications for %d leads", len(leads))

	for i := range leads {
		lead := &leads[i]
		email, err := services.BuildLeadNotificationEmail(cfg.LeadNotifyEmail, lead, cfg.AppURL)
		if err != nil {
			log.Printf("[JOB] Failed to build notification for %s: %v", lead.ID, err)
			continue
		}
		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("[JOB] Failed to notify lead %s: %v", lead.ID, err)
			continue
		}
		if err := leadService.MarkNotified(ctx, lead.ID); err != nil {
			log.Printf("[JOB] Failed to mark lead %s notified: %v", lead.ID, err)
		}
	}
}
