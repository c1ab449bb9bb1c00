package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"techforge_app_go/config"
	"techforge_app_go/models"
)

// NotifyLeadAsync emails the team about a new lead and acknowledges it to the
// sender. The lead is marked notified once the team email is sent.
func NotifyLeadAsync(cfg *config.Config, leads *LeadService, lead *models.Lead) {
	if cfg.LeadNotifyEmail != "" {
		email, err := BuildLeadNotificationEmail(cfg.LeadNotifyEmail, lead, cfg.AppURL)
		if err != nil {
			log.Printf("[LEAD] Failed to build notification for %s: %v", lead.ID, err)
		} else {
			id := lead.ID
			SendEmailAsync(cfg, email, func() {
				if err := leads.MarkNotified(context.Background(), id); err != nil {
					log.Printf("[LEAD] Failed to mark %s notified: %v", id, err)
				}
			})
		}
	}

	ack, err := BuildLeadAcknowledgementEmail(lead)
	if err != nil {
		log.Printf("[LEAD] Failed to build acknowledgement for %s: %v", lead.ID, err)
		return
	}
	SendEmailAsync(cfg, ack, nil)
}

// PendingNotifications returns leads created between since and before whose
// team notification never went out
func (s *LeadService) PendingNotifications(ctx context.Context, since, before time.Time) ([]models.Lead, error) {
	var leads []models.Lead
	err := s.db.WithContext(ctx).
		Where("notified_at IS NULL").
		Where("created_at >= ? AND created_at < ?", since, before).
		Order("created_at ASC").
		Find(&leads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending notifications: %w", err)
	}
	return leads, nil
}
