package models

import "time"

// AnalyticsEvent is a recorded engagement event
type AnalyticsEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Kind     string `gorm:"not null;index" json:"kind"`
	Action   string `gorm:"not null" json:"action"`
	Category string `gorm:"not null;index" json:"category"`
	Label    string `json:"label,omitempty"`
	Value    *int   `json:"value,omitempty"`
	ClientID string `gorm:"index" json:"client_id,omitempty"`
}
