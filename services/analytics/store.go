package analytics

import (
	"log"
	"time"

	"techforge_app_go/models"

	"gorm.io/gorm"
)

// Store persists events in the analytics_events table. Writes are synchronous;
// wrap it in a Dispatcher on request paths.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Init(string) error {
	return s.db.AutoMigrate(&models.AnalyticsEvent{})
}

func (s *Store) Record(e Event) {
	row := models.AnalyticsEvent{
		Kind:     string(e.Kind),
		Action:   e.Action,
		Category: e.Category,
		Label:    e.Label,
		Value:    e.Value,
		ClientID: e.ClientID,
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("[ANALYTICS] failed to store %s event: %v", e.Kind, err)
	}
}

// CategoryCount is the number of events per label for one category
type CategoryCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// TopLabels returns the most frequent labels for a category since a point in time
func (s *Store) TopLabels(category string, since time.Time, limit int) ([]CategoryCount, error) {
	var out []CategoryCount
	err := s.db.Model(&models.AnalyticsEvent{}).
		Select("label, COUNT(*) AS count").
		Where("category = ? AND created_at >= ?", category, since).
		Group("label").
		Order("count DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
