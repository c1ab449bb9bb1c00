package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead sources
const (
	LeadSourceWeb = "web"
	LeadSourceAPI = "api"
)

// Contact form option values
var (
	ProjectTypes = []string{"AI/ML", "Web Development", "Full-Stack", "Mobile Apps", "Database", "Cybersecurity", "Custom"}
	BudgetRanges = []string{"₹500-₹1000", "₹1000-₹1500", "₹1500-₹2000", "₹2000+"}
	Timelines    = []string{"1 week", "2 weeks", "1 month", "2+ months"}
)

// Lead is an accepted contact form submission
type Lead struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"not null;index" json:"email"`
	ProjectType  string `gorm:"not null" json:"project_type"`
	Budget       string `json:"budget,omitempty"`
	Timeline     string `json:"timeline,omitempty"`
	Requirements string `gorm:"type:text;not null" json:"requirements"`

	// Audit fields
	Source     string     `gorm:"not null;default:web" json:"source"`
	IPAddress  string     `json:"ip_address,omitempty"`
	UserAgent  string     `gorm:"type:text" json:"user_agent,omitempty"`
	NotifiedAt *time.Time `json:"notified_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
