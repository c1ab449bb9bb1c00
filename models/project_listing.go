package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Difficulty levels
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyExpert       = "Expert"
)

// ValidDifficulties lists the accepted difficulty levels in ascending order
var ValidDifficulties = []string{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

// IsValidDifficulty checks a difficulty level, case-insensitively
func IsValidDifficulty(d string) bool {
	for _, v := range ValidDifficulties {
		if strings.EqualFold(v, d) {
			return true
		}
	}
	return false
}

// ProjectListing is a sellable project deliverable within a category
type ProjectListing struct {
	ID        int       `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	CategoryID   string          `gorm:"not null;index" json:"-"`
	Slug         string          `gorm:"uniqueIndex;not null" json:"-"`
	Title        string          `gorm:"not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Technologies []string        `gorm:"serializer:json" json:"technologies"`
	Difficulty   string          `gorm:"not null" json:"difficulty"`
	Amount       decimal.Decimal `gorm:"type:decimal(10,2)" json:"-"`
	DisplayOrder int             `gorm:"default:0" json:"-"`
	IsActive     bool            `gorm:"default:true;index" json:"-"`

	// Price is the currency-formatted Amount, filled after load
	Price string `gorm:"-" json:"price"`
}

// AfterFind fills the formatted price
func (p *ProjectListing) AfterFind(tx *gorm.DB) error {
	p.Price = FormatINR(p.Amount)
	return nil
}

// DifficultyRank orders difficulty levels; unknown levels sort last
func (p *ProjectListing) DifficultyRank() int {
	for i, v := range ValidDifficulties {
		if strings.EqualFold(v, p.Difficulty) {
			return i
		}
	}
	return len(ValidDifficulties)
}
