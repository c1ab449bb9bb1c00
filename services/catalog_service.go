package services

import (
	"context"
	"fmt"

	"techforge_app_go/models"

	"gorm.io/gorm"
)

// ListingCache stores listing lookups per category
type ListingCache interface {
	Get(ctx context.Context, categoryID string) ([]models.ProjectListing, bool)
	Set(ctx context.Context, categoryID string, listings []models.ProjectListing)
	Invalidate(ctx context.Context) error
}

// CatalogService reads project listings
type CatalogService struct {
	db    *gorm.DB
	cache ListingCache
}

// NewCatalogService creates a catalog reader. cache may be nil.
func NewCatalogService(db *gorm.DB, cache ListingCache) *CatalogService {
	return &CatalogService{db: db, cache: cache}
}

// ListingsByCategory returns the active listings of a category in display
// order. Unknown categories return an empty slice, not an error.
func (s *CatalogService) ListingsByCategory(ctx context.Context, categoryID string) ([]models.ProjectListing, error) {
	if !models.IsValidCategory(categoryID) {
		return []models.ProjectListing{}, nil
	}

	if s.cache != nil {
		if listings, ok := s.cache.Get(ctx, categoryID); ok {
			return listings, nil
		}
	}

	var listings []models.ProjectListing
	err := s.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("display_order ASC, id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load listings for %s: %w", categoryID, err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, categoryID, listings)
	}
	return listings, nil
}

// GetListing loads one active listing by id
func (s *CatalogService) GetListing(ctx context.Context, id int) (*models.ProjectListing, error) {
	var listing models.ProjectListing
	if err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// CategoryCounts returns the number of active listings per category
func (s *CatalogService) CategoryCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		CategoryID string
		Count      int64
	}
	err := s.db.WithContext(ctx).Model(&models.ProjectListing{}).
		Select("category_id, count(*) as count").
		Where("is_active = ?", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}
