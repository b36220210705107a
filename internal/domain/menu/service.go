// internal/domain/menu/service.go
package menu

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidOrderDay  = errors.New("invalid order day")
)

// Service handles menu business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new menu service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateMenuItemRequest represents a request to create a menu item
type CreateMenuItemRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Category       Category `json:"category" binding:"required"`
	SpiceLevel     int      `json:"spice_level" binding:"min=0,max=5"`
	DietaryTags    string   `json:"dietary_tags"`
	HasSizeOptions bool     `json:"has_size_options"`
	Price8oz       *int64   `json:"price_8oz"`
	Price16oz      *int64   `json:"price_16oz"`
	SinglePrice    *int64   `json:"single_price"`
	ImageURL       string   `json:"image_url"`
	IsPopular      bool     `json:"is_popular"`
	SortOrder      int      `json:"sort_order"`
}

// UpdateMenuItemRequest represents a request to update a menu item
type UpdateMenuItemRequest struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Category       *Category `json:"category"`
	SpiceLevel     *int      `json:"spice_level"`
	DietaryTags    *string   `json:"dietary_tags"`
	HasSizeOptions *bool     `json:"has_size_options"`
	Price8oz       *int64    `json:"price_8oz"`
	Price16oz      *int64    `json:"price_16oz"`
	SinglePrice    *int64    `json:"single_price"`
	ImageURL       *string   `json:"image_url"`
	IsActive       *bool     `json:"is_active"`
	IsPopular      *bool     `json:"is_popular"`
	SortOrder      *int      `json:"sort_order"`
}

// ListMenuItems returns active menu items, optionally filtered by category
func (s *Service) ListMenuItems(category string) ([]MenuItem, error) {
	var items []MenuItem
	query := s.db.Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("sort_order ASC, name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// GetMenuItem returns a single menu item by ID
func (s *Service) GetMenuItem(id string) (*MenuItem, error) {
	var item MenuItem
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}

// GetWeeklyMenu returns the available items for an ordering cycle.
// When menuDate is zero the upcoming cycle date is used.
func (s *Service) GetWeeklyMenu(day OrderDay, menuDate time.Time) ([]WeeklyMenu, error) {
	if !day.IsValid() {
		return nil, ErrInvalidOrderDay
	}

	query := s.db.Preload("MenuItem").
		Joins("JOIN menu_items ON menu_items.id = weekly_menus.menu_item_id").
		Where("weekly_menus.order_day = ? AND weekly_menus.is_available = ? AND menu_items.is_active = ?",
			day, true, true)

	if !menuDate.IsZero() {
		query = query.Where("weekly_menus.menu_date = ?", menuDate.Format("2006-01-02"))
	} else {
		query = query.Where("weekly_menus.menu_date >= ?", time.Now().Format("2006-01-02"))
	}

	var entries []WeeklyMenu
	if err := query.Order("menu_items.sort_order ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get weekly menu: %w", err)
	}
	return entries, nil
}

// CreateMenuItem creates a new menu item (admin)
func (s *Service) CreateMenuItem(req *CreateMenuItemRequest) (*MenuItem, error) {
	if err := validatePricing(req.HasSizeOptions, req.Price8oz, req.Price16oz, req.SinglePrice); err != nil {
		return nil, err
	}

	item := &MenuItem{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		SpiceLevel:     req.SpiceLevel,
		DietaryTags:    req.DietaryTags,
		HasSizeOptions: req.HasSizeOptions,
		Price8oz:       req.Price8oz,
		Price16oz:      req.Price16oz,
		SinglePrice:    req.SinglePrice,
		ImageURL:       req.ImageURL,
		IsActive:       true,
		IsPopular:      req.IsPopular,
		SortOrder:      req.SortOrder,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

// UpdateMenuItem updates an existing menu item (admin)
func (s *Service) UpdateMenuItem(id string, req *UpdateMenuItemRequest) (*MenuItem, error) {
	item, err := s.GetMenuItem(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.SpiceLevel != nil {
		item.SpiceLevel = *req.SpiceLevel
	}
	if req.DietaryTags != nil {
		item.DietaryTags = *req.DietaryTags
	}
	if req.HasSizeOptions != nil {
		item.HasSizeOptions = *req.HasSizeOptions
	}
	if req.Price8oz != nil {
		item.Price8oz = req.Price8oz
	}
	if req.Price16oz != nil {
		item.Price16oz = req.Price16oz
	}
	if req.SinglePrice != nil {
		item.SinglePrice = req.SinglePrice
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.IsPopular != nil {
		item.IsPopular = *req.IsPopular
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := validatePricing(item.HasSizeOptions, item.Price8oz, item.Price16oz, item.SinglePrice); err != nil {
		return nil, err
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

// DeleteMenuItem soft-deletes a menu item (admin)
func (s *Service) DeleteMenuItem(id string) error {
	result := s.db.Where("id = ?", id).Delete(&MenuItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// SetWeeklyMenu replaces the weekly menu entries for a cycle date (admin)
func (s *Service) SetWeeklyMenu(day OrderDay, menuDate time.Time, itemIDs []string) ([]WeeklyMenu, error) {
	if !day.IsValid() {
		return nil, ErrInvalidOrderDay
	}

	var entries []WeeklyMenu
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_day = ? AND menu_date = ?", day, menuDate.Format("2006-01-02")).
			Delete(&WeeklyMenu{}).Error; err != nil {
			return fmt.Errorf("failed to clear weekly menu: %w", err)
		}

		for _, itemID := range itemIDs {
			var item MenuItem
			if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrMenuItemNotFound
				}
				return err
			}
			entry := WeeklyMenu{
				MenuItemID:  itemID,
				OrderDay:    day,
				MenuDate:    menuDate,
				IsAvailable: true,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create weekly menu entry: %w", err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func validatePricing(hasSizeOptions bool, price8oz, price16oz, singlePrice *int64) error {
	if hasSizeOptions {
		if price8oz == nil || price16oz == nil {
			return fmt.Errorf("items with size options require both 8oz and 16oz prices")
		}
		if *price8oz <= 0 || *price16oz <= 0 {
			return fmt.Errorf("prices must be positive")
		}
		return nil
	}
	if singlePrice == nil {
		return fmt.Errorf("items without size options require a single price")
	}
	if *singlePrice <= 0 {
		return fmt.Errorf("prices must be positive")
	}
	return nil
}
