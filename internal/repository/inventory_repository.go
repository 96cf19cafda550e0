package repository

import (
	"errors"
	"strings"

	"github.com/rogtrack/rog-api/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository resolves the SuppAdd -> SubInventory -> Locator
// hierarchy. Codes are only valid within their declared parent, so every
// lookup is scoped by the parent's id.
type InventoryRepository interface {
	GetSuppAddByCode(code string) (*models.SuppAdd, error)
	GetSubInventoryByCode(suppAddID uint, code string) (*models.SubInventory, error)
	GetLocatorByCode(subInventoryID uint, code string) (*models.Locator, error)
	ListSuppAdds() ([]models.SuppAdd, error)
}

// GormInventoryRepository is the gorm implementation.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates an inventory repository.
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// GetSuppAddByCode fetches a supply address by exact code.
func (r *GormInventoryRepository) GetSuppAddByCode(code string) (*models.SuppAdd, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var suppAdd models.SuppAdd
	if err := r.db.Preload("SubInventorys.Locators").
		Where("code = ?", code).
		First(&suppAdd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &suppAdd, nil
}

// GetSubInventoryByCode fetches a subinventory by code within one SuppAdd.
func (r *GormInventoryRepository) GetSubInventoryByCode(suppAddID uint, code string) (*models.SubInventory, error) {
	code = strings.TrimSpace(code)
	if suppAddID == 0 || code == "" {
		return nil, nil
	}
	var subInventory models.SubInventory
	if err := r.db.
		Where("supp_add_id = ? AND code = ?", suppAddID, code).
		First(&subInventory).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subInventory, nil
}

// GetLocatorByCode fetches a locator by code within one SubInventory.
func (r *GormInventoryRepository) GetLocatorByCode(subInventoryID uint, code string) (*models.Locator, error) {
	code = strings.TrimSpace(code)
	if subInventoryID == 0 || code == "" {
		return nil, nil
	}
	var locator models.Locator
	if err := r.db.
		Where("sub_inventory_id = ? AND code = ?", subInventoryID, code).
		First(&locator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &locator, nil
}

// ListSuppAdds returns all supply addresses with their full hierarchy, for
// the receipt-entry UI.
func (r *GormInventoryRepository) ListSuppAdds() ([]models.SuppAdd, error) {
	var suppAdds []models.SuppAdd
	if err := r.db.Preload("SubInventorys.Locators").
		Order("code asc").
		Find(&suppAdds).Error; err != nil {
		return nil, err
	}
	return suppAdds, nil
}
