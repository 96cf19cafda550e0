package service

import (
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/repository"
)

// InventoryService serves the receipt-entry hierarchy listing.
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService creates an inventory service.
func NewInventoryService(inventoryRepo repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// ListSuppAdds returns all supply addresses with subinventories and locators.
func (s *InventoryService) ListSuppAdds() ([]models.SuppAdd, error) {
	return s.inventoryRepo.ListSuppAdds()
}
