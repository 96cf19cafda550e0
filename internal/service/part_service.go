package service

import (
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/repository"
)

// PartService serves part catalog queries.
type PartService struct {
	partRepo repository.PartRepository
}

// NewPartService creates a part service.
func NewPartService(partRepo repository.PartRepository) *PartService {
	return &PartService{partRepo: partRepo}
}

// List returns parts matching the filter plus the total count.
func (s *PartService) List(filter repository.PartListFilter) ([]models.Part, int64, error) {
	return s.partRepo.List(filter)
}
