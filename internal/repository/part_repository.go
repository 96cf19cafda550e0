package repository

import (
	"errors"

	"github.com/rogtrack/rog-api/internal/models"

	"gorm.io/gorm"
)

// PartRepository is the part catalog data access layer.
type PartRepository interface {
	GetByID(id uint) (*models.Part, error)
	GetByNSN(nsn string) (*models.Part, error)
	List(filter PartListFilter) ([]models.Part, int64, error)
}

// GormPartRepository is the gorm implementation.
type GormPartRepository struct {
	db *gorm.DB
}

// NewPartRepository creates a part repository.
func NewPartRepository(db *gorm.DB) *GormPartRepository {
	return &GormPartRepository{db: db}
}

func (r *GormPartRepository) GetByID(id uint) (*models.Part, error) {
	var part models.Part
	if err := r.db.First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

func (r *GormPartRepository) GetByNSN(nsn string) (*models.Part, error) {
	if nsn == "" {
		return nil, nil
	}
	var part models.Part
	if err := r.db.Where("nsn = ?", nsn).First(&part).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

func (r *GormPartRepository) List(filter PartListFilter) ([]models.Part, int64, error) {
	query := r.db.Model(&models.Part{})
	if filter.NSN != "" {
		query = query.Where("nsn = ?", filter.NSN)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("nomen LIKE ? OR nsn LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var parts []models.Part
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("nsn asc").
		Find(&parts).Error; err != nil {
		return nil, 0, err
	}
	return parts, total, nil
}
