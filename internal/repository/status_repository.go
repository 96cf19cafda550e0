package repository

import (
	"errors"

	"github.com/rogtrack/rog-api/internal/models"

	"gorm.io/gorm"
)

// StatusRepository is the status data-access interface. Statuses are
// append-only; there is no update path.
type StatusRepository interface {
	// BulkCreate inserts all drafts in one batch. The underlying store
	// guarantees all-or-nothing for the batch.
	BulkCreate(statuses []models.Status) error
	ListByDocument(documentID uint) ([]models.Status, error)
	GetByDocumentAndDic(documentID uint, dic string) (*models.Status, error)
	CountByDocumentAndDic(documentID uint, dic string) (int64, error)
}

// GormStatusRepository is the gorm implementation.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a status repository.
func NewStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// BulkCreate inserts validated status drafts in a single batch.
func (r *GormStatusRepository) BulkCreate(statuses []models.Status) error {
	if len(statuses) == 0 {
		return nil
	}
	return r.db.Create(&statuses).Error
}

// ListByDocument returns a document's status history in creation order.
func (r *GormStatusRepository) ListByDocument(documentID uint) ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.
		Where("document_id = ?", documentID).
		Order("created_at asc, id asc").
		Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// GetByDocumentAndDic returns the first status with the given code, or nil.
func (r *GormStatusRepository) GetByDocumentAndDic(documentID uint, dic string) (*models.Status, error) {
	var status models.Status
	if err := r.db.
		Where("document_id = ? AND dic = ?", documentID, dic).
		Order("created_at asc, id asc").
		First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// CountByDocumentAndDic counts statuses with the given code.
func (r *GormStatusRepository) CountByDocumentAndDic(documentID uint, dic string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Status{}).
		Where("document_id = ? AND dic = ?", documentID, dic).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
