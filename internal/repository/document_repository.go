package repository

import (
	"errors"
	"strings"

	"github.com/rogtrack/rog-api/internal/models"

	"gorm.io/gorm"
)

// DocumentRepository is the document data-access interface.
type DocumentRepository interface {
	Create(document *models.Document) error
	BulkCreate(documents []models.Document) error
	GetByID(id uint) (*models.Document, error)
	GetBySDN(sdn string) (*models.Document, error)
	// FindEligibleForTransition returns the document with the given sdn when
	// it carries a status with requireDic and none with excludeDic, with its
	// status history and suppadd hierarchy preloaded. Returns nil when no
	// document qualifies.
	FindEligibleForTransition(sdn, requireDic, excludeDic string) (*models.Document, error)
	List(filter DocumentListFilter) ([]models.Document, int64, error)
	ExistingSDNs(sdns []string) (map[string]bool, error)
}

// GormDocumentRepository is the gorm implementation.
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a document repository.
func NewDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Statuses", func(db *gorm.DB) *gorm.DB {
			return db.Order("statuses.created_at asc, statuses.id asc")
		}).
		Preload("SuppAdd").
		Preload("Part").
		Preload("ServiceRequest").
		Preload("ShipTo").
		Preload("Holder")
}

// Create inserts one document.
func (r *GormDocumentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

// BulkCreate inserts documents in a single batch. This is the only write
// path used by the doc-history retrieval task.
func (r *GormDocumentRepository) BulkCreate(documents []models.Document) error {
	if len(documents) == 0 {
		return nil
	}
	return r.db.Create(&documents).Error
}

// GetByID fetches a document with full detail.
func (r *GormDocumentRepository) GetByID(id uint) (*models.Document, error) {
	var document models.Document
	if err := r.withDetail(r.db).First(&document, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

// GetBySDN fetches a document by shipment document number.
func (r *GormDocumentRepository) GetBySDN(sdn string) (*models.Document, error) {
	sdn = strings.TrimSpace(sdn)
	if sdn == "" {
		return nil, nil
	}
	var document models.Document
	if err := r.withDetail(r.db).Where("sdn = ?", sdn).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

// FindEligibleForTransition resolves transition eligibility as a pair of
// status-existence subqueries rather than a state field on the document.
func (r *GormDocumentRepository) FindEligibleForTransition(sdn, requireDic, excludeDic string) (*models.Document, error) {
	sdn = strings.TrimSpace(sdn)
	if sdn == "" {
		return nil, nil
	}
	var document models.Document
	query := r.withDetail(r.db).
		Where("sdn = ?", sdn).
		Where("EXISTS (SELECT 1 FROM statuses WHERE statuses.document_id = documents.id AND statuses.dic = ?)", requireDic).
		Where("NOT EXISTS (SELECT 1 FROM statuses WHERE statuses.document_id = documents.id AND statuses.dic = ?)", excludeDic)
	if err := query.First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

// List returns documents matching the filter plus the total count.
func (r *GormDocumentRepository) List(filter DocumentListFilter) ([]models.Document, int64, error) {
	query := r.db.Model(&models.Document{})

	if filter.SDN != "" {
		query = query.Where("sdn LIKE ?", "%"+filter.SDN+"%")
	}
	if filter.DIC != "" {
		query = query.Where("EXISTS (SELECT 1 FROM statuses WHERE statuses.document_id = documents.id AND statuses.dic = ?)", filter.DIC)
	}
	if filter.SuppAddCode != "" {
		query = query.Where("supp_add_id IN (SELECT id FROM supp_adds WHERE code = ?)", filter.SuppAddCode)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var documents []models.Document
	if err := r.withDetail(query).Order("id desc").Find(&documents).Error; err != nil {
		return nil, 0, err
	}
	return documents, total, nil
}

// ExistingSDNs reports which of the given sdns already have a document.
func (r *GormDocumentRepository) ExistingSDNs(sdns []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(sdns))
	if len(sdns) == 0 {
		return existing, nil
	}
	var rows []string
	if err := r.db.Model(&models.Document{}).
		Where("sdn IN ?", sdns).
		Pluck("sdn", &rows).Error; err != nil {
		return nil, err
	}
	for _, sdn := range rows {
		existing[sdn] = true
	}
	return existing, nil
}
