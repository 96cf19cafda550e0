package service

import (
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/repository"
)

// DocumentService serves document queries and intake.
type DocumentService struct {
	documentRepo repository.DocumentRepository
	statusRepo   repository.StatusRepository
}

// NewDocumentService creates a document service.
func NewDocumentService(documentRepo repository.DocumentRepository, statusRepo repository.StatusRepository) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		statusRepo:   statusRepo,
	}
}

// List returns documents matching the filter plus the total count.
func (s *DocumentService) List(filter repository.DocumentListFilter) ([]models.Document, int64, error) {
	return s.documentRepo.List(filter)
}

// GetBySDN returns a document with full detail.
func (s *DocumentService) GetBySDN(sdn string) (*models.Document, error) {
	document, err := s.documentRepo.GetBySDN(sdn)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	return document, nil
}

// Create inserts a manually entered document. The sdn must be new.
func (s *DocumentService) Create(document *models.Document) error {
	existing, err := s.documentRepo.GetBySDN(document.SDN)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDocumentExists
	}
	return s.documentRepo.Create(document)
}
