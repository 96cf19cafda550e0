package service

import (
	"fmt"
	"time"

	"github.com/rogtrack/rog-api/internal/constants"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/repository"
)

// TransitionService drives the receipt workflow. A document moves
// AS2 -> D6T (received at warehouse) -> COR (confirmed at destination),
// each step recorded as an appended immutable Status row.
type TransitionService struct {
	documentRepo  repository.DocumentRepository
	statusRepo    repository.StatusRepository
	inventoryRepo repository.InventoryRepository
}

// NewTransitionService creates a transition service.
func NewTransitionService(documentRepo repository.DocumentRepository, statusRepo repository.StatusRepository, inventoryRepo repository.InventoryRepository) *TransitionService {
	return &TransitionService{
		documentRepo:  documentRepo,
		statusRepo:    statusRepo,
		inventoryRepo: inventoryRepo,
	}
}

// D6TRequest records a warehouse receipt against one document.
type D6TRequest struct {
	SDN              string `json:"sdn" binding:"required"`
	SubInventoryCode string `json:"subinventory" binding:"required"`
	LocatorCode      string `json:"locator"`
	ReceivedQty      int    `json:"received_qty" binding:"required"`
	ReceivedBy       string `json:"received_by"`
	StatusDate       string `json:"status_date"`
}

// CORRequest records a destination confirmation against one document.
type CORRequest struct {
	SDN        string `json:"sdn" binding:"required"`
	ReceivedBy string `json:"received_by" binding:"required"`
	StatusDate string `json:"status_date"`
}

// SubmitD6T validates every request against current database state, then
// persists all resulting statuses in one batch. Any invalid item fails the
// whole batch before a single row is written. Items are validated against
// pre-batch state only: two D6T requests for the same sdn in one batch both
// pass validation and both insert.
func (s *TransitionService) SubmitD6T(requests []D6TRequest) ([]models.Status, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyBatch
	}

	drafts := make([]models.Status, 0, len(requests))
	for i, req := range requests {
		draft, err := s.buildD6TDraft(req)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, req.SDN, err)
		}
		drafts = append(drafts, *draft)
	}

	if err := s.statusRepo.BulkCreate(drafts); err != nil {
		logger.Errorw("d6t_bulk_create_failed", "count", len(drafts), "error", err)
		return nil, err
	}

	logger.Infow("d6t_statuses_created", "count", len(drafts))
	return drafts, nil
}

// SubmitOneD6T runs a single-item batch.
func (s *TransitionService) SubmitOneD6T(request D6TRequest) (*models.Status, error) {
	statuses, err := s.SubmitD6T([]D6TRequest{request})
	if err != nil {
		return nil, err
	}
	return &statuses[0], nil
}

// buildD6TDraft checks every D6T precondition and resolves the inventory
// chain, returning the status row to insert.
func (s *TransitionService) buildD6TDraft(req D6TRequest) (*models.Status, error) {
	document, err := s.documentRepo.FindEligibleForTransition(req.SDN, constants.DicAS2, constants.DicD6T)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotEligible
	}
	if req.ReceivedQty < 1 {
		return nil, ErrReceivedQtyInvalid
	}

	subInventory, locator, err := s.resolveInventory(document, req.SubInventoryCode, req.LocatorCode)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	draft := &models.Status{
		DocumentID:         document.ID,
		DIC:                constants.DicD6T,
		StatusDate:         parseStatusDate(req.StatusDate, now),
		KeyAndTransmitDate: now,
		ReceivedQty:        intPtr(req.ReceivedQty),
		ReceivedBy:         req.ReceivedBy,
		SubInventoryID:     &subInventory.ID,
	}
	if locator != nil {
		draft.LocatorID = &locator.ID
	}
	// Projected quantity carries over from the shipment advice.
	if as2 := document.StatusByDic(constants.DicAS2); as2 != nil && as2.ProjectedQty != nil {
		draft.ProjectedQty = intPtr(*as2.ProjectedQty)
	}
	return draft, nil
}

// resolveInventory walks the document's SuppAdd down to a locator. Codes are
// meaningless outside their parent, so each level resolves within the one
// above and fails with its own error.
func (s *TransitionService) resolveInventory(document *models.Document, subInventoryCode, locatorCode string) (*models.SubInventory, *models.Locator, error) {
	if document.SuppAddID == nil {
		return nil, nil, ErrSuppAddMissing
	}
	subInventory, err := s.inventoryRepo.GetSubInventoryByCode(*document.SuppAddID, subInventoryCode)
	if err != nil {
		return nil, nil, err
	}
	if subInventory == nil {
		return nil, nil, ErrSubInventoryNotFound
	}
	if locatorCode == "" {
		return subInventory, nil, nil
	}
	locator, err := s.inventoryRepo.GetLocatorByCode(subInventory.ID, locatorCode)
	if err != nil {
		return nil, nil, err
	}
	if locator == nil {
		return nil, nil, ErrLocatorNotFound
	}
	return subInventory, locator, nil
}

// SubmitCOR validates and persists a batch of destination confirmations with
// the same all-or-nothing semantics as SubmitD6T.
func (s *TransitionService) SubmitCOR(requests []CORRequest) ([]models.Status, error) {
	if len(requests) == 0 {
		return nil, ErrEmptyBatch
	}

	drafts := make([]models.Status, 0, len(requests))
	for i, req := range requests {
		draft, err := s.buildCORDraft(req)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i, req.SDN, err)
		}
		drafts = append(drafts, *draft)
	}

	if err := s.statusRepo.BulkCreate(drafts); err != nil {
		logger.Errorw("cor_bulk_create_failed", "count", len(drafts), "error", err)
		return nil, err
	}

	logger.Infow("cor_statuses_created", "count", len(drafts))
	return drafts, nil
}

// SubmitOneCOR runs a single-item batch.
func (s *TransitionService) SubmitOneCOR(request CORRequest) (*models.Status, error) {
	statuses, err := s.SubmitCOR([]CORRequest{request})
	if err != nil {
		return nil, err
	}
	return &statuses[0], nil
}

func (s *TransitionService) buildCORDraft(req CORRequest) (*models.Status, error) {
	document, err := s.documentRepo.FindEligibleForTransition(req.SDN, constants.DicD6T, constants.DicCOR)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotEligible
	}
	if req.ReceivedBy == "" {
		return nil, ErrReceivedByRequired
	}

	now := time.Now().UTC()
	draft := &models.Status{
		DocumentID:         document.ID,
		DIC:                constants.DicCOR,
		StatusDate:         parseStatusDate(req.StatusDate, now),
		KeyAndTransmitDate: now,
		ReceivedBy:         req.ReceivedBy,
	}
	// Quantities carry over from the warehouse receipt.
	if d6t := document.StatusByDic(constants.DicD6T); d6t != nil {
		if d6t.ReceivedQty != nil {
			draft.ReceivedQty = intPtr(*d6t.ReceivedQty)
		}
		if d6t.ProjectedQty != nil {
			draft.ProjectedQty = intPtr(*d6t.ProjectedQty)
		}
	}
	return draft, nil
}

// parseStatusDate accepts RFC 3339 or date-only input, falling back to now.
func parseStatusDate(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC()
	}
	return fallback
}

func intPtr(v int) *int {
	return &v
}
