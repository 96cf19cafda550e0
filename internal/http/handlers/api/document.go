package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/rogtrack/rog-api/internal/http/response"
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/repository"
	"github.com/rogtrack/rog-api/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListDocuments serves the filtered, paginated document listing.
func (h *Handler) ListDocuments(c *gin.Context) {
	filter := repository.DocumentListFilter{
		Page:        parsePositiveInt(c.Query("page"), 1),
		PageSize:    parsePageSize(c.Query("page_size")),
		SDN:         c.Query("sdn"),
		DIC:         c.Query("dic"),
		SuppAddCode: c.Query("suppadd"),
	}
	if raw := c.Query("created_from"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			response.BadRequest(c, "created_from is not a valid date")
			return
		}
		filter.CreatedFrom = &t
	}
	if raw := c.Query("created_to"); raw != "" {
		t, err := parseDateParam(raw)
		if err != nil {
			response.BadRequest(c, "created_to is not a valid date")
			return
		}
		filter.CreatedTo = &t
	}

	documents, total, err := h.DocumentService.List(filter)
	if err != nil {
		response.Error(c, response.CodeInternal, "failed to list documents")
		return
	}
	response.SuccessWithPage(c, documents, response.NewPagination(filter.Page, filter.PageSize, total))
}

// CreateDocumentRequest is the manual intake body. SuppAdd and part are
// referenced by their natural codes, not ids.
type CreateDocumentRequest struct {
	SDN         string `json:"sdn" binding:"required"`
	AAC         string `json:"aac"`
	SuppAddCode string `json:"suppadd"`
	NSN         string `json:"nsn"`
}

// CreateDocument inserts a manually entered document, typically one the
// doc-history pull has not delivered yet.
func (h *Handler) CreateDocument(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	document := models.Document{SDN: req.SDN, AAC: req.AAC}
	if req.SuppAddCode != "" {
		suppAdd, err := h.InventoryRepo.GetSuppAddByCode(req.SuppAddCode)
		if err != nil {
			response.Error(c, response.CodeInternal, "failed to resolve suppadd")
			return
		}
		if suppAdd == nil {
			response.BadRequest(c, "suppadd does not exist")
			return
		}
		document.SuppAddID = &suppAdd.ID
	}
	if req.NSN != "" {
		part, err := h.PartRepo.GetByNSN(req.NSN)
		if err != nil {
			response.Error(c, response.CodeInternal, "failed to resolve part")
			return
		}
		if part == nil {
			response.BadRequest(c, "part does not exist")
			return
		}
		document.PartID = &part.ID
	}

	if err := h.DocumentService.Create(&document); err != nil {
		if errors.Is(err, service.ErrDocumentExists) {
			response.BadRequest(c, "document already exists")
			return
		}
		response.Error(c, response.CodeInternal, "failed to create document")
		return
	}
	response.Success(c, document)
}

// GetDocument serves one document with its full status history.
func (h *Handler) GetDocument(c *gin.Context) {
	sdn := c.Param("sdn")
	document, err := h.DocumentService.GetBySDN(sdn)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			response.NotFound(c, "document not found")
			return
		}
		response.Error(c, response.CodeInternal, "failed to fetch document")
		return
	}
	response.Success(c, document)
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func parsePageSize(raw string) int {
	value := parsePositiveInt(raw, defaultPageSize)
	if value > maxPageSize {
		return maxPageSize
	}
	return value
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
