package api

import (
	"time"

	"github.com/rogtrack/rog-api/internal/cache"
	"github.com/rogtrack/rog-api/internal/http/response"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/repository"

	"github.com/gin-gonic/gin"
)

const suppAddCacheKey = "suppadds:hierarchy"
const suppAddCacheTTL = 5 * time.Minute

// ListSuppAdds serves the full SuppAdd hierarchy for receipt entry. The
// hierarchy changes rarely, so it is served from cache when available.
func (h *Handler) ListSuppAdds(c *gin.Context) {
	var cached []models.SuppAdd
	if hit, err := cache.GetJSON(c.Request.Context(), suppAddCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	suppAdds, err := h.InventoryService.ListSuppAdds()
	if err != nil {
		response.Error(c, response.CodeInternal, "failed to list suppadds")
		return
	}
	if err := cache.SetJSON(c.Request.Context(), suppAddCacheKey, suppAdds, suppAddCacheTTL); err != nil {
		logger.Debugw("api_suppadd_cache_set_failed", "error", err)
	}
	response.Success(c, suppAdds)
}

// ListParts serves the part catalog.
func (h *Handler) ListParts(c *gin.Context) {
	filter := repository.PartListFilter{
		Page:     parsePositiveInt(c.Query("page"), 1),
		PageSize: parsePageSize(c.Query("page_size")),
		NSN:      c.Query("nsn"),
		Search:   c.Query("search"),
	}

	parts, total, err := h.PartService.List(filter)
	if err != nil {
		response.Error(c, response.CodeInternal, "failed to list parts")
		return
	}
	response.SuccessWithPage(c, parts, response.NewPagination(filter.Page, filter.PageSize, total))
}
