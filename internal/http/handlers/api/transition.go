package api

import (
	"github.com/rogtrack/rog-api/internal/http/response"
	"github.com/rogtrack/rog-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitD6T records a batch of warehouse receipts. The whole batch persists
// or none of it does.
func (h *Handler) SubmitD6T(c *gin.Context) {
	var requests []service.D6TRequest
	if err := c.ShouldBindJSON(&requests); err != nil {
		response.BadRequest(c, "request body must be an array of receipt entries")
		return
	}

	statuses, err := h.TransitionService.SubmitD6T(requests)
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	response.Success(c, statuses)
}

// SubmitCOR records a batch of destination confirmations.
func (h *Handler) SubmitCOR(c *gin.Context) {
	var requests []service.CORRequest
	if err := c.ShouldBindJSON(&requests); err != nil {
		response.BadRequest(c, "request body must be an array of confirmation entries")
		return
	}

	statuses, err := h.TransitionService.SubmitCOR(requests)
	if err != nil {
		respondTransitionError(c, err)
		return
	}
	response.Success(c, statuses)
}
