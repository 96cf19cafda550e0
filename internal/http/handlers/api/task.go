package api

import (
	"github.com/rogtrack/rog-api/internal/http/response"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/queue"

	"github.com/gin-gonic/gin"
)

// SubmitGCSSRequest names the documents to submit to the gateway.
type SubmitGCSSRequest struct {
	DocumentIDs []uint `json:"document_ids" binding:"required"`
}

// EnqueueGCSSSubmit queues a receipt submission to the gateway.
func (h *Handler) EnqueueGCSSSubmit(c *gin.Context) {
	var req SubmitGCSSRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.DocumentIDs) == 0 {
		response.BadRequest(c, "document_ids is required")
		return
	}
	if !h.QueueClient.Enabled() {
		response.Error(c, response.CodeInternal, "task queue is not available")
		return
	}

	if err := h.QueueClient.EnqueueGCSSSubmitD6T(queue.GCSSSubmitD6TPayload{DocumentIDs: req.DocumentIDs}); err != nil {
		logger.Errorw("api_enqueue_gcss_submit_failed", "document_count", len(req.DocumentIDs), "error", err)
		response.Error(c, response.CodeInternal, "failed to enqueue submission")
		return
	}
	response.Success(c, gin.H{"queued": len(req.DocumentIDs)})
}

// EnqueueGCSSDocHistory queues a document history pull from the gateway.
func (h *Handler) EnqueueGCSSDocHistory(c *gin.Context) {
	if !h.QueueClient.Enabled() {
		response.Error(c, response.CodeInternal, "task queue is not available")
		return
	}

	if err := h.QueueClient.EnqueueGCSSDocHistory(); err != nil {
		logger.Errorw("api_enqueue_gcss_doc_history_failed", "error", err)
		response.Error(c, response.CodeInternal, "failed to enqueue document history pull")
		return
	}
	response.Success(c, gin.H{"queued": true})
}
