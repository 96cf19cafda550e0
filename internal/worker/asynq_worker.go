package worker

import (
	"context"
	"encoding/json"

	"github.com/rogtrack/rog-api/internal/constants"
	"github.com/rogtrack/rog-api/internal/gcss"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/provider"
	"github.com/rogtrack/rog-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles background tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskGCSSSubmitD6T, c.handleGCSSSubmitD6T)
	mux.HandleFunc(queue.TaskGCSSDocHistory, c.handleGCSSDocHistory)
}

func (c *Consumer) handleGCSSSubmitD6T(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_gcss_submit_d6t_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.GCSSSubmitD6TPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_gcss_submit_d6t_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.DocumentIDs) == 0 {
		logger.Debugw("worker_gcss_submit_d6t_skip_empty_payload")
		return nil
	}
	if c.GCSSClient == nil {
		logger.Warnw("worker_gcss_submit_d6t_skip_client_nil", "document_count", len(payload.DocumentIDs))
		return nil
	}

	fragments := make([]string, 0, len(payload.DocumentIDs))
	for _, id := range payload.DocumentIDs {
		document, err := c.DocumentRepo.GetByID(id)
		if err != nil {
			logger.Warnw("worker_gcss_submit_d6t_fetch_failed", "document_id", id, "error", err)
			return err
		}
		if document == nil {
			logger.Debugw("worker_gcss_submit_d6t_skip_document_not_found", "document_id", id)
			continue
		}
		fragments = append(fragments, gcss.RenderMRec(mRecInputFor(document)))
	}
	if len(fragments) == 0 {
		logger.Debugw("worker_gcss_submit_d6t_skip_no_documents", "requested", len(payload.DocumentIDs))
		return nil
	}

	quoted := gcss.EscapeUncompressed(gcss.WrapCollection(fragments))
	if err := c.GCSSClient.InitiateUncompressed(ctx, quoted); err != nil {
		logger.Warnw("worker_gcss_submit_d6t_failed", "document_count", len(fragments), "error", err)
		return err
	}
	logger.Infow("worker_gcss_submit_d6t_done", "document_count", len(fragments))
	return nil
}

// mRecInputFor maps a document to the receipt fragment fields. Part data
// fills the item identifiers; the rest stays empty or schema-fixed.
func mRecInputFor(document *models.Document) gcss.MRecInput {
	input := gcss.MRecInput{
		SpoolID: document.ID,
		IPAAC:   document.AAC,
		DIC:     constants.DicD6T,
		SDN:     document.SDN,
	}
	if document.Part != nil {
		input.NIIN = document.Part.NIIN()
		input.UOI = document.Part.UOI
	}
	return input
}

func (c *Consumer) handleGCSSDocHistory(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_gcss_doc_history_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	if c.GCSSClient == nil {
		logger.Warnw("worker_gcss_doc_history_skip_client_nil")
		return nil
	}

	session := c.GCSSClient.OpenSession(gcss.ServiceDocHistory)
	defer session.Close()

	pageSize := c.GCSSClient.PagingMax()
	currentPage := 0
	remaining := 0
	total := 0
	// Page zero is always requested; later pages only while the gateway
	// reports records beyond the previous one.
	for currentPage == 0 || remaining > 0 {
		page, err := session.Process(ctx, currentPage*pageSize, pageSize)
		if err != nil {
			logger.Warnw("worker_gcss_doc_history_page_failed", "page", currentPage, "error", err)
			return err
		}
		inserted, err := c.insertHistoryRecords(page.Records)
		if err != nil {
			logger.Warnw("worker_gcss_doc_history_insert_failed", "page", currentPage, "error", err)
			return err
		}
		total += inserted
		remaining = page.RemainingRecords
		currentPage++
	}
	logger.Infow("worker_gcss_doc_history_done", "pages", currentPage, "inserted", total)
	return nil
}

// insertHistoryRecords maps one page of history records to documents and
// bulk inserts the ones not already present.
func (c *Consumer) insertHistoryRecords(records []gcss.Record) (int, error) {
	sdns := make([]string, 0, len(records))
	for _, record := range records {
		if sdn := record.Get("D"); sdn != "" {
			sdns = append(sdns, sdn)
		}
	}
	if len(sdns) == 0 {
		return 0, nil
	}
	existing, err := c.DocumentRepo.ExistingSDNs(sdns)
	if err != nil {
		return 0, err
	}
	documents := make([]models.Document, 0, len(sdns))
	seen := make(map[string]bool, len(sdns))
	for _, sdn := range sdns {
		if existing[sdn] || seen[sdn] {
			continue
		}
		seen[sdn] = true
		documents = append(documents, models.Document{SDN: sdn})
	}
	if len(documents) == 0 {
		return 0, nil
	}
	if err := c.DocumentRepo.BulkCreate(documents); err != nil {
		return 0, err
	}
	return len(documents), nil
}
