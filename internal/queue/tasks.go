package queue

import (
	"encoding/json"

	"github.com/rogtrack/rog-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskGCSSSubmitD6T submits warehouse receipts to the GCSS gateway.
	TaskGCSSSubmitD6T = constants.TaskGCSSSubmitD6T
	// TaskGCSSDocHistory pulls the document history feed from the gateway.
	TaskGCSSDocHistory = constants.TaskGCSSDocHistory
)

// GCSSSubmitD6TPayload names the documents to submit.
type GCSSSubmitD6TPayload struct {
	DocumentIDs []uint `json:"document_ids"`
}

// GCSSDocHistoryPayload is empty; the pull always starts at page zero.
type GCSSDocHistoryPayload struct{}

// NewGCSSSubmitD6TTask creates a receipt submission task.
func NewGCSSSubmitD6TTask(payload GCSSSubmitD6TPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGCSSSubmitD6T, body), nil
}

// NewGCSSDocHistoryTask creates a document history pull task.
func NewGCSSDocHistoryTask() (*asynq.Task, error) {
	body, err := json.Marshal(GCSSDocHistoryPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGCSSDocHistory, body), nil
}
