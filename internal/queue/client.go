package queue

import (
	"fmt"
	"strings"

	"github.com/rogtrack/rog-api/internal/config"
	"github.com/rogtrack/rog-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue carries housekeeping tasks.
	DefaultQueue = constants.QueueDefault
	// GCSSQueue carries gateway traffic so a slow gateway cannot starve the
	// rest of the queue.
	GCSSQueue = constants.QueueGCSS
)

// Client wraps the asynq producer. A disabled client swallows enqueues so
// callers need no feature checks.
type Client struct {
	client  *asynq.Client
	enabled bool
}

// NewClient creates a queue client.
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{client: client, enabled: true}, nil
}

// Enabled reports whether tasks actually enqueue.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close shuts the producer down.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueGCSSSubmitD6T enqueues a receipt submission.
func (c *Client) EnqueueGCSSSubmitD6T(payload GCSSSubmitD6TPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewGCSSSubmitD6TTask(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{asynq.Queue(GCSSQueue)}, opts...)
	_, err = c.client.Enqueue(task, options...)
	return err
}

// EnqueueGCSSDocHistory enqueues a document history pull.
func (c *Client) EnqueueGCSSDocHistory(opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewGCSSDocHistoryTask()
	if err != nil {
		return err
	}
	options := append([]asynq.Option{asynq.Queue(GCSSQueue)}, opts...)
	_, err = c.client.Enqueue(task, options...)
	return err
}

// BuildServerConfig produces the consumer-side asynq settings.
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 10, GCSSQueue: 5}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
