package provider

import (
	"github.com/rogtrack/rog-api/internal/cache"
	"github.com/rogtrack/rog-api/internal/config"
	"github.com/rogtrack/rog-api/internal/gcss"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/models"
	"github.com/rogtrack/rog-api/internal/queue"
	"github.com/rogtrack/rog-api/internal/repository"
	"github.com/rogtrack/rog-api/internal/service"
)

// Container wires repositories, services and external clients once and
// shares them between the HTTP handlers and the worker.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	GCSSClient  *gcss.Client

	// Repositories
	DocumentRepo  repository.DocumentRepository
	StatusRepo    repository.StatusRepository
	InventoryRepo repository.InventoryRepository
	PartRepo      repository.PartRepository
	UserRepo      repository.UserRepository

	// Services
	AuthService       *service.AuthService
	DocumentService   *service.DocumentService
	TransitionService *service.TransitionService
	InventoryService  *service.InventoryService
	PartService       *service.PartService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	// Gateway credentials are optional in development; without them the
	// background tasks log and skip.
	var gcssClient *gcss.Client
	if cfg.GCSS.CertFile != "" && cfg.GCSS.KeyFile != "" {
		client, err := gcss.NewClient(gcss.Config{
			BaseURL:            cfg.GCSS.BaseURL,
			CertFile:           cfg.GCSS.CertFile,
			KeyFile:            cfg.GCSS.KeyFile,
			InsecureSkipVerify: cfg.GCSS.InsecureSkipVerify,
			PagingMax:          cfg.GCSS.PagingMax,
			TimeoutSeconds:     cfg.GCSS.TimeoutSeconds,
		})
		if err != nil {
			logger.Errorw("provider_init_gcss_client_failed", "error", err)
		} else {
			gcssClient = client
		}
	} else {
		logger.Warnw("provider_gcss_client_disabled", "reason", "certificate pair not configured")
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		GCSSClient:  gcssClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.DocumentRepo = repository.NewDocumentRepository(db)
	c.StatusRepo = repository.NewStatusRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.PartRepo = repository.NewPartRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.DocumentService = service.NewDocumentService(c.DocumentRepo, c.StatusRepo)
	c.TransitionService = service.NewTransitionService(c.DocumentRepo, c.StatusRepo, c.InventoryRepo)
	c.InventoryService = service.NewInventoryService(c.InventoryRepo)
	c.PartService = service.NewPartService(c.PartRepo)
}

// Close releases external clients.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
