package router

import (
	"fmt"
	"strings"

	"github.com/rogtrack/rog-api/internal/cache"
	"github.com/rogtrack/rog-api/internal/config"
	apihandlers "github.com/rogtrack/rog-api/internal/http/handlers/api"
	"github.com/rogtrack/rog-api/internal/logger"
	"github.com/rogtrack/rog-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "rog"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware())

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIP), handler.Login)
		}

		authed := apiV1.Group("")
		authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			authed.GET("/documents", handler.ListDocuments)
			authed.POST("/documents", handler.CreateDocument)
			authed.GET("/documents/:sdn", handler.GetDocument)
			authed.POST("/documents/d6t", handler.SubmitD6T)
			authed.POST("/documents/cor", handler.SubmitCOR)

			authed.GET("/suppadds", handler.ListSuppAdds)
			authed.GET("/parts", handler.ListParts)

			tasks := authed.Group("/tasks/gcss")
			{
				tasks.POST("/submit", handler.EnqueueGCSSSubmit)
				tasks.POST("/doc-history", handler.EnqueueGCSSDocHistory)
			}
		}
	}

	return r
}
