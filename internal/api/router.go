package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/config"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/service"
	"github.com/selah-content-api/internal/validation"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Parameter validation is seeded from the registry so unknown keys
	// fail before they reach a service.
	validator := validation.NewValidator()
	validator.SetTopicCache(topicKeys(services.Content.Topics()))
	validator.SetThemeCache(themeKeys(services.Content.Themes()))

	// Handlers
	contentHandler := NewContentHandler(services, validator, log)
	overrideHandler := NewOverrideHandler(services, validator, log)
	digestHandler := NewDigestHandler(services, validator, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		// Read endpoints
		v1.GET("/topics", contentHandler.ListTopics)
		v1.GET("/themes", contentHandler.ListThemes)
		v1.GET("/articles", contentHandler.ListArticles)
		v1.GET("/articles/:id", contentHandler.GetArticle)
		v1.GET("/reflections", contentHandler.GetReflection)
		v1.GET("/resolve/image", contentHandler.ResolveImage)

		v1.GET("/overrides/content/:id", overrideHandler.GetContentOverride)
		v1.GET("/prefs", overrideHandler.GetPrefs)
		v1.GET("/mappings", overrideHandler.GetMappings)
		v1.GET("/mappings/export", overrideHandler.ExportMappings)

		// Digest endpoints
		digests := v1.Group("/digests")
		{
			digests.GET("/:kind", digestHandler.GetDigest)
			digests.GET("/:kind/email", digestHandler.GetEmail)
		}

		// Mutating endpoints behind the admin key
		admin := v1.Group("", adminKeyMiddleware(cfg.Server.AdminKey, log))
		{
			admin.PUT("/overrides/content/:id", overrideHandler.SaveContentOverride)
			admin.DELETE("/overrides/content/:id", overrideHandler.ClearContentOverride)

			admin.PUT("/overrides/images/topics/:topic", overrideHandler.SetTopicImage)
			admin.DELETE("/overrides/images/topics/:topic", overrideHandler.ClearTopicImage)
			admin.PUT("/overrides/images/articles/:id", overrideHandler.SetArticleImage)
			admin.DELETE("/overrides/images/articles/:id", overrideHandler.ClearArticleImage)

			admin.PUT("/overrides/sitewide", overrideHandler.SetSiteWide)
			admin.DELETE("/overrides/sitewide", overrideHandler.ClearSiteWide)

			admin.PUT("/prefs", overrideHandler.SetPrefs)

			admin.POST("/mappings/refresh", overrideHandler.RefreshMappings)
			admin.POST("/mappings/import", overrideHandler.ImportMappings)
			admin.POST("/mappings/writeback", overrideHandler.WriteBackMappings)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "selah-content-api",
	})
}

// metricsHandler returns content and mapping counters
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		mappings := services.Override.Mappings()
		remoteStats := services.Override.RemoteStats()

		c.JSON(http.StatusOK, gin.H{
			"content": gin.H{
				"topics": len(services.Content.Topics()),
				"themes": len(services.Content.Themes()),
			},
			"mappings": gin.H{
				"remote":          mappings.Remote.Len(),
				"overlay":         mappings.Overlay.Len(),
				"remote_fetches":  remoteStats.Fetches,
				"remote_failures": remoteStats.Failures,
			},
			"digest_cache": services.Digest.CacheLen(),
			"timestamp":    time.Now().Format(time.RFC3339),
		})
	}
}

func topicKeys(topics []models.TopicSummary) []string {
	keys := make([]string, 0, len(topics))
	for _, t := range topics {
		keys = append(keys, t.Key)
	}
	return keys
}

func themeKeys(themes []models.ThemeSummary) []string {
	keys := make([]string, 0, len(themes))
	for _, t := range themes {
		keys = append(keys, t.Key)
	}
	return keys
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware tags every request, honoring an inbound ID
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// adminKeyMiddleware gates mutating routes on a ?key= parameter. An
// empty configured key disables the gate, which is the local-mode
// default.
func adminKeyMiddleware(key string, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.Query("key")), []byte(key)) != 1 {
			log.Warn().
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Msg("Rejected admin request")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing admin key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
