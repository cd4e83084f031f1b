package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/service"
	"github.com/selah-content-api/internal/validation"
)

// defaultTheme is the reflection shown when no theme is requested,
// matching the site's landing view.
const defaultTheme = "mindfulness"

// ContentHandler handles generated content endpoints
type ContentHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "content").Logger(),
	}
}

// ListTopics handles GET /v1/topics
func (h *ContentHandler) ListTopics(c *gin.Context) {
	topics := h.services.Content.Topics()
	c.JSON(http.StatusOK, gin.H{"topics": topics})
}

// ListThemes handles GET /v1/themes
func (h *ContentHandler) ListThemes(c *gin.Context) {
	themes := h.services.Content.Themes()
	c.JSON(http.StatusOK, gin.H{"themes": themes})
}

// ListArticles handles GET /v1/articles?date=...&count=...
// The date defaults to today in UTC.
func (h *ContentHandler) ListArticles(c *gin.Context) {
	dateISO := c.Query("date")
	if dateISO == "" {
		dateISO = content.DateISO(time.Now().UTC())
	}
	if errs := h.validator.ValidateDate("date", dateISO); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	count, errs := h.validator.ValidateCount(c.Query("count"))
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	articles := h.services.Content.ArticlesForDate(dateISO, count)
	c.JSON(http.StatusOK, gin.H{
		"date":     dateISO,
		"count":    len(articles),
		"articles": articles,
	})
}

// GetArticle handles GET /v1/articles/:id
func (h *ContentHandler) GetArticle(c *gin.Context) {
	id := c.Param("id")
	if errs := h.validator.ValidateArticleID(id); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	article := h.services.Content.ArticleByID(id)
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// GetReflection handles GET /v1/reflections?date=...&theme=...
func (h *ContentHandler) GetReflection(c *gin.Context) {
	dateISO := c.Query("date")
	if dateISO == "" {
		dateISO = content.DateISO(time.Now().UTC())
	}
	theme := c.Query("theme")
	if theme == "" {
		theme = defaultTheme
	}

	errs := h.validator.ValidateDate("date", dateISO)
	errs = append(errs, h.validator.ValidateTheme(theme)...)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	reflection := h.services.Content.ReflectionForDate(dateISO, theme)
	if reflection == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown theme"})
		return
	}

	c.JSON(http.StatusOK, reflection)
}

// ResolveImage handles GET /v1/resolve/image?article=... or ?topic=...
// It reports the image the override chain settles on plus the layer
// that supplied it.
func (h *ContentHandler) ResolveImage(c *gin.Context) {
	articleID := c.Query("article")
	topic := c.Query("topic")

	if articleID == "" && topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article or topic parameter is required"})
		return
	}
	if articleID != "" && topic != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article and topic are mutually exclusive"})
		return
	}

	if articleID != "" {
		if errs := h.validator.ValidateArticleID(articleID); len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
			return
		}
		resolved, ok := h.services.Content.ResolveArticleImage(articleID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		c.JSON(http.StatusOK, resolved)
		return
	}

	if errs := h.validator.ValidateTopic(topic); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}
	resolved, ok := h.services.Content.ResolveTopicImage(topic)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return
	}
	c.JSON(http.StatusOK, resolved)
}
