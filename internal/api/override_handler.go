package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/remote"
	"github.com/selah-content-api/internal/service"
	"github.com/selah-content-api/internal/validation"
)

// maxImportBytes caps mapping import payloads, mirroring the fetch cap.
const maxImportBytes = 4 << 20

// imageRequest is the body for image override writes.
type imageRequest struct {
	URL string `json:"url"`
}

// OverrideHandler handles override, preference and mapping endpoints
type OverrideHandler struct {
	services  *service.Services
	validator *validation.Validator
	log       zerolog.Logger
}

// NewOverrideHandler creates a new OverrideHandler
func NewOverrideHandler(services *service.Services, validator *validation.Validator, log zerolog.Logger) *OverrideHandler {
	return &OverrideHandler{
		services:  services,
		validator: validator,
		log:       log.With().Str("handler", "override").Logger(),
	}
}

// GetContentOverride handles GET /v1/overrides/content/:id
func (h *OverrideHandler) GetContentOverride(c *gin.Context) {
	id := c.Param("id")
	if errs := h.validator.ValidateArticleID(id); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	override, ok := h.services.Override.ContentOverride(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no override for this article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "override": override})
}

// SaveContentOverride handles PUT /v1/overrides/content/:id
func (h *OverrideHandler) SaveContentOverride(c *gin.Context) {
	id := c.Param("id")
	if errs := h.validator.ValidateArticleID(id); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	var override models.ContentOverride
	if err := c.ShouldBindJSON(&override); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := h.validator.ValidateOverride(&override); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	h.services.Override.SaveContentOverride(id, override)

	h.log.Info().Str("article_id", id).Msg("Content override saved")
	c.JSON(http.StatusOK, gin.H{"id": id, "override": override})
}

// ClearContentOverride handles DELETE /v1/overrides/content/:id
func (h *OverrideHandler) ClearContentOverride(c *gin.Context) {
	id := c.Param("id")
	if errs := h.validator.ValidateArticleID(id); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	h.services.Override.ClearContentOverride(id)

	h.log.Info().Str("article_id", id).Msg("Content override cleared")
	c.Status(http.StatusNoContent)
}

// SetTopicImage handles PUT /v1/overrides/images/topics/:topic
// In public mode the write is acknowledged but not applied.
func (h *OverrideHandler) SetTopicImage(c *gin.Context) {
	topic := c.Param("topic")
	if errs := h.validator.ValidateTopic(topic); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := h.validator.ValidateImageURL("url", req.URL); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	applied := h.services.Override.SetTopicImage(topic, req.URL)
	if applied {
		h.log.Info().Str("topic", topic).Msg("Topic image override saved")
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied, "topic": topic})
}

// ClearTopicImage handles DELETE /v1/overrides/images/topics/:topic
func (h *OverrideHandler) ClearTopicImage(c *gin.Context) {
	topic := c.Param("topic")
	if errs := h.validator.ValidateTopic(topic); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	applied := h.services.Override.ClearTopicImage(topic)
	c.JSON(http.StatusOK, gin.H{"applied": applied, "topic": topic})
}

// SetArticleImage handles PUT /v1/overrides/images/articles/:id
func (h *OverrideHandler) SetArticleImage(c *gin.Context) {
	id := c.Param("id")
	if errs := h.validator.ValidateArticleID(id); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := h.validator.ValidateImageURL("url", req.URL); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	applied := h.services.Override.SetArticleImage(id, req.URL)
	if applied {
		h.log.Info().Str("article_id", id).Msg("Article image override saved")
	}
	c.JSON(http.StatusOK, gin.H{"applied": applied, "id": id})
}

// ClearArticleImage handles DELETE /v1/overrides/images/articles/:id
func (h *OverrideHandler) ClearArticleImage(c *gin.Context) {
	id := c.Param("id")
	if errs := h.validator.ValidateArticleID(id); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	applied := h.services.Override.ClearArticleImage(id)
	c.JSON(http.StatusOK, gin.H{"applied": applied, "id": id})
}

// SetSiteWide handles PUT /v1/overrides/sitewide
// The site-wide image wins over every other layer in both modes.
func (h *OverrideHandler) SetSiteWide(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := h.validator.ValidateImageURL("url", req.URL); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	h.services.Override.SetSiteWide(req.URL)

	h.log.Info().Msg("Site-wide image override saved")
	c.JSON(http.StatusOK, gin.H{"url": req.URL})
}

// ClearSiteWide handles DELETE /v1/overrides/sitewide
func (h *OverrideHandler) ClearSiteWide(c *gin.Context) {
	h.services.Override.ClearSiteWide()

	h.log.Info().Msg("Site-wide image override cleared")
	c.Status(http.StatusNoContent)
}

// GetPrefs handles GET /v1/prefs
func (h *OverrideHandler) GetPrefs(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Override.Prefs())
}

// SetPrefs handles PUT /v1/prefs
// The body replaces the stored preferences wholesale.
func (h *OverrideHandler) SetPrefs(c *gin.Context) {
	var prefs models.Prefs
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.services.Override.SetPrefs(prefs)
	c.JSON(http.StatusOK, prefs)
}

// GetMappings handles GET /v1/mappings
func (h *OverrideHandler) GetMappings(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Override.Mappings())
}

// ExportMappings handles GET /v1/mappings/export?format=csv|json
// The export serializes the effective table, so it reflects what the
// site is actually using.
func (h *OverrideHandler) ExportMappings(c *gin.Context) {
	format := c.Query("format")
	if errs := h.validator.ValidateExportFormat(format); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	if format == "json" {
		c.Header("Content-Disposition", "attachment; filename=mappings.json")
		c.Data(http.StatusOK, "application/json", []byte(h.services.Override.ExportMappings(remote.FormatJSON)))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=mappings.csv")
	c.Data(http.StatusOK, "text/csv", []byte(h.services.Override.ExportMappings(remote.FormatCSV)))
}

// ImportMappings handles POST /v1/mappings/import
// The raw body is parsed as CSV or JSON and replaces the overlay.
func (h *OverrideHandler) ImportMappings(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	imported, err := h.services.Override.ImportMappings(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info().
		Int("topics", len(imported.Topics)).
		Int("articles", len(imported.Articles)).
		Msg("Mapping overlay imported")

	c.JSON(http.StatusOK, gin.H{
		"imported": gin.H{
			"topics":   len(imported.Topics),
			"articles": len(imported.Articles),
		},
	})
}

// RefreshMappings handles POST /v1/mappings/refresh
func (h *OverrideHandler) RefreshMappings(c *gin.Context) {
	if err := h.services.Override.RefreshRemote(c.Request.Context()); err != nil {
		if errors.Is(err, remote.ErrNotConfigured) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "remote mapping is not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "refresh failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"refreshed": true,
		"stats":     h.services.Override.RemoteStats(),
	})
}

// WriteBackMappings handles POST /v1/mappings/writeback
func (h *OverrideHandler) WriteBackMappings(c *gin.Context) {
	if !h.services.Override.WriteBackEnabled() {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "write-back is not configured"})
		return
	}

	if !h.services.Override.WriteBack(c.Request.Context()) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "write-back failed",
			"hint":  "export the mappings and update the remote file manually",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"delivered": true})
}
