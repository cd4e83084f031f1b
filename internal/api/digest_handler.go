package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/config"
	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/service"
	"github.com/selah-content-api/internal/validation"
)

// DigestHandler handles newsletter digest endpoints
type DigestHandler struct {
	services  *service.Services
	validator *validation.Validator
	cfg       *config.Config
	log       zerolog.Logger
}

// NewDigestHandler creates a new DigestHandler
func NewDigestHandler(services *service.Services, validator *validation.Validator, cfg *config.Config, log zerolog.Logger) *DigestHandler {
	return &DigestHandler{
		services:  services,
		validator: validator,
		cfg:       cfg,
		log:       log.With().Str("handler", "digest").Logger(),
	}
}

// GetDigest handles GET /v1/digests/:kind?date=...
// Weekly digests also accept ?end= for the closing day of the week.
func (h *DigestHandler) GetDigest(c *gin.Context) {
	kind := c.Param("kind")
	if errs := h.validator.ValidateDigestKind(kind); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	dateISO := digestDate(c, kind)
	if errs := h.validator.ValidateDate("date", dateISO); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	d, err := h.services.Digest.Build(models.DigestKind(kind), dateISO)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, d)
}

// GetEmail handles GET /v1/digests/:kind/email?date=...&format=text|html
func (h *DigestHandler) GetEmail(c *gin.Context) {
	kind := c.Param("kind")
	if errs := h.validator.ValidateDigestKind(kind); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	dateISO := digestDate(c, kind)
	if errs := h.validator.ValidateDate("date", dateISO); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": errs})
		return
	}

	format := c.Query("format")
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "text" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be 'text' or 'html'"})
		return
	}

	rendered, err := h.services.Digest.Rendered(models.DigestKind(kind), dateISO, h.cfg.Server.BaseURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Mail senders need the subject; the body alone is not a complete
	// message.
	c.Header("X-Digest-Subject", rendered.Subject)

	if format == "text" {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(rendered.Text))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered.HTML))
}

// digestDate picks the request's date parameter, preferring ?end= for
// weekly digests and defaulting to today in UTC.
func digestDate(c *gin.Context, kind string) string {
	dateISO := c.Query("date")
	if kind == string(models.DigestWeekly) && c.Query("end") != "" {
		dateISO = c.Query("end")
	}
	if dateISO == "" {
		dateISO = content.DateISO(time.Now().UTC())
	}
	return dateISO
}
