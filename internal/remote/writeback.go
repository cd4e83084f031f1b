package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/config"
	"github.com/selah-content-api/internal/models"
)

// WriteBack pushes an edited mapping set to the configured endpoint.
// Success is solely "the endpoint answered 2xx"; nothing in the response
// body is interpreted. Callers fall back to manual export when it fails.
type WriteBack struct {
	cfg    config.RemoteConfig
	client *http.Client
	log    zerolog.Logger
}

func NewWriteBack(cfg config.RemoteConfig, log zerolog.Logger) *WriteBack {
	return &WriteBack{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		log:    log.With().Str("component", "remote.writeback").Logger(),
	}
}

// Enabled reports whether a write-back endpoint is configured.
func (w *WriteBack) Enabled() bool {
	return w.cfg.WriteBackURL != ""
}

// Send posts the mapping set as JSON and reports whether the endpoint
// accepted it.
func (w *WriteBack) Send(ctx context.Context, m models.MappingSet) bool {
	if !w.Enabled() {
		w.log.Debug().Msg("Write-back skipped, no endpoint configured")
		return false
	}

	body, err := json.Marshal(m)
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to encode write-back payload")
		return false
	}

	method := w.cfg.WriteBackMethod
	if method == "" {
		method = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, method, w.cfg.WriteBackURL, bytes.NewReader(body))
	if err != nil {
		w.log.Error().Err(err).Msg("Failed to build write-back request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range w.cfg.WriteBackHeaders {
		req.Header.Set(k, v)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.Warn().Err(err).Msg("Write-back request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		w.log.Warn().Int("status", resp.StatusCode).Msg("Write-back rejected")
		return false
	}

	w.log.Info().
		Int("topics", len(m.Topics)).
		Int("articles", len(m.Articles)).
		Msg("Mapping write-back accepted")
	return true
}
