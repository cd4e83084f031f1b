package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/config"
	"github.com/selah-content-api/internal/models"
)

// ErrNotConfigured is returned by Refresh when no mapping URL is set.
var ErrNotConfigured = errors.New("remote mapping URL is not configured")

// maxMappingBytes caps how much of a mapping response is read. The file
// is a small key→URL table; anything bigger is a misconfigured URL.
const maxMappingBytes = 4 << 20

// Fetcher periodically pulls the remote image-mapping file and holds the
// latest parsed copy in memory. A failed or non-OK fetch keeps the
// previous tables; freshness is sacrificed before availability. When two
// refreshes race, the last response to finish wins, acceptable because
// each refresh is a whole-map replace rather than a merge.
type Fetcher struct {
	cfg    config.RemoteConfig
	client *http.Client
	bus    *bus.Bus
	log    zerolog.Logger

	mu          sync.RWMutex
	current     models.MappingSet
	fetches     int
	failures    int
	lastRefresh time.Time

	lifecycle sync.Mutex
	running   bool
	cancel    context.CancelFunc
}

// FetcherStats is a point-in-time snapshot for the stats endpoint.
type FetcherStats struct {
	Enabled     bool      `json:"enabled"`
	Fetches     int       `json:"fetches"`
	Failures    int       `json:"failures"`
	LastRefresh time.Time `json:"last_refresh"`
	Topics      int       `json:"topics"`
	Articles    int       `json:"articles"`
}

func NewFetcher(cfg config.RemoteConfig, b *bus.Bus, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		bus:     b,
		log:     log.With().Str("component", "remote.fetcher").Logger(),
		current: models.NewMappingSet(),
	}
}

// Enabled reports whether a mapping URL is configured.
func (f *Fetcher) Enabled() bool {
	return f.cfg.MappingURL != ""
}

// Current returns the latest fetched tables. The returned maps are
// replaced wholesale on refresh and never mutated in place, so callers
// may read them without copying.
func (f *Fetcher) Current() models.MappingSet {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Stats reports fetch counters for the stats endpoint.
func (f *Fetcher) Stats() FetcherStats {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FetcherStats{
		Enabled:     f.Enabled(),
		Fetches:     f.fetches,
		Failures:    f.failures,
		LastRefresh: f.lastRefresh,
		Topics:      len(f.current.Topics),
		Articles:    len(f.current.Articles),
	}
}

// Start runs the refresh loop until the context is cancelled or Stop is
// called. It blocks, so callers run it on its own goroutine. With no
// mapping URL configured it returns immediately.
func (f *Fetcher) Start(ctx context.Context) {
	if !f.Enabled() {
		f.log.Info().Msg("Remote mapping fetch disabled, no URL configured")
		return
	}

	f.lifecycle.Lock()
	if f.running {
		f.lifecycle.Unlock()
		return
	}
	f.running = true
	ctx, f.cancel = context.WithCancel(ctx)
	f.lifecycle.Unlock()

	interval := f.cfg.RefreshInterval
	if interval < config.MinRefreshInterval {
		interval = config.MinRefreshInterval
	}
	f.log.Info().Dur("interval", interval).Msg("Remote mapping refresher started")

	// Populate before the first tick so startup does not serve an
	// empty table for a full interval.
	if err := f.Refresh(ctx); err != nil && ctx.Err() == nil {
		f.log.Warn().Err(err).Msg("Initial mapping fetch failed, starting empty")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.log.Info().Msg("Remote mapping refresher stopping")
			return
		case <-ticker.C:
			f.Refresh(ctx)
		}
	}
}

// Stop halts the refresh loop. Safe to call when never started.
func (f *Fetcher) Stop() {
	f.lifecycle.Lock()
	defer f.lifecycle.Unlock()
	if !f.running {
		return
	}
	f.cancel()
	f.running = false
}

// Refresh fetches and replaces the mapping tables once. Failures are
// logged and leave the previous tables in place; the error comes back so
// the manual refresh endpoint can report it.
func (f *Fetcher) Refresh(ctx context.Context) error {
	if !f.Enabled() {
		return ErrNotConfigured
	}

	url := cacheBust(f.cfg.MappingURL, time.Now().UnixMilli())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.recordFailure()
		f.log.Error().Err(err).Msg("Failed to build mapping request")
		return err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := f.client.Do(req)
	if err != nil {
		f.recordFailure()
		f.log.Warn().Err(err).Msg("Mapping fetch failed, keeping previous tables")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.recordFailure()
		f.log.Warn().Int("status", resp.StatusCode).Msg("Mapping fetch returned non-OK, keeping previous tables")
		return fmt.Errorf("mapping fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMappingBytes))
	if err != nil {
		f.recordFailure()
		f.log.Warn().Err(err).Msg("Mapping body read failed, keeping previous tables")
		return err
	}

	m := Parse(body, f.log)
	f.replace(m)
	f.log.Info().
		Int("topics", len(m.Topics)).
		Int("articles", len(m.Articles)).
		Msg("Remote mapping refreshed")
	return nil
}

func (f *Fetcher) replace(m models.MappingSet) {
	f.mu.Lock()
	f.current = m
	f.fetches++
	f.lastRefresh = time.Now().UTC()
	f.mu.Unlock()
	f.bus.Publish(bus.Event{Topic: bus.TopicRemoteChanged})
}

func (f *Fetcher) recordFailure() {
	f.mu.Lock()
	f.failures++
	f.mu.Unlock()
}

// cacheBust appends the __t timestamp parameter that defeats any
// intermediary cache in front of the static mapping file.
func cacheBust(rawURL string, nowMilli int64) string {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "__t=" + strconv.FormatInt(nowMilli, 10)
}
