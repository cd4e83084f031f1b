package overlay

import (
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/config"
	"github.com/selah-content-api/internal/models"
)

// RemoteSource supplies the current fetched remote mapping. The remote
// fetcher implements it; tests substitute a fixed table.
type RemoteSource interface {
	Current() models.MappingSet
}

// Resolver decides which image an entity actually shows by walking the
// layered chain for the configured execution mode:
//
//	public: site-wide > remote (article, topic) > code default > generated
//	local:  site-wide > local override (article, topic)
//	        > overlay-then-remote (article, topic) > code default > generated
//
// The overlay supersedes the remote table key by key at the same rung,
// which is why the article/topic walk consults overlay before remote on
// each level. A non-empty site-wide override short-circuits everything
// in both modes. Resolution is total: the generated default guarantees
// an answer for any key.
type Resolver struct {
	mode     config.ExecutionMode
	images   *ImageStore
	overlay  *MappingOverlayStore
	remote   RemoteSource
	defaults models.MappingSet
	log      zerolog.Logger
}

func NewResolver(mode config.ExecutionMode, images *ImageStore, overlay *MappingOverlayStore, remote RemoteSource, log zerolog.Logger) *Resolver {
	return &Resolver{
		mode:     mode,
		images:   images,
		overlay:  overlay,
		remote:   remote,
		defaults: CodeDefaults(),
		log:      log.With().Str("component", "overlay.resolver").Logger(),
	}
}

// Mode reports the execution mode the resolver was built with.
func (r *Resolver) Mode() config.ExecutionMode {
	return r.mode
}

// ResolveArticleImage returns the effective image for an article given
// its topic and its generated placeholder URL.
func (r *Resolver) ResolveArticleImage(articleID, topic, generated string) models.ResolvedImage {
	if url := r.images.SiteWide(); url != "" {
		return models.ResolvedImage{URL: url, Layer: models.LayerSiteWide}
	}

	if r.mode == config.ModeLocal {
		if url := r.images.ArticleImages()[articleID]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerLocalArticle}
		}
		if url := r.images.TopicImages()[topic]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerLocalTopic}
		}
	}

	remote := r.remote.Current()
	if r.mode == config.ModeLocal {
		ov := r.overlay.Get()
		if url := ov.Articles[articleID]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerOverlayArticle}
		}
		if url := remote.Articles[articleID]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerRemoteArticle}
		}
		if url := ov.Topics[topic]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerOverlayTopic}
		}
		if url := remote.Topics[topic]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerRemoteTopic}
		}
	} else {
		if url := remote.Articles[articleID]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerRemoteArticle}
		}
		if url := remote.Topics[topic]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerRemoteTopic}
		}
	}

	if url := r.defaults.Articles[articleID]; url != "" {
		return models.ResolvedImage{URL: url, Layer: models.LayerDefaultArticle}
	}
	if url := r.defaults.Topics[topic]; url != "" {
		return models.ResolvedImage{URL: url, Layer: models.LayerDefaultTopic}
	}
	return models.ResolvedImage{URL: generated, Layer: models.LayerGenerated}
}

// ResolveTopicImage returns the effective image for a topic page. The
// remote article table plays no part here; it exists only as the
// article-level primary.
func (r *Resolver) ResolveTopicImage(topic, generated string) models.ResolvedImage {
	if url := r.images.SiteWide(); url != "" {
		return models.ResolvedImage{URL: url, Layer: models.LayerSiteWide}
	}

	if r.mode == config.ModeLocal {
		if url := r.images.TopicImages()[topic]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerLocalTopic}
		}
		if url := r.overlay.Get().Topics[topic]; url != "" {
			return models.ResolvedImage{URL: url, Layer: models.LayerOverlayTopic}
		}
	}

	if url := r.remote.Current().Topics[topic]; url != "" {
		return models.ResolvedImage{URL: url, Layer: models.LayerRemoteTopic}
	}
	if url := r.defaults.Topics[topic]; url != "" {
		return models.ResolvedImage{URL: url, Layer: models.LayerDefaultTopic}
	}
	return models.ResolvedImage{URL: generated, Layer: models.LayerGenerated}
}

// SetTopicImage persists a local topic image override. In public mode the
// write is dropped and false is returned: deployed sessions may not write
// local image state, they go through the remote mapping instead.
func (r *Resolver) SetTopicImage(topic, url string) bool {
	if r.mode == config.ModePublic {
		r.log.Debug().Str("topic", topic).Msg("ignoring image write in public mode")
		return false
	}
	r.images.SetTopicImage(topic, url)
	return true
}

// SetArticleImage persists a local article image override, with the same
// public-mode no-op rule as SetTopicImage.
func (r *Resolver) SetArticleImage(articleID, url string) bool {
	if r.mode == config.ModePublic {
		r.log.Debug().Str("article", articleID).Msg("ignoring image write in public mode")
		return false
	}
	r.images.SetArticleImage(articleID, url)
	return true
}

// ClearTopicImage removes a local topic override, public-mode no-op.
func (r *Resolver) ClearTopicImage(topic string) bool {
	if r.mode == config.ModePublic {
		return false
	}
	r.images.RemoveTopicImage(topic)
	return true
}

// ClearArticleImage removes a local article override, public-mode no-op.
func (r *Resolver) ClearArticleImage(articleID string) bool {
	if r.mode == config.ModePublic {
		return false
	}
	r.images.RemoveArticleImage(articleID)
	return true
}
