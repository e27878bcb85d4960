// Package upstream builds the configured UpstreamProvider.
package upstream

import (
	"fmt"
	"log/slog"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/config"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/external"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider/livetennis"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider/tennisapi5"
)

// New returns the provider selected by cfg.Provider, with player news routed
// to Google News RSS when cfg.NewsSource asks for it.
func New(cfg *config.Config, logger *slog.Logger) (provider.UpstreamProvider, error) {
	var up provider.UpstreamProvider
	switch cfg.Provider {
	case config.ProviderTennisAPI5:
		up = tennisapi5.New(cfg.UpstreamBaseURL, cfg.UpstreamAPIKey, cfg.UpstreamAPIHost, cfg.UpstreamTimeout, logger)
	case config.ProviderLiveTennis:
		up = livetennis.New(cfg.UpstreamBaseURL, cfg.UpstreamAPIKey, cfg.UpstreamAPIHost, cfg.UpstreamTimeout, logger)
	default:
		return nil, &config.ConfigError{Key: "TENNIS_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}

	if cfg.NewsSource == config.NewsSourceGoogleRSS {
		up = external.WithNews(up, external.NewNewsService(cfg.NewsRSSURL, cfg.UpstreamTimeout, logger))
	}
	return up, nil
}
