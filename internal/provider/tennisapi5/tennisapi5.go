// Package tennisapi5 integrates the RapidAPI "tennis-api5" provider.
//
// Live events come back as a flat list of records with plain-string players,
// an opaque score string and a status vocabulary where LIVE and IN_PROGRESS
// mean the match is being played.
package tennisapi5

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider/rapidapi"
)

const (
	Name           = "tennisapi5"
	DefaultHost    = "tennis-api5.p.rapidapi.com"
	DefaultBaseURL = "https://" + DefaultHost

	historyLimit = 15
)

// Provider fetches tennis-api5 payloads.
type Provider struct {
	client *rapidapi.Client
	schema provider.Schema
}

// New creates a tennis-api5 provider. Empty baseURL/host fall back to the
// public RapidAPI endpoint.
func New(baseURL, apiKey, host string, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if host == "" {
		host = DefaultHost
	}
	return &Provider{
		client: rapidapi.NewClient(rapidapi.ClientConfig{
			BaseURL: baseURL,
			APIKey:  apiKey,
			APIHost: host,
			Timeout: timeout,
			Logger:  logger,
		}),
		schema: provider.Schema{Live: provider.StatusIn("LIVE", "IN_PROGRESS")},
	}
}

func (p *Provider) Name() string            { return Name }
func (p *Provider) Schema() provider.Schema { return p.schema }

func (p *Provider) LiveMatches(ctx context.Context) (provider.Value, error) {
	return p.get(ctx, "/get-match-events", nil)
}

func (p *Provider) PlayerHistory(ctx context.Context, playerRef string) (provider.Value, error) {
	return p.get(ctx, "/get-player-matches", url.Values{
		"name":  {playerRef},
		"limit": {strconv.Itoa(historyLimit)},
	})
}

func (p *Provider) HeadToHead(ctx context.Context, player1Ref, player2Ref string) (provider.Value, error) {
	return p.get(ctx, "/get-h2h", url.Values{"player1": {player1Ref}, "player2": {player2Ref}})
}

func (p *Provider) MatchHeadToHead(ctx context.Context, matchID string) (provider.Value, error) {
	return p.get(ctx, "/get-match-h2h", url.Values{"id": {matchID}})
}

func (p *Provider) MatchDetails(ctx context.Context, matchID string) (provider.Value, error) {
	return p.get(ctx, "/get-match-details", url.Values{"id": {matchID}})
}

func (p *Provider) MatchStats(ctx context.Context, matchID string) (provider.Value, error) {
	return p.get(ctx, "/get-match-stats", url.Values{"id": {matchID}})
}

func (p *Provider) MatchHistory(ctx context.Context, matchID string) (provider.Value, error) {
	return p.get(ctx, "/get-match-point-by-point", url.Values{"id": {matchID}})
}

func (p *Provider) PlayerNews(ctx context.Context, playerRef string) (provider.Value, error) {
	return p.get(ctx, "/get-player-news", url.Values{"name": {playerRef}})
}

func (p *Provider) get(ctx context.Context, endpoint string, params url.Values) (provider.Value, error) {
	v, err := p.client.Fetch(ctx, endpoint, params)
	if err != nil {
		return provider.Null, fmt.Errorf("%s %s: %w", Name, endpoint, err)
	}
	return v, nil
}
