// Package livetennis integrates a RapidAPI tennis-live style provider.
//
// Unlike tennis-api5 this provider groups live matches under tournaments
// ({data: [{tournament: {...}, matches: [...]}]}), sends players as
// {name, id} objects, per-player integer scores and an is_in_progress flag.
package livetennis

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider"
	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider/rapidapi"
)

const (
	Name           = "livetennis"
	DefaultHost    = "tennis-live-data.p.rapidapi.com"
	DefaultBaseURL = "https://" + DefaultHost
)

// Provider fetches tennis-live payloads.
type Provider struct {
	client *rapidapi.Client
	schema provider.Schema
}

// New creates a tennis-live provider. Empty baseURL/host fall back to the
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
		schema: provider.Schema{
			Live:     provider.FlagTrue("is_in_progress"),
			GroupKey: "matches",
		},
	}
}

func (p *Provider) Name() string            { return Name }
func (p *Provider) Schema() provider.Schema { return p.schema }

func (p *Provider) LiveMatches(ctx context.Context) (provider.Value, error) {
	return p.get(ctx, "/matches/live")
}

func (p *Provider) PlayerHistory(ctx context.Context, playerRef string) (provider.Value, error) {
	return p.get(ctx, "/players/"+url.PathEscape(playerRef)+"/matches")
}

func (p *Provider) HeadToHead(ctx context.Context, player1Ref, player2Ref string) (provider.Value, error) {
	return p.get(ctx, "/h2h/"+url.PathEscape(player1Ref)+"/"+url.PathEscape(player2Ref))
}

func (p *Provider) MatchHeadToHead(ctx context.Context, matchID string) (provider.Value, error) {
	return p.get(ctx, "/matches/"+url.PathEscape(matchID)+"/h2h")
}

func (p *Provider) MatchDetails(ctx context.Context, matchID string) (provider.Value, error) {
	return p.get(ctx, "/matches/"+url.PathEscape(matchID))
}

func (p *Provider) MatchStats(ctx context.Context, matchID string) (provider.Value, error) {
	return p.get(ctx, "/matches/"+url.PathEscape(matchID)+"/stats")
}

func (p *Provider) MatchHistory(ctx context.Context, matchID string) (provider.Value, error) {
	return p.get(ctx, "/matches/"+url.PathEscape(matchID)+"/point-by-point")
}

func (p *Provider) PlayerNews(ctx context.Context, playerRef string) (provider.Value, error) {
	return p.get(ctx, "/players/"+url.PathEscape(playerRef)+"/news")
}

func (p *Provider) get(ctx context.Context, endpoint string) (provider.Value, error) {
	v, err := p.client.Fetch(ctx, endpoint, nil)
	if err != nil {
		return provider.Null, fmt.Errorf("%s %s: %w", Name, endpoint, err)
	}
	return v, nil
}
