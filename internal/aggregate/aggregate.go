// Package aggregate runs the dashboard operations against the configured
// upstream provider and wraps every outcome in a response envelope.
//
// Operations never return errors: transport failures become failure
// envelopes (or, for player news, an empty success) and malformed records are
// dropped from the batch.
package aggregate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider"
)

// Truncation caps, applied first-N in upstream order.
const (
	LiveMatchesCap   = 20
	PlayerHistoryCap = 15
	PlayerNewsCap    = 5
)

// Options tunes an Aggregator. Zero values are usable.
type Options struct {
	Clock  func() time.Time
	Logger *slog.Logger
}

// Aggregator maps operations onto one UpstreamProvider.
type Aggregator struct {
	upstream   provider.UpstreamProvider
	normalizer *provider.Normalizer
	logger     *slog.Logger
}

// New creates an Aggregator for upstream.
func New(upstream provider.UpstreamProvider, opts Options) *Aggregator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		upstream:   upstream,
		normalizer: provider.NewNormalizer(opts.Clock),
		logger:     logger.With("provider", upstream.Name()),
	}
}

// Provider returns the name of the upstream in use.
func (a *Aggregator) Provider() string { return a.upstream.Name() }

// LiveMatches returns up to LiveMatchesCap in-progress matches.
func (a *Aggregator) LiveMatches(ctx context.Context) Envelope {
	raw, err := a.upstream.LiveMatches(ctx)
	if err != nil {
		a.logger.Error("Failed to fetch live matches", "error", err)
		return failure("Erro ao conectar com a API: %v", err)
	}

	if msg := provider.OptText(raw, "internal_error"); msg != nil {
		return Envelope{
			"success": true,
			"matches": []provider.Match{},
			"count":   0,
			"message": *msg,
		}
	}

	schema := a.upstream.Schema()
	live := schema.Liveness()
	matches := make([]provider.Match, 0, LiveMatchesCap)
	for i, rec := range schema.Records(raw) {
		if len(matches) == LiveMatchesCap {
			break
		}
		m, err := a.normalizer.Normalize(rec, live)
		if err != nil {
			a.logger.Warn("Skipping malformed match record", "index", i, "error", err)
			continue
		}
		if m == nil {
			continue
		}
		matches = append(matches, *m)
	}

	return Envelope{
		"success": true,
		"matches": matches,
		"count":   len(matches),
	}
}

// PlayerHistory returns up to PlayerHistoryCap past matches of a player.
func (a *Aggregator) PlayerHistory(ctx context.Context, playerRef string) Envelope {
	if env, ok := requireParam("player", playerRef); !ok {
		return env
	}

	raw, err := a.upstream.PlayerHistory(ctx, playerRef)
	if err != nil {
		a.logger.Error("Failed to fetch player history", "player", playerRef, "error", err)
		return failure("Erro ao buscar histórico: %v", err)
	}

	history := make([]provider.PlayerHistoryEntry, 0, PlayerHistoryCap)
	for i, rec := range provider.Extract(raw, provider.ShapeCollection) {
		if len(history) == PlayerHistoryCap {
			break
		}
		entry, err := provider.HistoryEntry(rec)
		if err != nil {
			a.logger.Warn("Skipping malformed history record", "player", playerRef, "index", i, "error", err)
			continue
		}
		history = append(history, entry)
	}

	return Envelope{
		"success": true,
		"player":  playerRef,
		"history": history,
	}
}

// HeadToHead passes through the upstream head-to-head payload for two players.
func (a *Aggregator) HeadToHead(ctx context.Context, player1Ref, player2Ref string) Envelope {
	if env, ok := requireParam("player1", player1Ref); !ok {
		return env
	}
	if env, ok := requireParam("player2", player2Ref); !ok {
		return env
	}

	raw, err := a.upstream.HeadToHead(ctx, player1Ref, player2Ref)
	if err != nil {
		a.logger.Error("Failed to fetch head-to-head", "player1", player1Ref, "player2", player2Ref, "error", err)
		return failure("Erro ao buscar H2H: %v", err)
	}
	return Envelope{
		"success":     true,
		"player1_ref": player1Ref,
		"player2_ref": player2Ref,
		"h2h":         raw,
	}
}

// MatchHeadToHead passes through the head-to-head payload of a match's players.
func (a *Aggregator) MatchHeadToHead(ctx context.Context, matchID string) Envelope {
	return a.passThrough(ctx, matchID, "h2h", "Erro ao buscar H2H", a.upstream.MatchHeadToHead)
}

// MatchDetails passes through the upstream match payload.
func (a *Aggregator) MatchDetails(ctx context.Context, matchID string) Envelope {
	return a.passThrough(ctx, matchID, "match", "Erro ao buscar detalhes da partida", a.upstream.MatchDetails)
}

// MatchStats passes through the upstream statistics payload.
func (a *Aggregator) MatchStats(ctx context.Context, matchID string) Envelope {
	return a.passThrough(ctx, matchID, "stats", "Erro ao buscar estatísticas", a.upstream.MatchStats)
}

// MatchHistory passes through the upstream point-by-point payload.
func (a *Aggregator) MatchHistory(ctx context.Context, matchID string) Envelope {
	return a.passThrough(ctx, matchID, "history", "Erro ao buscar histórico da partida", a.upstream.MatchHistory)
}

func (a *Aggregator) passThrough(
	ctx context.Context,
	matchID, key, errPrefix string,
	fetch func(context.Context, string) (provider.Value, error),
) Envelope {
	if env, ok := requireParam("match_id", matchID); !ok {
		return env
	}

	raw, err := fetch(ctx, matchID)
	if err != nil {
		a.logger.Error("Failed to fetch match data", "match_id", matchID, "resource", key, "error", err)
		return failure(errPrefix+": %v", err)
	}
	return Envelope{
		"success":  true,
		"match_id": matchID,
		key:        raw,
	}
}

// PlayerNews returns up to PlayerNewsCap articles about a player. Upstream
// failures degrade to an empty list.
func (a *Aggregator) PlayerNews(ctx context.Context, playerRef string) Envelope {
	news := make([]provider.NewsItem, 0, PlayerNewsCap)
	alert := false

	raw, err := a.upstream.PlayerNews(ctx, playerRef)
	if err != nil {
		a.logger.Warn("Player news unavailable, returning empty list", "player", playerRef, "error", err)
		raw = provider.Null
	}

	for i, rec := range provider.Extract(raw, provider.ShapeCollection) {
		if len(news) == PlayerNewsCap {
			break
		}
		item, err := provider.NewsItemOf(rec)
		if err != nil {
			a.logger.Warn("Skipping malformed news record", "player", playerRef, "index", i, "error", err)
			continue
		}
		alert = alert || item.InjuryAlert
		news = append(news, item)
	}

	return Envelope{
		"success":          true,
		"player":           playerRef,
		"news":             news,
		"has_injury_alert": alert,
	}
}

func requireParam(name, value string) (Envelope, bool) {
	if strings.TrimSpace(value) == "" {
		return failure("Parâmetro obrigatório ausente: %s", name), false
	}
	return nil, true
}
