package provider

import (
	"context"
	"errors"
	"fmt"
)

// UpstreamProvider is one third-party tennis data service. Each method issues
// the upstream call(s) for one operation and returns the raw payload; shaping
// it is left to the caller via Schema and the normalization functions.
type UpstreamProvider interface {
	Name() string
	Schema() Schema

	LiveMatches(ctx context.Context) (Value, error)
	PlayerHistory(ctx context.Context, playerRef string) (Value, error)
	HeadToHead(ctx context.Context, player1Ref, player2Ref string) (Value, error)
	MatchHeadToHead(ctx context.Context, matchID string) (Value, error)
	MatchDetails(ctx context.Context, matchID string) (Value, error)
	MatchStats(ctx context.Context, matchID string) (Value, error)
	MatchHistory(ctx context.Context, matchID string) (Value, error)
	PlayerNews(ctx context.Context, playerRef string) (Value, error)
}

var (
	ErrUpstreamStatus = errors.New("upstream returned non-2xx status")
	ErrMalformedBody  = errors.New("malformed body")
)

// TransportError is any failure to obtain a parsed payload from upstream:
// network errors, timeouts, non-2xx statuses and undecodable bodies.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
