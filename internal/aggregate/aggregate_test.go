package aggregate

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engantonycastro-rd/painel-monitoramento-tenis/internal/provider"
)

var fixedNow = time.Date(2026, 6, 1, 14, 30, 0, 0, time.UTC)

// fakeUpstream serves canned payloads keyed by operation name.
type fakeUpstream struct {
	schema   provider.Schema
	payloads map[string]string
	errs     map[string]error
	calls    []string
}

func newFake() *fakeUpstream {
	return &fakeUpstream{
		schema:   provider.Schema{Live: provider.StatusIn("LIVE", "IN_PROGRESS")},
		payloads: map[string]string{},
		errs:     map[string]error{},
	}
}

func (f *fakeUpstream) serve(op string) (provider.Value, error) {
	f.calls = append(f.calls, op)
	if err := f.errs[op]; err != nil {
		return provider.Null, err
	}
	body, ok := f.payloads[op]
	if !ok {
		return provider.Null, nil
	}
	return provider.Parse([]byte(body))
}

func (f *fakeUpstream) Name() string            { return "fake" }
func (f *fakeUpstream) Schema() provider.Schema { return f.schema }
func (f *fakeUpstream) LiveMatches(context.Context) (provider.Value, error) {
	return f.serve("live")
}
func (f *fakeUpstream) PlayerHistory(_ context.Context, ref string) (provider.Value, error) {
	return f.serve("history:" + ref)
}
func (f *fakeUpstream) HeadToHead(_ context.Context, p1, p2 string) (provider.Value, error) {
	return f.serve("h2h:" + p1 + "/" + p2)
}
func (f *fakeUpstream) MatchHeadToHead(_ context.Context, id string) (provider.Value, error) {
	return f.serve("match-h2h:" + id)
}
func (f *fakeUpstream) MatchDetails(_ context.Context, id string) (provider.Value, error) {
	return f.serve("details:" + id)
}
func (f *fakeUpstream) MatchStats(_ context.Context, id string) (provider.Value, error) {
	return f.serve("stats:" + id)
}
func (f *fakeUpstream) MatchHistory(_ context.Context, id string) (provider.Value, error) {
	return f.serve("match-history:" + id)
}
func (f *fakeUpstream) PlayerNews(_ context.Context, ref string) (provider.Value, error) {
	return f.serve("news:" + ref)
}

func newAggregator(f *fakeUpstream) *Aggregator {
	return New(f, Options{Clock: func() time.Time { return fixedNow }})
}

var errTimeout = &provider.TransportError{URL: "https://upstream.test/x", Err: context.DeadlineExceeded}

// ---------------------------------------------------------------------------
// Live matches
// ---------------------------------------------------------------------------

func TestLiveMatches_Scenario(t *testing.T) {
	f := newFake()
	f.payloads["live"] = `{"matches":[{"player1":"Nadal","player2":"Federer","status":"LIVE","score":"6-4"}]}`

	env := newAggregator(f).LiveMatches(context.Background())
	require.True(t, env.OK())
	assert.Equal(t, 200, env.Status())
	assert.Equal(t, 1, env["count"])

	matches := env["matches"].([]provider.Match)
	require.Len(t, matches, 1)
	assert.Equal(t, "Nadal", *matches[0].Player1)
	assert.Equal(t, "Federer", *matches[0].Player2)
	assert.True(t, matches[0].Live)
	assert.Equal(t, fixedNow, matches[0].UpdatedAt)
}

func TestLiveMatches_InternalError(t *testing.T) {
	f := newFake()
	f.payloads["live"] = `{"internal_error":"no live matches"}`

	env := newAggregator(f).LiveMatches(context.Background())
	assert.Equal(t, Envelope{
		"success": true,
		"matches": []provider.Match{},
		"count":   0,
		"message": "no live matches",
	}, env)
}

func TestLiveMatches_TruncatesToPrefix(t *testing.T) {
	var records []string
	for i := 0; i < 40; i++ {
		status := "LIVE"
		if i%3 == 0 {
			status = "FINISHED"
		}
		records = append(records, fmt.Sprintf(`{"id":%d,"player1":"P%d","player2":"Q%d","status":%q}`, i, i, i, status))
	}
	f := newFake()
	f.payloads["live"] = `{"data":[` + strings.Join(records, ",") + `]}`

	env := newAggregator(f).LiveMatches(context.Background())
	matches := env["matches"].([]provider.Match)
	require.Len(t, matches, LiveMatchesCap)
	assert.Equal(t, LiveMatchesCap, env["count"])

	// Prefix of the live records in upstream order.
	want := 0
	for _, m := range matches {
		for want%3 == 0 {
			want++
		}
		assert.Equal(t, fmt.Sprint(want), *m.ID)
		want++
	}
}

func TestLiveMatches_SkipsMalformedAndMissingLiveness(t *testing.T) {
	f := newFake()
	f.payloads["live"] = `[
		"garbage",
		{"id":1,"player1":"A","player2":"B"},
		42,
		{"id":2,"player1":"C","player2":"D","status":"IN_PROGRESS"}
	]`

	env := newAggregator(f).LiveMatches(context.Background())
	require.True(t, env.OK())
	matches := env["matches"].([]provider.Match)
	require.Len(t, matches, 1)
	assert.Equal(t, "2", *matches[0].ID)
	assert.Equal(t, 1, env["count"])
}

func TestLiveMatches_UnrecognizedPayload(t *testing.T) {
	f := newFake()
	f.payloads["live"] = `{"unexpected":true}`

	env := newAggregator(f).LiveMatches(context.Background())
	assert.True(t, env.OK())
	assert.Empty(t, env["matches"])
	assert.Equal(t, 0, env["count"])
}

func TestLiveMatches_TransportFailure(t *testing.T) {
	f := newFake()
	f.errs["live"] = errTimeout

	env := newAggregator(f).LiveMatches(context.Background())
	assert.False(t, env.OK())
	assert.Equal(t, 500, env.Status())
	assert.Contains(t, env.Error(), "Erro ao conectar com a API")
	assert.Contains(t, env.Error(), "upstream.test")
	assert.Len(t, env, 2)
}

// ---------------------------------------------------------------------------
// Player history
// ---------------------------------------------------------------------------

func TestPlayerHistory(t *testing.T) {
	var records []string
	for i := 0; i < 20; i++ {
		records = append(records, fmt.Sprintf(`{"date":"2026-05-%02d","opponent":"O%d","result":"W"}`, i+1, i))
	}
	f := newFake()
	f.payloads["history:Nadal"] = `{"data":[` + strings.Join(records, ",") + `]}`

	env := newAggregator(f).PlayerHistory(context.Background(), "Nadal")
	require.True(t, env.OK())
	assert.Equal(t, "Nadal", env["player"])

	history := env["history"].([]provider.PlayerHistoryEntry)
	require.Len(t, history, PlayerHistoryCap)
	for i, h := range history {
		assert.Equal(t, fmt.Sprintf("O%d", i), *h.Opponent)
	}
}

func TestPlayerHistory_NoData(t *testing.T) {
	for _, body := range []string{`{}`, `null`, `{"data":null}`, `[]`} {
		f := newFake()
		f.payloads["history:Unknown Player"] = body

		env := newAggregator(f).PlayerHistory(context.Background(), "Unknown Player")
		require.True(t, env.OK(), body)
		assert.Equal(t, []provider.PlayerHistoryEntry{}, env["history"], body)
	}
}

func TestPlayerHistory_Failure(t *testing.T) {
	f := newFake()
	f.errs["history:Nadal"] = errTimeout

	env := newAggregator(f).PlayerHistory(context.Background(), "Nadal")
	assert.False(t, env.OK())
	assert.Contains(t, env.Error(), "Erro ao buscar histórico")
}

// ---------------------------------------------------------------------------
// Pass-through operations
// ---------------------------------------------------------------------------

func TestHeadToHead(t *testing.T) {
	f := newFake()
	f.payloads["h2h:Nadal/Federer"] = `{"wins":{"Nadal":24,"Federer":16}}`

	env := newAggregator(f).HeadToHead(context.Background(), "Nadal", "Federer")
	require.True(t, env.OK())
	assert.Equal(t, "Nadal", env["player1_ref"])
	assert.Equal(t, "Federer", env["player2_ref"])

	h2h := env["h2h"].(provider.Value)
	n, _ := h2h.Get("wins").Get("Nadal").Num()
	assert.Equal(t, 24.0, n)
}

func TestPassThroughOperations(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		op   string
		key  string
		run  func(a *Aggregator) Envelope
	}{
		{"details", "details:7", "match", func(a *Aggregator) Envelope { return a.MatchDetails(ctx, "7") }},
		{"stats", "stats:7", "stats", func(a *Aggregator) Envelope { return a.MatchStats(ctx, "7") }},
		{"history", "match-history:7", "history", func(a *Aggregator) Envelope { return a.MatchHistory(ctx, "7") }},
		{"match h2h", "match-h2h:7", "h2h", func(a *Aggregator) Envelope { return a.MatchHeadToHead(ctx, "7") }},
	}
	for _, tt := range tests {
		t.Run(tt.name+" success", func(t *testing.T) {
			f := newFake()
			f.payloads[tt.op] = `{"anything":["goes"]}`

			env := tt.run(newAggregator(f))
			require.True(t, env.OK())
			assert.Equal(t, "7", env["match_id"])
			payload := env[tt.key].(provider.Value)
			assert.True(t, payload.Has("anything"))
		})
		t.Run(tt.name+" failure", func(t *testing.T) {
			f := newFake()
			f.errs[tt.op] = errTimeout

			env := tt.run(newAggregator(f))
			assert.False(t, env.OK())
			assert.Equal(t, 500, env.Status())
			assert.NotEmpty(t, env.Error())
		})
	}
}

func TestMissingParamsSkipUpstream(t *testing.T) {
	f := newFake()
	a := newAggregator(f)
	ctx := context.Background()

	for _, env := range []Envelope{
		a.PlayerHistory(ctx, " "),
		a.HeadToHead(ctx, "Nadal", ""),
		a.MatchDetails(ctx, ""),
		a.MatchStats(ctx, ""),
	} {
		assert.False(t, env.OK())
		assert.Contains(t, env.Error(), "Parâmetro obrigatório ausente")
	}
	assert.Empty(t, f.calls)
}

// ---------------------------------------------------------------------------
// Player news
// ---------------------------------------------------------------------------

func TestPlayerNews(t *testing.T) {
	var records []string
	for i := 0; i < 8; i++ {
		title := fmt.Sprintf("Notícia %d", i)
		if i == 3 {
			title = "Nadal sofre lesão"
		}
		records = append(records, fmt.Sprintf(`{"title":%q,"description":"d","date":"2026-06-01"}`, title))
	}
	f := newFake()
	f.payloads["news:Nadal"] = `{"data":[` + strings.Join(records, ",") + `]}`

	env := newAggregator(f).PlayerNews(context.Background(), "Nadal")
	require.True(t, env.OK())
	news := env["news"].([]provider.NewsItem)
	require.Len(t, news, PlayerNewsCap)
	assert.Equal(t, "Notícia 0", *news[0].Title)
	assert.True(t, news[3].InjuryAlert)
	assert.Equal(t, true, env["has_injury_alert"])
}

func TestPlayerNews_NoInjury(t *testing.T) {
	f := newFake()
	f.payloads["news:Nadal"] = `[{"title":"Nadal vence"}]`

	env := newAggregator(f).PlayerNews(context.Background(), "Nadal")
	assert.Equal(t, false, env["has_injury_alert"])
	assert.Len(t, env["news"], 1)
}

func TestPlayerNews_TimeoutDegradesToEmptySuccess(t *testing.T) {
	f := newFake()
	f.errs["news:Nadal"] = errTimeout

	env := newAggregator(f).PlayerNews(context.Background(), "Nadal")
	assert.Equal(t, Envelope{
		"success":          true,
		"player":           "Nadal",
		"news":             []provider.NewsItem{},
		"has_injury_alert": false,
	}, env)
	assert.Equal(t, 200, env.Status())
}
