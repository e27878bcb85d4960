package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestNormalize_LiveScenario(t *testing.T) {
	raw := mustParse(t, `{"matches":[{"player1":"Nadal","player2":"Federer","status":"LIVE","score":"6-4"}]}`)
	schema := Schema{Live: StatusIn("LIVE", "IN_PROGRESS")}

	records := schema.Records(raw)
	require.Len(t, records, 1)

	m, err := NewNormalizer(fixedClock).Normalize(records[0], schema.Liveness())
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "Nadal", *m.Player1)
	assert.Equal(t, "Federer", *m.Player2)
	assert.Equal(t, "LIVE", *m.Status)
	assert.Equal(t, "6-4", *m.Score)
	assert.Nil(t, m.ScorePlayer1)
	assert.True(t, m.Live)
	assert.Equal(t, fixedNow, m.UpdatedAt)
	assert.Equal(t, Unknown, *m.Tournament)
	assert.Nil(t, m.ID)
}

func TestNormalize_UpdatedAtIsProcessingTime(t *testing.T) {
	calls := 0
	clock := func() time.Time {
		calls++
		return fixedNow.Add(time.Duration(calls) * time.Second)
	}
	rec := Record{Value: mustParse(t, `{"player1":"A","player2":"B","status":"LIVE"}`)}
	n := NewNormalizer(clock)

	first, err := n.Normalize(rec, nil)
	require.NoError(t, err)
	second, err := n.Normalize(rec, nil)
	require.NoError(t, err)

	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	first.UpdatedAt, second.UpdatedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, second)
}

func TestNormalize_Deterministic(t *testing.T) {
	rec := Record{Value: mustParse(t, `{"id":1,"player1":{"name":"A","id":10},"player2":"B","status":"LIVE","timestamp":1717250000}`)}
	n := NewNormalizer(fixedClock)

	first, err := n.Normalize(rec, StatusIn("LIVE"))
	require.NoError(t, err)
	second, err := n.Normalize(rec, StatusIn("LIVE"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalize_Liveness(t *testing.T) {
	tests := []struct {
		name string
		body string
		live LivenessPredicate
		want bool
	}{
		{"status in set", `{"status":"IN_PROGRESS"}`, StatusIn("LIVE", "IN_PROGRESS"), true},
		{"status not in set", `{"status":"FINISHED"}`, StatusIn("LIVE", "IN_PROGRESS"), false},
		{"status missing", `{"player1":"A"}`, StatusIn("LIVE", "IN_PROGRESS"), false},
		{"status wrong type", `{"status":1}`, StatusIn("LIVE", "IN_PROGRESS"), false},
		{"flag true", `{"is_in_progress":true}`, FlagTrue("is_in_progress"), true},
		{"flag false", `{"is_in_progress":false}`, FlagTrue("is_in_progress"), false},
		{"flag missing", `{"player1":"A"}`, FlagTrue("is_in_progress"), false},
	}
	n := NewNormalizer(fixedClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := n.Normalize(Record{Value: mustParse(t, tt.body)}, tt.live)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m != nil)
		})
	}
}

func TestNormalize_NilPredicateDoesNotFilter(t *testing.T) {
	m, err := NewNormalizer(fixedClock).Normalize(Record{Value: mustParse(t, `{"status":"FINISHED"}`)}, nil)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.False(t, m.Live)
}

func TestNormalize_NonObjectRecord(t *testing.T) {
	for _, v := range []Value{StringValue("oops"), NumberValue(1), Null, ArrayValue()} {
		m, err := NewNormalizer(fixedClock).Normalize(Record{Value: v}, nil)
		assert.Nil(t, m)
		var recErr *RecordError
		require.ErrorAs(t, err, &recErr)
		assert.Equal(t, v.Kind(), recErr.Kind)
	}
}

func TestNormalize_ObjectPlayersAndScores(t *testing.T) {
	body := `{
		"match_id": 991,
		"home_player": {"name": "Carlos Alcaraz", "id": 275923},
		"away_player": {"name": "Jannik Sinner", "id": 206570},
		"status": {"type": "inprogress", "description": "2nd set"},
		"scores": {"home": 1, "away": "0"},
		"ground_type": "Clay",
		"statistics": {"aces": [3, 5]},
		"start_timestamp": 1717250000
	}`
	m, err := NewNormalizer(fixedClock).Normalize(Record{Value: mustParse(t, body)}, nil)
	require.NoError(t, err)

	assert.Equal(t, "991", *m.ID)
	assert.Equal(t, "Carlos Alcaraz", *m.Player1)
	assert.Equal(t, "275923", *m.Player1ID)
	assert.Equal(t, "Jannik Sinner", *m.Player2)
	assert.Equal(t, "206570", *m.Player2ID)
	assert.Equal(t, "2nd set", *m.Status)
	assert.Equal(t, 1, *m.ScorePlayer1)
	assert.Equal(t, 0, *m.ScorePlayer2)
	assert.Nil(t, m.Score)
	assert.Equal(t, "Clay", *m.Surface)
	assert.Contains(t, m.Stats, "aces")
	assert.Equal(t, int64(1717250000), *m.Timestamp)
}

func TestNormalize_MalformedFieldsDegrade(t *testing.T) {
	body := `{"player1": 42, "player2": null, "tournament": ["x"], "score": true, "stats": "n/a"}`
	m, err := NewNormalizer(fixedClock).Normalize(Record{Value: mustParse(t, body)}, nil)
	require.NoError(t, err)

	assert.Equal(t, Unknown, *m.Player1)
	assert.Equal(t, Unknown, *m.Player2)
	assert.Equal(t, Unknown, *m.Tournament)
	assert.Nil(t, m.Score)
	assert.Nil(t, m.ScorePlayer1)
	assert.Nil(t, m.Stats)
	assert.Nil(t, m.Timestamp)
}

func TestSchema_GroupedRecordsCarryTournament(t *testing.T) {
	body := `{"data":[
		{"tournament":{"name":"Wimbledon","id":"2361"},"matches":[
			{"id":1,"player1":"A","player2":"B","is_in_progress":true},
			{"id":2,"player1":"C","player2":"D","is_in_progress":false}
		]},
		{"tournament":"Halle","matches":[
			{"id":3,"player1":"E","player2":"F","is_in_progress":true,"tournament":{"name":"Halle Open","id":9}}
		]}
	]}`
	schema := Schema{Live: FlagTrue("is_in_progress"), GroupKey: "matches"}
	records := schema.Records(mustParse(t, body))
	require.Len(t, records, 3)

	n := NewNormalizer(fixedClock)
	var out []*Match
	for _, rec := range records {
		m, err := n.Normalize(rec, schema.Liveness())
		require.NoError(t, err)
		if m != nil {
			out = append(out, m)
		}
	}
	require.Len(t, out, 2)

	assert.Equal(t, "Wimbledon", *out[0].Tournament)
	assert.Equal(t, "2361", *out[0].TournamentID)
	assert.Equal(t, "Halle Open", *out[1].Tournament)
	assert.Equal(t, "9", *out[1].TournamentID)
}

func TestSchema_LivenessDefault(t *testing.T) {
	live := Schema{}.Liveness()
	assert.True(t, live(mustParse(t, `{"status":"LIVE"}`)))
	assert.False(t, live(mustParse(t, `{}`)))
}

func TestHistoryEntry(t *testing.T) {
	e, err := HistoryEntry(mustParse(t, `{"date":"2024-05-20","opponent":{"name":"Zverev","id":1},"result":"L","score":"3-6 6-7","tournament":"Roland Garros"}`))
	require.NoError(t, err)
	assert.Equal(t, "2024-05-20", *e.Date)
	assert.Equal(t, "Zverev", *e.Opponent)
	assert.Equal(t, "L", *e.Result)
	assert.Equal(t, "3-6 6-7", *e.Score)
	assert.Nil(t, e.Surface)
	assert.Equal(t, "Roland Garros", *e.Tournament)

	empty, err := HistoryEntry(mustParse(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, PlayerHistoryEntry{}, empty)

	_, err = HistoryEntry(StringValue("x"))
	assert.Error(t, err)
}

func TestNewsItemOf(t *testing.T) {
	item, err := NewsItemOf(mustParse(t, `{"title":"Nadal sofre lesão no quadril","description":"...","published_at":"2026-06-01","source":{"name":"ESPN"}}`))
	require.NoError(t, err)
	assert.Equal(t, "Nadal sofre lesão no quadril", *item.Title)
	assert.Equal(t, "2026-06-01", *item.Date)
	assert.Equal(t, "ESPN", *item.Source)
	assert.True(t, item.InjuryAlert)

	_, err = NewsItemOf(NumberValue(1))
	assert.Error(t, err)
}

func TestDetectInjury(t *testing.T) {
	tests := []struct {
		title, desc string
		want        bool
	}{
		{"Sinner withdraws with INJURY", "", true},
		{"", "Atleta está machucado", true},
		{"Lesão no ombro", "", true},
		{"Nadal wins in Madrid", "Straight sets victory", false},
		{"", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectInjury(tt.title, tt.desc), "%q / %q", tt.title, tt.desc)
	}
}
