package provider

import (
	"fmt"
	"time"
)

// LivenessPredicate decides whether a raw match record is in progress.
type LivenessPredicate func(rec Value) bool

// StatusIn treats a record as live when its "status" string is one of
// statuses. A missing or non-string status is not live.
func StatusIn(statuses ...string) LivenessPredicate {
	set := make(map[string]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return func(rec Value) bool {
		status, ok := rec.Get("status").Str()
		if !ok {
			return false
		}
		_, live := set[status]
		return live
	}
}

// FlagTrue treats a record as live when key holds a truthy value.
func FlagTrue(key string) LivenessPredicate {
	return func(rec Value) bool {
		return rec.Get(key).Truthy()
	}
}

// Schema describes how a provider shapes its live payloads.
type Schema struct {
	Live LivenessPredicate
	// GroupKey names the per-tournament match array when the provider groups
	// live matches under tournaments. Empty for flat payloads.
	GroupKey string
}

// Record is one raw match plus the context it was found in.
type Record struct {
	Value      Value
	Tournament *Entity
}

// Records flattens a live payload into match records, carrying tournament
// context down from groups when the schema says the payload is grouped.
func (s Schema) Records(raw Value) []Record {
	items := Extract(raw, ShapeCollection)
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if s.GroupKey == "" {
			records = append(records, Record{Value: item})
			continue
		}
		matches := item.Get(s.GroupKey)
		if matches.Kind() != KindArray {
			records = append(records, Record{Value: item})
			continue
		}
		var tournament *Entity
		if t := item.Get("tournament"); !t.IsNull() {
			e := EntityOf(t)
			tournament = &e
		}
		for _, m := range matches.Array() {
			records = append(records, Record{Value: m, Tournament: tournament})
		}
	}
	return records
}

// RecordError reports a record whose shape cannot be normalized. Callers skip
// the record and keep the rest of the batch.
type RecordError struct {
	Kind Kind
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record: expected object, got %s", e.Kind)
}

// Normalizer builds canonical records and stamps them with processing time.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer returns a Normalizer reading time from clock, or from
// time.Now when clock is nil.
func NewNormalizer(clock func() time.Time) *Normalizer {
	if clock == nil {
		clock = time.Now
	}
	return &Normalizer{now: clock}
}

// Normalize converts one record into a Match.
//
// With a non-nil live predicate, records it rejects yield (nil, nil). A
// record that is not an object yields a *RecordError.
func (n *Normalizer) Normalize(rec Record, live LivenessPredicate) (*Match, error) {
	v := rec.Value
	if v.Kind() != KindObject {
		return nil, &RecordError{Kind: v.Kind()}
	}

	isLive := false
	if live != nil {
		if !live(v) {
			return nil, nil
		}
		isLive = true
	}

	p1 := EntityOf(FirstPresent(v, "player1", "home_player", "home_team"))
	p2 := EntityOf(FirstPresent(v, "player2", "away_player", "away_team"))
	if p1.ID == nil {
		p1.ID = OptText(v, "player1_id", "home_player_id")
	}
	if p2.ID == nil {
		p2.ID = OptText(v, "player2_id", "away_player_id")
	}

	tournament := EntityOf(Null)
	if t := FirstPresent(v, "tournament", "tournament_name"); !t.IsNull() {
		tournament = EntityOf(t)
	} else if rec.Tournament != nil {
		tournament = *rec.Tournament
	}
	if tournament.ID == nil {
		tournament.ID = OptText(v, "tournament_id")
	}

	m := &Match{
		ID:           OptText(v, "id", "match_id", "event_id"),
		Player1:      p1.Name,
		Player2:      p2.Name,
		Player1ID:    p1.ID,
		Player2ID:    p2.ID,
		Status:       statusOf(v),
		Tournament:   tournament.Name,
		TournamentID: tournament.ID,
		Surface:      OptString(v, "surface", "ground_type", "court"),
		Stats:        OptObject(v, "stats", "statistics"),
		Live:         isLive,
		Timestamp:    OptInt64(v, "timestamp", "start_timestamp", "event_time"),
		UpdatedAt:    n.now(),
	}
	fillScore(m, v)
	return m, nil
}

// statusOf reads a status sent either as free text or as {type, description}.
func statusOf(v Value) *string {
	status := v.Get("status")
	if status.Kind() == KindObject {
		return OptString(status, "description", "type")
	}
	return OptText(v, "status")
}

func fillScore(m *Match, v Value) {
	score := FirstPresent(v, "score", "scores")
	switch score.Kind() {
	case KindString:
		s, _ := score.Str()
		m.Score = &s
	case KindObject:
		m.ScorePlayer1 = OptInt(score, "player1", "home", "current_home")
		m.ScorePlayer2 = OptInt(score, "player2", "away", "current_away")
	}
	if m.ScorePlayer1 == nil {
		m.ScorePlayer1 = OptInt(v, "score_player1", "home_score")
	}
	if m.ScorePlayer2 == nil {
		m.ScorePlayer2 = OptInt(v, "score_player2", "away_score")
	}
}

// HistoryEntry converts one record of a player's match list. Absent fields
// stay nil; a non-object record yields a *RecordError.
func HistoryEntry(v Value) (PlayerHistoryEntry, error) {
	if v.Kind() != KindObject {
		return PlayerHistoryEntry{}, &RecordError{Kind: v.Kind()}
	}
	return PlayerHistoryEntry{
		Date:       OptText(v, "date", "match_date", "played_at"),
		Opponent:   entityName(FirstPresent(v, "opponent", "opponent_name")),
		Result:     OptString(v, "result", "outcome"),
		Score:      OptText(v, "score"),
		Surface:    OptString(v, "surface", "ground_type"),
		Tournament: entityName(FirstPresent(v, "tournament", "tournament_name")),
	}, nil
}

// NewsItemOf converts one article record and flags injury mentions.
func NewsItemOf(v Value) (NewsItem, error) {
	if v.Kind() != KindObject {
		return NewsItem{}, &RecordError{Kind: v.Kind()}
	}
	item := NewsItem{
		Title:       OptString(v, "title", "headline"),
		Description: OptString(v, "description", "summary"),
		Date:        OptText(v, "date", "published_at", "publishedAt", "pubDate"),
		Source:      entityName(v.Get("source")),
		URL:         OptString(v, "url", "link"),
	}
	item.InjuryAlert = DetectInjury(deref(item.Title), deref(item.Description))
	return item, nil
}

func entityName(v Value) *string {
	if v.IsNull() {
		return nil
	}
	return EntityOf(v).Name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Liveness returns the schema's predicate, or the LIVE/IN_PROGRESS status set
// when the provider did not declare one.
func (s Schema) Liveness() LivenessPredicate {
	if s.Live != nil {
		return s.Live
	}
	return StatusIn("LIVE", "IN_PROGRESS")
}
