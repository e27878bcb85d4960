// Package provider defines the canonical tennis shapes every upstream is
// normalized into, plus the tolerant extraction and normalization steps that
// turn untrusted provider payloads into them.
//
// Adding a provider means implementing UpstreamProvider and describing its
// payloads with a Schema. Normalization never changes.
package provider

import (
	"strings"
	"time"
)

// Match is the canonical live match shape served to the dashboard.
//
// Providers send either an opaque score string or one integer per player;
// whichever they send is kept and the other stays empty.
type Match struct {
	ID           *string                `json:"id"`
	Player1      *string                `json:"player1"`
	Player2      *string                `json:"player2"`
	Player1ID    *string                `json:"player1_id"`
	Player2ID    *string                `json:"player2_id"`
	Score        *string                `json:"score,omitempty"`
	ScorePlayer1 *int                   `json:"score_player1,omitempty"`
	ScorePlayer2 *int                   `json:"score_player2,omitempty"`
	Status       *string                `json:"status"`
	Tournament   *string                `json:"tournament"`
	TournamentID *string                `json:"tournament_id"`
	Surface      *string                `json:"surface,omitempty"`
	Stats        map[string]interface{} `json:"stats,omitempty"`
	Live         bool                   `json:"live"`
	Timestamp    *int64                 `json:"timestamp"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// PlayerHistoryEntry is one past match from a player's perspective.
type PlayerHistoryEntry struct {
	Date       *string `json:"date"`
	Opponent   *string `json:"opponent"`
	Result     *string `json:"result"`
	Score      *string `json:"score"`
	Surface    *string `json:"surface"`
	Tournament *string `json:"tournament"`
}

// NewsItem is a normalized news article about a player.
type NewsItem struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Source      *string `json:"source"`
	URL         *string `json:"url,omitempty"`
	InjuryAlert bool    `json:"injury_alert"`
}

// injuryKeywords are matched case-insensitively against title + description.
var injuryKeywords = []string{"injury", "lesão", "machucado"}

// DetectInjury reports whether an article mentions an injury.
func DetectInjury(title, description string) bool {
	text := strings.ToLower(title + " " + description)
	for _, kw := range injuryKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
