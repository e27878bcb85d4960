package handler

import "net/http"

// GetPlayerHistory returns a player's recent matches.
// @Summary Player history
// @Description Up to 15 past matches of the player, in upstream order.
// @Tags players
// @Produce json
// @Param player_ref path string true "Player name or upstream ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/player-history/{player_ref} [get]
func (h *Handler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.agg.PlayerHistory(r.Context(), pathParam(r, "playerRef")))
}

// GetHeadToHead passes through the upstream head-to-head payload.
// @Summary Head-to-head
// @Tags players
// @Produce json
// @Param player1_ref path string true "First player"
// @Param player2_ref path string true "Second player"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/h2h/{player1_ref}/{player2_ref} [get]
func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.agg.HeadToHead(r.Context(),
		pathParam(r, "player1Ref"),
		pathParam(r, "player2Ref"),
	))
}

// GetPlayerNews returns recent articles about a player.
// @Summary Player news
// @Description Up to 5 articles with an injury flag. Source failures yield an empty list.
// @Tags players
// @Produce json
// @Param player_ref path string true "Player name or upstream ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/player-news/{player_ref} [get]
func (h *Handler) GetPlayerNews(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.agg.PlayerNews(r.Context(), pathParam(r, "playerRef")))
}
