package handler

import "net/http"

// GetLiveMatches returns the in-progress matches.
// @Summary Live matches
// @Description Normalized in-progress matches, at most 20, in upstream order.
// @Tags matches
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/live-matches [get]
func (h *Handler) GetLiveMatches(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.agg.LiveMatches(r.Context()))
}

// GetMatchDetails passes through the upstream match payload.
// @Summary Match details
// @Tags matches
// @Produce json
// @Param match_id path string true "Upstream match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/match-details/{match_id} [get]
func (h *Handler) GetMatchDetails(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.agg.MatchDetails(r.Context(), pathParam(r, "matchID")))
}

// GetMatchStats passes through the upstream statistics payload.
// @Summary Match statistics
// @Tags matches
// @Produce json
// @Param match_id path string true "Upstream match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/match-stats/{match_id} [get]
func (h *Handler) GetMatchStats(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.agg.MatchStats(r.Context(), pathParam(r, "matchID")))
}

// GetMatchHistory passes through the upstream point-by-point payload.
// @Summary Match point-by-point history
// @Tags matches
// @Produce json
// @Param match_id path string true "Upstream match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/match-history/{match_id} [get]
func (h *Handler) GetMatchHistory(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.agg.MatchHistory(r.Context(), pathParam(r, "matchID")))
}

// GetMatchHeadToHead passes through the head-to-head payload for the players
// of one match.
// @Summary Match head-to-head
// @Tags matches
// @Produce json
// @Param match_id path string true "Upstream match ID"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/match-h2h/{match_id} [get]
func (h *Handler) GetMatchHeadToHead(w http.ResponseWriter, r *http.Request) {
	writeEnvelope(w, h.agg.MatchHeadToHead(r.Context(), pathParam(r, "matchID")))
}
