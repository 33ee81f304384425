package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamewarden/internal/api/response"
	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/warden"
)

// HistoryHandler handles punishment history, lookup and stats endpoints
type HistoryHandler struct {
	warden *warden.Warden
	clock  clock.Clock
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(w *warden.Warden, clk clock.Clock) *HistoryHandler {
	return &HistoryHandler{
		warden: w,
		clock:  clk,
	}
}

// GetHistory handles GET /api/v1/players/{player_id}/history
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	history, err := h.warden.GetHistory(r.Context(), playerID).Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PunishmentsFromModel(history, h.clock.Now()))
}

// GetHistoryCount handles GET /api/v1/players/{player_id}/history/count
func (h *HistoryHandler) GetHistoryCount(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	count, err := h.warden.GetHistoryCount(r.Context(), playerID).Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CountResponse{
		PlayerID: string(playerID),
		Count:    count,
	})
}

// GetPunishment handles GET /api/v1/punishments/{id}
func (h *HistoryHandler) GetPunishment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, NewInvalidRequestError("id must be an integer"))
		return
	}

	p, err := h.warden.GetPunishment(r.Context(), model.PunishmentID(id)).Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PunishmentFromModel(p, h.clock.Now()))
}

// GetStats handles GET /api/v1/stats
func (h *HistoryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.warden.GetStats(r.Context()).Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatsFromModel(stats))
}

// Lookup handles GET /api/v1/players/{player_id}/lookup/{key}.
// The value is rendered as display text with a bounded wait, so a slow or
// failing store yields an empty value rather than an error.
func (h *HistoryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerID := model.PlayerID(vars["player_id"])
	key := vars["key"]

	value := h.warden.Lookup(r.Context(), key, playerID)
	response.JSON(w, http.StatusOK, response.LookupResponse{
		PlayerID: string(playerID),
		Key:      key,
		Value:    value,
	})
}
