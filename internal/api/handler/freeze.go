package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamewarden/internal/api/request"
	"github.com/mcoot/gamewarden/internal/api/response"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/services/sanction"
	"github.com/mcoot/gamewarden/internal/warden"
)

// FreezeHandler handles freeze endpoints. Freezes are in-memory state so
// these run synchronously, unlike the punishment endpoints.
type FreezeHandler struct {
	warden *warden.Warden
}

// NewFreezeHandler creates a new freeze handler
func NewFreezeHandler(w *warden.Warden) *FreezeHandler {
	return &FreezeHandler{
		warden: w,
	}
}

// Freeze handles POST /api/v1/freezes/{player_id}
func (h *FreezeHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.FreezeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Reason == "" {
		WriteError(w, NewInvalidRequestError("reason is required"))
		return
	}

	executorName := req.ExecutorName
	if req.ExecutorID == "" && executorName == "" {
		executorName = sanction.SystemExecutorName
	}

	state, err := h.warden.Freeze(playerID, model.PlayerID(req.ExecutorID), executorName, req.Reason, req.Silent)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.FreezeFromModel(state))
}

// Unfreeze handles DELETE /api/v1/freezes/{player_id}
func (h *FreezeHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	removed := h.warden.Unfreeze(playerID, "", sanction.SystemExecutorName)
	response.JSON(w, http.StatusOK, response.RevokeResponse{Revoked: removed})
}

// Get handles GET /api/v1/freezes/{player_id}
func (h *FreezeHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	state, ok := h.warden.GetFreeze(playerID)
	if !ok {
		response.NoContent(w)
		return
	}

	response.JSON(w, http.StatusOK, response.FreezeFromModel(state))
}
