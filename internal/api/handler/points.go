package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamewarden/internal/api/request"
	"github.com/mcoot/gamewarden/internal/api/response"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/warden"
)

// PointsHandler handles point balance endpoints
type PointsHandler struct {
	warden *warden.Warden
}

// NewPointsHandler creates a new points handler
func NewPointsHandler(w *warden.Warden) *PointsHandler {
	return &PointsHandler{
		warden: w,
	}
}

// Get handles GET /api/v1/players/{player_id}/points
func (h *PointsHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	balance, err := h.warden.GetPoints(r.Context(), playerID).Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointsResponse{
		PlayerID: string(playerID),
		Balance:  balance,
	})
}

// Adjust handles POST /api/v1/players/{player_id}/points
func (h *PointsHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	var req request.AdjustPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	balance, err := h.warden.AddPoints(r.Context(), playerID, req.Delta).Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointsResponse{
		PlayerID: string(playerID),
		Balance:  balance,
	})
}

// Reset handles DELETE /api/v1/players/{player_id}/points
func (h *PointsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	if _, err := h.warden.ResetPoints(r.Context(), playerID).Wait(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PointsResponse{
		PlayerID: string(playerID),
		Balance:  0,
	})
}
