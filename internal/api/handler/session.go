package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamewarden/internal/api/response"
	"github.com/mcoot/gamewarden/internal/connections"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/warden"
)

// SessionHandler handles connection lifecycle endpoints. The game server
// reports connects and disconnects here so freeze preconditions and
// disconnect cleanup work.
type SessionHandler struct {
	registry *connections.Registry
	warden   *warden.Warden
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(registry *connections.Registry, w *warden.Warden) *SessionHandler {
	return &SessionHandler{
		registry: registry,
		warden:   w,
	}
}

// Connect handles POST /api/v1/sessions/{player_id}
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	h.registry.Connect(playerID)
	response.JSON(w, http.StatusOK, response.SessionResponse{
		PlayerID: string(playerID),
		Online:   true,
	})
}

// Disconnect handles DELETE /api/v1/sessions/{player_id}.
// Any freeze on the player is dropped with the connection.
func (h *SessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	h.registry.Disconnect(playerID)
	h.warden.ClearOnDisconnect(playerID)

	response.JSON(w, http.StatusOK, response.SessionResponse{
		PlayerID: string(playerID),
		Online:   false,
	})
}

// Get handles GET /api/v1/sessions/{player_id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	response.JSON(w, http.StatusOK, response.SessionResponse{
		PlayerID: string(playerID),
		Online:   h.registry.IsOnline(playerID),
	})
}
