package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamewarden/internal/api/request"
	"github.com/mcoot/gamewarden/internal/api/response"
	"github.com/mcoot/gamewarden/internal/async"
	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/services/sanction"
	"github.com/mcoot/gamewarden/internal/warden"
)

// PunishmentHandler handles ban, mute and warning endpoints
type PunishmentHandler struct {
	warden *warden.Warden
	clock  clock.Clock
}

// NewPunishmentHandler creates a new punishment handler
func NewPunishmentHandler(w *warden.Warden, clk clock.Clock) *PunishmentHandler {
	return &PunishmentHandler{
		warden: w,
		clock:  clk,
	}
}

// IssueBan handles POST /api/v1/bans
func (h *PunishmentHandler) IssueBan(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, model.KindBan)
}

// IssueMute handles POST /api/v1/mutes
func (h *PunishmentHandler) IssueMute(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, model.KindMute)
}

// IssueWarning handles POST /api/v1/warnings
func (h *PunishmentHandler) IssueWarning(w http.ResponseWriter, r *http.Request) {
	h.issue(w, r, model.KindWarning)
}

func (h *PunishmentHandler) issue(w http.ResponseWriter, r *http.Request, kind model.Kind) {
	var req request.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.TargetID == "" {
		WriteError(w, NewInvalidRequestError("target_id is required"))
		return
	}
	if req.Reason == "" {
		WriteError(w, NewInvalidRequestError("reason is required"))
		return
	}
	if req.DurationSeconds < 0 {
		WriteError(w, NewInvalidRequestError("duration_seconds must not be negative"))
		return
	}

	issueReq := sanction.IssueRequest{
		TargetID:     model.PlayerID(req.TargetID),
		TargetName:   req.TargetName,
		TargetIP:     req.TargetIP,
		ExecutorID:   model.PlayerID(req.ExecutorID),
		ExecutorName: req.ExecutorName,
		Reason:       req.Reason,
		Silent:       req.Silent,
		System:       req.ExecutorID == "" && req.ExecutorName == "",
	}
	if req.DurationSeconds > 0 {
		d := time.Duration(req.DurationSeconds) * time.Second
		issueReq.Duration = &d
	}

	var result *model.Punishment
	var err error
	switch kind {
	case model.KindBan:
		result, err = h.warden.Ban(r.Context(), issueReq).Wait(r.Context())
	case model.KindMute:
		result, err = h.warden.Mute(r.Context(), issueReq).Wait(r.Context())
	case model.KindWarning:
		result, err = h.warden.Warn(r.Context(), issueReq).Wait(r.Context())
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PunishmentFromModel(result, h.clock.Now()))
}

// RevokeBan handles DELETE /api/v1/bans/{player_id}
func (h *PunishmentHandler) RevokeBan(w http.ResponseWriter, r *http.Request) {
	h.revoke(w, r, model.KindBan)
}

// RevokeMute handles DELETE /api/v1/mutes/{player_id}
func (h *PunishmentHandler) RevokeMute(w http.ResponseWriter, r *http.Request) {
	h.revoke(w, r, model.KindMute)
}

func (h *PunishmentHandler) revoke(w http.ResponseWriter, r *http.Request, kind model.Kind) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	// The body is optional for revocations
	var req request.RevokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	executorID := model.PlayerID(req.ExecutorID)
	executorName := req.ExecutorName
	if executorID == "" && executorName == "" {
		executorName = sanction.SystemExecutorName
	}

	var revoked bool
	var err error
	switch kind {
	case model.KindBan:
		revoked, err = h.warden.Unban(r.Context(), playerID, executorID, executorName, req.Note).Wait(r.Context())
	case model.KindMute:
		revoked, err = h.warden.Unmute(r.Context(), playerID, executorID, executorName, req.Note).Wait(r.Context())
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RevokeResponse{Revoked: revoked})
}

// GetBan handles GET /api/v1/bans/{player_id}
func (h *PunishmentHandler) GetBan(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])
	h.writeActive(w, r, h.warden.GetActiveBan(r.Context(), playerID))
}

// GetBanForIP handles GET /api/v1/bans/ip/{ip}
func (h *PunishmentHandler) GetBanForIP(w http.ResponseWriter, r *http.Request) {
	ip := mux.Vars(r)["ip"]
	h.writeActive(w, r, h.warden.GetActiveBanForIP(r.Context(), ip))
}

// GetMute handles GET /api/v1/mutes/{player_id}
func (h *PunishmentHandler) GetMute(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])
	h.writeActive(w, r, h.warden.GetActiveMute(r.Context(), playerID))
}

// GetMuteForIP handles GET /api/v1/mutes/ip/{ip}
func (h *PunishmentHandler) GetMuteForIP(w http.ResponseWriter, r *http.Request) {
	ip := mux.Vars(r)["ip"]
	h.writeActive(w, r, h.warden.GetActiveMuteForIP(r.Context(), ip))
}

// writeActive renders an active-lookup result, 204 when no valid sanction
// exists for the subject
func (h *PunishmentHandler) writeActive(w http.ResponseWriter, r *http.Request, res *async.Result[*model.Punishment]) {
	p, err := res.Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if p == nil {
		response.NoContent(w)
		return
	}
	response.JSON(w, http.StatusOK, response.PunishmentFromModel(p, h.clock.Now()))
}

// ListWarnings handles GET /api/v1/warnings/{player_id}
func (h *PunishmentHandler) ListWarnings(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	warnings, err := h.warden.Warnings(r.Context(), playerID).Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PunishmentsFromModel(warnings, h.clock.Now()))
}

// WarningCount handles GET /api/v1/warnings/{player_id}/count
func (h *PunishmentHandler) WarningCount(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["player_id"])

	count, err := h.warden.WarningCount(r.Context(), playerID).Wait(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.CountResponse{
		PlayerID: string(playerID),
		Count:    count,
	})
}
