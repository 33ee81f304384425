package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamewarden/internal/api/handler"
	"github.com/mcoot/gamewarden/internal/api/middleware"
	"github.com/mcoot/gamewarden/internal/connections"
	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/warden"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Warden      *warden.Warden
	Connections *connections.Registry
	Clock       clock.Clock

	// TokenHash is the bcrypt hash of the admin API token. Empty disables
	// authentication.
	TokenHash string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	punishmentHandler := handler.NewPunishmentHandler(cfg.Warden, cfg.Clock)
	pointsHandler := handler.NewPointsHandler(cfg.Warden)
	freezeHandler := handler.NewFreezeHandler(cfg.Warden)
	historyHandler := handler.NewHistoryHandler(cfg.Warden, cfg.Clock)
	sessionHandler := handler.NewSessionHandler(cfg.Connections, cfg.Warden)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.TokenHash)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// All moderation routes require the admin token
	admin := api.NewRoute().Subrouter()
	admin.Use(authMiddleware)

	// Ban routes
	admin.HandleFunc("/bans", punishmentHandler.IssueBan).Methods(http.MethodPost)
	admin.HandleFunc("/bans/ip/{ip}", punishmentHandler.GetBanForIP).Methods(http.MethodGet)
	admin.HandleFunc("/bans/{player_id}", punishmentHandler.GetBan).Methods(http.MethodGet)
	admin.HandleFunc("/bans/{player_id}", punishmentHandler.RevokeBan).Methods(http.MethodDelete)

	// Mute routes
	admin.HandleFunc("/mutes", punishmentHandler.IssueMute).Methods(http.MethodPost)
	admin.HandleFunc("/mutes/ip/{ip}", punishmentHandler.GetMuteForIP).Methods(http.MethodGet)
	admin.HandleFunc("/mutes/{player_id}", punishmentHandler.GetMute).Methods(http.MethodGet)
	admin.HandleFunc("/mutes/{player_id}", punishmentHandler.RevokeMute).Methods(http.MethodDelete)

	// Warning routes
	admin.HandleFunc("/warnings", punishmentHandler.IssueWarning).Methods(http.MethodPost)
	admin.HandleFunc("/warnings/{player_id}", punishmentHandler.ListWarnings).Methods(http.MethodGet)
	admin.HandleFunc("/warnings/{player_id}/count", punishmentHandler.WarningCount).Methods(http.MethodGet)

	// Player routes
	admin.HandleFunc("/players/{player_id}/points", pointsHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/players/{player_id}/points", pointsHandler.Adjust).Methods(http.MethodPost)
	admin.HandleFunc("/players/{player_id}/points", pointsHandler.Reset).Methods(http.MethodDelete)
	admin.HandleFunc("/players/{player_id}/history", historyHandler.GetHistory).Methods(http.MethodGet)
	admin.HandleFunc("/players/{player_id}/history/count", historyHandler.GetHistoryCount).Methods(http.MethodGet)
	admin.HandleFunc("/players/{player_id}/lookup/{key}", historyHandler.Lookup).Methods(http.MethodGet)

	// Freeze routes
	admin.HandleFunc("/freezes/{player_id}", freezeHandler.Freeze).Methods(http.MethodPost)
	admin.HandleFunc("/freezes/{player_id}", freezeHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/freezes/{player_id}", freezeHandler.Unfreeze).Methods(http.MethodDelete)

	// Session routes
	admin.HandleFunc("/sessions/{player_id}", sessionHandler.Connect).Methods(http.MethodPost)
	admin.HandleFunc("/sessions/{player_id}", sessionHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/sessions/{player_id}", sessionHandler.Disconnect).Methods(http.MethodDelete)

	// Record and aggregate routes
	admin.HandleFunc("/punishments/{id}", historyHandler.GetPunishment).Methods(http.MethodGet)
	admin.HandleFunc("/stats", historyHandler.GetStats).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
