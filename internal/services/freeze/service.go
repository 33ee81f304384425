package freeze

import (
	"log/slog"
	"sync"

	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/model"
)

// ConnectionLookup reports whether a player currently has a live
// connection. Supplied by the hosting integration; the service itself has
// no notion of "connected" beyond this check.
type ConnectionLookup interface {
	IsOnline(playerID model.PlayerID) bool
}

// Service holds the transient frozen state for connected players. Purely
// in-memory: nothing here touches the store, survives a restart, or runs
// on a timer. Every operation is synchronous and cheap.
type Service struct {
	mu     sync.RWMutex
	frozen map[model.PlayerID]*model.FreezeState

	connections ConnectionLookup
	clock       clock.Clock
	logger      *slog.Logger
}

// New creates a new freeze Service
func New(connections ConnectionLookup, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		frozen:      make(map[model.PlayerID]*model.FreezeState),
		connections: connections,
		clock:       clk,
		logger:      logger,
	}
}

// Freeze inserts or overwrites the frozen state for an online player.
// Freezing an offline player is a caller error.
func (s *Service) Freeze(playerID model.PlayerID, executorID model.PlayerID, executorName, reason string, silent bool) (*model.FreezeState, error) {
	if !s.connections.IsOnline(playerID) {
		return nil, model.ErrPlayerOffline
	}

	state := &model.FreezeState{
		PlayerID:     playerID,
		ExecutorID:   executorID,
		ExecutorName: executorName,
		Reason:       reason,
		FrozenAt:     s.clock.Now(),
	}

	s.mu.Lock()
	s.frozen[playerID] = state
	s.mu.Unlock()

	s.logger.Info("player frozen",
		slog.String("player", string(playerID)),
		slog.String("executor", executorName),
		slog.Bool("silent", silent))

	return state, nil
}

// Unfreeze removes the frozen state; returns whether one existed
func (s *Service) Unfreeze(playerID model.PlayerID, executorID model.PlayerID, executorName string) bool {
	s.mu.Lock()
	_, ok := s.frozen[playerID]
	delete(s.frozen, playerID)
	s.mu.Unlock()

	if ok {
		s.logger.Info("player unfrozen",
			slog.String("player", string(playerID)),
			slog.String("executor", executorName))
	}
	return ok
}

// IsFrozen reports whether the player is currently frozen
func (s *Service) IsFrozen(playerID model.PlayerID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.frozen[playerID]
	return ok
}

// Get returns the player's frozen state, or false
func (s *Service) Get(playerID model.PlayerID) (*model.FreezeState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.frozen[playerID]
	return state, ok
}

// GetReason returns the stored freeze reason, or false. For read-only
// integrations that need the text without the full record.
func (s *Service) GetReason(playerID model.PlayerID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.frozen[playerID]
	if !ok {
		return "", false
	}
	return state.Reason, true
}

// ClearOnDisconnect drops any frozen state for a departing player. Called
// by the connection teardown hook so a reconnect under a reused identity
// never inherits a stale freeze.
func (s *Service) ClearOnDisconnect(playerID model.PlayerID) {
	s.mu.Lock()
	_, ok := s.frozen[playerID]
	delete(s.frozen, playerID)
	s.mu.Unlock()

	if ok {
		s.logger.Info("freeze cleared on disconnect", slog.String("player", string(playerID)))
	}
}
