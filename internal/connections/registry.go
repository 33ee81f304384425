// Package connections tracks which players currently hold a live
// connection. The hosting integration reports connects and disconnects;
// the freeze service consults the registry for its "must be online"
// precondition.
package connections

import (
	"sync"

	"github.com/mcoot/gamewarden/internal/model"
)

// Registry is an in-memory set of connected players
type Registry struct {
	mu     sync.RWMutex
	online map[model.PlayerID]struct{}
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{
		online: make(map[model.PlayerID]struct{}),
	}
}

// Connect marks a player as connected
func (r *Registry) Connect(playerID model.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.online[playerID] = struct{}{}
}

// Disconnect marks a player as gone; returns whether they were connected
func (r *Registry) Disconnect(playerID model.PlayerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.online[playerID]
	delete(r.online, playerID)
	return ok
}

// IsOnline reports whether the player is currently connected
func (r *Registry) IsOnline(playerID model.PlayerID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.online[playerID]
	return ok
}
