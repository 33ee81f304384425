package storage

import (
	"context"
	"time"

	"github.com/mcoot/gamewarden/internal/model"
)

// Store defines the interface for punishment and point persistence.
//
// Implementations only deal in stored state: "active" below always means the
// stored Active flag, never time-based validity. Validity against the clock
// is recomputed by callers on every read, so a backend never needs to know
// what time it is (ComputeStats being the one exception, which takes the
// instant explicitly).
//
// All operations must be safe to call concurrently for different keys.
// Check-then-create serialization for the exclusivity invariant is provided
// by the sanction manager, not the store.
type Store interface {
	// CreatePunishment persists a new record and returns its assigned ID.
	// IDs are monotonically increasing within a backend.
	CreatePunishment(ctx context.Context, p *model.Punishment) (model.PunishmentID, error)

	// UpdatePunishmentActive sets the stored Active flag on an existing
	// record. Returns model.ErrPunishmentNotFound for an unknown ID.
	UpdatePunishmentActive(ctx context.Context, id model.PunishmentID, active bool) error

	// FindActiveByPlayer returns the newest record of the given kind for the
	// player whose stored Active flag is set, or nil if there is none.
	FindActiveByPlayer(ctx context.Context, kind model.Kind, playerID model.PlayerID) (*model.Punishment, error)

	// FindActiveByIP is FindActiveByPlayer keyed by IP address
	FindActiveByIP(ctx context.Context, kind model.Kind, ip string) (*model.Punishment, error)

	// FindByID returns the record with the given ID, or
	// model.ErrPunishmentNotFound if it was never issued.
	FindByID(ctx context.Context, id model.PunishmentID) (*model.Punishment, error)

	// ListByPlayer returns every record for the player across all kinds,
	// newest first.
	ListByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Punishment, error)

	// CountByPlayer returns the number of records for the player
	CountByPlayer(ctx context.Context, playerID model.PlayerID) (int, error)

	// GetPointBalance returns the player's misconduct score, 0 if never set
	GetPointBalance(ctx context.Context, playerID model.PlayerID) (int, error)

	// SetPointBalance stores the player's misconduct score
	SetPointBalance(ctx context.Context, playerID model.PlayerID, balance int) error

	// ComputeStats recomputes aggregate counters over all records. Active
	// counts apply full validity against the given instant.
	ComputeStats(ctx context.Context, now time.Time) (*model.Stats, error)
}
