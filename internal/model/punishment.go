package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PunishmentID identifies a punishment record.
// Assigned by the store at creation, monotonically increasing.
type PunishmentID int64

// Kind is the category of a punishment
type Kind string

// Punishment kinds
const (
	KindBan     Kind = "ban"
	KindMute    Kind = "mute"
	KindWarning Kind = "warning"
)

// Exclusive reports whether at most one active-and-valid punishment of this
// kind may exist per subject at a time. Warnings accumulate freely.
func (k Kind) Exclusive() bool {
	return k == KindBan || k == KindMute
}

// Valid reports whether k is a known punishment kind
func (k Kind) Valid() bool {
	switch k {
	case KindBan, KindMute, KindWarning:
		return true
	}
	return false
}

// Punishment is the durable sanction record shared by bans, mutes and warnings
type Punishment struct {
	ID           PunishmentID
	Kind         Kind
	TargetID     PlayerID
	TargetName   string
	TargetIP     string // optional; bans/mutes may also apply to an address
	ExecutorID   PlayerID
	ExecutorName string // snapshot at issue time, never re-resolved
	Reason       string
	CreatedAt    time.Time
	Duration     *time.Duration // nil means permanent
	Active       bool           // cleared on explicit revocation, independent of expiry
	Silent       bool
}

// IsPermanent reports whether the punishment never expires on its own
func (p *Punishment) IsPermanent() bool {
	return p.Duration == nil
}

// ExpiresAt returns the expiry instant, or false for permanent punishments
func (p *Punishment) ExpiresAt() (time.Time, bool) {
	if p.Duration == nil {
		return time.Time{}, false
	}
	return p.CreatedAt.Add(*p.Duration), true
}

// RemainingTime returns how long the punishment has left at the given instant,
// floored at zero. Only meaningful for non-permanent punishments.
func (p *Punishment) RemainingTime(now time.Time) time.Duration {
	expiry, ok := p.ExpiresAt()
	if !ok {
		return 0
	}
	remaining := expiry.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsActiveAndValid reports whether the punishment is in force at the given
// instant: the stored Active flag is set and the expiry, if any, has not
// elapsed. Both conditions are checked on every call so a cached record
// never goes stale.
func (p *Punishment) IsActiveAndValid(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.IsPermanent() {
		return true
	}
	return p.RemainingTime(now) > 0
}

// FreezeState is the transient restriction applied to a connected player.
// It is never persisted and does not survive a disconnect or restart.
type FreezeState struct {
	PlayerID     PlayerID
	ExecutorID   PlayerID
	ExecutorName string
	Reason       string
	FrozenAt     time.Time
}

// Stats is a point-in-time aggregate over all punishment records.
// "Active" counts apply the same validity rule as IsActiveAndValid.
type Stats struct {
	TotalBans      int
	ActiveBans     int
	TotalMutes     int
	ActiveMutes    int
	TotalWarnings  int
	ActiveWarnings int
}
