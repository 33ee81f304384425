package response

import (
	"time"

	"github.com/mcoot/gamewarden/internal/model"
)

// Punishment represents a punishment record in API responses.
// Validity fields are computed at render time, not stored.
type Punishment struct {
	ID               int64      `json:"id"`
	Kind             string     `json:"kind"`
	TargetID         string     `json:"target_id"`
	TargetName       string     `json:"target_name,omitempty"`
	TargetIP         string     `json:"target_ip,omitempty"`
	ExecutorID       string     `json:"executor_id,omitempty"`
	ExecutorName     string     `json:"executor_name"`
	Reason           string     `json:"reason"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	Permanent        bool       `json:"permanent"`
	Active           bool       `json:"active"`
	Valid            bool       `json:"valid"`
	RemainingSeconds int64      `json:"remaining_seconds,omitempty"`
	Silent           bool       `json:"silent,omitempty"`
}

// PunishmentFromModel converts a model.Punishment, computing validity at now
func PunishmentFromModel(p *model.Punishment, now time.Time) Punishment {
	resp := Punishment{
		ID:           int64(p.ID),
		Kind:         string(p.Kind),
		TargetID:     string(p.TargetID),
		TargetName:   p.TargetName,
		TargetIP:     p.TargetIP,
		ExecutorID:   string(p.ExecutorID),
		ExecutorName: p.ExecutorName,
		Reason:       p.Reason,
		CreatedAt:    p.CreatedAt,
		Permanent:    p.IsPermanent(),
		Active:       p.Active,
		Valid:        p.IsActiveAndValid(now),
		Silent:       p.Silent,
	}
	if expiry, ok := p.ExpiresAt(); ok {
		resp.ExpiresAt = &expiry
		if remaining := p.RemainingTime(now); remaining > 0 {
			resp.RemainingSeconds = int64(remaining / time.Second)
		}
	}
	return resp
}

// PunishmentsFromModel converts a slice of punishments
func PunishmentsFromModel(ps []*model.Punishment, now time.Time) []Punishment {
	out := make([]Punishment, len(ps))
	for i, p := range ps {
		out[i] = PunishmentFromModel(p, now)
	}
	return out
}

// RevokeResponse is the response for revoking a ban or mute
type RevokeResponse struct {
	Revoked bool `json:"revoked"`
}

// PointsResponse is the response for point balance endpoints
type PointsResponse struct {
	PlayerID string `json:"player_id"`
	Balance  int    `json:"balance"`
}

// CountResponse is the response for count endpoints
type CountResponse struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

// Freeze represents a freeze state in API responses
type Freeze struct {
	PlayerID     string    `json:"player_id"`
	ExecutorID   string    `json:"executor_id,omitempty"`
	ExecutorName string    `json:"executor_name"`
	Reason       string    `json:"reason"`
	FrozenAt     time.Time `json:"frozen_at"`
}

// FreezeFromModel converts a model.FreezeState
func FreezeFromModel(f *model.FreezeState) Freeze {
	return Freeze{
		PlayerID:     string(f.PlayerID),
		ExecutorID:   string(f.ExecutorID),
		ExecutorName: f.ExecutorName,
		Reason:       f.Reason,
		FrozenAt:     f.FrozenAt,
	}
}

// Stats is the response for the aggregate stats endpoint
type Stats struct {
	TotalBans      int `json:"total_bans"`
	ActiveBans     int `json:"active_bans"`
	TotalMutes     int `json:"total_mutes"`
	ActiveMutes    int `json:"active_mutes"`
	TotalWarnings  int `json:"total_warnings"`
	ActiveWarnings int `json:"active_warnings"`
}

// StatsFromModel converts model.Stats
func StatsFromModel(s *model.Stats) Stats {
	return Stats{
		TotalBans:      s.TotalBans,
		ActiveBans:     s.ActiveBans,
		TotalMutes:     s.TotalMutes,
		ActiveMutes:    s.ActiveMutes,
		TotalWarnings:  s.TotalWarnings,
		ActiveWarnings: s.ActiveWarnings,
	}
}

// LookupResponse is the response for placeholder lookups
type LookupResponse struct {
	PlayerID string `json:"player_id"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

// SessionResponse is the response for connection lifecycle endpoints
type SessionResponse struct {
	PlayerID string `json:"player_id"`
	Online   bool   `json:"online"`
}
