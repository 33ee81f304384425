package warden

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/gamewarden/internal/async"
	"github.com/mcoot/gamewarden/internal/model"
)

// Lookup keys understood by the placeholder surface
const (
	KeyBanned        = "banned"
	KeyBanReason     = "ban_reason"
	KeyBanRemaining  = "ban_remaining"
	KeyMuted         = "muted"
	KeyMuteReason    = "mute_reason"
	KeyMuteRemaining = "mute_remaining"
	KeyWarningCount  = "warning_count"
	KeyFrozen        = "frozen"
	KeyFreezeReason  = "freeze_reason"
	KeyPoints        = "points"
	KeyHistoryCount  = "history_count"

	KeyTotalBans      = "total_bans"
	KeyActiveBans     = "active_bans"
	KeyTotalMutes     = "total_mutes"
	KeyActiveMutes    = "active_mutes"
	KeyTotalWarnings  = "total_warnings"
	KeyActiveWarnings = "active_warnings"
)

// PermanentDisplay is rendered as the remaining time of a permanent
// punishment
const PermanentDisplay = "permanent"

// Lookup resolves a string-keyed read-only query for inline text
// rendering. The caller is synchronous, so the wait on the underlying
// asynchronous read is bounded: an unknown key, an absent value, a store
// failure or a timed-out wait all render as the empty string, never an
// error. Mutating operations are deliberately not reachable from here.
func (w *Warden) Lookup(ctx context.Context, key string, playerID model.PlayerID) string {
	switch key {
	case KeyBanned:
		return w.boolLookup(w.GetActiveBan(ctx, playerID))
	case KeyBanReason:
		return w.reasonLookup(w.GetActiveBan(ctx, playerID))
	case KeyBanRemaining:
		return w.remainingLookup(w.GetActiveBan(ctx, playerID))
	case KeyMuted:
		return w.boolLookup(w.GetActiveMute(ctx, playerID))
	case KeyMuteReason:
		return w.reasonLookup(w.GetActiveMute(ctx, playerID))
	case KeyMuteRemaining:
		return w.remainingLookup(w.GetActiveMute(ctx, playerID))
	case KeyWarningCount:
		return w.intLookup(w.WarningCount(ctx, playerID))
	case KeyFrozen:
		return strconv.FormatBool(w.IsFrozen(playerID))
	case KeyFreezeReason:
		reason, _ := w.FreezeReason(playerID)
		return reason
	case KeyPoints:
		return w.intLookup(w.GetPoints(ctx, playerID))
	case KeyHistoryCount:
		return w.intLookup(w.GetHistoryCount(ctx, playerID))
	case KeyTotalBans, KeyActiveBans, KeyTotalMutes, KeyActiveMutes, KeyTotalWarnings, KeyActiveWarnings:
		return w.statsLookup(ctx, key)
	default:
		return ""
	}
}

func (w *Warden) boolLookup(r *async.Result[*model.Punishment]) string {
	p, err := r.WaitTimeout(w.waitTimeout)
	if err != nil {
		return ""
	}
	return strconv.FormatBool(p != nil)
}

func (w *Warden) reasonLookup(r *async.Result[*model.Punishment]) string {
	p, err := r.WaitTimeout(w.waitTimeout)
	if err != nil || p == nil {
		return ""
	}
	return p.Reason
}

func (w *Warden) remainingLookup(r *async.Result[*model.Punishment]) string {
	p, err := r.WaitTimeout(w.waitTimeout)
	if err != nil || p == nil {
		return ""
	}
	if p.IsPermanent() {
		return PermanentDisplay
	}
	return FormatDuration(p.RemainingTime(w.clock.Now()))
}

func (w *Warden) intLookup(r *async.Result[int]) string {
	n, err := r.WaitTimeout(w.waitTimeout)
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}

func (w *Warden) statsLookup(ctx context.Context, key string) string {
	stats, err := w.GetStats(ctx).WaitTimeout(w.waitTimeout)
	if err != nil {
		return ""
	}

	switch key {
	case KeyTotalBans:
		return strconv.Itoa(stats.TotalBans)
	case KeyActiveBans:
		return strconv.Itoa(stats.ActiveBans)
	case KeyTotalMutes:
		return strconv.Itoa(stats.TotalMutes)
	case KeyActiveMutes:
		return strconv.Itoa(stats.ActiveMutes)
	case KeyTotalWarnings:
		return strconv.Itoa(stats.TotalWarnings)
	case KeyActiveWarnings:
		return strconv.Itoa(stats.ActiveWarnings)
	}
	return ""
}

// FormatDuration renders a duration as a compact "1d 2h 3m 4s" string,
// omitting leading zero units. Sub-second remainders round up so a nearly
// expired punishment never displays as "0s" while still in force.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	d = d.Round(time.Second)
	if d < time.Second {
		d = time.Second
	}

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	seconds := (d - minutes*time.Minute) / time.Second

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
