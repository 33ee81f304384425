// Package warden exposes the moderation core behind a single facade.
//
// Integrations (command handlers, chat and connection hooks, placeholder
// renderers) call this surface and nothing below it. Store-touching
// operations return futures resolved on the worker pool so the host's
// simulation loop never blocks; freeze operations are plain synchronous
// calls because the state is in-memory.
package warden

import (
	"context"
	"time"

	"github.com/mcoot/gamewarden/internal/async"
	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/services/freeze"
	"github.com/mcoot/gamewarden/internal/services/history"
	"github.com/mcoot/gamewarden/internal/services/points"
	"github.com/mcoot/gamewarden/internal/services/sanction"
)

// DefaultWaitTimeout bounds how long a synchronous render call site may
// wait on an asynchronous result before degrading to an absent value
const DefaultWaitTimeout = time.Second

// Warden is the facade over the sanction, point, freeze and history
// services
type Warden struct {
	bans     *sanction.Manager
	mutes    *sanction.Manager
	warnings *sanction.Manager
	points   *points.Service
	freezes  *freeze.Service
	history  *history.Service

	pool        *async.Pool
	clock       clock.Clock
	waitTimeout time.Duration
}

// New creates the facade. waitTimeout <= 0 uses DefaultWaitTimeout.
func New(
	bans, mutes, warnings *sanction.Manager,
	pointsService *points.Service,
	freezeService *freeze.Service,
	historyService *history.Service,
	pool *async.Pool,
	clk clock.Clock,
	waitTimeout time.Duration,
) *Warden {
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	return &Warden{
		bans:        bans,
		mutes:       mutes,
		warnings:    warnings,
		points:      pointsService,
		freezes:     freezeService,
		history:     historyService,
		pool:        pool,
		clock:       clk,
		waitTimeout: waitTimeout,
	}
}

// Close drains the worker pool, letting in-flight writes finish
func (w *Warden) Close() {
	w.pool.Close()
}

// Ban operations

func (w *Warden) Ban(ctx context.Context, req sanction.IssueRequest) *async.Result[*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Punishment, error) {
		return w.bans.Issue(ctx, req)
	})
}

func (w *Warden) Unban(ctx context.Context, targetID model.PlayerID, executorID model.PlayerID, executorName, note string) *async.Result[bool] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (bool, error) {
		return w.bans.Revoke(ctx, targetID, executorID, executorName, note)
	})
}

func (w *Warden) GetActiveBan(ctx context.Context, targetID model.PlayerID) *async.Result[*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Punishment, error) {
		return w.bans.GetActive(ctx, targetID)
	})
}

func (w *Warden) GetActiveBanForIP(ctx context.Context, ip string) *async.Result[*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Punishment, error) {
		return w.bans.GetActiveForIP(ctx, ip)
	})
}

// Mute operations

func (w *Warden) Mute(ctx context.Context, req sanction.IssueRequest) *async.Result[*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Punishment, error) {
		return w.mutes.Issue(ctx, req)
	})
}

func (w *Warden) Unmute(ctx context.Context, targetID model.PlayerID, executorID model.PlayerID, executorName, note string) *async.Result[bool] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (bool, error) {
		return w.mutes.Revoke(ctx, targetID, executorID, executorName, note)
	})
}

func (w *Warden) GetActiveMute(ctx context.Context, targetID model.PlayerID) *async.Result[*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Punishment, error) {
		return w.mutes.GetActive(ctx, targetID)
	})
}

func (w *Warden) GetActiveMuteForIP(ctx context.Context, ip string) *async.Result[*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Punishment, error) {
		return w.mutes.GetActiveForIP(ctx, ip)
	})
}

// Warning operations

func (w *Warden) Warn(ctx context.Context, req sanction.IssueRequest) *async.Result[*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Punishment, error) {
		return w.warnings.Issue(ctx, req)
	})
}

func (w *Warden) Warnings(ctx context.Context, targetID model.PlayerID) *async.Result[[]*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) ([]*model.Punishment, error) {
		return w.warnings.ListAll(ctx, targetID)
	})
}

func (w *Warden) WarningCount(ctx context.Context, targetID model.PlayerID) *async.Result[int] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (int, error) {
		return w.warnings.CountActive(ctx, targetID)
	})
}

// Point operations

func (w *Warden) GetPoints(ctx context.Context, playerID model.PlayerID) *async.Result[int] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (int, error) {
		return w.points.Get(ctx, playerID)
	})
}

func (w *Warden) AddPoints(ctx context.Context, playerID model.PlayerID, delta int) *async.Result[int] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (int, error) {
		return w.points.Add(ctx, playerID, delta)
	})
}

func (w *Warden) ResetPoints(ctx context.Context, playerID model.PlayerID) *async.Result[struct{}] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, w.points.Reset(ctx, playerID)
	})
}

// History operations

func (w *Warden) GetHistory(ctx context.Context, playerID model.PlayerID) *async.Result[[]*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) ([]*model.Punishment, error) {
		return w.history.GetPlayerHistory(ctx, playerID)
	})
}

func (w *Warden) GetHistoryCount(ctx context.Context, playerID model.PlayerID) *async.Result[int] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (int, error) {
		return w.history.GetPlayerHistoryCount(ctx, playerID)
	})
}

func (w *Warden) GetPunishment(ctx context.Context, id model.PunishmentID) *async.Result[*model.Punishment] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Punishment, error) {
		return w.history.GetPunishment(ctx, id)
	})
}

func (w *Warden) GetStats(ctx context.Context) *async.Result[*model.Stats] {
	return async.Submit(w.pool, ctx, func(ctx context.Context) (*model.Stats, error) {
		return w.history.GetStats(ctx)
	})
}

// Freeze operations: synchronous, in-memory only

func (w *Warden) Freeze(playerID model.PlayerID, executorID model.PlayerID, executorName, reason string, silent bool) (*model.FreezeState, error) {
	return w.freezes.Freeze(playerID, executorID, executorName, reason, silent)
}

func (w *Warden) Unfreeze(playerID model.PlayerID, executorID model.PlayerID, executorName string) bool {
	return w.freezes.Unfreeze(playerID, executorID, executorName)
}

func (w *Warden) IsFrozen(playerID model.PlayerID) bool {
	return w.freezes.IsFrozen(playerID)
}

func (w *Warden) GetFreeze(playerID model.PlayerID) (*model.FreezeState, bool) {
	return w.freezes.Get(playerID)
}

func (w *Warden) FreezeReason(playerID model.PlayerID) (string, bool) {
	return w.freezes.GetReason(playerID)
}

func (w *Warden) ClearOnDisconnect(playerID model.PlayerID) {
	w.freezes.ClearOnDisconnect(playerID)
}
