package sanction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/gamewarden/internal/cache"
	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/keylock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/storage"
)

// IssueRequest bundles the parameters of an issue operation
type IssueRequest struct {
	TargetID     model.PlayerID
	TargetName   string
	TargetIP     string // optional; also sanctions the address for bans/mutes
	ExecutorID   model.PlayerID
	ExecutorName string
	Reason       string
	Duration     *time.Duration // nil means permanent
	Silent       bool
	System       bool // issued by automation rather than a staff member
}

// SystemExecutorName is the executor snapshot recorded for system-issued
// punishments
const SystemExecutorName = "Console"

// Manager issues, revokes and queries punishments of a single kind. One
// instance is created per kind; bans and mutes enforce the at-most-one
// active sanction invariant, warnings accumulate.
type Manager struct {
	kind    model.Kind
	storage storage.Store
	cache   *cache.ActiveCache
	locks   *keylock.Table
	clock   clock.Clock
	logger  *slog.Logger
}

// NewManager creates a Manager for the given punishment kind.
// The lock table must be shared across all managers so bans and mutes for
// the same subject serialize against each other's kind only, never globally.
func NewManager(
	kind model.Kind,
	store storage.Store,
	activeCache *cache.ActiveCache,
	locks *keylock.Table,
	clk clock.Clock,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		kind:    kind,
		storage: store,
		cache:   activeCache,
		locks:   locks,
		clock:   clk,
		logger:  logger.With(slog.String("kind", string(kind))),
	}
}

// Kind returns the punishment kind this manager handles
func (m *Manager) Kind() model.Kind {
	return m.kind
}

func (m *Manager) playerLockKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s/player/%s", m.kind, playerID)
}

func (m *Manager) ipLockKey(ip string) string {
	return fmt.Sprintf("%s/ip/%s", m.kind, ip)
}

// Issue creates a new punishment. For exclusive kinds the check for an
// existing active-and-valid sanction and the create run under a per-subject
// lock, so concurrent issues for the same subject cannot both succeed.
func (m *Manager) Issue(ctx context.Context, req IssueRequest) (*model.Punishment, error) {
	if req.Duration != nil && *req.Duration <= 0 {
		return nil, model.ErrInvalidDuration
	}

	executorID, executorName := req.ExecutorID, req.ExecutorName
	if req.System {
		executorID, executorName = "", SystemExecutorName
	}

	if m.kind.Exclusive() {
		// Player key first, then IP key. Every issuer takes them in this
		// order, so the pair cannot deadlock.
		unlockPlayer := m.locks.Lock(m.playerLockKey(req.TargetID))
		defer unlockPlayer()
		if req.TargetIP != "" {
			unlockIP := m.locks.Lock(m.ipLockKey(req.TargetIP))
			defer unlockIP()
		}

		existing, err := m.GetActive(ctx, req.TargetID)
		if err != nil {
			return nil, err
		}
		if existing == nil && req.TargetIP != "" {
			existing, err = m.GetActiveForIP(ctx, req.TargetIP)
			if err != nil {
				return nil, err
			}
		}
		if existing != nil {
			return nil, model.ErrAlreadySanctioned
		}
	}

	record := &model.Punishment{
		Kind:         m.kind,
		TargetID:     req.TargetID,
		TargetName:   req.TargetName,
		TargetIP:     req.TargetIP,
		ExecutorID:   executorID,
		ExecutorName: executorName,
		Reason:       req.Reason,
		CreatedAt:    m.clock.Now(),
		Duration:     req.Duration,
		Active:       true,
		Silent:       req.Silent,
	}

	id, err := m.storage.CreatePunishment(ctx, record)
	if err != nil {
		return nil, storeErr("create punishment", err)
	}
	record.ID = id

	// Write-through: the new state is immediately visible to this process
	m.cache.PutPlayer(m.kind, req.TargetID, record)
	m.cache.PutIP(m.kind, req.TargetIP, record)

	m.logger.Info("punishment issued",
		slog.Int64("id", int64(id)),
		slog.String("target", string(req.TargetID)),
		slog.String("executor", executorName),
		slog.Bool("permanent", record.IsPermanent()),
		slog.Bool("silent", req.Silent))

	return record, nil
}

// Revoke clears the target's current active-and-valid punishment. Returns
// false without error when there is nothing to revoke; historical records
// are never touched.
func (m *Manager) Revoke(ctx context.Context, targetID model.PlayerID, executorID model.PlayerID, executorName, note string) (bool, error) {
	unlock := m.locks.Lock(m.playerLockKey(targetID))
	defer unlock()

	existing, err := m.GetActive(ctx, targetID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err := m.storage.UpdatePunishmentActive(ctx, existing.ID, false); err != nil {
		return false, storeErr("revoke punishment", err)
	}

	m.cache.PutPlayer(m.kind, targetID, nil)
	m.cache.PutIP(m.kind, existing.TargetIP, nil)

	m.logger.Info("punishment revoked",
		slog.Int64("id", int64(existing.ID)),
		slog.String("target", string(targetID)),
		slog.String("executor", executorName),
		slog.String("note", note))

	return true, nil
}

// GetActive returns the target's current active-and-valid punishment, or
// nil. Served through the cache; validity is recomputed on every call.
func (m *Manager) GetActive(ctx context.Context, targetID model.PlayerID) (*model.Punishment, error) {
	p, err := m.cache.GetPlayer(ctx, m.kind, targetID, func(ctx context.Context) (*model.Punishment, error) {
		return m.storage.FindActiveByPlayer(ctx, m.kind, targetID)
	})
	if err != nil {
		return nil, storeErr("find active punishment", err)
	}
	return m.validOrNil(p), nil
}

// GetActiveForIP is GetActive for an IP subject
func (m *Manager) GetActiveForIP(ctx context.Context, ip string) (*model.Punishment, error) {
	if ip == "" {
		return nil, nil
	}
	p, err := m.cache.GetIP(ctx, m.kind, ip, func(ctx context.Context) (*model.Punishment, error) {
		return m.storage.FindActiveByIP(ctx, m.kind, ip)
	})
	if err != nil {
		return nil, storeErr("find active punishment", err)
	}
	return m.validOrNil(p), nil
}

// ListAll returns every punishment of this kind for the target, newest
// first. Meant for non-exclusive kinds (warnings); reads the store
// directly, uncached.
func (m *Manager) ListAll(ctx context.Context, targetID model.PlayerID) ([]*model.Punishment, error) {
	all, err := m.storage.ListByPlayer(ctx, targetID)
	if err != nil {
		return nil, storeErr("list punishments", err)
	}

	records := make([]*model.Punishment, 0, len(all))
	for _, p := range all {
		if p.Kind == m.kind {
			records = append(records, p)
		}
	}
	return records, nil
}

// CountActive returns how many punishments of this kind are currently
// active-and-valid for the target. Each warning carries its own expiry, so
// the count shrinks over time without any store write.
func (m *Manager) CountActive(ctx context.Context, targetID model.PlayerID) (int, error) {
	records, err := m.ListAll(ctx, targetID)
	if err != nil {
		return 0, err
	}

	now := m.clock.Now()
	count := 0
	for _, p := range records {
		if p.IsActiveAndValid(now) {
			count++
		}
	}
	return count, nil
}

func (m *Manager) validOrNil(p *model.Punishment) *model.Punishment {
	if p == nil || !p.IsActiveAndValid(m.clock.Now()) {
		return nil
	}
	return p
}

// storeErr tags gateway failures as ErrStoreUnavailable. Sentinels the
// store itself reports (an unknown ID) pass through untagged.
func storeErr(op string, err error) error {
	if errors.Is(err, model.ErrPunishmentNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
}
