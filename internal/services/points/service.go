package points

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/gamewarden/internal/keylock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/storage"
)

// Service tracks a running misconduct score per player. Balances never go
// below zero: a negative delta that would cross zero clamps instead.
type Service struct {
	storage storage.Store
	locks   *keylock.Table
	logger  *slog.Logger
}

// New creates a new points Service
func New(store storage.Store, locks *keylock.Table, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		locks:   locks,
		logger:  logger,
	}
}

func lockKey(playerID model.PlayerID) string {
	return fmt.Sprintf("points/%s", playerID)
}

// Get returns the player's current balance, 0 if never touched
func (s *Service) Get(ctx context.Context, playerID model.PlayerID) (int, error) {
	balance, err := s.storage.GetPointBalance(ctx, playerID)
	if err != nil {
		return 0, storeErr("get point balance", err)
	}
	return balance, nil
}

// Add applies delta to the player's balance and returns the post-update
// value. Deltas may be negative (decay, appeal credit). The read-modify-
// write runs under a per-player lock so concurrent adds never lose updates.
func (s *Service) Add(ctx context.Context, playerID model.PlayerID, delta int) (int, error) {
	unlock := s.locks.Lock(lockKey(playerID))
	defer unlock()

	balance, err := s.storage.GetPointBalance(ctx, playerID)
	if err != nil {
		return 0, storeErr("get point balance", err)
	}

	balance += delta
	if balance < 0 {
		balance = 0
	}

	if err := s.storage.SetPointBalance(ctx, playerID, balance); err != nil {
		return 0, storeErr("set point balance", err)
	}

	s.logger.Info("points adjusted",
		slog.String("player", string(playerID)),
		slog.Int("delta", delta),
		slog.Int("balance", balance))

	return balance, nil
}

// Reset sets the player's balance to zero unconditionally
func (s *Service) Reset(ctx context.Context, playerID model.PlayerID) error {
	unlock := s.locks.Lock(lockKey(playerID))
	defer unlock()

	if err := s.storage.SetPointBalance(ctx, playerID, 0); err != nil {
		return storeErr("reset point balance", err)
	}

	s.logger.Info("points reset", slog.String("player", string(playerID)))
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
}
