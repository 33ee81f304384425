package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/storage"
)

// Service is the cross-cutting read model over all punishment kinds.
// Everything here is a full store read: history and stats are bulk,
// infrequent queries and deliberately bypass the active-record cache.
type Service struct {
	storage storage.Store
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new history Service
func New(store storage.Store, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// GetPlayerHistory returns every punishment record for the player across
// all kinds, newest first
func (s *Service) GetPlayerHistory(ctx context.Context, playerID model.PlayerID) ([]*model.Punishment, error) {
	records, err := s.storage.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, storeErr("list player history", err)
	}
	return records, nil
}

// GetPlayerHistoryCount returns the number of records for the player
func (s *Service) GetPlayerHistoryCount(ctx context.Context, playerID model.PlayerID) (int, error) {
	count, err := s.storage.CountByPlayer(ctx, playerID)
	if err != nil {
		return 0, storeErr("count player history", err)
	}
	return count, nil
}

// GetPunishment looks a record up by ID. Returns
// model.ErrPunishmentNotFound if it was never issued.
func (s *Service) GetPunishment(ctx context.Context, id model.PunishmentID) (*model.Punishment, error) {
	p, err := s.storage.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find punishment", err)
	}
	return p, nil
}

// GetStats recomputes the aggregate counters. Active counts apply the
// standard validity rule at the current instant; nothing is cached.
func (s *Service) GetStats(ctx context.Context) (*model.Stats, error) {
	stats, err := s.storage.ComputeStats(ctx, s.clock.Now())
	if err != nil {
		return nil, storeErr("compute stats", err)
	}
	return stats, nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, model.ErrPunishmentNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrStoreUnavailable, err)
}
