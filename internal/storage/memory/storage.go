package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Used as the test fixture for every service, and as a standalone backend
// for single-node deployments that accept losing history on restart.
type Storage struct {
	mu sync.RWMutex

	nextID      model.PunishmentID
	punishments map[model.PunishmentID]*model.Punishment
	byPlayer    map[model.PlayerID][]model.PunishmentID
	points      map[model.PlayerID]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		nextID:      1,
		punishments: make(map[model.PunishmentID]*model.Punishment),
		byPlayer:    make(map[model.PlayerID][]model.PunishmentID),
		points:      make(map[model.PlayerID]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) CreatePunishment(ctx context.Context, p *model.Punishment) (model.PunishmentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	stored := *p
	stored.ID = id
	s.punishments[id] = &stored
	s.byPlayer[p.TargetID] = append(s.byPlayer[p.TargetID], id)

	return id, nil
}

func (s *Storage) UpdatePunishmentActive(ctx context.Context, id model.PunishmentID, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.punishments[id]
	if !ok {
		return model.ErrPunishmentNotFound
	}
	p.Active = active
	return nil
}

func (s *Storage) FindActiveByPlayer(ctx context.Context, kind model.Kind, playerID model.PlayerID) (*model.Punishment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var newest *model.Punishment
	for _, id := range s.byPlayer[playerID] {
		p := s.punishments[id]
		if p.Kind != kind || !p.Active {
			continue
		}
		if newest == nil || p.ID > newest.ID {
			newest = p
		}
	}
	if newest == nil {
		return nil, nil
	}
	cp := *newest
	return &cp, nil
}

func (s *Storage) FindActiveByIP(ctx context.Context, kind model.Kind, ip string) (*model.Punishment, error) {
	if ip == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var newest *model.Punishment
	for _, p := range s.punishments {
		if p.Kind != kind || !p.Active || p.TargetIP != ip {
			continue
		}
		if newest == nil || p.ID > newest.ID {
			newest = p
		}
	}
	if newest == nil {
		return nil, nil
	}
	cp := *newest
	return &cp, nil
}

func (s *Storage) FindByID(ctx context.Context, id model.PunishmentID) (*model.Punishment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.punishments[id]
	if !ok {
		return nil, model.ErrPunishmentNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Storage) ListByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Punishment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPlayer[playerID]
	records := make([]*model.Punishment, 0, len(ids))
	for _, id := range ids {
		cp := *s.punishments[id]
		records = append(records, &cp)
	}

	// Newest first
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})

	return records, nil
}

func (s *Storage) CountByPlayer(ctx context.Context, playerID model.PlayerID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byPlayer[playerID]), nil
}

func (s *Storage) GetPointBalance(ctx context.Context, playerID model.PlayerID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points[playerID], nil
}

func (s *Storage) SetPointBalance(ctx context.Context, playerID model.PlayerID, balance int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[playerID] = balance
	return nil
}

func (s *Storage) ComputeStats(ctx context.Context, now time.Time) (*model.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.Stats{}
	for _, p := range s.punishments {
		valid := p.IsActiveAndValid(now)
		switch p.Kind {
		case model.KindBan:
			stats.TotalBans++
			if valid {
				stats.ActiveBans++
			}
		case model.KindMute:
			stats.TotalMutes++
			if valid {
				stats.ActiveMutes++
			}
		case model.KindWarning:
			stats.TotalWarnings++
			if valid {
				stats.ActiveWarnings++
			}
		}
	}
	return stats, nil
}
