package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Records are stored as JSON values; secondary indexes (per-player history
// list, stored-active sets per subject, per-kind sets for stats) are
// maintained alongside each write in a pipeline.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) CreatePunishment(ctx context.Context, p *model.Punishment) (model.PunishmentID, error) {
	next, err := s.client.Incr(ctx, punishmentCounterKey()).Result()
	if err != nil {
		return 0, err
	}

	record := *p
	record.ID = model.PunishmentID(next)

	data, err := json.Marshal(&record)
	if err != nil {
		return 0, err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, punishmentKey(record.ID), data, 0)
	pipe.LPush(ctx, playerHistoryKey(record.TargetID), int64(record.ID))
	pipe.SAdd(ctx, kindIndexKey(record.Kind), int64(record.ID))
	if record.Active {
		pipe.SAdd(ctx, activeByPlayerKey(record.Kind, record.TargetID), int64(record.ID))
		if record.TargetIP != "" {
			pipe.SAdd(ctx, activeByIPKey(record.Kind, record.TargetIP), int64(record.ID))
		}
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return record.ID, nil
}

func (s *Storage) UpdatePunishmentActive(ctx context.Context, id model.PunishmentID, active bool) error {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	p.Active = active
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, punishmentKey(id), data, 0)
	if active {
		pipe.SAdd(ctx, activeByPlayerKey(p.Kind, p.TargetID), int64(id))
		if p.TargetIP != "" {
			pipe.SAdd(ctx, activeByIPKey(p.Kind, p.TargetIP), int64(id))
		}
	} else {
		pipe.SRem(ctx, activeByPlayerKey(p.Kind, p.TargetID), int64(id))
		if p.TargetIP != "" {
			pipe.SRem(ctx, activeByIPKey(p.Kind, p.TargetIP), int64(id))
		}
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) FindActiveByPlayer(ctx context.Context, kind model.Kind, playerID model.PlayerID) (*model.Punishment, error) {
	return s.newestActive(ctx, activeByPlayerKey(kind, playerID))
}

func (s *Storage) FindActiveByIP(ctx context.Context, kind model.Kind, ip string) (*model.Punishment, error) {
	if ip == "" {
		return nil, nil
	}
	return s.newestActive(ctx, activeByIPKey(kind, ip))
}

// newestActive resolves a stored-active index set to the newest record it
// references. Entries whose record has since been flipped inactive are
// skipped rather than repaired; revocation keeps the sets in sync.
func (s *Storage) newestActive(ctx context.Context, indexKey string) (*model.Punishment, error) {
	members, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	records, err := s.fetchMany(ctx, members)
	if err != nil {
		return nil, err
	}

	var newest *model.Punishment
	for _, p := range records {
		if p == nil || !p.Active {
			continue
		}
		if newest == nil || p.ID > newest.ID {
			newest = p
		}
	}
	return newest, nil
}

func (s *Storage) FindByID(ctx context.Context, id model.PunishmentID) (*model.Punishment, error) {
	data, err := s.client.Get(ctx, punishmentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPunishmentNotFound
		}
		return nil, err
	}

	var p model.Punishment
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) ListByPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Punishment, error) {
	ids, err := s.client.LRange(ctx, playerHistoryKey(playerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Punishment{}, nil
	}

	// LPush on create means the list is already newest-first
	records, err := s.fetchMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*model.Punishment, 0, len(records))
	for _, p := range records {
		if p != nil {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *Storage) CountByPlayer(ctx context.Context, playerID model.PlayerID) (int, error) {
	n, err := s.client.LLen(ctx, playerHistoryKey(playerID)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Storage) GetPointBalance(ctx context.Context, playerID model.PlayerID) (int, error) {
	val, err := s.client.Get(ctx, pointsKey(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.Atoi(val)
}

func (s *Storage) SetPointBalance(ctx context.Context, playerID model.PlayerID, balance int) error {
	return s.client.Set(ctx, pointsKey(playerID), balance, 0).Err()
}

func (s *Storage) ComputeStats(ctx context.Context, now time.Time) (*model.Stats, error) {
	stats := &model.Stats{}

	for _, kind := range []model.Kind{model.KindBan, model.KindMute, model.KindWarning} {
		ids, err := s.client.SMembers(ctx, kindIndexKey(kind)).Result()
		if err != nil {
			return nil, err
		}

		records, err := s.fetchMany(ctx, ids)
		if err != nil {
			return nil, err
		}

		total, active := 0, 0
		for _, p := range records {
			if p == nil {
				continue
			}
			total++
			if p.IsActiveAndValid(now) {
				active++
			}
		}

		switch kind {
		case model.KindBan:
			stats.TotalBans, stats.ActiveBans = total, active
		case model.KindMute:
			stats.TotalMutes, stats.ActiveMutes = total, active
		case model.KindWarning:
			stats.TotalWarnings, stats.ActiveWarnings = total, active
		}
	}

	return stats, nil
}

// fetchMany loads punishment records for a set of string-encoded IDs.
// Missing records come back as nil entries.
func (s *Storage) fetchMany(ctx context.Context, ids []string) ([]*model.Punishment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		keys = append(keys, punishmentKey(model.PunishmentID(id)))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.Punishment, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var p model.Punishment
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, err
		}
		records[i] = &p
	}
	return records, nil
}
