// Package cache bridges the asynchronous store with the hot-path queries
// ("is banned", "is muted") that run on every connection attempt and chat
// message.
//
// Entries map (kind, subject) to the currently known stored-active record,
// or to known-absent. A successful issue or revoke writes the authoritative
// state through synchronously, so the writing process immediately observes
// its own writes. Entries hold records rather than booleans: expiry is
// recomputed against the clock on every read, so a cached record can never
// report a stale validity.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/gamewarden/internal/dependencies/clock"
	"github.com/mcoot/gamewarden/internal/model"
)

// DefaultFreshness is how long a cached entry is trusted before the next
// read goes back to the store
const DefaultFreshness = 30 * time.Second

type subjectKey struct {
	kind    model.Kind
	byIP    bool
	subject string
}

func (k subjectKey) String() string {
	scope := "player"
	if k.byIP {
		scope = "ip"
	}
	return fmt.Sprintf("%s/%s/%s", k.kind, scope, k.subject)
}

type entry struct {
	record    *model.Punishment // nil means known-absent
	fetchedAt time.Time
}

// Loader fetches the authoritative stored-active record for a subject
type Loader func(ctx context.Context) (*model.Punishment, error)

// ActiveCache is the single-process consistency layer over the store
type ActiveCache struct {
	mu      sync.RWMutex
	entries map[subjectKey]entry
	gens    map[subjectKey]uint64

	group     singleflight.Group
	clock     clock.Clock
	freshness time.Duration
}

// New creates a cache; freshness <= 0 uses DefaultFreshness
func New(clk clock.Clock, freshness time.Duration) *ActiveCache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	return &ActiveCache{
		entries:   make(map[subjectKey]entry),
		gens:      make(map[subjectKey]uint64),
		clock:     clk,
		freshness: freshness,
	}
}

// PutPlayer records the authoritative state for a player subject after a
// successful write. A nil record means "no active sanction".
func (c *ActiveCache) PutPlayer(kind model.Kind, playerID model.PlayerID, p *model.Punishment) {
	c.put(subjectKey{kind: kind, subject: string(playerID)}, p)
}

// PutIP records the authoritative state for an IP subject
func (c *ActiveCache) PutIP(kind model.Kind, ip string, p *model.Punishment) {
	if ip == "" {
		return
	}
	c.put(subjectKey{kind: kind, byIP: true, subject: ip}, p)
}

func (c *ActiveCache) put(key subjectKey, p *model.Punishment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{record: p, fetchedAt: c.clock.Now()}
	c.gens[key]++
}

// GetPlayer returns the stored-active record for a player subject, serving
// from cache when fresh and loading through loader otherwise
func (c *ActiveCache) GetPlayer(ctx context.Context, kind model.Kind, playerID model.PlayerID, loader Loader) (*model.Punishment, error) {
	return c.getOrLoad(ctx, subjectKey{kind: kind, subject: string(playerID)}, loader)
}

// GetIP returns the stored-active record for an IP subject
func (c *ActiveCache) GetIP(ctx context.Context, kind model.Kind, ip string, loader Loader) (*model.Punishment, error) {
	return c.getOrLoad(ctx, subjectKey{kind: kind, byIP: true, subject: ip}, loader)
}

func (c *ActiveCache) getOrLoad(ctx context.Context, key subjectKey, loader Loader) (*model.Punishment, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.clock.Now().Sub(e.fetchedAt) < c.freshness {
		return e.record, nil
	}

	// Concurrent misses for the same key share one store read
	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		c.mu.RLock()
		gen := c.gens[key]
		c.mu.RUnlock()

		record, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gens[key] != gen {
			// A write landed while the read was in flight; the written
			// state is newer than what the store just returned.
			return c.entries[key].record, nil
		}
		c.entries[key] = entry{record: record, fetchedAt: c.clock.Now()}
		return record, nil
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*model.Punishment), nil
}
