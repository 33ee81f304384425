package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamewarden/internal/dependencies/mocks"
	"github.com/mcoot/gamewarden/internal/model"
)

type CacheSuite struct {
	suite.Suite
	clock *mocks.MockClock
	cache *ActiveCache
	ctx   context.Context
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.cache = New(s.clock, 30*time.Second)
	s.ctx = context.Background()
}

func (s *CacheSuite) ban(id model.PunishmentID) *model.Punishment {
	return &model.Punishment{
		ID:        id,
		Kind:      model.KindBan,
		TargetID:  "player-1",
		Reason:    "testing",
		CreatedAt: s.clock.Now(),
		Active:    true,
	}
}

func (s *CacheSuite) TestPutThenGetSkipsLoader() {
	s.cache.PutPlayer(model.KindBan, "player-1", s.ban(1))

	loads := 0
	p, err := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", func(ctx context.Context) (*model.Punishment, error) {
		loads++
		return nil, nil
	})
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.Equal(model.PunishmentID(1), p.ID)
	s.Equal(0, loads)
}

func (s *CacheSuite) TestPutAbsentIsCached() {
	s.cache.PutPlayer(model.KindBan, "player-1", nil)

	loads := 0
	p, err := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", func(ctx context.Context) (*model.Punishment, error) {
		loads++
		return s.ban(1), nil
	})
	s.Require().NoError(err)
	s.Nil(p)
	s.Equal(0, loads)
}

func (s *CacheSuite) TestMissLoadsAndPopulates() {
	loads := 0
	loader := func(ctx context.Context) (*model.Punishment, error) {
		loads++
		return s.ban(5), nil
	}

	p, err := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", loader)
	s.Require().NoError(err)
	s.Equal(model.PunishmentID(5), p.ID)
	s.Equal(1, loads)

	// Second read within the freshness window is served from cache
	p, err = s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", loader)
	s.Require().NoError(err)
	s.Equal(model.PunishmentID(5), p.ID)
	s.Equal(1, loads)
}

func (s *CacheSuite) TestStaleEntryReloads() {
	loads := 0
	loader := func(ctx context.Context) (*model.Punishment, error) {
		loads++
		return nil, nil
	}

	_, err := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", loader)
	s.Require().NoError(err)
	s.Equal(1, loads)

	s.clock.Advance(time.Minute)

	_, err = s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", loader)
	s.Require().NoError(err)
	s.Equal(2, loads)
}

func (s *CacheSuite) TestExpiredRecordReturnedVerbatim() {
	second := time.Second
	ban := s.ban(1)
	ban.Duration = &second
	s.cache.PutPlayer(model.KindBan, "player-1", ban)

	s.clock.Advance(10 * time.Second)

	// The entry is still fresh, so the record comes back as stored; the
	// caller recomputes validity against the clock.
	p, err := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", func(ctx context.Context) (*model.Punishment, error) {
		s.Fail("loader should not run")
		return nil, nil
	})
	s.Require().NoError(err)
	s.Require().NotNil(p)
	s.False(p.IsActiveAndValid(s.clock.Now()))
}

func (s *CacheSuite) TestConcurrentMissesCoalesce() {
	var loads atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	loader := func(ctx context.Context) (*model.Punishment, error) {
		loads.Add(1)
		close(started)
		<-release
		return s.ban(9), nil
	}
	waitingLoader := func(ctx context.Context) (*model.Punishment, error) {
		loads.Add(1)
		return s.ban(9), nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", loader)
	}()
	<-started

	// These arrive while the first read is in flight and must share it
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", waitingLoader)
			s.NoError(err)
			s.NotNil(p)
		}()
	}

	close(release)
	wg.Wait()

	s.Equal(int32(1), loads.Load())
}

func (s *CacheSuite) TestWriteDuringLoadWins() {
	started := make(chan struct{})
	release := make(chan struct{})

	loader := func(ctx context.Context) (*model.Punishment, error) {
		close(started)
		<-release
		// Store answer predating the concurrent revoke
		return s.ban(1), nil
	}

	done := make(chan *model.Punishment, 1)
	go func() {
		p, _ := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", loader)
		done <- p
	}()
	<-started

	// A revoke completes while the read is in flight
	s.cache.PutPlayer(model.KindBan, "player-1", nil)
	close(release)
	<-done

	// The written state is authoritative for subsequent reads
	p, err := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", func(ctx context.Context) (*model.Punishment, error) {
		s.Fail("loader should not run")
		return nil, nil
	})
	s.Require().NoError(err)
	s.Nil(p)
}

func (s *CacheSuite) TestLoaderErrorPropagates() {
	boom := errors.New("store down")
	_, err := s.cache.GetPlayer(s.ctx, model.KindBan, "player-1", func(ctx context.Context) (*model.Punishment, error) {
		return nil, boom
	})
	s.ErrorIs(err, boom)
}

func (s *CacheSuite) TestIPEntriesAreSeparateFromPlayers() {
	s.cache.PutPlayer(model.KindBan, "203.0.113.7", s.ban(1))

	loads := 0
	p, err := s.cache.GetIP(s.ctx, model.KindBan, "203.0.113.7", func(ctx context.Context) (*model.Punishment, error) {
		loads++
		return nil, nil
	})
	s.Require().NoError(err)
	s.Nil(p)
	s.Equal(1, loads)
}
