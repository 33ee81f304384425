package warden

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamewarden/internal/async"
	"github.com/mcoot/gamewarden/internal/cache"
	"github.com/mcoot/gamewarden/internal/dependencies/mocks"
	"github.com/mcoot/gamewarden/internal/keylock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/services/freeze"
	"github.com/mcoot/gamewarden/internal/services/history"
	"github.com/mcoot/gamewarden/internal/services/points"
	"github.com/mcoot/gamewarden/internal/services/sanction"
	"github.com/mcoot/gamewarden/internal/storage"
	"github.com/mcoot/gamewarden/internal/storage/memory"
	"github.com/mcoot/gamewarden/internal/testutil"
)

type fakeConnections map[model.PlayerID]bool

func (f fakeConnections) IsOnline(playerID model.PlayerID) bool {
	return f[playerID]
}

type WardenSuite struct {
	suite.Suite
	clock       *mocks.MockClock
	connections fakeConnections
	warden      *Warden
	ctx         context.Context
}

func TestWardenSuite(t *testing.T) {
	suite.Run(t, new(WardenSuite))
}

func (s *WardenSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.connections = fakeConnections{"player-1": true}
	s.ctx = context.Background()
	s.warden = s.newWarden(memory.New(), time.Second)
}

func (s *WardenSuite) TearDownTest() {
	if s.warden != nil {
		s.warden.Close()
	}
}

func (s *WardenSuite) newWarden(store storage.Store, waitTimeout time.Duration) *Warden {
	logger := testutil.NopLogger()
	activeCache := cache.New(s.clock, time.Minute)
	locks := keylock.New()

	return New(
		sanction.NewManager(model.KindBan, store, activeCache, locks, s.clock, logger),
		sanction.NewManager(model.KindMute, store, activeCache, locks, s.clock, logger),
		sanction.NewManager(model.KindWarning, store, activeCache, locks, s.clock, logger),
		points.New(store, locks, logger),
		freeze.New(s.connections, s.clock, logger),
		history.New(store, s.clock, logger),
		async.NewPool(4, logger),
		s.clock,
		waitTimeout,
	)
}

func (s *WardenSuite) issueRequest(target model.PlayerID) sanction.IssueRequest {
	return sanction.IssueRequest{
		TargetID:     target,
		TargetName:   "Target",
		ExecutorID:   "mod-1",
		ExecutorName: "Mod",
		Reason:       "griefing",
	}
}

func (s *WardenSuite) TestPermanentBanRoundTrip() {
	p, err := s.warden.Ban(s.ctx, s.issueRequest("player-1")).Wait(s.ctx)
	s.Require().NoError(err)
	s.True(p.IsPermanent())

	active, err := s.warden.GetActiveBan(s.ctx, "player-1").Wait(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(p.ID, active.ID)

	s.Equal("true", s.warden.Lookup(s.ctx, KeyBanned, "player-1"))
	s.Equal("griefing", s.warden.Lookup(s.ctx, KeyBanReason, "player-1"))
	s.Equal(PermanentDisplay, s.warden.Lookup(s.ctx, KeyBanRemaining, "player-1"))
}

func (s *WardenSuite) TestUnbanResolvesFalseWithoutActiveBan() {
	ok, err := s.warden.Unban(s.ctx, "player-1", "mod-1", "Mod", "").Wait(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
}

func (s *WardenSuite) TestMuteExpiryThroughFacade() {
	req := s.issueRequest("player-1")
	second := time.Second
	req.Duration = &second

	_, err := s.warden.Mute(s.ctx, req).Wait(s.ctx)
	s.Require().NoError(err)

	s.clock.Advance(500 * time.Millisecond)
	s.Equal("true", s.warden.Lookup(s.ctx, KeyMuted, "player-1"))

	s.clock.Advance(time.Second)
	s.Equal("false", s.warden.Lookup(s.ctx, KeyMuted, "player-1"))
	s.Empty(s.warden.Lookup(s.ctx, KeyMuteReason, "player-1"))
}

func (s *WardenSuite) TestWarningCountLookup() {
	_, err := s.warden.Warn(s.ctx, s.issueRequest("player-1")).Wait(s.ctx)
	s.Require().NoError(err)
	_, err = s.warden.Warn(s.ctx, s.issueRequest("player-1")).Wait(s.ctx)
	s.Require().NoError(err)

	s.Equal("2", s.warden.Lookup(s.ctx, KeyWarningCount, "player-1"))
}

func (s *WardenSuite) TestPointsThroughFacade() {
	balance, err := s.warden.AddPoints(s.ctx, "player-1", 10).Wait(s.ctx)
	s.Require().NoError(err)
	s.Equal(10, balance)

	s.Equal("10", s.warden.Lookup(s.ctx, KeyPoints, "player-1"))

	_, err = s.warden.ResetPoints(s.ctx, "player-1").Wait(s.ctx)
	s.Require().NoError(err)
	s.Equal("0", s.warden.Lookup(s.ctx, KeyPoints, "player-1"))
}

func (s *WardenSuite) TestFreezeLifecycle() {
	_, err := s.warden.Freeze("player-1", "mod-1", "Mod", "checking inventory", false)
	s.Require().NoError(err)

	s.True(s.warden.IsFrozen("player-1"))
	s.Equal("true", s.warden.Lookup(s.ctx, KeyFrozen, "player-1"))
	s.Equal("checking inventory", s.warden.Lookup(s.ctx, KeyFreezeReason, "player-1"))

	s.warden.ClearOnDisconnect("player-1")
	s.False(s.warden.IsFrozen("player-1"))
	s.Equal("false", s.warden.Lookup(s.ctx, KeyFrozen, "player-1"))
}

func (s *WardenSuite) TestFreezeOfflineFails() {
	_, err := s.warden.Freeze("player-9", "mod-1", "Mod", "reason", false)
	s.ErrorIs(err, model.ErrPlayerOffline)
}

func (s *WardenSuite) TestStatsLookups() {
	_, err := s.warden.Ban(s.ctx, s.issueRequest("player-1")).Wait(s.ctx)
	s.Require().NoError(err)
	_, err = s.warden.Ban(s.ctx, s.issueRequest("player-2")).Wait(s.ctx)
	s.Require().NoError(err)

	ok, err := s.warden.Unban(s.ctx, "player-2", "mod-1", "Mod", "").Wait(s.ctx)
	s.Require().NoError(err)
	s.True(ok)

	s.Equal("2", s.warden.Lookup(s.ctx, KeyTotalBans, "player-1"))
	s.Equal("1", s.warden.Lookup(s.ctx, KeyActiveBans, "player-1"))
}

func (s *WardenSuite) TestHistoryThroughFacade() {
	_, err := s.warden.Ban(s.ctx, s.issueRequest("player-1")).Wait(s.ctx)
	s.Require().NoError(err)
	_, err = s.warden.Warn(s.ctx, s.issueRequest("player-1")).Wait(s.ctx)
	s.Require().NoError(err)

	records, err := s.warden.GetHistory(s.ctx, "player-1").Wait(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 2)

	s.Equal("2", s.warden.Lookup(s.ctx, KeyHistoryCount, "player-1"))
}

func (s *WardenSuite) TestUnknownLookupKeyRendersEmpty() {
	s.Empty(s.warden.Lookup(s.ctx, "no_such_key", "player-1"))
}

// slowStore delays reads until released, for exercising the bounded wait
type slowStore struct {
	storage.Store
	release chan struct{}
}

func (s *slowStore) GetPointBalance(ctx context.Context, playerID model.PlayerID) (int, error) {
	<-s.release
	return s.Store.GetPointBalance(ctx, playerID)
}

func (s *WardenSuite) TestLookupDegradesToEmptyOnTimeout() {
	slow := &slowStore{Store: memory.New(), release: make(chan struct{})}
	w := s.newWarden(slow, 20*time.Millisecond)

	s.Empty(w.Lookup(s.ctx, KeyPoints, "player-1"))

	// Release the store read so Close can drain the pool
	close(slow.release)
	w.Close()
}
