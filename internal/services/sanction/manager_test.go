package sanction

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamewarden/internal/cache"
	"github.com/mcoot/gamewarden/internal/dependencies/mocks"
	"github.com/mcoot/gamewarden/internal/keylock"
	"github.com/mcoot/gamewarden/internal/model"
	"github.com/mcoot/gamewarden/internal/storage"
	"github.com/mcoot/gamewarden/internal/storage/memory"
	"github.com/mcoot/gamewarden/internal/testutil"
)

type ManagerSuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	bans     *Manager
	mutes    *Manager
	warnings *Manager
	ctx      context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	activeCache := cache.New(s.clock, time.Minute)
	locks := keylock.New()
	logger := testutil.NopLogger()

	s.bans = NewManager(model.KindBan, s.storage, activeCache, locks, s.clock, logger)
	s.mutes = NewManager(model.KindMute, s.storage, activeCache, locks, s.clock, logger)
	s.warnings = NewManager(model.KindWarning, s.storage, activeCache, locks, s.clock, logger)
	s.ctx = context.Background()
}

func (s *ManagerSuite) issueRequest(target model.PlayerID) IssueRequest {
	return IssueRequest{
		TargetID:     target,
		TargetName:   "Target",
		ExecutorID:   "mod-1",
		ExecutorName: "Mod",
		Reason:       "griefing",
	}
}

// Issue tests

func (s *ManagerSuite) TestIssuePermanentBan() {
	p, err := s.bans.Issue(s.ctx, s.issueRequest("player-1"))
	s.Require().NoError(err)
	s.True(p.IsPermanent())
	s.True(p.Active)

	active, err := s.bans.GetActive(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(p.ID, active.ID)

	// Permanent bans never lapse
	s.clock.Advance(24 * 365 * time.Hour)
	active, err = s.bans.GetActive(s.ctx, "player-1")
	s.Require().NoError(err)
	s.NotNil(active)
}

func (s *ManagerSuite) TestIssueRejectsNonPositiveDuration() {
	req := s.issueRequest("player-1")
	zero := time.Duration(0)
	req.Duration = &zero
	_, err := s.bans.Issue(s.ctx, req)
	s.ErrorIs(err, model.ErrInvalidDuration)

	negative := -time.Second
	req.Duration = &negative
	_, err = s.bans.Issue(s.ctx, req)
	s.ErrorIs(err, model.ErrInvalidDuration)
}

func (s *ManagerSuite) TestIssueEnforcesExclusivity() {
	first, err := s.bans.Issue(s.ctx, s.issueRequest("player-1"))
	s.Require().NoError(err)

	_, err = s.bans.Issue(s.ctx, s.issueRequest("player-1"))
	s.ErrorIs(err, model.ErrAlreadySanctioned)

	// The first record is untouched
	got, err := s.storage.FindByID(s.ctx, first.ID)
	s.Require().NoError(err)
	s.True(got.Active)
}

func (s *ManagerSuite) TestIssueAllowedAfterExpiry() {
	req := s.issueRequest("player-1")
	minute := time.Minute
	req.Duration = &minute
	_, err := s.bans.Issue(s.ctx, req)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)

	// The earlier ban has lapsed, so a new one may be issued
	_, err = s.bans.Issue(s.ctx, s.issueRequest("player-1"))
	s.NoError(err)
}

func (s *ManagerSuite) TestIssueExclusivityByIP() {
	req := s.issueRequest("player-1")
	req.TargetIP = "203.0.113.7"
	_, err := s.bans.Issue(s.ctx, req)
	s.Require().NoError(err)

	// A different player from the same address is also blocked
	other := s.issueRequest("player-2")
	other.TargetIP = "203.0.113.7"
	_, err = s.bans.Issue(s.ctx, other)
	s.ErrorIs(err, model.ErrAlreadySanctioned)
}

func (s *ManagerSuite) TestBanAndMuteAreIndependent() {
	_, err := s.bans.Issue(s.ctx, s.issueRequest("player-1"))
	s.Require().NoError(err)

	_, err = s.mutes.Issue(s.ctx, s.issueRequest("player-1"))
	s.NoError(err)
}

func (s *ManagerSuite) TestWarningsAccumulate() {
	for range 3 {
		_, err := s.warnings.Issue(s.ctx, s.issueRequest("player-1"))
		s.Require().NoError(err)
	}

	records, err := s.warnings.ListAll(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Len(records, 3)
}

func (s *ManagerSuite) TestIssueBySystem() {
	req := s.issueRequest("player-1")
	req.System = true
	p, err := s.bans.Issue(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(SystemExecutorName, p.ExecutorName)
	s.Empty(p.ExecutorID)
}

func (s *ManagerSuite) TestConcurrentIssuesOnlyOneSucceeds() {
	var wg sync.WaitGroup
	errs := make([]error, 10)

	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.bans.Issue(s.ctx, s.issueRequest("player-1"))
			errs[i] = err
		}()
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			s.ErrorIs(err, model.ErrAlreadySanctioned)
			conflicted++
		}
	}
	s.Equal(1, succeeded)
	s.Equal(9, conflicted)
}

// Revoke tests

func (s *ManagerSuite) TestRevoke() {
	p, err := s.bans.Issue(s.ctx, s.issueRequest("player-1"))
	s.Require().NoError(err)

	ok, err := s.bans.Revoke(s.ctx, "player-1", "mod-2", "OtherMod", "appealed")
	s.Require().NoError(err)
	s.True(ok)

	active, err := s.bans.GetActive(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Nil(active)

	// The record survives in history with Active cleared
	got, err := s.storage.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.False(got.Active)
}

func (s *ManagerSuite) TestRevokeWithoutActiveSanctionIsNoop() {
	ok, err := s.bans.Revoke(s.ctx, "player-1", "mod-1", "Mod", "")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ManagerSuite) TestRevokeDoesNotTouchExpiredRecords() {
	req := s.issueRequest("player-1")
	minute := time.Minute
	req.Duration = &minute
	p, err := s.bans.Issue(s.ctx, req)
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Minute)

	ok, err := s.bans.Revoke(s.ctx, "player-1", "mod-1", "Mod", "")
	s.Require().NoError(err)
	s.False(ok)

	// Expired but never revoked: the stored flag stays set
	got, err := s.storage.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.True(got.Active)
}

// Query tests

func (s *ManagerSuite) TestGetActiveAbsentForUnknownTarget() {
	active, err := s.bans.GetActive(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Nil(active)
}

func (s *ManagerSuite) TestTimedMuteExpires() {
	req := s.issueRequest("player-1")
	second := time.Second
	req.Duration = &second
	p, err := s.mutes.Issue(s.ctx, req)
	s.Require().NoError(err)

	s.clock.Advance(500 * time.Millisecond)
	active, err := s.mutes.GetActive(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(500*time.Millisecond, active.RemainingTime(s.clock.Now()))
	s.True(p.IsActiveAndValid(s.clock.Now()))

	s.clock.Advance(time.Second)
	active, err = s.mutes.GetActive(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Nil(active)
	s.False(p.IsActiveAndValid(s.clock.Now()))
}

func (s *ManagerSuite) TestGetActiveForIP() {
	req := s.issueRequest("player-1")
	req.TargetIP = "203.0.113.7"
	_, err := s.bans.Issue(s.ctx, req)
	s.Require().NoError(err)

	active, err := s.bans.GetActiveForIP(s.ctx, "203.0.113.7")
	s.Require().NoError(err)
	s.NotNil(active)

	active, err = s.bans.GetActiveForIP(s.ctx, "")
	s.Require().NoError(err)
	s.Nil(active)
}

// countingStore wraps a Store to count active-record lookups
type countingStore struct {
	storage.Store
	finds atomic.Int32
}

func (c *countingStore) FindActiveByPlayer(ctx context.Context, kind model.Kind, playerID model.PlayerID) (*model.Punishment, error) {
	c.finds.Add(1)
	return c.Store.FindActiveByPlayer(ctx, kind, playerID)
}

func (s *ManagerSuite) TestIssueIsVisibleWithoutStoreRead() {
	counting := &countingStore{Store: s.storage}
	bans := NewManager(model.KindBan, counting, cache.New(s.clock, time.Minute), keylock.New(), s.clock, testutil.NopLogger())

	_, err := bans.Issue(s.ctx, s.issueRequest("player-1"))
	s.Require().NoError(err)
	findsAfterIssue := counting.finds.Load()

	// The write-through entry serves the read; storage sees no extra query
	active, err := bans.GetActive(s.ctx, "player-1")
	s.Require().NoError(err)
	s.NotNil(active)
	s.Equal(findsAfterIssue, counting.finds.Load())
}

func (s *ManagerSuite) TestCountActiveAppliesExpiry() {
	minute := time.Minute

	req := s.issueRequest("player-1")
	req.Duration = &minute
	_, err := s.warnings.Issue(s.ctx, req)
	s.Require().NoError(err)

	_, err = s.warnings.Issue(s.ctx, s.issueRequest("player-1"))
	s.Require().NoError(err)

	count, err := s.warnings.CountActive(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(2, count)

	s.clock.Advance(2 * time.Minute)

	count, err = s.warnings.CountActive(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(1, count)
}
