package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamewarden/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	storage, err := Open(filepath.Join(s.T().TempDir(), "warden.db"))
	s.Require().NoError(err)

	s.storage = storage
	s.ctx = context.Background()
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) newPunishment(kind model.Kind, target model.PlayerID) *model.Punishment {
	return &model.Punishment{
		Kind:         kind,
		TargetID:     target,
		TargetName:   "Target",
		ExecutorID:   "mod-1",
		ExecutorName: "Mod",
		Reason:       "cheating",
		CreatedAt:    s.now,
		Active:       true,
	}
}

func (s *StorageSuite) TestOpenRequiresPath() {
	_, err := Open("  ")
	s.Error(err)
}

func (s *StorageSuite) TestCreateAndFindByID() {
	hour := time.Hour
	p := s.newPunishment(model.KindMute, "player-1")
	p.Duration = &hour
	p.Silent = true

	id, err := s.storage.CreatePunishment(s.ctx, p)
	s.Require().NoError(err)

	got, err := s.storage.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(id, got.ID)
	s.Equal(model.KindMute, got.Kind)
	s.Equal("cheating", got.Reason)
	s.Require().NotNil(got.Duration)
	s.Equal(time.Hour, *got.Duration)
	s.True(got.Silent)
	s.True(got.CreatedAt.Equal(s.now))
}

func (s *StorageSuite) TestPermanentRoundTrip() {
	id, err := s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindBan, "player-1"))
	s.Require().NoError(err)

	got, err := s.storage.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Nil(got.Duration)
	s.True(got.IsPermanent())
}

func (s *StorageSuite) TestFindByIDNotFound() {
	_, err := s.storage.FindByID(s.ctx, 42)
	s.ErrorIs(err, model.ErrPunishmentNotFound)
}

func (s *StorageSuite) TestFindActiveByPlayer() {
	_, err := s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindBan, "player-1"))
	s.Require().NoError(err)

	p, err := s.storage.FindActiveByPlayer(s.ctx, model.KindBan, "player-1")
	s.Require().NoError(err)
	s.Require().NotNil(p)

	p, err = s.storage.FindActiveByPlayer(s.ctx, model.KindBan, "player-2")
	s.Require().NoError(err)
	s.Nil(p)
}

func (s *StorageSuite) TestRevoke() {
	id, err := s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindBan, "player-1"))
	s.Require().NoError(err)

	s.Require().NoError(s.storage.UpdatePunishmentActive(s.ctx, id, false))

	p, err := s.storage.FindActiveByPlayer(s.ctx, model.KindBan, "player-1")
	s.Require().NoError(err)
	s.Nil(p)

	got, err := s.storage.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.False(got.Active)
}

func (s *StorageSuite) TestUpdateActiveNotFound() {
	err := s.storage.UpdatePunishmentActive(s.ctx, 99, false)
	s.ErrorIs(err, model.ErrPunishmentNotFound)
}

func (s *StorageSuite) TestFindActiveByIP() {
	ban := s.newPunishment(model.KindBan, "player-1")
	ban.TargetIP = "203.0.113.7"
	_, err := s.storage.CreatePunishment(s.ctx, ban)
	s.Require().NoError(err)

	p, err := s.storage.FindActiveByIP(s.ctx, model.KindBan, "203.0.113.7")
	s.Require().NoError(err)
	s.Require().NotNil(p)

	p, err = s.storage.FindActiveByIP(s.ctx, model.KindBan, "")
	s.Require().NoError(err)
	s.Nil(p)
}

func (s *StorageSuite) TestListByPlayerNewestFirst() {
	id1, _ := s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindBan, "player-1"))
	id2, _ := s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindWarning, "player-1"))
	_, _ = s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindBan, "player-2"))

	records, err := s.storage.ListByPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(id2, records[0].ID)
	s.Equal(id1, records[1].ID)

	count, err := s.storage.CountByPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *StorageSuite) TestPointBalance() {
	balance, err := s.storage.GetPointBalance(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(0, balance)

	s.Require().NoError(s.storage.SetPointBalance(s.ctx, "player-1", 10))
	s.Require().NoError(s.storage.SetPointBalance(s.ctx, "player-1", 30))

	balance, err = s.storage.GetPointBalance(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(30, balance)
}

func (s *StorageSuite) TestComputeStats() {
	hour := time.Hour

	_, _ = s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindBan, "player-1"))
	timed := s.newPunishment(model.KindBan, "player-2")
	timed.Duration = &hour
	_, _ = s.storage.CreatePunishment(s.ctx, timed)
	revokedID, _ := s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindBan, "player-3"))
	s.Require().NoError(s.storage.UpdatePunishmentActive(s.ctx, revokedID, false))

	_, _ = s.storage.CreatePunishment(s.ctx, s.newPunishment(model.KindMute, "player-4"))

	stats, err := s.storage.ComputeStats(s.ctx, s.now.Add(time.Minute))
	s.Require().NoError(err)
	s.Equal(3, stats.TotalBans)
	s.Equal(2, stats.ActiveBans)
	s.Equal(1, stats.TotalMutes)
	s.Equal(1, stats.ActiveMutes)

	stats, err = s.storage.ComputeStats(s.ctx, s.now.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Equal(1, stats.ActiveBans)
}
