package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/emojiabc/internal/history"
	"github.com/vytor/emojiabc/internal/models"
	"github.com/vytor/emojiabc/internal/repository"
	"github.com/vytor/emojiabc/internal/repository/sqlite"
	"github.com/vytor/emojiabc/internal/testutil"
)

type SessionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SessionRepository
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T()).DB
	s.repo = sqlite.NewSessionRepository(s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) TestGet_Unknown() {
	state, err := s.repo.Get(context.Background(), "missing")
	s.Require().NoError(err)
	s.Assert().Nil(state)
}

func (s *SessionRepositorySuite) TestSaveAndGet() {
	ctx := context.Background()
	state := models.SessionState{
		CurrentLetter: "C",
		History: []models.HistoryRecord{
			{Letter: "A", Emoji: "🍎", EmojiName: "Apple", Timestamp: 100, TimeTaken: testutil.Float(1.25)},
			{Letter: "Z", Timestamp: 101, Error: 1},
			{Letter: "C", Emoji: "🐱", EmojiName: "Cat", Timestamp: 102},
		},
	}

	s.Require().NoError(s.repo.Save(ctx, "s1", state))

	got, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(state, *got)
}

func (s *SessionRepositorySuite) TestSave_ReplacesHistory() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, "s1", models.SessionState{
		CurrentLetter: "A",
		History:       []models.HistoryRecord{{Letter: "A"}, {Letter: "B"}},
	}))
	s.Require().NoError(s.repo.Save(ctx, "s1", models.SessionState{
		CurrentLetter: "D",
		History:       []models.HistoryRecord{{Letter: "D", Error: 2}},
	}))

	got, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Equal("D", got.CurrentLetter)
	s.Require().Len(got.History, 1)
	s.Assert().Equal(2, got.History[0].Error)
}

func (s *SessionRepositorySuite) TestSave_EmptyHistory() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, "s1", models.SessionState{}))

	got, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("", got.CurrentLetter)
	s.Assert().NotNil(got.History)
	s.Assert().Empty(got.History)
}

func (s *SessionRepositorySuite) TestSave_FullHistoryPreservesOrder() {
	ctx := context.Background()
	state := models.SessionState{}
	store := history.New(&state)
	for i := 0; i < history.Cap+5; i++ {
		store.StartRound(string(rune('A'+i%26)), "x", "y")
	}

	s.Require().NoError(s.repo.Save(ctx, "s1", state))

	got, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Require().Len(got.History, history.Cap)
	for i := range got.History {
		s.Assert().Equal(state.History[i].Letter, got.History[i].Letter)
	}
}

func (s *SessionRepositorySuite) TestSessionsAreIsolated() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, "s1", models.SessionState{History: []models.HistoryRecord{{Letter: "A"}}}))
	s.Require().NoError(s.repo.Save(ctx, "s2", models.SessionState{History: []models.HistoryRecord{{Letter: "B"}, {Letter: "C"}}}))

	one, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	two, err := s.repo.Get(ctx, "s2")
	s.Require().NoError(err)

	s.Assert().Len(one.History, 1)
	s.Assert().Len(two.History, 2)
}

func (s *SessionRepositorySuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, "s1", models.SessionState{History: []models.HistoryRecord{{Letter: "A"}}}))

	s.Require().NoError(s.repo.Delete(ctx, "s1"))

	got, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Nil(got)

	var orphans int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history_records`).Scan(&orphans))
	s.Assert().Zero(orphans)
}

func (s *SessionRepositorySuite) TestDeleteIdleSince() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, "s1", models.SessionState{History: []models.HistoryRecord{{Letter: "A"}}}))

	removed, err := s.repo.DeleteIdleSince(ctx, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	s.Assert().Zero(removed)

	removed, err = s.repo.DeleteIdleSince(ctx, time.Now().Add(time.Hour))
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), removed)

	got, err := s.repo.Get(ctx, "s1")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
