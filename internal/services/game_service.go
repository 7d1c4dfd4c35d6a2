package services

import (
	"context"
	"time"

	"github.com/vytor/emojiabc/internal/catalog"
	"github.com/vytor/emojiabc/internal/errors"
	"github.com/vytor/emojiabc/internal/game"
	"github.com/vytor/emojiabc/internal/history"
	"github.com/vytor/emojiabc/internal/logger"
	"github.com/vytor/emojiabc/internal/models"
	"github.com/vytor/emojiabc/internal/repository"
	"github.com/vytor/emojiabc/internal/stats"
)

// GameService runs the letter game for individual sessions.
type GameService interface {
	ResetSession(ctx context.Context, sessionID string) error
	NextLetter(ctx context.Context, sessionID string) (*models.LetterResult, error)
	UpdateTimeTaken(ctx context.Context, sessionID string, update models.TimeTakenUpdate) error
	UpdateHistory(ctx context.Context, sessionID string, update models.TimeTakenUpdate) error
	ReportError(ctx context.Context, sessionID string, letter string) error
	GetHistory(ctx context.Context, sessionID string) ([]models.HistoryRecord, error)
	GetStatistics(ctx context.Context, sessionID string) (*models.Statistics, error)
	ClearHistory(ctx context.Context, sessionID string) error
	PruneIdleSessions(ctx context.Context, ttl time.Duration) (int64, error)
}

type GameOptions struct {
	Policy  history.Policy
	Formula stats.Formula
	// Random defaults to catalog.DefaultSource.
	Random catalog.Source
	// Now defaults to time.Now.
	Now func() time.Time
}

type gameService struct {
	sessionRepo repository.SessionRepository
	catalog     *catalog.Catalog
	policy      history.Policy
	formula     stats.Formula
	random      catalog.Source
	now         func() time.Time
	locks       *sessionLocks
}

// NewGameService creates a new GameService
func NewGameService(sessionRepo repository.SessionRepository, cat *catalog.Catalog, opts GameOptions) GameService {
	if opts.Random == nil {
		opts.Random = catalog.DefaultSource
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &gameService{
		sessionRepo: sessionRepo,
		catalog:     cat,
		policy:      opts.Policy,
		formula:     opts.Formula,
		random:      opts.Random,
		now:         opts.Now,
		locks:       newSessionLocks(),
	}
}

func (s *gameService) ResetSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)
	log.Debug("resetting session")

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.sessionRepo.Save(ctx, sessionID, models.SessionState{History: []models.HistoryRecord{}}); err != nil {
		log.Error("failed to reset session: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *gameService) NextLetter(ctx context.Context, sessionID string) (*models.LetterResult, error) {
	var result models.LetterResult
	err := s.mutate(ctx, sessionID, func(state *models.SessionState, h *history.Store) {
		letter := game.PickNext(s.random, state.CurrentLetter)
		result = game.BuildResult(s.catalog, s.random, letter, s.now())
		h.StartRound(result.Letter, result.Emoji, result.EmojiName)
		state.CurrentLetter = letter
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("picked letter %s (%s)", result.Letter, result.EmojiName)
	return &result, nil
}

func (s *gameService) UpdateTimeTaken(ctx context.Context, sessionID string, update models.TimeTakenUpdate) error {
	logger.FromContext(ctx).Debug("recording time taken: letter=%q", update.Letter)
	return s.mutate(ctx, sessionID, func(_ *models.SessionState, h *history.Store) {
		if t := clampTime(update.TimeTaken); t != nil {
			h.RecordTimeTaken(update.Letter, *t)
		}
	})
}

func (s *gameService) UpdateHistory(ctx context.Context, sessionID string, update models.TimeTakenUpdate) error {
	logger.FromContext(ctx).Debug("updating history: letter=%q, policy=%s", update.Letter, s.policy)
	return s.mutate(ctx, sessionID, func(_ *models.SessionState, h *history.Store) {
		h.Upsert(update.Letter, update.Emoji, update.EmojiName, clampTime(update.TimeTaken))
	})
}

func (s *gameService) ReportError(ctx context.Context, sessionID string, letter string) error {
	logger.FromContext(ctx).Debug("recording error: letter=%q", letter)
	return s.mutate(ctx, sessionID, func(_ *models.SessionState, h *history.Store) {
		h.RecordError(letter)
	})
}

func (s *gameService) GetHistory(ctx context.Context, sessionID string) ([]models.HistoryRecord, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.historyStore(state).Read(true), nil
}

func (s *gameService) GetStatistics(ctx context.Context, sessionID string) (*models.Statistics, error) {
	state, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st := stats.Compute(state.History, s.formula)
	return &st, nil
}

func (s *gameService) ClearHistory(ctx context.Context, sessionID string) error {
	logger.FromContext(ctx).Debug("clearing history")
	return s.mutate(ctx, sessionID, func(_ *models.SessionState, h *history.Store) {
		h.Clear()
	})
}

func (s *gameService) PruneIdleSessions(ctx context.Context, ttl time.Duration) (int64, error) {
	log := logger.FromContext(ctx)
	cutoff := s.now().Add(-ttl)

	removed, err := s.sessionRepo.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		log.Error("failed to prune idle sessions: %v", err)
		return 0, errors.NewInternalError(err)
	}
	if removed > 0 {
		log.Info("pruned %d idle sessions", removed)
	}
	return removed, nil
}

// mutate loads the session, applies fn, and saves the result while holding
// the session's lock.
func (s *gameService) mutate(ctx context.Context, sessionID string, fn func(*models.SessionState, *history.Store)) error {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	state, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}
	fn(state, s.historyStore(state))

	if err := s.sessionRepo.Save(ctx, sessionID, *state); err != nil {
		logger.FromContext(ctx).Error("failed to save session: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// load returns the stored state, or a fresh empty one for unknown sessions.
func (s *gameService) load(ctx context.Context, sessionID string) (*models.SessionState, error) {
	state, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if state == nil {
		state = &models.SessionState{History: []models.HistoryRecord{}}
	}
	return state, nil
}

func (s *gameService) historyStore(state *models.SessionState) *history.Store {
	return history.New(state, history.WithPolicy(s.policy), history.WithClock(s.now))
}

// clampTime treats negative durations from the client as zero.
func clampTime(t *float64) *float64 {
	if t == nil || *t >= 0 {
		return t
	}
	zero := 0.0
	return &zero
}
