package app

import (
	"context"
	"errors"
	"log"

	"trivia-game-service/internal/domain"
	"trivia-game-service/internal/game"
)

// SessionRepository tracks the single active game per player (in-memory, Redis, etc).
type SessionRepository interface {
	// Put stores s as the player's game and returns the game it replaced, if any.
	Put(playerID string, s game.Session) (game.Session, bool)
	Get(playerID string) (game.Session, bool)
	Delete(playerID string) (game.Session, bool)
	// DeleteIf removes the player's game only while it is still s.
	DeleteIf(playerID string, s game.Session) bool
}

// QuestionRepository returns the full loaded question pool (from cache/backing store).
type QuestionRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// GameService is the controller between play surfaces and game sessions.
type GameService struct {
	sessions  SessionRepository
	questions QuestionRepository
	catalog   []string
	newTimer  func() game.Timer
	newSeed   func() int64
}

// Option customizes a GameService.
type Option func(*GameService)

// WithTimerFactory replaces the wall-clock countdown used by new sessions.
func WithTimerFactory(f func() game.Timer) Option {
	return func(s *GameService) { s.newTimer = f }
}

// WithSeedSource makes session randomness reproducible.
func WithSeedSource(f func() int64) Option {
	return func(s *GameService) { s.newSeed = f }
}

// WithCatalog fixes the order categories are listed in.
func WithCatalog(names []string) Option {
	return func(s *GameService) { s.catalog = names }
}

func NewGameService(sessions SessionRepository, questions QuestionRepository, opts ...Option) *GameService {
	s := &GameService{
		sessions:  sessions,
		questions: questions,
		newTimer:  func() game.Timer { return game.NewClockTimer() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categories lists the categories that have at least one loaded question, in
// catalog order when a catalog is configured.
func (s *GameService) Categories(ctx context.Context) ([]string, error) {
	all, err := s.questions.Questions(ctx)
	if err != nil {
		return nil, err
	}
	present := game.Categories(all)
	if len(s.catalog) == 0 {
		return present, nil
	}

	have := make(map[string]struct{}, len(present))
	for _, name := range present {
		have[name] = struct{}{}
	}
	out := make([]string, 0, len(present))
	listed := make(map[string]struct{}, len(s.catalog))
	for _, name := range s.catalog {
		if _, ok := have[name]; ok {
			out = append(out, name)
			listed[name] = struct{}{}
		}
	}
	for _, name := range present {
		if _, ok := listed[name]; !ok {
			out = append(out, name)
		}
	}
	return out, nil
}

// Start validates cfg, builds a session for mode and shows its first screen.
// Any game the player already had is torn down first.
func (s *GameService) Start(ctx context.Context, playerID string, mode domain.Mode, cfg domain.GameConfig, presenter game.Presenter) (game.Session, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	all, err := s.questions.Questions(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := game.FilterPool(all, cfg.Categories)
	if err != nil {
		return nil, err
	}

	opts := game.Options{Timer: s.newTimer(), Presenter: presenter}
	if s.newSeed != nil {
		opts.Shuffler = game.NewShuffler(s.newSeed())
	}
	session, err := game.New(mode, pool, cfg, opts)
	if err != nil {
		return nil, err
	}

	if previous, ok := s.sessions.Put(playerID, session); ok {
		previous.Cleanup()
	}
	if err := session.Start(); err != nil {
		return nil, err
	}
	log.Printf("player %s started %s game %s (%d questions in pool)", playerID, mode, session.ID(), len(pool))
	return session, nil
}

// Answer submits choice for the player's open question. ok is false when the
// answer arrived too late or twice.
func (s *GameService) Answer(_ context.Context, playerID, choice string) (domain.Outcome, bool, error) {
	session, err := s.session(playerID)
	if err != nil {
		return domain.Outcome{}, false, err
	}
	outcome, ok := session.SubmitAnswer(choice)
	return outcome, ok, nil
}

// Timeout forces the open question to time out.
func (s *GameService) Timeout(_ context.Context, playerID string) (domain.Outcome, bool, error) {
	session, err := s.session(playerID)
	if err != nil {
		return domain.Outcome{}, false, err
	}
	outcome, ok := session.Timeout()
	return outcome, ok, nil
}

// Next advances a classic game or returns a jeopardy game to its board.
func (s *GameService) Next(_ context.Context, playerID string) error {
	session, err := s.session(playerID)
	if err != nil {
		return err
	}
	if err := session.PresentNext(); err != nil {
		return err
	}
	if session.IsFinished() {
		res := session.Snapshot()
		log.Printf("player %s finished game %s: score=%d correct=%d/%d", playerID, session.ID(), res.Score, res.CorrectAnswers, res.TotalQuestions)
	}
	return nil
}

// SelectCell opens a jeopardy cell.
func (s *GameService) SelectCell(_ context.Context, playerID string, col, row int) error {
	session, err := s.session(playerID)
	if err != nil {
		return err
	}
	board, ok := session.(game.BoardSession)
	if !ok {
		return domain.ErrWrongMode
	}
	return board.SelectQuestion(col, row)
}

// Results returns the current counters of the player's game.
func (s *GameService) Results(_ context.Context, playerID string) (domain.Results, error) {
	session, err := s.session(playerID)
	if err != nil {
		return domain.Results{}, err
	}
	return session.Snapshot(), nil
}

// Quit tears down the player's game. Calling it without a game is a no-op.
func (s *GameService) Quit(_ context.Context, playerID string) {
	session, ok := s.sessions.Delete(playerID)
	if !ok {
		return
	}
	session.Cleanup()
}

// QuitSession tears down session only if it is still the player's current
// game. A connection that started an older game cannot end a newer one.
func (s *GameService) QuitSession(_ context.Context, playerID string, session game.Session) {
	if session == nil {
		return
	}
	if s.sessions.DeleteIf(playerID, session) {
		log.Printf("player %s left game %s", playerID, session.ID())
	}
	session.Cleanup()
}

func (s *GameService) session(playerID string) (game.Session, error) {
	session, ok := s.sessions.Get(playerID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// UserFacing reports whether err is a validation or flow error the player
// should see as a notification rather than a server failure.
func UserFacing(err error) bool {
	for _, target := range []error{
		domain.ErrEmptyPool,
		domain.ErrNoCategories,
		domain.ErrNotEnoughCategories,
		domain.ErrInvalidQuestionCount,
		domain.ErrInvalidTimePerQuestion,
		domain.ErrUnknownMode,
		domain.ErrSessionNotFound,
		domain.ErrSessionFinished,
		domain.ErrQuestionPending,
		domain.ErrNoQuestionOpen,
		domain.ErrCellOutOfRange,
		domain.ErrCellCompleted,
		domain.ErrWrongMode,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
