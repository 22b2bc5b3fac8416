package game

import (
	"github.com/google/uuid"
	"trivia-game-service/internal/domain"
)

// Phase is the state of a session's state machine.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhasePresenting   Phase = "presenting"
	PhaseBoard        Phase = "board"
	PhaseQuestionOpen Phase = "question_open"
	PhaseAnswered     Phase = "answered"
	PhaseTimedOut     Phase = "timed_out"
	PhaseFinished     Phase = "finished"
)

// Session is one running game. Both modes implement it; the controller never
// needs to know which one it holds except for board-only actions.
type Session interface {
	ID() string
	Mode() domain.Mode
	Phase() Phase
	// Start shows the first question (classic) or the board (jeopardy).
	Start() error
	// PresentNext advances to the next question (classic) or back to the board (jeopardy).
	PresentNext() error
	// SubmitAnswer resolves the open question. ok is false when the answer was ignored.
	SubmitAnswer(choice string) (outcome domain.Outcome, ok bool)
	// Timeout resolves the open question as unanswered. ok is false when nothing was open.
	Timeout() (outcome domain.Outcome, ok bool)
	IsFinished() bool
	Snapshot() domain.Results
	// Cleanup stops any running countdown. Safe to call repeatedly.
	Cleanup()
}

// BoardSession is implemented by sessions played on a board.
type BoardSession interface {
	Session
	SelectQuestion(col, row int) error
	Board() BoardView
}

// Options carries the collaborators a session needs. Zero fields get defaults.
type Options struct {
	ID        string
	Shuffler  *Shuffler
	Timer     Timer
	Presenter Presenter
}

func (o Options) withDefaults() Options {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Shuffler == nil {
		o.Shuffler = NewRandomShuffler()
	}
	if o.Timer == nil {
		o.Timer = NewClockTimer()
	}
	if o.Presenter == nil {
		o.Presenter = NopPresenter{}
	}
	return o
}

// New builds a session for mode from an already filtered pool.
func New(mode domain.Mode, pool []domain.Question, cfg domain.GameConfig, opts Options) (Session, error) {
	switch mode {
	case domain.ModeClassic:
		return NewClassic(pool, cfg, opts)
	case domain.ModeJeopardy:
		return NewJeopardy(pool, cfg, opts)
	}
	return nil, domain.ErrUnknownMode
}

// round tracks the question currently waiting for an answer and its countdown.
// Every presentation gets a new turn; callbacks carrying an older turn are stale.
type round struct {
	timer     Timer
	handle    Handle
	turn      uint64
	awaiting  bool
	remaining int
}

func (r *round) open(seconds int) uint64 {
	r.stop()
	r.turn++
	r.awaiting = true
	r.remaining = seconds
	return r.turn
}

func (r *round) live(turn uint64) bool {
	return r.awaiting && r.turn == turn
}

// close marks the question answered and cancels its countdown.
func (r *round) close() {
	r.awaiting = false
	r.stop()
}

func (r *round) stop() {
	if r.handle != 0 {
		r.timer.Stop(r.handle)
		r.handle = 0
	}
}

// scorecard accumulates the counters both modes report.
type scorecard struct {
	score     int
	correct   int
	incorrect int
}

func (s *scorecard) record(correct bool, points int) int {
	if !correct {
		s.incorrect++
		return 0
	}
	s.correct++
	s.score += points
	return points
}

func (s *scorecard) results(total int) domain.Results {
	return domain.Results{
		Score:            s.score,
		CorrectAnswers:   s.correct,
		IncorrectAnswers: s.incorrect,
		TotalQuestions:   total,
	}
}

func firstCategory(q domain.Question) string {
	if len(q.Categories) == 0 {
		return ""
	}
	return q.Categories[0]
}
