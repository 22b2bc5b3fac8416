package game

import (
	"sync"

	"trivia-game-service/internal/domain"
)

// Classic plays a fixed sequence of randomly drawn questions, one at a time.
//
// Idle -> Presenting -> (Answered | TimedOut) -> Presenting | Finished
type Classic struct {
	id        string
	cfg       domain.GameConfig
	questions []domain.Question
	shuffler  *Shuffler
	presenter Presenter

	mu       sync.Mutex
	phase    Phase
	index    int
	card     scorecard
	round    round
	reported bool
	closed   bool
}

// NewClassic draws min(cfg.QuestionCount, len(pool)) questions from pool.
func NewClassic(pool []domain.Question, cfg domain.GameConfig, opts Options) (*Classic, error) {
	if len(pool) == 0 {
		return nil, domain.ErrEmptyPool
	}
	if cfg.QuestionCount <= 0 {
		return nil, domain.ErrInvalidQuestionCount
	}
	if cfg.TimePerQuestion <= 0 {
		return nil, domain.ErrInvalidTimePerQuestion
	}
	opts = opts.withDefaults()

	return &Classic{
		id:        opts.ID,
		cfg:       cfg,
		questions: opts.Shuffler.Sample(pool, cfg.QuestionCount),
		shuffler:  opts.Shuffler,
		presenter: opts.Presenter,
		phase:     PhaseIdle,
		round:     round{timer: opts.Timer},
	}, nil
}

func (c *Classic) ID() string { return c.id }
func (c *Classic) Mode() domain.Mode { return domain.ModeClassic }

func (c *Classic) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Len is the number of questions in this game.
func (c *Classic) Len() int { return len(c.questions) }

// Index is the position of the current question.
func (c *Classic) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Questions returns the drawn sequence.
func (c *Classic) Questions() []domain.Question {
	out := make([]domain.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Current returns the question at the current index.
func (c *Classic) Current() (domain.Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index >= len(c.questions) {
		return domain.Question{}, false
	}
	return c.questions[c.index], true
}

func (c *Classic) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.phase == PhaseFinished {
		return domain.ErrSessionFinished
	}
	if c.phase != PhaseIdle {
		return nil
	}
	c.presentLocked()
	return nil
}

func (c *Classic) PresentNext() error {
	return c.Advance()
}

// Advance moves past a resolved question, finishing the game after the last one.
func (c *Classic) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.phase == PhaseFinished {
		return domain.ErrSessionFinished
	}
	switch c.phase {
	case PhaseIdle:
		c.presentLocked()
		return nil
	case PhasePresenting:
		return domain.ErrQuestionPending
	}

	c.index++
	if c.index < len(c.questions) {
		c.presentLocked()
		return nil
	}
	c.finishLocked()
	return nil
}

func (c *Classic) SubmitAnswer(choice string) (domain.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.phase != PhasePresenting || !c.round.awaiting {
		return domain.Outcome{}, false
	}
	c.round.close()

	q := c.questions[c.index]
	correct := choice == q.CorrectAnswer
	awarded := c.card.record(correct, q.Level().Points())
	c.phase = PhaseAnswered

	outcome := c.outcomeLocked(q, correct, awarded)
	outcome.Choice = choice
	c.presenter.ShowAnswerOutcome(outcome)
	return outcome, true
}

func (c *Classic) Timeout() (domain.Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.phase != PhasePresenting || !c.round.awaiting {
		return domain.Outcome{}, false
	}
	return c.timeoutLocked(), true
}

func (c *Classic) IsFinished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == PhaseFinished
}

func (c *Classic) Snapshot() domain.Results {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.card.results(len(c.questions))
}

func (c *Classic) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.round.close()
	c.closed = true
}

func (c *Classic) presentLocked() {
	q := c.questions[c.index]
	c.phase = PhasePresenting
	turn := c.round.open(c.cfg.TimePerQuestion)

	c.presenter.PresentQuestion(QuestionView{
		Mode:       domain.ModeClassic,
		Category:   firstCategory(q),
		Difficulty: q.Level(),
		Label:      q.Difficulty,
		Prompt:     q.Prompt,
		Choices:    c.shuffler.Choices(q),
		TimeLimit:  c.cfg.TimePerQuestion,
		Points:     q.Level().Points(),
		Position:   c.index + 1,
		Total:      len(c.questions),
		Score:      c.card.score,
	})
	c.presenter.UpdateTimer(c.round.remaining)

	c.round.handle = c.round.timer.Start(c.cfg.TimePerQuestion,
		func(remaining int) { c.tick(turn, remaining) },
		func() { c.expire(turn) },
	)
}

func (c *Classic) tick(turn uint64, remaining int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.round.live(turn) {
		return
	}
	c.round.remaining = remaining
	c.presenter.UpdateTimer(remaining)
}

func (c *Classic) expire(turn uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.round.live(turn) {
		return
	}
	c.timeoutLocked()
}

func (c *Classic) timeoutLocked() domain.Outcome {
	c.round.close()
	q := c.questions[c.index]
	c.card.record(false, 0)
	c.phase = PhaseTimedOut

	outcome := c.outcomeLocked(q, false, 0)
	outcome.TimedOut = true
	c.presenter.ShowAnswerOutcome(outcome)
	return outcome
}

func (c *Classic) outcomeLocked(q domain.Question, correct bool, awarded int) domain.Outcome {
	return domain.Outcome{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Awarded:       awarded,
		Score:         c.card.score,
		Last:          c.index == len(c.questions)-1,
	}
}

func (c *Classic) finishLocked() {
	c.round.close()
	c.phase = PhaseFinished
	if c.reported {
		return
	}
	c.reported = true
	c.presenter.ReportResults(c.card.results(len(c.questions)))
}
