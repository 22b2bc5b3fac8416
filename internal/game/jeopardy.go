package game

import (
	"sync"

	"trivia-game-service/internal/domain"
)

// CellState tags whether a board cell has been played.
type CellState int

const (
	CellPending CellState = iota
	CellCompleted
)

// Cell is one board slot: a tier and the question assigned to it.
type Cell struct {
	Question domain.Question
	Tier     domain.Tier
	state    CellState
}

func (c *Cell) Points() int { return c.Tier.Points }
func (c *Cell) State() CellState { return c.state }
func (c *Cell) Completed() bool { return c.state == CellCompleted }

// Column is one category with a cell per tier, hardest first.
type Column struct {
	Category string
	Cells    []*Cell
}

type categoryQuestions struct {
	name      string
	questions []domain.Question
}

type cellRef struct {
	col, row int
}

// Jeopardy plays a category x tier board until every cell is completed.
//
// Board -> QuestionOpen -> (Answered | TimedOut) -> Board | Finished
type Jeopardy struct {
	id        string
	cfg       domain.GameConfig
	shuffler  *Shuffler
	presenter Presenter
	board     []Column
	total     int

	mu        sync.Mutex
	phase     Phase
	started   bool
	current   *cellRef
	completed int
	card      scorecard
	round     round
	reported  bool
	closed    bool
}

// NewJeopardy selects up to MaxJeopardyCategories categories from cfg, in
// configured order, and assigns one question per tier to each.
func NewJeopardy(pool []domain.Question, cfg domain.GameConfig, opts Options) (*Jeopardy, error) {
	if cfg.TimePerQuestion <= 0 {
		return nil, domain.ErrInvalidTimePerQuestion
	}
	categories := selectCategories(pool, cfg.Categories)
	if len(categories) == 0 {
		return nil, domain.ErrEmptyPool
	}
	opts = opts.withDefaults()

	board := buildBoard(categories, opts.Shuffler)
	return &Jeopardy{
		id:        opts.ID,
		cfg:       cfg,
		shuffler:  opts.Shuffler,
		presenter: opts.Presenter,
		board:     board,
		total:     len(board) * len(domain.BoardTiers),
		phase:     PhaseBoard,
		round:     round{timer: opts.Timer},
	}, nil
}

// selectCategories keeps configured categories that have at least one
// question. The cap truncates by configured order, not at random.
func selectCategories(pool []domain.Question, configured []string) []categoryQuestions {
	seen := make(map[string]struct{}, len(configured))
	var out []categoryQuestions
	for _, name := range configured {
		if len(out) == domain.MaxJeopardyCategories {
			break
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		var qs []domain.Question
		for _, q := range pool {
			if q.HasCategory(name) {
				qs = append(qs, q)
			}
		}
		if len(qs) > 0 {
			out = append(out, categoryQuestions{name: name, questions: qs})
		}
	}
	return out
}

func buildBoard(categories []categoryQuestions, shuffler *Shuffler) []Column {
	board := make([]Column, 0, len(categories))
	for _, cat := range categories {
		col := Column{Category: cat.name, Cells: make([]*Cell, 0, len(domain.BoardTiers))}
		for _, tier := range domain.BoardTiers {
			col.Cells = append(col.Cells, &Cell{
				Question: assignQuestion(cat.questions, tier.Difficulty, shuffler),
				Tier:     tier,
				state:    CellPending,
			})
		}
		board = append(board, col)
	}
	return board
}

// assignQuestion picks a question of the wanted tier, or any question of the
// category when the tier has none. questions must not be empty.
func assignQuestion(questions []domain.Question, want domain.Difficulty, shuffler *Shuffler) domain.Question {
	var matching []domain.Question
	for _, q := range questions {
		if q.Level() == want {
			matching = append(matching, q)
		}
	}
	if len(matching) > 0 {
		return shuffler.Pick(matching)
	}
	return shuffler.Pick(questions)
}

func (j *Jeopardy) ID() string { return j.id }
func (j *Jeopardy) Mode() domain.Mode { return domain.ModeJeopardy }

func (j *Jeopardy) Phase() Phase {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.phase
}

// Columns returns the board. Cells must not be modified by callers.
func (j *Jeopardy) Columns() []Column {
	return j.board
}

// TotalCells is categories x tiers.
func (j *Jeopardy) TotalCells() int { return j.total }

// CompletedCells counts cells resolved so far.
func (j *Jeopardy) CompletedCells() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.completed
}

func (j *Jeopardy) Board() BoardView {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.boardViewLocked()
}

func (j *Jeopardy) Start() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed || j.phase == PhaseFinished {
		return domain.ErrSessionFinished
	}
	if j.started {
		return nil
	}
	j.started = true
	j.presenter.PresentBoard(j.boardViewLocked())
	return nil
}

func (j *Jeopardy) PresentNext() error {
	j.mu.Lock()
	started := j.started
	j.mu.Unlock()
	if !started {
		return j.Start()
	}
	return j.ReturnToBoard()
}

// SelectQuestion opens the cell at (col, row) and starts its countdown.
func (j *Jeopardy) SelectQuestion(col, row int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || j.phase == PhaseFinished {
		return domain.ErrSessionFinished
	}
	if j.phase != PhaseBoard {
		return domain.ErrQuestionPending
	}
	if col < 0 || col >= len(j.board) || row < 0 || row >= len(j.board[col].Cells) {
		return domain.ErrCellOutOfRange
	}
	cell := j.board[col].Cells[row]
	if cell.Completed() {
		return domain.ErrCellCompleted
	}

	j.started = true
	j.current = &cellRef{col: col, row: row}
	j.phase = PhaseQuestionOpen
	turn := j.round.open(j.cfg.TimePerQuestion)

	q := cell.Question
	j.presenter.PresentQuestion(QuestionView{
		Mode:       domain.ModeJeopardy,
		Category:   firstCategory(q),
		Difficulty: q.Level(),
		Label:      q.Difficulty,
		Prompt:     q.Prompt,
		Choices:    j.shuffler.Choices(q),
		TimeLimit:  j.cfg.TimePerQuestion,
		Points:     cell.Points(),
		Position:   j.completed,
		Total:      j.total,
		Score:      j.card.score,
		Column:     col,
		Row:        row,
	})
	j.presenter.UpdateTimer(j.round.remaining)

	j.round.handle = j.round.timer.Start(j.cfg.TimePerQuestion,
		func(remaining int) { j.tick(turn, remaining) },
		func() { j.expire(turn) },
	)
	return nil
}

func (j *Jeopardy) SubmitAnswer(choice string) (domain.Outcome, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed || j.phase != PhaseQuestionOpen || !j.round.awaiting {
		return domain.Outcome{}, false
	}
	j.round.close()

	cell := j.currentCellLocked()
	correct := choice == cell.Question.CorrectAnswer
	points := 0
	if correct {
		points = cell.Points()
	}
	awarded := j.card.record(correct, points)
	j.resolveCellLocked(cell)
	j.phase = PhaseAnswered

	outcome := j.outcomeLocked(cell, correct, awarded)
	outcome.Choice = choice
	j.presenter.ShowAnswerOutcome(outcome)
	return outcome, true
}

func (j *Jeopardy) Timeout() (domain.Outcome, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed || j.phase != PhaseQuestionOpen || !j.round.awaiting {
		return domain.Outcome{}, false
	}
	return j.timeoutLocked(), true
}

// ReturnToBoard closes the resolved question and shows the board, or reports
// results once every cell is completed.
func (j *Jeopardy) ReturnToBoard() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed || j.phase == PhaseFinished {
		return domain.ErrSessionFinished
	}
	switch j.phase {
	case PhaseBoard:
		return domain.ErrNoQuestionOpen
	case PhaseQuestionOpen:
		return domain.ErrQuestionPending
	}

	j.round.close()
	j.current = nil
	if j.completed == j.total {
		j.phase = PhaseFinished
		if !j.reported {
			j.reported = true
			j.presenter.ReportResults(j.card.results(j.total))
		}
		return nil
	}
	j.phase = PhaseBoard
	j.presenter.PresentBoard(j.boardViewLocked())
	return nil
}

func (j *Jeopardy) IsFinished() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.phase == PhaseFinished
}

func (j *Jeopardy) Snapshot() domain.Results {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.card.results(j.total)
}

func (j *Jeopardy) Cleanup() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.round.close()
	j.closed = true
}

func (j *Jeopardy) tick(turn uint64, remaining int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed || !j.round.live(turn) {
		return
	}
	j.round.remaining = remaining
	j.presenter.UpdateTimer(remaining)
}

func (j *Jeopardy) expire(turn uint64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed || !j.round.live(turn) {
		return
	}
	j.timeoutLocked()
}

func (j *Jeopardy) timeoutLocked() domain.Outcome {
	j.round.close()
	cell := j.currentCellLocked()
	j.card.record(false, 0)
	j.resolveCellLocked(cell)
	j.phase = PhaseTimedOut

	outcome := j.outcomeLocked(cell, false, 0)
	outcome.TimedOut = true
	j.presenter.ShowAnswerOutcome(outcome)
	return outcome
}

// resolveCellLocked is the only transition that completes a cell.
func (j *Jeopardy) resolveCellLocked(cell *Cell) {
	if cell.state == CellCompleted {
		return
	}
	cell.state = CellCompleted
	j.completed++
}

func (j *Jeopardy) currentCellLocked() *Cell {
	return j.board[j.current.col].Cells[j.current.row]
}

func (j *Jeopardy) outcomeLocked(cell *Cell, correct bool, awarded int) domain.Outcome {
	return domain.Outcome{
		Correct:       correct,
		CorrectAnswer: cell.Question.CorrectAnswer,
		Explanation:   cell.Question.Explanation,
		Awarded:       awarded,
		Score:         j.card.score,
		Last:          j.completed == j.total,
	}
}

func (j *Jeopardy) boardViewLocked() BoardView {
	columns := make([]ColumnView, 0, len(j.board))
	for _, col := range j.board {
		cells := make([]CellView, 0, len(col.Cells))
		for _, cell := range col.Cells {
			cells = append(cells, CellView{Points: cell.Points(), Completed: cell.Completed()})
		}
		columns = append(columns, ColumnView{Category: col.Category, Cells: cells})
	}
	return BoardView{
		Columns:   columns,
		Completed: j.completed,
		Total:     j.total,
		Score:     j.card.score,
	}
}
