package game

import "trivia-game-service/internal/domain"

// QuestionView is what a surface needs to show a question. It never carries
// the correct answer.
type QuestionView struct {
	Mode       domain.Mode       `json:"mode"`
	Category   string            `json:"category"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Label      string            `json:"label"`
	Prompt     string            `json:"prompt"`
	Choices    []string          `json:"choices"`
	TimeLimit  int               `json:"timeLimit"`
	Points     int               `json:"points"`
	Position   int               `json:"position"`
	Total      int               `json:"total"`
	Score      int               `json:"score"`
	Column     int               `json:"column"`
	Row        int               `json:"row"`
}

// CellView is one board slot as shown to the player.
type CellView struct {
	Points    int  `json:"points"`
	Completed bool `json:"completed"`
}

// ColumnView is one category column of the board.
type ColumnView struct {
	Category string     `json:"category"`
	Cells    []CellView `json:"cells"`
}

// BoardView is the jeopardy board with progress.
type BoardView struct {
	Columns   []ColumnView `json:"columns"`
	Completed int          `json:"completed"`
	Total     int          `json:"total"`
	Score     int          `json:"score"`
}

// Presenter receives rendering hooks from a session. Hooks are called while the
// session holds its lock, so implementations must not call back into the session.
type Presenter interface {
	PresentQuestion(q QuestionView)
	PresentBoard(b BoardView)
	ShowAnswerOutcome(o domain.Outcome)
	UpdateTimer(remaining int)
	ReportResults(r domain.Results)
}

// NopPresenter discards every hook.
type NopPresenter struct{}

func (NopPresenter) PresentQuestion(QuestionView) {}
func (NopPresenter) PresentBoard(BoardView) {}
func (NopPresenter) ShowAnswerOutcome(domain.Outcome) {}
func (NopPresenter) UpdateTimer(int) {}
func (NopPresenter) ReportResults(domain.Results) {}
