package game

import (
	"errors"
	"testing"

	"trivia-game-service/internal/domain"
)

func newTestJeopardy(t *testing.T, pool []domain.Question, categories ...string) (*Jeopardy, *ManualTimer, *recorder) {
	t.Helper()
	timer := NewManualTimer()
	rec := &recorder{}
	j, err := NewJeopardy(pool, domain.GameConfig{
		Categories:      categories,
		TimePerQuestion: 25,
	}, Options{Shuffler: NewShuffler(11), Timer: timer, Presenter: rec})
	if err != nil {
		t.Fatalf("new jeopardy: %v", err)
	}
	return j, timer, rec
}

func TestJeopardyScenarioFullBoard(t *testing.T) {
	cats := []string{"A", "B", "C", "D"}
	j, timer, rec := newTestJeopardy(t, tieredPool(cats...), cats...)
	if err := j.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(rec.boards) != 1 || len(rec.boards[0].Columns) != 4 {
		t.Fatalf("expected initial board with 4 columns")
	}
	if j.TotalCells() != 12 {
		t.Fatalf("expected 12 cells, got %d", j.TotalCells())
	}

	played := 0
	for col := 0; col < 4; col++ {
		for row := 0; row < 3; row++ {
			if err := j.SelectQuestion(col, row); err != nil {
				t.Fatalf("select (%d,%d): %v", col, row, err)
			}
			if played%2 == 0 {
				cell := j.Columns()[col].Cells[row]
				if _, ok := j.SubmitAnswer(cell.Question.CorrectAnswer); !ok {
					t.Fatalf("answer ignored")
				}
			} else {
				timer.Expire()
			}
			played++
			if got := j.CompletedCells(); got != played {
				t.Fatalf("expected %d completed cells, got %d", played, got)
			}
			if rec.reportCount() != 0 {
				t.Fatalf("reported before returning to the board")
			}
			if err := j.ReturnToBoard(); err != nil {
				t.Fatalf("return to board: %v", err)
			}
		}
	}

	if !j.IsFinished() || rec.reportCount() != 1 {
		t.Fatalf("expected finished with one report, finished=%v reports=%d", j.IsFinished(), rec.reportCount())
	}
	res := rec.results[0]
	if res.TotalQuestions != 12 || res.CorrectAnswers+res.IncorrectAnswers != 12 {
		t.Fatalf("unexpected results %+v", res)
	}
	if res.CorrectAnswers != 6 || res.Score != 2*(300+200+100) {
		t.Fatalf("unexpected score %+v", res)
	}
	if err := j.ReturnToBoard(); !errors.Is(err, domain.ErrSessionFinished) {
		t.Fatalf("expected ErrSessionFinished, got %v", err)
	}
	if rec.reportCount() != 1 {
		t.Fatalf("reported twice")
	}
}

func TestJeopardyBoardTiers(t *testing.T) {
	cats := []string{"A", "B", "C", "D"}
	j, _, _ := newTestJeopardy(t, tieredPool(cats...), cats...)
	for _, col := range j.Columns() {
		if len(col.Cells) != 3 {
			t.Fatalf("expected 3 cells in %s", col.Category)
		}
		wantPoints := []int{300, 200, 100}
		wantLevel := []domain.Difficulty{domain.DifficultyHard, domain.DifficultyMedium, domain.DifficultyEasy}
		for row, cell := range col.Cells {
			if cell.Points() != wantPoints[row] {
				t.Fatalf("row %d: expected %d points, got %d", row, wantPoints[row], cell.Points())
			}
			if cell.Question.Level() != wantLevel[row] {
				t.Fatalf("row %d: expected %s question, got %s", row, wantLevel[row], cell.Question.Difficulty)
			}
			if !cell.Question.HasCategory(col.Category) {
				t.Fatalf("cell question not from %s", col.Category)
			}
			if cell.State() != CellPending {
				t.Fatalf("new cell should be pending")
			}
		}
	}
}

func TestJeopardyFallbackAssignment(t *testing.T) {
	pool := append(tieredPool("A", "B", "C"),
		question("Easy", "fácil", "e1"),
		question("Easy", "facil", "e2"),
	)
	j, _, _ := newTestJeopardy(t, pool, "Easy", "A", "B", "C")

	col := j.Columns()[0]
	if col.Category != "Easy" {
		t.Fatalf("expected Easy first, got %s", col.Category)
	}
	hard := col.Cells[0]
	if hard.Question.Prompt == "" || !hard.Question.HasCategory("Easy") {
		t.Fatalf("hard slot not populated by fallback: %+v", hard.Question)
	}

	if err := j.SelectQuestion(0, 0); err != nil {
		t.Fatalf("select: %v", err)
	}
	outcome, _ := j.SubmitAnswer(hard.Question.CorrectAnswer)
	if outcome.Awarded != 300 {
		t.Fatalf("cell points should win over question difficulty, got %d", outcome.Awarded)
	}
}

func TestJeopardyCategoryCapKeepsConfiguredOrder(t *testing.T) {
	cats := []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7", "C8"}
	configured := append([]string{"Missing"}, cats...)
	configured = append(configured, "C1")
	j, _, _ := newTestJeopardy(t, tieredPool(cats...), configured...)

	cols := j.Columns()
	if len(cols) != domain.MaxJeopardyCategories {
		t.Fatalf("expected %d columns, got %d", domain.MaxJeopardyCategories, len(cols))
	}
	for i, col := range cols {
		if col.Category != cats[i] {
			t.Fatalf("column %d: expected %s, got %s", i, cats[i], col.Category)
		}
	}
	if j.TotalCells() != 18 {
		t.Fatalf("expected 18 cells, got %d", j.TotalCells())
	}
}

func TestJeopardySelectQuestionGuards(t *testing.T) {
	cats := []string{"A", "B", "C", "D"}
	j, _, _ := newTestJeopardy(t, tieredPool(cats...), cats...)
	_ = j.Start()

	if err := j.SelectQuestion(4, 0); !errors.Is(err, domain.ErrCellOutOfRange) {
		t.Fatalf("expected ErrCellOutOfRange, got %v", err)
	}
	if err := j.SelectQuestion(0, 3); !errors.Is(err, domain.ErrCellOutOfRange) {
		t.Fatalf("expected ErrCellOutOfRange, got %v", err)
	}
	if err := j.ReturnToBoard(); !errors.Is(err, domain.ErrNoQuestionOpen) {
		t.Fatalf("expected ErrNoQuestionOpen, got %v", err)
	}

	if err := j.SelectQuestion(1, 1); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := j.SelectQuestion(2, 2); !errors.Is(err, domain.ErrQuestionPending) {
		t.Fatalf("expected ErrQuestionPending, got %v", err)
	}
	if err := j.ReturnToBoard(); !errors.Is(err, domain.ErrQuestionPending) {
		t.Fatalf("expected ErrQuestionPending on return, got %v", err)
	}

	j.SubmitAnswer("wrong")
	if err := j.ReturnToBoard(); err != nil {
		t.Fatalf("return: %v", err)
	}
	if err := j.SelectQuestion(1, 1); !errors.Is(err, domain.ErrCellCompleted) {
		t.Fatalf("expected ErrCellCompleted, got %v", err)
	}
}

func TestJeopardyCellCompletesOnce(t *testing.T) {
	cats := []string{"A", "B", "C", "D"}
	j, timer, rec := newTestJeopardy(t, tieredPool(cats...), cats...)
	_ = j.Start()
	_ = j.SelectQuestion(0, 2)
	cell := j.Columns()[0].Cells[2]

	if _, ok := j.SubmitAnswer(cell.Question.CorrectAnswer); !ok {
		t.Fatalf("answer ignored")
	}
	if _, ok := j.SubmitAnswer("other"); ok {
		t.Fatalf("second answer accepted")
	}
	if _, ok := j.Timeout(); ok {
		t.Fatalf("timeout after answer accepted")
	}
	timer.Expire()

	res := j.Snapshot()
	if j.CompletedCells() != 1 || res.Score != 100 || res.CorrectAnswers != 1 || res.IncorrectAnswers != 0 {
		t.Fatalf("unexpected state: completed=%d results=%+v", j.CompletedCells(), res)
	}
	if !cell.Completed() {
		t.Fatalf("cell should be completed")
	}

	_ = j.ReturnToBoard()
	board := rec.boards[len(rec.boards)-1]
	if !board.Columns[0].Cells[2].Completed || board.Completed != 1 || board.Total != 12 || board.Score != 100 {
		t.Fatalf("board not updated: %+v", board)
	}
}

func TestJeopardyCleanupStopsCountdown(t *testing.T) {
	cats := []string{"A", "B", "C", "D"}
	j, timer, _ := newTestJeopardy(t, tieredPool(cats...), cats...)
	_ = j.SelectQuestion(0, 0)
	j.Cleanup()
	j.Cleanup()
	if timer.Running() != 0 {
		t.Fatalf("cleanup left a countdown running")
	}
	if _, ok := j.SubmitAnswer("x"); ok {
		t.Fatalf("closed session accepted an answer")
	}
	if j.CompletedCells() != 0 {
		t.Fatalf("cleanup completed a cell")
	}
}

func TestJeopardyNoMatchingCategories(t *testing.T) {
	_, err := NewJeopardy(tieredPool("A"), domain.GameConfig{
		Categories:      []string{"W", "X", "Y", "Z"},
		TimePerQuestion: 10,
	}, Options{})
	if !errors.Is(err, domain.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestNewDispatchesByMode(t *testing.T) {
	pool := tieredPool("A", "B", "C", "D")
	cfg := domain.GameConfig{Categories: []string{"A", "B", "C", "D"}, QuestionCount: 5, TimePerQuestion: 10}

	s, err := New(domain.ModeJeopardy, pool, cfg, Options{Timer: NewManualTimer()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := s.(BoardSession); !ok || s.Mode() != domain.ModeJeopardy {
		t.Fatalf("expected a board session")
	}
	if s.ID() == "" {
		t.Fatalf("expected generated session id")
	}

	s, err = New(domain.ModeClassic, pool, cfg, Options{Timer: NewManualTimer()})
	if err != nil || s.Mode() != domain.ModeClassic {
		t.Fatalf("expected classic session, got %v", err)
	}
	if _, err := New("blitz", pool, cfg, Options{}); !errors.Is(err, domain.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}
