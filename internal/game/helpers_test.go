package game

import (
	"fmt"
	"sync"

	"trivia-game-service/internal/domain"
)

type recorder struct {
	mu        sync.Mutex
	questions []QuestionView
	boards    []BoardView
	outcomes  []domain.Outcome
	ticks     []int
	results   []domain.Results
}

func (r *recorder) PresentQuestion(q QuestionView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, q)
}

func (r *recorder) PresentBoard(b BoardView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards = append(r.boards, b)
}

func (r *recorder) ShowAnswerOutcome(o domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recorder) UpdateTimer(remaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, remaining)
}

func (r *recorder) ReportResults(res domain.Results) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recorder) lastQuestion() QuestionView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.questions[len(r.questions)-1]
}

func (r *recorder) reportCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func question(cat, difficulty, prompt string) domain.Question {
	return domain.Question{
		Categories:       []string{cat},
		Difficulty:       difficulty,
		Prompt:           prompt,
		CorrectAnswer:    prompt + "-right",
		IncorrectAnswers: []string{prompt + "-wrong-1", prompt + "-wrong-2", prompt + "-wrong-3"},
		Explanation:      "because " + prompt,
	}
}

// tieredPool builds one question per tier for each category.
func tieredPool(categories ...string) []domain.Question {
	var pool []domain.Question
	for _, c := range categories {
		for _, d := range []string{"fácil", "medio", "difícil"} {
			pool = append(pool, question(c, d, fmt.Sprintf("%s/%s", c, d)))
		}
	}
	return pool
}

// leakyTimer ignores Stop so late callbacks still reach the session.
type leakyTimer struct {
	mu       sync.Mutex
	ticks    []func(int)
	expiries []func()
}

func (l *leakyTimer) Start(_ int, onTick func(int), onExpire func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ticks = append(l.ticks, onTick)
	l.expiries = append(l.expiries, onExpire)
	return Handle(len(l.expiries))
}

func (l *leakyTimer) Stop(Handle) {}

func (l *leakyTimer) fireAll() {
	l.mu.Lock()
	ticks := append([]func(int){}, l.ticks...)
	expiries := append([]func(){}, l.expiries...)
	l.mu.Unlock()
	for _, tick := range ticks {
		tick(0)
	}
	for _, expire := range expiries {
		expire()
	}
}
