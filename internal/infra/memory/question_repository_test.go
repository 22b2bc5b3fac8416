package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"trivia-game-service/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{PoolLoader: NewStaticLoader(samplePool())}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.Questions(context.Background()); err != nil {
		t.Fatalf("questions: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	pool, err := repo.Questions(context.Background())
	if err != nil {
		t.Fatalf("questions 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
	if len(pool) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(pool))
	}
}

func TestQuestionRepositoryExpires(t *testing.T) {
	loader := &countingLoader{PoolLoader: NewStaticLoader(samplePool())}
	repo := NewQuestionRepository(loader, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	_, _ = repo.Questions(context.Background())
	now = now.Add(2 * time.Minute)
	_, _ = repo.Questions(context.Background())
	if loader.calls != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.calls)
	}

	repo.Invalidate()
	_, _ = repo.Questions(context.Background())
	if loader.calls != 3 {
		t.Fatalf("expected reload after invalidate, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryPropagatesErrors(t *testing.T) {
	boom := errors.New("bank unavailable")
	repo := NewQuestionRepository(failingLoader{err: boom}, time.Minute)
	if _, err := repo.Questions(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

type countingLoader struct {
	PoolLoader
	calls int
}

func (l *countingLoader) LoadPool(ctx context.Context) ([]domain.Question, error) {
	l.calls++
	return l.PoolLoader.LoadPool(ctx)
}

type failingLoader struct{ err error }

func (l failingLoader) LoadPool(context.Context) ([]domain.Question, error) {
	return nil, l.err
}

func samplePool() []domain.Question {
	return []domain.Question{
		{
			Categories:       []string{"Personajes"},
			Difficulty:       "fácil",
			Prompt:           "¿Quién construyó el arca?",
			CorrectAnswer:    "Noé",
			IncorrectAnswers: []string{"Moisés", "Abraham", "David"},
			Explanation:      "Génesis 6",
		},
		{
			Categories:       []string{"Lugares"},
			Difficulty:       "medio",
			Prompt:           "¿Dónde nació Jesús?",
			CorrectAnswer:    "Belén",
			IncorrectAnswers: []string{"Nazaret", "Jerusalén", "Capernaúm"},
			Explanation:      "Mateo 2:1",
		},
	}
}
