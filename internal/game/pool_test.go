package game

import (
	"errors"
	"testing"

	"trivia-game-service/internal/domain"
)

func TestFilterPoolMatchesAnyCategory(t *testing.T) {
	all := []domain.Question{
		{Prompt: "first", Categories: []string{"A", "B"}},
		{Prompt: "second", Categories: []string{"B"}},
	}
	pool, err := FilterPool(all, []string{"A"})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(pool) != 1 || pool[0].Prompt != "first" {
		t.Fatalf("expected only the first question, got %+v", pool)
	}

	pool, err = FilterPool(all, []string{"A", "B"})
	if err != nil || len(pool) != 2 {
		t.Fatalf("expected both questions, got %d (%v)", len(pool), err)
	}
}

func TestFilterPoolEmpty(t *testing.T) {
	_, err := FilterPool([]domain.Question{{Categories: []string{"B"}}}, []string{"Z"})
	if !errors.Is(err, domain.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	all := []domain.Question{
		{Categories: []string{"Lugares", "Personajes"}},
		{Categories: []string{"Personajes"}},
		{Categories: []string{"Milagros"}},
	}
	got := Categories(all)
	want := []string{"Lugares", "Personajes", "Milagros"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
