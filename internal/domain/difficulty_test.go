package domain

import "testing"

func TestParseDifficultyLabels(t *testing.T) {
	cases := map[string]Difficulty{
		"fácil":    DifficultyEasy,
		"Facil":    DifficultyEasy,
		"EASY":     DifficultyEasy,
		"medio":    DifficultyMedium,
		" Medium ": DifficultyMedium,
		"difícil":  DifficultyHard,
		"DIFÍCIL":  DifficultyHard,
		"dificil":  DifficultyHard,
		"extreme":  DifficultyUnknown,
		"":         DifficultyUnknown,
	}
	for label, want := range cases {
		if got := ParseDifficulty(label); got != want {
			t.Fatalf("ParseDifficulty(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestDifficultyPoints(t *testing.T) {
	if DifficultyEasy.Points() != 100 || DifficultyMedium.Points() != 200 || DifficultyHard.Points() != 300 {
		t.Fatalf("unexpected tier points")
	}
	if ParseDifficulty("legendary").Points() != 100 {
		t.Fatalf("unknown labels should score the lowest tier")
	}
}
