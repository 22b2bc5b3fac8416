package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Difficulty is a normalized difficulty tier.
type Difficulty string

const (
	DifficultyUnknown Difficulty = ""
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
)

var difficultyLabels = map[string]Difficulty{
	"easy":    DifficultyEasy,
	"facil":   DifficultyEasy,
	"medium":  DifficultyMedium,
	"medio":   DifficultyMedium,
	"media":   DifficultyMedium,
	"hard":    DifficultyHard,
	"dificil": DifficultyHard,
}

// ParseDifficulty maps a free-form label ("Fácil", "DIFICIL", "medium") to a tier.
// Unrecognized labels yield DifficultyUnknown.
func ParseDifficulty(label string) Difficulty {
	return difficultyLabels[foldLabel(label)]
}

// Points returns the score awarded for a correct answer at this tier.
// Unknown tiers score like easy.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyMedium:
		return 200
	case DifficultyHard:
		return 300
	default:
		return 100
	}
}

// Tier is one row of a jeopardy board.
type Tier struct {
	Difficulty Difficulty
	Points     int
}

// BoardTiers lists jeopardy rows top to bottom.
var BoardTiers = []Tier{
	{Difficulty: DifficultyHard, Points: 300},
	{Difficulty: DifficultyMedium, Points: 200},
	{Difficulty: DifficultyEasy, Points: 100},
}

// foldLabel strips accents and case. Transformers carry state, so they are built per call.
func foldLabel(label string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.TrimSpace(label),
	)
	if err != nil {
		stripped = strings.TrimSpace(label)
	}
	return cases.Fold().String(stripped)
}
