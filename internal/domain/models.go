package domain

import "math"

// Question is one trivia item. Questions are read-only once loaded.
type Question struct {
	Categories       []string `json:"categories"`
	Difficulty       string   `json:"difficulty"`
	Prompt           string   `json:"prompt"`
	CorrectAnswer    string   `json:"correctAnswer"`
	IncorrectAnswers []string `json:"incorrectAnswers"`
	Explanation      string   `json:"explanation"`
}

// HasCategory reports whether the question is tagged with name.
func (q Question) HasCategory(name string) bool {
	for _, c := range q.Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Level returns the normalized difficulty tier.
func (q Question) Level() Difficulty {
	return ParseDifficulty(q.Difficulty)
}

// Mode selects the game variant.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeJeopardy Mode = "jeopardy"
)

// ParseMode validates a mode name.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeClassic, ModeJeopardy:
		return Mode(raw), nil
	}
	return "", ErrUnknownMode
}

const (
	DefaultQuestionCount   = 10
	DefaultTimePerQuestion = 25
	MinJeopardyCategories  = 4
	MaxJeopardyCategories  = 6
)

// GameConfig is what the player picks before a game starts.
type GameConfig struct {
	Categories      []string `json:"categories"`
	QuestionCount   int      `json:"questionCount"`   // classic only
	TimePerQuestion int      `json:"timePerQuestion"` // seconds
}

// WithDefaults fills zero values with the menu defaults and drops repeated
// categories, keeping first-seen order.
func (c GameConfig) WithDefaults() GameConfig {
	c.Categories = distinct(c.Categories)
	if c.QuestionCount == 0 {
		c.QuestionCount = DefaultQuestionCount
	}
	if c.TimePerQuestion == 0 {
		c.TimePerQuestion = DefaultTimePerQuestion
	}
	return c
}

func distinct(names []string) []string {
	if len(names) == 0 {
		return names
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Validate checks the configuration against the rules of mode.
func (c GameConfig) Validate(mode Mode) error {
	if len(c.Categories) == 0 {
		return ErrNoCategories
	}
	switch mode {
	case ModeClassic:
		if c.QuestionCount <= 0 {
			return ErrInvalidQuestionCount
		}
	case ModeJeopardy:
		if len(distinct(c.Categories)) < MinJeopardyCategories {
			return ErrNotEnoughCategories
		}
	default:
		return ErrUnknownMode
	}
	if c.TimePerQuestion <= 0 {
		return ErrInvalidTimePerQuestion
	}
	return nil
}

// Outcome summarizes how a question was resolved.
type Outcome struct {
	Correct       bool   `json:"correct"`
	TimedOut      bool   `json:"timedOut"`
	Choice        string `json:"choice,omitempty"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Awarded       int    `json:"awarded"`
	Score         int    `json:"score"`
	// Last is set when the next step ends the game.
	Last bool `json:"last"`
}

// Results is the end-of-game report.
type Results struct {
	Score            int `json:"score"`
	CorrectAnswers   int `json:"correctAnswers"`
	IncorrectAnswers int `json:"incorrectAnswers"`
	TotalQuestions   int `json:"totalQuestions"`
}

// Accuracy returns the percentage of correct answers, rounded.
func (r Results) Accuracy() int {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return int(math.Round(float64(r.CorrectAnswers) / float64(r.TotalQuestions) * 100))
}
