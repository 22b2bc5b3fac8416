package domain

import "errors"

var (
	// ErrEmptyPool is returned when no loaded question matches the selected categories.
	ErrEmptyPool = errors.New("no questions available for the selected categories")
	// ErrNoCategories is returned when a game is configured without categories.
	ErrNoCategories = errors.New("at least one category must be selected")
	// ErrNotEnoughCategories is returned when a jeopardy game has fewer than MinJeopardyCategories.
	ErrNotEnoughCategories = errors.New("jeopardy mode needs at least 4 categories")
	// ErrInvalidQuestionCount indicates a non-positive question count.
	ErrInvalidQuestionCount = errors.New("question count must be positive")
	// ErrInvalidTimePerQuestion indicates a non-positive time limit.
	ErrInvalidTimePerQuestion = errors.New("time per question must be positive")
	// ErrUnknownMode is returned for a mode other than classic or jeopardy.
	ErrUnknownMode = errors.New("unknown game mode")

	// ErrSessionNotFound is returned when a player has no active game.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionFinished is returned when acting on a game that already reported results.
	ErrSessionFinished = errors.New("game session already finished")
	// ErrQuestionPending is returned when moving on before the open question is resolved.
	ErrQuestionPending = errors.New("current question has not been answered")
	// ErrNoQuestionOpen is returned when no question is being shown.
	ErrNoQuestionOpen = errors.New("no question is open")
	// ErrCellOutOfRange indicates a board coordinate outside the board.
	ErrCellOutOfRange = errors.New("board cell out of range")
	// ErrCellCompleted indicates the board cell was already played.
	ErrCellCompleted = errors.New("board cell already completed")
	// ErrWrongMode is returned for an action the running mode does not support.
	ErrWrongMode = errors.New("action not supported by this game mode")
)
