package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"trivia-game-service/internal/app"
	"trivia-game-service/internal/domain"
	"trivia-game-service/internal/game"
)

const playerID = "console"

// Console plays one game over a line-oriented terminal. It is also the
// session's presenter.
type Console struct {
	service *app.GameService
	in      *bufio.Scanner

	mu      sync.Mutex
	out     io.Writer
	choices []string
}

func New(service *app.GameService, in io.Reader, out io.Writer) *Console {
	return &Console{service: service, in: bufio.NewScanner(in), out: out}
}

// Play starts a game and reads commands until it finishes, the player quits,
// or input ends.
func (c *Console) Play(ctx context.Context, mode domain.Mode, cfg domain.GameConfig) error {
	session, err := c.service.Start(ctx, playerID, mode, cfg, c)
	if err != nil {
		return err
	}
	defer c.service.Quit(ctx, playerID)
	c.help(mode)

	for c.in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := c.handle(ctx, strings.Fields(c.in.Text()))
		if err != nil {
			if !app.UserFacing(err) {
				return err
			}
			c.printf("! %v\n", err)
		}
		if quit {
			c.printf("bye\n")
			return nil
		}
		if session.IsFinished() {
			return nil
		}
	}
	return c.in.Err()
}

func (c *Console) handle(ctx context.Context, fields []string) (bool, error) {
	switch {
	case len(fields) == 0:
		return false, nil
	case fields[0] == "q":
		return true, nil
	case fields[0] == "n":
		return false, c.service.Next(ctx, playerID)
	case len(fields) == 2:
		col, errCol := strconv.Atoi(fields[0])
		row, errRow := strconv.Atoi(fields[1])
		if errCol != nil || errRow != nil {
			break
		}
		return false, c.service.SelectCell(ctx, playerID, col-1, row-1)
	case len(fields) == 1:
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			break
		}
		choice, ok := c.choice(n)
		if !ok {
			if count := c.choiceCount(); count > 0 {
				c.printf("! pick a number between 1 and %d\n", count)
			} else {
				c.printf("! no question is open, pick a cell with <col> <row>\n")
			}
			return false, nil
		}
		_, accepted, err := c.service.Answer(ctx, playerID, choice)
		if err != nil {
			return false, err
		}
		if !accepted {
			c.printf("! no question is waiting for an answer\n")
		}
		return false, nil
	}
	c.printf("! unknown command %q\n", strings.Join(fields, " "))
	return false, nil
}

func (c *Console) help(mode domain.Mode) {
	if mode == domain.ModeJeopardy {
		c.printf("commands: <col> <row> to pick a cell, <n> to answer, n for the board, q to quit\n")
		return
	}
	c.printf("commands: <n> to answer, n for the next question, q to quit\n")
}

func (c *Console) choice(n int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 1 || n > len(c.choices) {
		return "", false
	}
	return c.choices[n-1], true
}

func (c *Console) choiceCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.choices)
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) PresentQuestion(q game.QuestionView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.choices = q.Choices

	label := q.Label
	if label == "" {
		label = string(q.Difficulty)
	}
	if q.Mode == domain.ModeClassic {
		fmt.Fprintf(c.out, "\nquestion %d/%d  [%s | %s | %d pts]  score %d\n", q.Position, q.Total, q.Category, label, q.Points, q.Score)
	} else {
		fmt.Fprintf(c.out, "\n[%s | %s | %d pts]  %d/%d played  score %d\n", q.Category, label, q.Points, q.Position, q.Total, q.Score)
	}
	fmt.Fprintf(c.out, "%s\n", q.Prompt)
	for i, choice := range q.Choices {
		fmt.Fprintf(c.out, "  %d) %s\n", i+1, choice)
	}
}

func (c *Console) PresentBoard(b game.BoardView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.choices = nil

	fmt.Fprintf(c.out, "\nboard  %d/%d played  score %d\n", b.Completed, b.Total, b.Score)
	for i, col := range b.Columns {
		cells := make([]string, 0, len(col.Cells))
		for _, cell := range col.Cells {
			if cell.Completed {
				cells = append(cells, "---")
			} else {
				cells = append(cells, strconv.Itoa(cell.Points))
			}
		}
		fmt.Fprintf(c.out, "  %d) %-20s %s\n", i+1, col.Category, strings.Join(cells, " "))
	}
}

func (c *Console) ShowAnswerOutcome(o domain.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case o.TimedOut:
		fmt.Fprintf(c.out, "time's up! the answer was %s\n", o.CorrectAnswer)
	case o.Correct:
		fmt.Fprintf(c.out, "correct! +%d\n", o.Awarded)
	default:
		fmt.Fprintf(c.out, "wrong, the answer was %s\n", o.CorrectAnswer)
	}
	if o.Explanation != "" {
		fmt.Fprintf(c.out, "  %s\n", o.Explanation)
	}
	next := "continue"
	if o.Last {
		next = "see your results"
	}
	fmt.Fprintf(c.out, "score %d, press n to %s\n", o.Score, next)
}

// UpdateTimer prints every fifth second and the final three.
func (c *Console) UpdateTimer(remaining int) {
	if remaining%5 != 0 && remaining > 3 {
		return
	}
	c.printf("  %ds left\n", remaining)
}

func (c *Console) ReportResults(r domain.Results) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "\ngame over\n  score     %d\n  correct   %d\n  incorrect %d\n  accuracy  %d%%\n",
		r.Score, r.CorrectAnswers, r.IncorrectAnswers, r.Accuracy())
}
