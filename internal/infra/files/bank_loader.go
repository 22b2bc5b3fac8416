package files

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"trivia-game-service/internal/domain"
)

// Bank is one category bank file in the catalog.
type Bank struct {
	Name string `yaml:"name" json:"name"`
	File string `yaml:"file" json:"file"`
}

// bankEntry is the on-disk question format.
type bankEntry struct {
	Categories       []string `json:"categorias"`
	Difficulty       string   `json:"dificultad"`
	Prompt           string   `json:"pregunta"`
	CorrectAnswer    string   `json:"respuesta_correcta"`
	IncorrectAnswers []string `json:"respuestas_incorrectas"`
	Explanation      string   `json:"explicacion"`
}

func (e bankEntry) question() domain.Question {
	return domain.Question{
		Categories:       e.Categories,
		Difficulty:       e.Difficulty,
		Prompt:           e.Prompt,
		CorrectAnswer:    e.CorrectAnswer,
		IncorrectAnswers: e.IncorrectAnswers,
		Explanation:      e.Explanation,
	}
}

// BankLoader reads every bank in the catalog. A bank that fails to load
// contributes no questions; the rest of the pool still loads.
type BankLoader struct {
	dir         string
	banks       []Bank
	concurrency int
}

func NewBankLoader(dir string, banks []Bank) *BankLoader {
	return &BankLoader{dir: dir, banks: banks, concurrency: 8}
}

// Banks returns the catalog in configured order.
func (l *BankLoader) Banks() []Bank {
	return l.banks
}

func (l *BankLoader) LoadPool(ctx context.Context) ([]domain.Question, error) {
	results := make([][]domain.Question, len(l.banks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, bank := range l.banks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			questions, err := ReadBank(l.path(bank))
			if err != nil {
				log.Printf("load bank %s: %v", bank.File, err)
				return nil
			}
			results[i] = questions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pool []domain.Question
	for _, qs := range results {
		pool = append(pool, qs...)
	}
	log.Printf("%d questions loaded from %d banks", len(pool), len(l.banks))
	return pool, nil
}

func (l *BankLoader) path(bank Bank) string {
	if filepath.IsAbs(bank.File) || l.dir == "" {
		return bank.File
	}
	return filepath.Join(l.dir, bank.File)
}

// ReadBank decodes one bank file.
func ReadBank(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []bankEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	questions := make([]domain.Question, 0, len(entries))
	for _, e := range entries {
		questions = append(questions, e.question())
	}
	return questions, nil
}

// DefaultBanks is the stock catalog shipped with the game.
func DefaultBanks() []Bank {
	return []Bank{
		{Name: "Toda la Bíblia", File: "biblia_general.json"},
		{Name: "Personajes", File: "personajes.json"},
		{Name: "Lugares", File: "lugares.json"},
		{Name: "Milagros", File: "milagros.json"},
		{Name: "Antiguo Testamento", File: "antiguo_testamento.json"},
		{Name: "Nuevo Testamento", File: "nuevo_testamento.json"},
		{Name: "Parábolas", File: "parabolas.json"},
		{Name: "Profetas", File: "profetas.json"},
	}
}

// Names lists the bank names in catalog order.
func Names(banks []Bank) []string {
	names := make([]string, 0, len(banks))
	for _, b := range banks {
		names = append(names, b.Name)
	}
	return names
}
