package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"trivia-game-service/internal/app"
	"trivia-game-service/internal/config"
	"trivia-game-service/internal/domain"
	"trivia-game-service/internal/infra/files"
	"trivia-game-service/internal/infra/memory"
	"trivia-game-service/internal/transport/console"
)

// NewPlayCmd runs a single game in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		mode       string
		categories string
		count      int
		seconds    int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			parsed, err := domain.ParseMode(mode)
			if err != nil {
				return err
			}

			b, err := openBackends(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.close()

			service := app.NewGameService(memory.NewSessionStore(), b.questions, app.WithCatalog(files.Names(cfg.Catalog)))
			gameCfg := cfg.GameDefaults()
			if count > 0 {
				gameCfg.QuestionCount = count
			}
			if seconds > 0 {
				gameCfg.TimePerQuestion = seconds
			}
			gameCfg.Categories = splitCategories(categories)
			if len(gameCfg.Categories) == 0 {
				all, err := service.Categories(cmd.Context())
				if err != nil {
					return err
				}
				gameCfg.Categories = all
			}

			return console.New(service, os.Stdin, os.Stdout).Play(cmd.Context(), parsed, gameCfg)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(domain.ModeClassic), "classic or jeopardy")
	cmd.Flags().StringVar(&categories, "categories", "", "comma separated categories (default: all)")
	cmd.Flags().IntVar(&count, "count", 0, "questions per classic game (default: config)")
	cmd.Flags().IntVar(&seconds, "time", 0, "seconds per question (default: config)")
	return cmd
}

func splitCategories(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
