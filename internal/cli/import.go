package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"trivia-game-service/internal/config"
	"trivia-game-service/internal/infra/files"
	"trivia-game-service/internal/infra/postgres"
	infraredis "trivia-game-service/internal/infra/redis"
)

// NewImportCmd copies the JSON banks into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the question banks into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), cfg)
		},
	}
}

func runImport(ctx context.Context, cfg config.Config) error {
	if err := runMigrations(ctx, cfg); err != nil {
		return err
	}

	loader := files.NewBankLoader(cfg.Questions.Dir, cfg.Catalog)
	questions, err := loader.LoadPool(ctx)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions found in %s", cfg.Questions.Dir)
	}

	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := postgres.NewSeeder(db).Replace(ctx, questions)
	if err != nil {
		return err
	}
	log.Printf("imported %d questions from %d banks", n, len(cfg.Catalog))

	// running servers reload from Postgres on their next cache miss
	if client := newRedisClient(cfg); client != nil {
		defer client.Close()
		if err := infraredis.NewQuestionRepository(client, loader, 0).Invalidate(ctx); err != nil {
			log.Printf("drop cached question pool: %v", err)
		}
	}
	return nil
}
