package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"trivia-game-service/internal/app"
	"trivia-game-service/internal/config"
	"trivia-game-service/internal/infra/files"
	"trivia-game-service/internal/infra/memory"
	"trivia-game-service/internal/infra/postgres"
	infraredis "trivia-game-service/internal/infra/redis"
	transport "trivia-game-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// backends holds the storage the service runs on; close releases it.
type backends struct {
	questions app.QuestionRepository
	redis     *redis.Client
	pool      *pgxpool.Pool
}

func (b *backends) close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

// openBackends picks the question source (Postgres when configured, JSON
// banks otherwise) and caches it in Redis or memory.
func openBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{redis: newRedisClient(cfg)}

	var loader memory.PoolLoader = files.NewBankLoader(cfg.Questions.Dir, cfg.Catalog)
	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg); err != nil {
			b.close()
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.close()
			return nil, err
		}
		b.pool = pool
		loader = postgres.NewQuestionLoader(pool)
	}

	questionsTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	if b.redis != nil {
		b.questions = infraredis.NewQuestionRepository(b.redis, loader, questionsTTL)
	} else {
		b.questions = memory.NewQuestionRepository(loader, questionsTTL)
	}
	return b, nil
}

// listenPort prefers the --port flag, then server.port (which PORT overrides).
func listenPort(flag string, cfg config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg.Server.Port != "" {
		return cfg.Server.Port
	}
	return "8080"
}

// newRedisClient returns nil when Redis is not configured.
func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := listenPort(portFlag, cfg)

	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	var store app.SessionRepository
	if b.redis != nil {
		store = infraredis.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		store = memory.NewSessionStore()
	}
	service := app.NewGameService(store, b.questions, app.WithCatalog(files.Names(cfg.Catalog)))

	if all, err := b.questions.Questions(ctx); err != nil {
		log.Printf("question pool not loaded yet: %v", err)
	} else {
		log.Printf("loaded %d questions", len(all))
	}

	wsHandler := transport.NewWSHandler(service, cfg.GameDefaults())

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/categories", wsHandler.ServeCategories)
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
