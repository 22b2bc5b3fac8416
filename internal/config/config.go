package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
	"trivia-game-service/internal/domain"
	"trivia-game-service/internal/infra/files"
)

type Server struct {
	Port string `yaml:"port" env:"PORT"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	TTL      string `yaml:"ttl" env:"REDIS_TTL"`
}

type Postgres struct {
	URL string `yaml:"url" env:"POSTGRES_URL"`
}

type Questions struct {
	Dir string `yaml:"dir" env:"QUESTIONS_DIR"`
	TTL string `yaml:"ttl" env:"QUESTIONS_TTL"`
}

type Game struct {
	QuestionCount   int `yaml:"questionCount" env:"GAME_QUESTION_COUNT"`
	TimePerQuestion int `yaml:"timePerQuestion" env:"GAME_TIME_PER_QUESTION"`
}

type Config struct {
	Server    Server       `yaml:"server"`
	Redis     Redis        `yaml:"redis"`
	Postgres  Postgres     `yaml:"postgres"`
	Questions Questions    `yaml:"questions"`
	Catalog   []files.Bank `yaml:"catalog"`
	Game      Game         `yaml:"game"`
}

// Default is used when no file exists at the configured path.
func Default() Config {
	return Config{
		Server:    Server{Port: "8080"},
		Questions: Questions{Dir: "data"},
		Catalog:   files.DefaultBanks(),
		Game: Game{
			QuestionCount:   domain.DefaultQuestionCount,
			TimePerQuestion: domain.DefaultTimePerQuestion,
		},
	}
}

// Load reads YAML config from path and applies environment overrides.
// A missing file falls back to Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, err
	}

	if len(cfg.Catalog) == 0 {
		cfg.Catalog = files.DefaultBanks()
	}
	for _, section := range []any{&cfg.Server, &cfg.Redis, &cfg.Postgres, &cfg.Questions, &cfg.Game} {
		if err := env.Parse(section); err != nil {
			return cfg, fmt.Errorf("parse env: %w", err)
		}
	}
	return cfg, nil
}

// GameDefaults returns the menu defaults as a game configuration.
func (c Config) GameDefaults() domain.GameConfig {
	return domain.GameConfig{
		QuestionCount:   c.Game.QuestionCount,
		TimePerQuestion: c.Game.TimePerQuestion,
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
