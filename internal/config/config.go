package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            int    `yaml:"port"`
	LogLevel        string `yaml:"log_level"`
	CorpusPath      string `yaml:"corpus_path"`
	KnowledgePath   string `yaml:"knowledge_path"`
	LibraryDir      string `yaml:"library_dir"`
	GeneratedDir    string `yaml:"generated_dir"`
	NatsURL         string `yaml:"nats_url"`
	AnthropicModel  string `yaml:"anthropic_model"`
	SlackChannel    string `yaml:"slack_channel"`
	DatabaseURL     string `yaml:"-"`
	NatsToken       string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
	APIToken        string `yaml:"-"`
	SlackBotToken   string `yaml:"-"`
}

func defaults() Config {
	return Config{
		Port:           8760,
		LogLevel:       "info",
		CorpusPath:     "data/extracted_cases.json",
		KnowledgePath:  "data/knowledge_base.json",
		LibraryDir:     "data/library",
		GeneratedDir:   "data/generated_cases",
		AnthropicModel: "claude-sonnet-4-20250514",
	}
}

// Load resolves configuration with precedence defaults → YAML file → env vars.
// A missing YAML file is not an error.
func Load() (Config, error) {
	cfg := defaults()

	path := envStr("CASEBASE_CONFIG_PATH", "casebase.yaml")
	if err := loadYAML(&cfg, path); err != nil {
		return Config{}, err
	}

	cfg.Port = envInt("CASEBASE_PORT", cfg.Port)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.CorpusPath = envStr("CASEBASE_CORPUS_PATH", cfg.CorpusPath)
	cfg.KnowledgePath = envStr("CASEBASE_KNOWLEDGE_PATH", cfg.KnowledgePath)
	cfg.LibraryDir = envStr("CASEBASE_LIBRARY_DIR", cfg.LibraryDir)
	cfg.GeneratedDir = envStr("CASEBASE_GENERATED_DIR", cfg.GeneratedDir)
	cfg.NatsURL = envStr("NATS_URL", cfg.NatsURL)
	cfg.AnthropicModel = envStr("CASEBASE_MODEL", cfg.AnthropicModel)
	cfg.SlackChannel = envStr("SLACK_CHANNEL", cfg.SlackChannel)
	cfg.DatabaseURL = envStr("DATABASE_URL", "")
	cfg.NatsToken = envStr("NATS_TOKEN", "")
	cfg.AnthropicAPIKey = envStr("ANTHROPIC_API_KEY", "")
	cfg.APIToken = envStr("CASEBASE_API_TOKEN", "")
	cfg.SlackBotToken = envStr("SLACK_BOT_TOKEN", "")

	return cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
