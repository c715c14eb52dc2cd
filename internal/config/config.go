package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GenAIConfig holds configuration for the OpenAI-compatible chat client.
type GenAIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// StoreConfig locates the SQLite record store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ModelConfig locates the persisted learned-answer model state.
type ModelConfig struct {
	StateDir string `yaml:"state_dir"`
}

// RouterConfig tunes routing behavior.
type RouterConfig struct {
	// BranchTopic selects the enrichment source for branch-topic queries:
	// "accounts" (default) or "branches".
	BranchTopic string `yaml:"branch_topic"`
	// RandomSeed seeds static-pattern response selection; 0 means
	// time-seeded.
	RandomSeed int64 `yaml:"random_seed"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	GenAI   GenAIConfig   `yaml:"genai"`
	Store   StoreConfig   `yaml:"store"`
	Model   ModelConfig   `yaml:"model"`
	Router  RouterConfig  `yaml:"router"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/bankassist/config.yaml.
// If neither exists, it writes defaults to ~/.config/bankassist/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bankassist", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		GenAI: GenAIConfig{
			BaseURL:     "https://api.openai.com/v1",
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "gpt-4o-mini",
			TimeoutSecs: 30,
		},
		Store:   StoreConfig{Path: "bank_db.sqlite"},
		Model:   ModelConfig{StateDir: "model_state"},
		Router:  RouterConfig{BranchTopic: "accounts"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.GenAI.BaseURL == "" {
		cfg.GenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.GenAI.APIKeyEnv == "" {
		cfg.GenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = "gpt-4o-mini"
	}
	if cfg.GenAI.TimeoutSecs == 0 {
		cfg.GenAI.TimeoutSecs = 30
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "bank_db.sqlite"
	}
	if cfg.Model.StateDir == "" {
		cfg.Model.StateDir = "model_state"
	}
	if cfg.Router.BranchTopic == "" {
		cfg.Router.BranchTopic = "accounts"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}
