package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"bankassist/internal/assistant"
	"bankassist/internal/config"
	"bankassist/internal/genai"
	"bankassist/internal/knowledge"
	"bankassist/internal/logging"
	"bankassist/internal/simindex"
	"bankassist/internal/store"
	"bankassist/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/bankassist/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	// Assemble components
	completer, err := genai.NewClient(genai.Config{
		BaseURL:   cfg.GenAI.BaseURL,
		APIKeyEnv: cfg.GenAI.APIKeyEnv,
		Model:     cfg.GenAI.Model,
		Timeout:   time.Duration(cfg.GenAI.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("genai client init failed: %v", err)
	}

	records, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		log.Fatalf("record store init failed: %v", err)
	}
	defer records.Close()

	cache, err := simindex.Open(cfg.Model.StateDir, logger)
	if err != nil {
		log.Fatalf("model state init failed: %v", err)
	}

	seed := cfg.Router.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	patterns := knowledge.NewStaticPatterns(rand.New(rand.NewSource(seed)))

	bot := assistant.New(completer, records, cache, patterns,
		knowledge.DefaultProfile(),
		assistant.BranchTopic(cfg.Router.BranchTopic), logger)

	m := tui.New(bot)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
