package main

import (
	"flag"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/config"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/corpus"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding/hash"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding/ollama"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding/openai"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/service"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/tui"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/vectorstore"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/vectorstore/memory"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/emigrag/config.yaml if not provided)")
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

	// Assemble components
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "hash", "":
		dim := 0
		if cfg.Embedder.Hash != nil {
			dim = cfg.Embedder.Hash.Dimension
		}
		emb = hash.NewEmbedder(dim)
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	case "ollama":
		if cfg.Embedder.Ollama == nil {
			log.Fatalf("ollama embedder config missing")
		}
		emb = ollama.NewClient(ollama.Config{
			BaseURL: cfg.Embedder.Ollama.BaseURL,
			Model:   cfg.Embedder.Ollama.Model,
			Token:   os.Getenv(cfg.Embedder.Ollama.TokenEnv),
			Timeout: time.Duration(cfg.Embedder.Ollama.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var idx vectorstore.Index
	switch cfg.Index.Type {
	case "memory", "":
		idx = memory.NewIndex()
	case "qdrant":
		if cfg.Index.Qdrant == nil {
			log.Fatalf("qdrant index config missing")
		}
		idx = qdrant.NewIndex(qdrant.Config{
			URL:        cfg.Index.Qdrant.URL,
			APIKey:     cfg.Index.Qdrant.APIKey,
			Collection: cfg.Index.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Index.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown index: %s", cfg.Index.Type)
	}

	docs, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		log.Fatalf("failed to load corpus: %v", err)
	}

	engine := service.NewEngine(emb, idx)
	if err := engine.Build(docs); err != nil {
		log.Fatalf("engine build failed: %v", err)
	}

	m := tui.New(engine, cfg.Retrieval.MaxResults)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
