package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/config"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/corpus"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding/hash"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding/ollama"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding/openai"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/handler"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/service"
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
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	emb, model := buildEmbedder(cfg)
	idx := buildIndex(cfg)

	docs, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		slog.Error("failed to load corpus", "error", err)
		os.Exit(1)
	}

	slog.Info("starting emigration retrieval service",
		"port", cfg.Server.Port,
		"embedder", emb.Name(),
		"model", model,
		"index", cfg.Index.Type,
		"documents", len(docs),
	)

	engine := service.NewEngine(emb, idx)

	// Build in the background; requests arriving before it completes see
	// the not-ready state via the health endpoint and 503 responses.
	go func() {
		if err := engine.Build(docs); err != nil {
			slog.Error("engine build failed, serving degraded", "error", err)
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      "Emigration Retrieval Service",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	handler.New(engine, model).Register(app)

	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func buildEmbedder(cfg *config.AppConfig) (embedding.Embedder, string) {
	switch cfg.Embedder.Type {
	case "hash", "":
		dim := 0
		if cfg.Embedder.Hash != nil {
			dim = cfg.Embedder.Hash.Dimension
		}
		emb := hash.NewEmbedder(dim)
		return emb, emb.Name()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			slog.Error("openai embedder config missing")
			os.Exit(1)
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			slog.Error("openai embedder init failed", "error", err)
			os.Exit(1)
		}
		return client, cfg.Embedder.OpenAI.Model
	case "ollama":
		if cfg.Embedder.Ollama == nil {
			slog.Error("ollama embedder config missing")
			os.Exit(1)
		}
		client := ollama.NewClient(ollama.Config{
			BaseURL: cfg.Embedder.Ollama.BaseURL,
			Model:   cfg.Embedder.Ollama.Model,
			Token:   os.Getenv(cfg.Embedder.Ollama.TokenEnv),
			Timeout: time.Duration(cfg.Embedder.Ollama.TimeoutSecs) * time.Second,
		})
		return client, cfg.Embedder.Ollama.Model
	default:
		slog.Error("unknown embedder", "type", cfg.Embedder.Type)
		os.Exit(1)
		return nil, ""
	}
}

func buildIndex(cfg *config.AppConfig) vectorstore.Index {
	switch cfg.Index.Type {
	case "memory", "":
		return memory.NewIndex()
	case "qdrant":
		if cfg.Index.Qdrant == nil {
			slog.Error("qdrant index config missing")
			os.Exit(1)
		}
		return qdrant.NewIndex(qdrant.Config{
			URL:        cfg.Index.Qdrant.URL,
			APIKey:     cfg.Index.Qdrant.APIKey,
			Collection: cfg.Index.Qdrant.Collection,
			Timeout:    time.Duration(cfg.Index.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		slog.Error("unknown index", "type", cfg.Index.Type)
		os.Exit(1)
		return nil
	}
}
