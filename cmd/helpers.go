package cmd

import (
	"fmt"

	"github.com/ziadkadry99/smartsupport/internal/chat"
	"github.com/ziadkadry99/smartsupport/internal/chunker"
	"github.com/ziadkadry99/smartsupport/internal/config"
	"github.com/ziadkadry99/smartsupport/internal/documents"
	"github.com/ziadkadry99/smartsupport/internal/embeddings"
	"github.com/ziadkadry99/smartsupport/internal/llm"
	"github.com/ziadkadry99/smartsupport/internal/retriever"
	"github.com/ziadkadry99/smartsupport/internal/tools"
	"github.com/ziadkadry99/smartsupport/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `smartsupport init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedder builds the OpenAI embedder from config. The embedder is
// shared by ingestion and retrieval so both sides use the same space.
func createEmbedder(cfg *config.Config) (embeddings.Embedder, error) {
	apiKey := config.OpenAIAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(cfg.EmbeddingModel)), nil
}

// createProvider builds the chat LLM provider from config.
func createProvider(cfg *config.Config) (llm.Provider, error) {
	apiKey := config.OpenAIAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	var provider llm.Provider = llm.NewOpenAIProvider(apiKey, cfg.Model)
	if cfg.RateLimitRPM > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RateLimitRPM)
	}
	return provider, nil
}

// stack bundles the wired application components the commands share.
type stack struct {
	cfg       *config.Config
	provider  llm.Provider
	store     vectordb.Store
	retriever *retriever.Retriever
	ingestor  *documents.Ingestor
	chat      *chat.Service
}

// buildStack wires the full application: embedder, vector store,
// retriever, tool registry and chat service.
func buildStack() (*stack, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	embedder, err := createEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	provider, err := createProvider(cfg)
	if err != nil {
		return nil, err
	}

	store, err := vectordb.NewChromemStore(embedder, cfg.DataDir, cfg.CollectionName)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	ret := retriever.New(store, cfg.TopK)
	registry := tools.NewRegistry(ret, tools.NewSMTPMailer(cfg.SMTP), tools.NewWeatherClient())

	return &stack{
		cfg:       cfg,
		provider:  provider,
		store:     store,
		retriever: ret,
		ingestor:  documents.NewIngestor(chunker.New(cfg.ChunkSize, cfg.ChunkOverlap), store),
		chat:      chat.New(provider, registry, ret),
	}, nil
}
