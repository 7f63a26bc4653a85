package container

import (
	"context"
	"fmt"
	"net/http"

	"go-vastu-analyzer/internal/config"
	"go-vastu-analyzer/internal/engine"
	"go-vastu-analyzer/internal/service"
	"go-vastu-analyzer/internal/storage"
	"go-vastu-analyzer/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config       *config.Config
	engine       engine.Engine
	archiver     storage.Archiver
	vastuService service.VastuService
	handler      http.Handler
}

// NewContainer builds the dependency graph. The AI client is constructed
// here, once, so credential problems fail the process before it serves.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	eng, err := buildEngine(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI engine: %w", err)
	}

	archiver, err := buildArchiver(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize archiver: %w", err)
	}

	vastuService := service.NewVastuService(eng, archiver, cfg.AnalysisTimeout)
	handler := transport.NewHandler(vastuService, cfg)

	return &Container{
		config:       cfg,
		engine:       eng,
		archiver:     archiver,
		vastuService: vastuService,
		handler:      handler,
	}, nil
}

func buildEngine(ctx context.Context, cfg *config.Config) (engine.Engine, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return engine.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	default:
		return engine.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}

func buildArchiver(cfg *config.Config) (storage.Archiver, error) {
	if !cfg.ArchiveEnabled() {
		return storage.NewNoopArchiver(), nil
	}
	return storage.NewAzureArchiver(cfg.AzureStorageAccount, cfg.AzureStorageKey, cfg.AzureArchiveContainer)
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases engine resources.
func (c *Container) Close() error {
	if closer, ok := c.engine.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
