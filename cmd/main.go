package main

import (
	"log"
	"log/slog"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/dberman/commitscribe/internal/config"
	"github.com/dberman/commitscribe/internal/domain"
	"github.com/dberman/commitscribe/internal/httpserver"
	"github.com/dberman/commitscribe/internal/httpserver/middleware"
	"github.com/dberman/commitscribe/internal/observability"
	"github.com/dberman/commitscribe/internal/provider/ollama"
)

func main() {
	container := buildContainer()

	// The logger is requested here so dig constructs it before the server runs.
	err := container.Invoke(func(server *httpserver.Server, _ *zap.Logger) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Provide(func() domain.EventPublisher {
		return observability.NewEventBus(slog.Default())
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Inference backend
	if err := container.Provide(func(cfg *ollama.Config) domain.CompletionBackend {
		return ollama.NewClient(cfg)
	}); err != nil {
		log.Fatalf("Failed to provide Ollama client: %v", err)
	}

	// Domain Services
	if err := container.Provide(domain.NewGeneratorService); err != nil {
		log.Fatalf("Failed to provide generator service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(httpserver.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(httpserver.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
