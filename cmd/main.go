package main

import (
	"log"

	"go.uber.org/dig"

	"github.com/davidbz/lilibridge/internal/config"
	"github.com/davidbz/lilibridge/internal/domain"
	"github.com/davidbz/lilibridge/internal/httpserver"
	"github.com/davidbz/lilibridge/internal/httpserver/middleware"
	"github.com/davidbz/lilibridge/internal/observability"
	"github.com/davidbz/lilibridge/internal/upstream/lili"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *httpserver.Server) {
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
	if err := container.Provide(observability.NewMetrics); err != nil {
		log.Fatalf("Failed to provide metrics: %v", err)
	}

	// Identifier generation
	if err := container.Provide(func() domain.IDGenerator {
		return domain.UUIDGenerator{}
	}); err != nil {
		log.Fatalf("Failed to provide id generator: %v", err)
	}

	// Lili upstream client
	if err := container.Provide(func(cfg *lili.Config, metrics *observability.Metrics) (domain.UpstreamClient, error) {
		return lili.NewClient(*cfg, metrics)
	}); err != nil {
		log.Fatalf("Failed to provide Lili client: %v", err)
	}

	// Domain services
	if err := container.Provide(func(cfg *lili.Config, ids domain.IDGenerator) *domain.Translator {
		return domain.NewTranslator(cfg.WorkflowID, ids)
	}); err != nil {
		log.Fatalf("Failed to provide translator: %v", err)
	}
	if err := container.Provide(domain.NewAdapterService); err != nil {
		log.Fatalf("Failed to provide adapter service: %v", err)
	}

	// HTTP layer
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
