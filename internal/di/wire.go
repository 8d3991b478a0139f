package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container
// Order of operations:
// 1. Initialize clients (market data, LLM)
// 2. Initialize services
// 3. Register jobs
func Wire(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	if err := InitializeClients(ctx, container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize clients: %w", err)
	}

	if err := InitializeServices(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := RegisterJobs(container, cfg, log); err != nil {
		return nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}
