package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/comps/internal/config"
	"github.com/aristath/comps/internal/scheduler"
)

// RegisterJobs creates the scheduler and registers background jobs.
// The cache reset job is always created so it can be triggered over HTTP, but it is
// only scheduled when CACHE_RESET_SCHEDULE is set.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil || container.SymbolCache == nil {
		return fmt.Errorf("container cannot be nil")
	}

	container.Scheduler = scheduler.New(log)
	container.CacheResetJob = scheduler.NewCacheResetJob(container.SymbolCache, log)

	if cfg.CacheResetSchedule != "" {
		if err := container.Scheduler.AddJob(cfg.CacheResetSchedule, container.CacheResetJob); err != nil {
			return fmt.Errorf("failed to register cache reset job: %w", err)
		}
	}

	return nil
}
