package scheduler

import (
	"github.com/rs/zerolog"
)

// Resettable is a cache that can be emptied
type Resettable interface {
	Reset() int
}

// CacheResetJob empties the symbol cache so the next analysis refetches fresh figures
type CacheResetJob struct {
	cache Resettable
	log   zerolog.Logger
}

// NewCacheResetJob creates a cache reset job
func NewCacheResetJob(cache Resettable, log zerolog.Logger) *CacheResetJob {
	return &CacheResetJob{
		cache: cache,
		log:   log.With().Str("job", "cache_reset").Logger(),
	}
}

// Name returns the job name
func (j *CacheResetJob) Name() string {
	return "cache_reset"
}

// Run executes the job
func (j *CacheResetJob) Run() error {
	removed := j.cache.Reset()
	j.log.Info().Int("removed", removed).Msg("Symbol cache cleared")
	return nil
}
