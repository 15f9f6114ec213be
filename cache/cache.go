package cache

import (
	"context"
	"sync"
	"time"

	"forum/util"

	"github.com/rs/zerolog/log"
)

const minRefresh = time.Second

var Tags = &TagSet{}

// TagSet is the in-memory copy of the tag registry
type TagSet struct {
	data   []string
	loaded bool
	mu     sync.RWMutex
}

// Load returns a copy of the cached tags and whether a refresh ever succeeded
func (t *TagSet) Load() ([]string, bool) {
	t.mu.RLock()
	res := make([]string, len(t.data))
	copy(res, t.data)
	ok := t.loaded
	t.mu.RUnlock()
	return res, ok
}

func (t *TagSet) Store(tags []string) {
	t.mu.Lock()
	t.data = tags
	t.loaded = true
	t.mu.Unlock()
}

// Refresh reloads the set from load every duration, at most once a second
func (t *TagSet) Refresh(load func(context.Context) ([]string, error), duration time.Duration) {
	if duration < minRefresh {
		duration = minRefresh
	}
	util.GoJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), duration)
		defer cancel()

		tags, err := load(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("refresh tags")
			return
		}
		t.Store(tags)
		log.Debug().Int("tags", len(tags)).Msg("refresh tags")
	}, duration)
}
