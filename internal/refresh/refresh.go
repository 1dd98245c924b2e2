package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/yourorg/listing-search/internal/search"
)

// Job asks for one cached search result to be recomputed.
type Job struct {
	CacheKey string
	Criteria search.Criteria
}

// Refresher recomputes stale cache entries in the background. Jobs are
// deduplicated on cache key while in flight; a saturated queue drops rather
// than blocks the request path.
type Refresher struct {
	ch    chan Job
	inFly sync.Map // cache key -> struct{}
	Do    func(ctx context.Context, j Job)
}

func New(capacity int, workerCount int, do func(ctx context.Context, j Job)) *Refresher {
	if capacity <= 0 {
		capacity = 256
	}
	if workerCount <= 0 {
		workerCount = 2
	}
	r := &Refresher{ch: make(chan Job, capacity), Do: do}
	for i := 0; i < workerCount; i++ {
		go r.worker()
	}
	return r
}

func (r *Refresher) Enqueue(j Job) {
	if _, exists := r.inFly.LoadOrStore(j.CacheKey, struct{}{}); exists {
		return
	}
	select {
	case r.ch <- j:
	default:
		// drop if saturated
		r.inFly.Delete(j.CacheKey)
	}
}

func (r *Refresher) worker() {
	for j := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		func() {
			defer func() {
				r.inFly.Delete(j.CacheKey)
				cancel()
			}()
			if r.Do != nil {
				r.Do(ctx, j)
			}
		}()
	}
}
