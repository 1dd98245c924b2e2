package analytics

import (
	"context"
	"log"

	"github.com/yourorg/listing-search/internal/events"
)

// Recorder consumes search events and logs them. Swap the log line for a
// warehouse writer when one exists.
type Recorder struct {
	Pub events.Publisher
}

func (r *Recorder) Run(ctx context.Context) {
	sub := r.Pub.SubscribeSearchPerformed()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub:
			log.Printf("analytics: search query=%q type=%q results=%d fallback=%t elapsed=%s",
				evt.Query, evt.PropertyType, evt.ResultCount, evt.IsFallback, evt.Elapsed)
		}
	}
}
