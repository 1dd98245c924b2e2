package events

import (
	"context"
	"time"
)

// SearchPerformed is emitted after every completed search request.
type SearchPerformed struct {
	Query        string
	PropertyType string
	ResultCount  int
	IsFallback   bool
	Elapsed      time.Duration
}

type Publisher interface {
	PublishSearchPerformed(ctx context.Context, evt SearchPerformed)
	SubscribeSearchPerformed() <-chan SearchPerformed
}

type inMemory struct{ ch chan SearchPerformed }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan SearchPerformed, buffer)}
}

// PublishSearchPerformed never blocks; when the buffer is full the event is
// dropped rather than stalling a request.
func (m *inMemory) PublishSearchPerformed(_ context.Context, evt SearchPerformed) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribeSearchPerformed() <-chan SearchPerformed { return m.ch }
