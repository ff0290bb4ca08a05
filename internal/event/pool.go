package event

import (
	"sync"
)

// Book updates arrive at feed rate, one allocation per message. Pooling
// them keeps GC pressure off the hotpath.
//
// Usage:
//
//	ev := AcquireBookUpdateEvent()
//	ev.Snapshot = snap
//	// ... hand to the engine, which releases it after applying ...
var bookUpdatePool = sync.Pool{
	New: func() interface{} {
		return &BookUpdateEvent{}
	},
}

// AcquireBookUpdateEvent gets a BookUpdateEvent from the pool.
// The returned event has zero values and must be initialized.
func AcquireBookUpdateEvent() *BookUpdateEvent {
	return bookUpdatePool.Get().(*BookUpdateEvent)
}

// ReleaseBookUpdateEvent returns a BookUpdateEvent to the pool.
// The event is reset to zero values before being pooled.
func ReleaseBookUpdateEvent(ev *BookUpdateEvent) {
	if ev == nil {
		return
	}
	ev.Seq = 0
	ev.Ts = 0
	ev.Snapshot.Bids = nil
	ev.Snapshot.Asks = nil

	bookUpdatePool.Put(ev)
}

// Warmup pre-allocates event objects to reduce GC pressure at startup.
func Warmup() {
	const batchSize = 1000

	evs := make([]*BookUpdateEvent, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		evs = append(evs, AcquireBookUpdateEvent())
	}
	for _, ev := range evs {
		ReleaseBookUpdateEvent(ev)
	}
}
