package event

import "quantcost/internal/domain"

// Event is the unit of work delivered to the calculation engine inbox.
// Book events carry the receipt-order sequence assigned by the ingestor.
type Event interface {
	GetSeq() uint64
	GetType() string
}

// BaseEvent carries the fields shared by all events.
type BaseEvent struct {
	Seq uint64 // receipt-order sequence (0 for input/calc events)
	Ts  int64  // unix milliseconds at creation
}

func (e BaseEvent) GetSeq() uint64 { return e.Seq }

// BookUpdateEvent replaces the order-book snapshot wholesale.
type BookUpdateEvent struct {
	BaseEvent
	Snapshot domain.OrderbookSnapshot
}

func (e *BookUpdateEvent) GetType() string { return "book_update" }

// InputChangeEvent mutates one field of the input state. Apply runs on
// the engine goroutine and reports whether the value actually changed;
// unchanged values produce neither a state write nor a recompute.
type InputChangeEvent struct {
	BaseEvent
	Field domain.InputField
	Apply func(*domain.InputState) bool
}

func (e *InputChangeEvent) GetType() string { return "input_change" }

// CalcRequestEvent is the explicit "calculate" signal from the input owner.
type CalcRequestEvent struct {
	BaseEvent
}

func (e *CalcRequestEvent) GetType() string { return "calc_request" }

// FeedErrorEvent reports a dropped feed message or a transport failure.
// The prior snapshot is left untouched.
type FeedErrorEvent struct {
	BaseEvent
	Err error
}

func (e *FeedErrorEvent) GetType() string { return "feed_error" }
