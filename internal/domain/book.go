package domain

import "strconv"

// BookLevel is a single resting order-book level. Price and amount stay
// as the exchange's decimal strings; they are parsed to float64 only at
// the point of use so storage never drifts from the wire representation.
type BookLevel struct {
	Price  string `json:"price"`
	Amount string `json:"amount"`
}

// PriceF returns the level price as float64 (0 on malformed input).
func (l BookLevel) PriceF() float64 {
	v, err := strconv.ParseFloat(l.Price, 64)
	if err != nil {
		return 0
	}
	return v
}

// AmountF returns the level amount as float64 (0 on malformed input).
func (l BookLevel) AmountF() float64 {
	v, err := strconv.ParseFloat(l.Amount, 64)
	if err != nil {
		return 0
	}
	return v
}

// OrderbookSnapshot is a full replacement view of current resting bid/ask
// levels. Each ingest replaces the prior snapshot wholesale; there is no
// incremental merge. Levels keep feed arrival order.
type OrderbookSnapshot struct {
	Bids []BookLevel `json:"bids"`
	Asks []BookLevel `json:"asks"`
}

// IsEmpty reports whether the snapshot has no levels on either side.
func (s OrderbookSnapshot) IsEmpty() bool {
	return len(s.Bids) == 0 && len(s.Asks) == 0
}
