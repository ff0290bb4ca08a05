package model

import "quantcost/internal/domain"

// CostModel is the per-exchange capability set the calculation engine
// drives. All methods are pure functions of their inputs; the only state
// a model carries is its fixed fee schedule.
type CostModel interface {
	Exchange() domain.Exchange

	// VolatilityFromBook estimates micro-intraday volatility (a
	// percentage) from a single order-book snapshot.
	VolatilityFromBook(bids, asks []domain.BookLevel) float64

	// FeeRate returns the maker or taker fee rate (a percentage) for the
	// given tier. Unknown tiers fall back to the lowest tier's rates.
	FeeRate(orderAmount float64, tier domain.FeeTier, isTaker bool) float64

	// VWAPCost walks one side of the book in arrival order and returns
	// the average execution price per unit for the requested quantity.
	VWAPCost(quantity float64, side []domain.BookLevel) float64

	// Slippage returns the adverse price movement (a percentage, never
	// negative) of a market order versus the best quoted price. Non-market
	// order types yield 0.
	Slippage(quantity float64, bids, asks []domain.BookLevel, orderType domain.OrderType, side domain.OrderSide) float64

	// MarketImpact estimates the price impact of the order itself via a
	// simplified Almgren-Chriss formulation.
	MarketImpact(quantity, volatilityPct float64, bids, asks []domain.BookLevel) float64

	// MakerRatio classifies the maker/taker mix with a logistic model.
	// Output is strictly between 0 and 1 for a non-degenerate book.
	MakerRatio(bids, asks []domain.BookLevel) float64
}

// Registry maps exchange identifiers to their cost models. It is built
// once at startup and injected into the engine; an exchange without a
// model simply has no entry, which the engine treats as a no-op.
type Registry struct {
	models map[domain.Exchange]CostModel
}

// NewRegistry creates a registry from the given models.
func NewRegistry(models ...CostModel) *Registry {
	r := &Registry{models: make(map[domain.Exchange]CostModel, len(models))}
	for _, m := range models {
		r.models[m.Exchange()] = m
	}
	return r
}

// Lookup returns the model for an exchange, or false when the exchange
// has none wired.
func (r *Registry) Lookup(ex domain.Exchange) (CostModel, bool) {
	m, ok := r.models[ex]
	return m, ok
}
