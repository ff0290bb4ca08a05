package model

import (
	"math"
	"sort"

	"quantcost/internal/domain"
)

const (
	// depthLevels is the number of levels per side summed for the
	// volatility depth estimate.
	depthLevels = 10

	// impactCoefficient is the Almgren-Chriss market impact coefficient.
	// Placeholder value; calibrate against empirical fill data.
	impactCoefficient = 0.1

	// advHours scales instantaneous depth to a daily-volume proxy.
	advHours = 24.0
)

// FeeRates holds maker/taker fee rates as percentages.
type FeeRates struct {
	MakerPct float64
	TakerPct float64
}

// FeeSchedule maps fee tiers to maker/taker rates, fixed per exchange.
type FeeSchedule map[domain.FeeTier]FeeRates

// OKX implements CostModel with the OKX fee schedule and the reference
// book-derived cost algorithms.
type OKX struct {
	fees FeeSchedule
}

// NewOKX creates the OKX cost model with its published fee tiers
// (maker, taker, in percent, keyed by 30-day volume tier).
func NewOKX() *OKX {
	return &OKX{
		fees: FeeSchedule{
			domain.TierVIP0: {0.0800, 0.1000},
			domain.TierVIP1: {0.0700, 0.0900},
			domain.TierVIP2: {0.0650, 0.0800},
			domain.TierVIP3: {0.0600, 0.0750},
			domain.TierVIP4: {0.0550, 0.0700},
			domain.TierVIP5: {0.0500, 0.0600},
			domain.TierVIP6: {0.0450, 0.0550},
			domain.TierVIP7: {0.0400, 0.0500},
			domain.TierVIP8: {0.0350, 0.0450},
			domain.TierVIP9: {0.0300, 0.0400},
		},
	}
}

// Exchange returns the venue this model prices.
func (m *OKX) Exchange() domain.Exchange { return domain.ExchangeOKX }

// sortedByBest filters out non-positive prices and returns a copy sorted
// best-price-first: descending for bids, ascending for asks. The feed
// does not guarantee sorted levels, so every best-price read goes
// through here.
func sortedByBest(levels []domain.BookLevel, isBid bool) []domain.BookLevel {
	out := make([]domain.BookLevel, 0, len(levels))
	for _, l := range levels {
		if l.PriceF() > 0 {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if isBid {
			return out[i].PriceF() > out[j].PriceF()
		}
		return out[i].PriceF() < out[j].PriceF()
	})
	return out
}

// spreadAndImbalance computes the two microstructure factors shared by
// the volatility estimate and the maker classifier. maxLevels caps the
// depth sums (0 means the entire book). ok is false for a degenerate
// book (either side empty or best price non-positive).
func spreadAndImbalance(bids, asks []domain.BookLevel, maxLevels int) (spread, imbalance float64, ok bool) {
	sortedBids := sortedByBest(bids, true)
	sortedAsks := sortedByBest(asks, false)
	if len(sortedBids) == 0 || len(sortedAsks) == 0 {
		return 0, 0, false
	}

	bestBid := sortedBids[0].PriceF()
	bestAsk := sortedAsks[0].PriceF()
	if bestBid <= 0 || bestAsk <= 0 {
		return 0, 0, false
	}

	mid := (bestBid + bestAsk) / 2.0
	spread = (bestAsk - bestBid) / mid

	bidDepth := sumAmounts(sortedBids, maxLevels)
	askDepth := sumAmounts(sortedAsks, maxLevels)

	// A book with zero resting size on both sides is balanced, not NaN.
	if total := bidDepth + askDepth; total > 0 {
		imbalance = math.Abs(bidDepth-askDepth) / total
	}
	return spread, imbalance, true
}

func sumAmounts(levels []domain.BookLevel, maxLevels int) float64 {
	n := len(levels)
	if maxLevels > 0 && maxLevels < n {
		n = maxLevels
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += levels[i].AmountF()
	}
	return sum
}

// VolatilityFromBook estimates volatility from spread and top-of-book
// imbalance: (spread*2.0 + imbalance*1.5) * 100. A single snapshot has
// no time series to derive a return-based measure from, so this stands
// in for intraday volatility.
func (m *OKX) VolatilityFromBook(bids, asks []domain.BookLevel) float64 {
	spread, imbalance, ok := spreadAndImbalance(bids, asks, depthLevels)
	if !ok {
		return 0
	}
	return (spread*2.0 + imbalance*1.5) * 100.0
}

// FeeRate looks up the maker or taker rate for the tier. The order
// amount is unused today; a production tier would derive from realized
// 30-day volume instead of user selection.
func (m *OKX) FeeRate(orderAmount float64, tier domain.FeeTier, isTaker bool) float64 {
	rates, found := m.fees[tier]
	if !found {
		rates = m.fees[domain.TierVIP0]
	}
	if isTaker {
		return rates.TakerPct
	}
	return rates.MakerPct
}

// VWAPCost simulates filling quantity against one side of the book in
// arrival order, consuming min(remaining, level amount) per level.
// Returns total cost / requested quantity; an exhausted book leaves the
// unfilled remainder unaccounted.
func (m *OKX) VWAPCost(quantity float64, side []domain.BookLevel) float64 {
	if quantity <= 0 {
		return 0
	}

	totalCost := 0.0
	remaining := quantity
	for _, level := range side {
		if remaining <= 0 {
			break
		}
		price := level.PriceF()
		if price <= 0 {
			continue
		}
		executed := math.Min(remaining, level.AmountF())
		totalCost += executed * price
		remaining -= executed
	}
	return totalCost / quantity
}

// Slippage compares the simulated VWAP fill price against the best
// quoted price on the relevant side. Only market orders slip; favorable
// differences report as 0, never negative.
func (m *OKX) Slippage(quantity float64, bids, asks []domain.BookLevel, orderType domain.OrderType, side domain.OrderSide) float64 {
	if orderType != domain.OrderMarket {
		return 0
	}

	walkSide := asks
	refSide := sortedByBest(asks, false)
	if side == domain.SideSell {
		walkSide = bids
		refSide = sortedByBest(bids, true)
	}
	if len(refSide) == 0 {
		return 0
	}
	reference := refSide[0].PriceF()
	if reference <= 0 {
		return 0
	}

	cost := m.VWAPCost(quantity, walkSide)

	var slippage float64
	if side == domain.SideBuy {
		slippage = ((cost - reference) / reference) * 100.0
	} else {
		slippage = ((reference - cost) / reference) * 100.0
	}
	return math.Max(0, slippage)
}

// MarketImpact applies a simplified Almgren-Chriss model:
// impact = c * sigma * sqrt(Q/V) * (Q/ADV), with instantaneous ask-side
// depth standing in for liquidity and ADV approximated as depth*24.
// volatilityPct is the effective volatility already resolved by the
// caller (manual override or book-derived).
func (m *OKX) MarketImpact(quantity, volatilityPct float64, bids, asks []domain.BookLevel) float64 {
	if quantity <= 0 {
		return 0
	}

	sigma := volatilityPct / 100.0

	var marketDepth float64
	for _, level := range asks {
		if level.PriceF() <= 0 {
			continue
		}
		marketDepth += level.AmountF()
	}
	adv := marketDepth * advHours

	if marketDepth <= 0 || adv <= 0 {
		return 0
	}
	return impactCoefficient * sigma * math.Sqrt(quantity/marketDepth) * (quantity / adv)
}

// MakerRatio runs a logistic classifier over spread and whole-book
// imbalance: 1 / (1 + e^-x) with x = 0.5 - 2.0*spread + 1.5*imbalance.
// Wider spreads favor takers; imbalance opens maker opportunities. The
// coefficients are placeholders for a trained model.
func (m *OKX) MakerRatio(bids, asks []domain.BookLevel) float64 {
	spread, imbalance, ok := spreadAndImbalance(bids, asks, 0)
	if !ok {
		return 0
	}
	x := 0.5 - 2.0*spread + 1.5*imbalance
	return 1.0 / (1.0 + math.Exp(-x))
}
