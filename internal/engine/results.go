package engine

import (
	"sync"

	"quantcost/internal/domain"
)

// ResultsSink holds the latest cost estimate and notifies subscribers
// when it changes. Publish compares every field with exact equality and
// coalesces all differences into one change notification. Bit-for-bit
// equal estimates are suppressed, "close" ones are not.
type ResultsSink struct {
	mu          sync.RWMutex
	current     domain.CostEstimate
	subscribers []func(domain.CostEstimate)
}

// NewResultsSink creates an empty sink.
func NewResultsSink() *ResultsSink {
	return &ResultsSink{}
}

// Subscribe registers a callback invoked (on the publishing goroutine)
// whenever any field of the estimate changes.
func (s *ResultsSink) Subscribe(fn func(domain.CostEstimate)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Publish replaces the held estimate. Fields are compared individually;
// a single notification fires if any of them differed.
func (s *ResultsSink) Publish(estimate domain.CostEstimate) {
	s.mu.Lock()
	changed := s.current.VolatilityPct != estimate.VolatilityPct ||
		s.current.FeePct != estimate.FeePct ||
		s.current.FeeUSD != estimate.FeeUSD ||
		s.current.SlippagePct != estimate.SlippagePct ||
		s.current.SlippageUSD != estimate.SlippageUSD ||
		s.current.MarketImpactPct != estimate.MarketImpactPct ||
		s.current.MarketImpactUSD != estimate.MarketImpactUSD ||
		s.current.MakerRatio != estimate.MakerRatio ||
		s.current.NetCostUSD != estimate.NetCostUSD ||
		s.current.CryptoAmount != estimate.CryptoAmount ||
		s.current.ProcessingTimeMS != estimate.ProcessingTimeMS
	if changed {
		s.current = estimate
	}
	subs := s.subscribers
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(estimate)
	}
}

// Current returns the latest published estimate.
func (s *ResultsSink) Current() domain.CostEstimate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
