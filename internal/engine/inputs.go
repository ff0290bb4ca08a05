package engine

import (
	"time"

	"quantcost/internal/domain"
	"quantcost/internal/event"
)

// Input setters. Each enqueues a field change onto the inbox; equality
// checks run on the engine goroutine against the state it owns, so a
// setter called with the current value triggers nothing.

func (e *Engine) sendInput(field domain.InputField, apply func(*domain.InputState) bool) {
	e.inbox <- &event.InputChangeEvent{
		BaseEvent: event.BaseEvent{Ts: time.Now().UnixMilli()},
		Field:     field,
		Apply:     apply,
	}
}

// SetExchange selects the venue whose cost model prices the estimate.
func (e *Engine) SetExchange(x domain.Exchange) {
	e.sendInput(domain.FieldExchange, func(s *domain.InputState) bool {
		if s.Exchange == x {
			return false
		}
		s.Exchange = x
		return true
	})
}

// SetAsset selects the swap symbol.
func (e *Engine) SetAsset(a domain.SpotAsset) {
	e.sendInput(domain.FieldAsset, func(s *domain.InputState) bool {
		if s.Asset == a {
			return false
		}
		s.Asset = a
		return true
	})
}

// SetOrderType selects the order type.
func (e *Engine) SetOrderType(t domain.OrderType) {
	e.sendInput(domain.FieldOrderType, func(s *domain.InputState) bool {
		if s.OrderType == t {
			return false
		}
		s.OrderType = t
		return true
	})
}

// SetOrderSide selects buy or sell.
func (e *Engine) SetOrderSide(side domain.OrderSide) {
	e.sendInput(domain.FieldOrderSide, func(s *domain.InputState) bool {
		if s.OrderSide == side {
			return false
		}
		s.OrderSide = side
		return true
	})
}

// SetFeeTier selects the fee tier.
func (e *Engine) SetFeeTier(t domain.FeeTier) {
	e.sendInput(domain.FieldFeeTier, func(s *domain.InputState) bool {
		if s.FeeTier == t {
			return false
		}
		s.FeeTier = t
		return true
	})
}

// SetQuantity sets the order quantity.
func (e *Engine) SetQuantity(q float64) {
	e.sendInput(domain.FieldQuantity, func(s *domain.InputState) bool {
		if s.Quantity == q {
			return false
		}
		s.Quantity = q
		return true
	})
}

// SetUSDAmount sets the USD budget of the hypothetical order.
func (e *Engine) SetUSDAmount(v float64) {
	e.sendInput(domain.FieldUSDAmount, func(s *domain.InputState) bool {
		if s.USDAmount == v {
			return false
		}
		s.USDAmount = v
		return true
	})
}

// SetManualVolatility sets the manual volatility value (a percentage).
func (e *Engine) SetManualVolatility(v float64) {
	e.sendInput(domain.FieldManualVolatility, func(s *domain.InputState) bool {
		if s.ManualVolatility == v {
			return false
		}
		s.ManualVolatility = v
		return true
	})
}

// SetVolatilityOverride toggles manual volatility. The flag alone does
// not recompute; the next qualifying trigger uses the new setting.
func (e *Engine) SetVolatilityOverride(enabled bool) {
	e.sendInput(domain.FieldVolatilityOverride, func(s *domain.InputState) bool {
		if s.VolatilityOverride == enabled {
			return false
		}
		s.VolatilityOverride = enabled
		return true
	})
}

// Calculate raises the explicit recompute signal.
func (e *Engine) Calculate() {
	e.inbox <- &event.CalcRequestEvent{
		BaseEvent: event.BaseEvent{Ts: time.Now().UnixMilli()},
	}
}
