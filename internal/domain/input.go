package domain

// InputField identifies one user-editable parameter. The calculation
// engine keys its trigger table on these values.
type InputField int

const (
	FieldExchange InputField = iota
	FieldAsset
	FieldOrderType
	FieldOrderSide
	FieldFeeTier
	FieldQuantity
	FieldUSDAmount
	FieldManualVolatility
	FieldVolatilityOverride
)

// String returns the string representation of InputField
func (f InputField) String() string {
	switch f {
	case FieldExchange:
		return "exchange"
	case FieldAsset:
		return "asset"
	case FieldOrderType:
		return "order_type"
	case FieldOrderSide:
		return "order_side"
	case FieldFeeTier:
		return "fee_tier"
	case FieldQuantity:
		return "quantity"
	case FieldUSDAmount:
		return "usd_amount"
	case FieldManualVolatility:
		return "manual_volatility"
	case FieldVolatilityOverride:
		return "volatility_override"
	default:
		return "unknown"
	}
}

// InputState holds the user-selected order parameters. It is owned and
// mutated only by the calculation engine goroutine; external callers
// change it by sending input events through the engine inbox.
type InputState struct {
	Exchange         Exchange
	Asset            SpotAsset
	OrderType        OrderType
	OrderSide        OrderSide
	FeeTier          FeeTier
	Quantity         float64
	USDAmount        float64
	ManualVolatility float64
	// VolatilityOverride selects ManualVolatility over the book-derived
	// volatility. Flipping the flag alone does not trigger a recompute.
	VolatilityOverride bool
}

// DefaultInputState returns the state used before any user interaction.
func DefaultInputState() InputState {
	return InputState{
		Exchange:  ExchangeOKX,
		Asset:     AssetBTCUSDTSwap,
		OrderType: OrderMarket,
		OrderSide: SideBuy,
		FeeTier:   TierVIP0,
	}
}
