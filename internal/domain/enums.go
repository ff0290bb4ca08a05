package domain

// Exchange identifies the venue a cost model is selected for.
type Exchange int

const (
	ExchangeNone Exchange = iota
	ExchangeOKX
	ExchangeBinance
	ExchangeCoinbase
	ExchangeMEXC
)

// String returns the string representation of Exchange
func (e Exchange) String() string {
	switch e {
	case ExchangeOKX:
		return "OKX"
	case ExchangeBinance:
		return "BINANCE"
	case ExchangeCoinbase:
		return "COINBASE"
	case ExchangeMEXC:
		return "MEXC"
	default:
		return "Unknown"
	}
}

// ParseExchange converts a string to an Exchange. Unrecognized values
// fall back to OKX, the only venue with a concrete model today.
func ParseExchange(s string) Exchange {
	switch s {
	case "BINANCE":
		return ExchangeBinance
	case "COINBASE":
		return ExchangeCoinbase
	case "MEXC":
		return ExchangeMEXC
	}
	return ExchangeOKX
}

// AllExchanges lists the venues exposed to the selection UI.
func AllExchanges() []string {
	return []string{"OKX", "BINANCE", "COINBASE", "MEXC"}
}

// SpotAsset is one of the fixed set of swap symbols the feed can serve.
type SpotAsset int

const (
	AssetBTCUSDTSwap SpotAsset = iota
	AssetETHUSDTSwap
	AssetSOLUSDTSwap
	AssetXRPUSDTSwap
	AssetADAUSDTSwap
	AssetDOTUSDTSwap
)

// String returns the string representation of SpotAsset
func (a SpotAsset) String() string {
	switch a {
	case AssetBTCUSDTSwap:
		return "BTC-USDT-SWAP"
	case AssetETHUSDTSwap:
		return "ETH-USDT-SWAP"
	case AssetSOLUSDTSwap:
		return "SOL-USDT-SWAP"
	case AssetXRPUSDTSwap:
		return "XRP-USDT-SWAP"
	case AssetADAUSDTSwap:
		return "ADA-USDT-SWAP"
	case AssetDOTUSDTSwap:
		return "DOT-USDT-SWAP"
	default:
		return "Unknown"
	}
}

// ParseSpotAsset converts a string to a SpotAsset, defaulting to BTC-USDT-SWAP.
func ParseSpotAsset(s string) SpotAsset {
	switch s {
	case "ETH-USDT-SWAP":
		return AssetETHUSDTSwap
	case "SOL-USDT-SWAP":
		return AssetSOLUSDTSwap
	case "XRP-USDT-SWAP":
		return AssetXRPUSDTSwap
	case "ADA-USDT-SWAP":
		return AssetADAUSDTSwap
	case "DOT-USDT-SWAP":
		return AssetDOTUSDTSwap
	}
	return AssetBTCUSDTSwap
}

// AllSpotAssets lists the tradable swap symbols.
func AllSpotAssets() []string {
	return []string{
		"BTC-USDT-SWAP", "ETH-USDT-SWAP", "SOL-USDT-SWAP",
		"XRP-USDT-SWAP", "ADA-USDT-SWAP", "DOT-USDT-SWAP",
	}
}

// OrderType is the kind of order the estimate is computed for.
// Slippage applies to market orders only.
type OrderType int

const (
	OrderMarket OrderType = iota
	OrderLimit
	OrderStopLoss
	OrderTakeProfit
	OrderTrailingStopMarket
	OrderTrailingStopLimit
)

// String returns the string representation of OrderType
func (o OrderType) String() string {
	switch o {
	case OrderMarket:
		return "market"
	case OrderLimit:
		return "limit"
	case OrderStopLoss:
		return "stop_loss"
	case OrderTakeProfit:
		return "take_profit"
	case OrderTrailingStopMarket:
		return "trailing_stop_market"
	case OrderTrailingStopLimit:
		return "trailing_stop_limit"
	default:
		return "Unknown"
	}
}

// ParseOrderType converts a string to an OrderType, defaulting to market.
func ParseOrderType(s string) OrderType {
	switch s {
	case "limit":
		return OrderLimit
	case "stop_loss":
		return OrderStopLoss
	case "take_profit":
		return OrderTakeProfit
	case "trailing_stop_market":
		return OrderTrailingStopMarket
	case "trailing_stop_limit":
		return OrderTrailingStopLimit
	}
	return OrderMarket
}

// AllOrderTypes lists the supported order types.
func AllOrderTypes() []string {
	return []string{
		"market", "limit", "stop_loss", "take_profit",
		"trailing_stop_market", "trailing_stop_limit",
	}
}

// OrderSide is the direction of the hypothetical order.
type OrderSide int

const (
	SideBuy OrderSide = iota
	SideSell
)

// String returns the string representation of OrderSide
func (s OrderSide) String() string {
	if s == SideSell {
		return "SELL"
	}
	return "BUY"
}

// ParseOrderSide converts a string to an OrderSide, defaulting to buy.
func ParseOrderSide(s string) OrderSide {
	if s == "SELL" || s == "sell" {
		return SideSell
	}
	return SideBuy
}

// FeeTier is a 30-day-volume fee bracket. The full schedule runs VIP 0
// through VIP 9 even though the options list only surfaces VIP 0-5.
type FeeTier int

const (
	TierVIP0 FeeTier = iota
	TierVIP1
	TierVIP2
	TierVIP3
	TierVIP4
	TierVIP5
	TierVIP6
	TierVIP7
	TierVIP8
	TierVIP9
)

// String returns the string representation of FeeTier
func (t FeeTier) String() string {
	switch t {
	case TierVIP0:
		return "VIP 0"
	case TierVIP1:
		return "VIP 1"
	case TierVIP2:
		return "VIP 2"
	case TierVIP3:
		return "VIP 3"
	case TierVIP4:
		return "VIP 4"
	case TierVIP5:
		return "VIP 5"
	case TierVIP6:
		return "VIP 6"
	case TierVIP7:
		return "VIP 7"
	case TierVIP8:
		return "VIP 8"
	case TierVIP9:
		return "VIP 9"
	default:
		return "Unknown"
	}
}

// ParseFeeTier converts a string to a FeeTier, defaulting to VIP 0.
func ParseFeeTier(s string) FeeTier {
	switch s {
	case "VIP 1":
		return TierVIP1
	case "VIP 2":
		return TierVIP2
	case "VIP 3":
		return TierVIP3
	case "VIP 4":
		return TierVIP4
	case "VIP 5":
		return TierVIP5
	case "VIP 6":
		return TierVIP6
	case "VIP 7":
		return TierVIP7
	case "VIP 8":
		return TierVIP8
	case "VIP 9":
		return TierVIP9
	}
	return TierVIP0
}

// AllFeeTiers lists the tiers surfaced in the options list. The fee
// schedule itself still covers VIP 6-9; selections of those tiers keep
// working when set programmatically.
func AllFeeTiers() []string {
	return []string{"VIP 0", "VIP 1", "VIP 2", "VIP 3", "VIP 4", "VIP 5"}
}
