package domain

// CostEstimate is the all-in execution cost estimate for the current
// inputs against the current book. It is immutable once produced; the
// results sink replaces the whole value atomically, never field by field.
type CostEstimate struct {
	VolatilityPct    float64 `json:"volatility_pct"`
	FeePct           float64 `json:"fee_pct"`
	FeeUSD           float64 `json:"fee_usd"`
	SlippagePct      float64 `json:"slippage_pct"`
	SlippageUSD      float64 `json:"slippage_usd"`
	MarketImpactPct  float64 `json:"market_impact_pct"`
	MarketImpactUSD  float64 `json:"market_impact_usd"`
	MakerRatio       float64 `json:"maker_ratio"`
	NetCostUSD       float64 `json:"net_cost_usd"`
	CryptoAmount     float64 `json:"crypto_amount"`
	ProcessingTimeMS float64 `json:"processing_time_ms"`
}
