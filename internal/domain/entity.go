package domain

import (
	"time"
)

// Preferences holds the last user-selected inputs so a restart resumes
// where the trader left off. Monetary fields are stored as decimal
// strings to avoid float round-tripping through the database.
type Preferences struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Exchange         string    `json:"exchange"`
	Asset            string    `json:"asset"`
	OrderType        string    `json:"order_type"`
	OrderSide        string    `json:"order_side"`
	FeeTier          string    `json:"fee_tier"`
	Quantity         string    `json:"quantity"`
	USDAmount        string    `json:"usd_amount"`
	ManualVolatility string    `json:"manual_volatility"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AppConfig represents user-specific configuration (Key-Value)
type AppConfig struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
