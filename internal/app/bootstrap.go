package app

import (
	"log/slog"

	"quantcost/internal/domain"
	"quantcost/internal/infra"
	"quantcost/internal/infra/storage"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config      *infra.Config
	Storage     *storage.Storage
	Credentials infra.Credentials
	Inputs      domain.InputState
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization (config, logger, DB).
func (b *Bootstrap) Initialize(configPath string) error {
	// 1. Load Config
	cfg, err := infra.LoadConfig(configPath)
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Resolve API credentials (env first, then config.json)
	b.Credentials = infra.LoadCredentials()
	if b.Credentials.APIKey == "" {
		slog.Warn("no API credentials resolved; private endpoints unavailable")
	}

	// 4. Initialize Storage (DB)
	store, err := storage.NewStorage()
	if err != nil {
		return err
	}
	b.Storage = store
	slog.Info("database initialized")

	// 5. Restore last-used inputs, seeded from config defaults when the
	// preferences table is still empty.
	inputs, err := store.LoadPreferences()
	if err != nil {
		slog.Warn("failed to load preferences, using defaults", slog.Any("error", err))
		inputs = domain.DefaultInputState()
	}
	b.Inputs = applyConfigDefaults(inputs, cfg)

	return nil
}

// applyConfigDefaults fills unset monetary fields from the config file.
// Persisted selections win over config defaults.
func applyConfigDefaults(in domain.InputState, cfg *infra.Config) domain.InputState {
	if cfg.Defaults.Exchange != "" && in == domain.DefaultInputState() {
		in.Exchange = domain.ParseExchange(cfg.Defaults.Exchange)
		in.Asset = domain.ParseSpotAsset(cfg.Defaults.Asset)
		in.OrderType = domain.ParseOrderType(cfg.Defaults.OrderType)
		in.OrderSide = domain.ParseOrderSide(cfg.Defaults.OrderSide)
		in.FeeTier = domain.ParseFeeTier(cfg.Defaults.FeeTier)
	}
	if in.Quantity == 0 {
		in.Quantity = cfg.Defaults.Quantity
	}
	if in.USDAmount == 0 {
		in.USDAmount = cfg.Defaults.USDAmount
	}
	return in
}

// SavePreferences persists the current input selections for next start.
func (b *Bootstrap) SavePreferences(in domain.InputState) {
	if b.Storage == nil {
		return
	}
	if err := b.Storage.SavePreferences(in); err != nil {
		slog.Warn("failed to save preferences", slog.Any("error", err))
	}
}
