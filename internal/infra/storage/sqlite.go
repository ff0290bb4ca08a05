package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"quantcost/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage persists user preferences between sessions. Order-book data is
// never stored here; only the last-used input selections survive a restart.
type Storage struct {
	db *gorm.DB
}

var _ domain.PreferencesRepository = (*Storage)(nil)

// NewStorage creates a new SQLite storage instance at the platform
// config path.
func NewStorage() (*Storage, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve DB path: %w", err)
	}
	return NewStorageAt(dbPath)
}

// NewStorageAt creates a storage instance at an explicit path (tests).
func NewStorageAt(dbPath string) (*Storage, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Preferences{}, &domain.AppConfig{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "QuantCost", "data", "quantcost.db"), nil
}

// SavePreferences writes the last-used input selections. Monetary values
// arrive as floats from the input state and are stored as exact decimal
// strings.
func (s *Storage) SavePreferences(in domain.InputState) error {
	prefs := domain.Preferences{
		ID:               1, // single row
		Exchange:         in.Exchange.String(),
		Asset:            in.Asset.String(),
		OrderType:        in.OrderType.String(),
		OrderSide:        in.OrderSide.String(),
		FeeTier:          in.FeeTier.String(),
		Quantity:         decimal.NewFromFloat(in.Quantity).String(),
		USDAmount:        decimal.NewFromFloat(in.USDAmount).String(),
		ManualVolatility: decimal.NewFromFloat(in.ManualVolatility).String(),
	}
	return s.db.Save(&prefs).Error
}

// LoadPreferences restores the persisted input selections, or returns
// the defaults when nothing has been saved yet.
func (s *Storage) LoadPreferences() (domain.InputState, error) {
	state := domain.DefaultInputState()

	var prefs domain.Preferences
	err := s.db.First(&prefs, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return state, nil
	}
	if err != nil {
		return state, err
	}

	state.Exchange = domain.ParseExchange(prefs.Exchange)
	state.Asset = domain.ParseSpotAsset(prefs.Asset)
	state.OrderType = domain.ParseOrderType(prefs.OrderType)
	state.OrderSide = domain.ParseOrderSide(prefs.OrderSide)
	state.FeeTier = domain.ParseFeeTier(prefs.FeeTier)
	state.Quantity = parseDecimalFloat(prefs.Quantity)
	state.USDAmount = parseDecimalFloat(prefs.USDAmount)
	state.ManualVolatility = parseDecimalFloat(prefs.ManualVolatility)
	return state, nil
}

func parseDecimalFloat(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// SetConfigValue stores an arbitrary key-value configuration entry.
func (s *Storage) SetConfigValue(key, value string) error {
	return s.db.Save(&domain.AppConfig{Key: key, Value: value}).Error
}

// GetConfigValue retrieves a configuration entry; missing keys return "".
func (s *Storage) GetConfigValue(key string) (string, error) {
	var entry domain.AppConfig
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	return entry.Value, err
}

// GetConfigBool retrieves a boolean configuration entry.
func (s *Storage) GetConfigBool(key string) (bool, error) {
	v, err := s.GetConfigValue(key)
	if err != nil || v == "" {
		return false, err
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}
