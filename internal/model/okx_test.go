package model

import (
	"math"
	"testing"

	"quantcost/internal/domain"
)

func level(price, amount string) domain.BookLevel {
	return domain.BookLevel{Price: price, Amount: amount}
}

// The reference book used across tests:
// bids (100, 2), (99, 3); asks (101, 1), (102, 5).
func referenceBook() (bids, asks []domain.BookLevel) {
	bids = []domain.BookLevel{level("100", "2"), level("99", "3")}
	asks = []domain.BookLevel{level("101", "1"), level("102", "5")}
	return bids, asks
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestVolatilityFromBook(t *testing.T) {
	m := NewOKX()
	bids, asks := referenceBook()

	// spread = 1/100.5, imbalance = |5-6|/11
	got := m.VolatilityFromBook(bids, asks)
	want := (1.0/100.5*2.0 + 1.0/11.0*1.5) * 100.0
	if !almostEqual(got, want, 1e-9) {
		t.Errorf("VolatilityFromBook = %v, want %v", got, want)
	}
	if !almostEqual(got, 15.6264, 1e-3) {
		t.Errorf("VolatilityFromBook = %v, want ~15.63", got)
	}
}

func TestVolatilityFromBook_Degenerate(t *testing.T) {
	m := NewOKX()
	bids, asks := referenceBook()

	tests := []struct {
		name string
		bids []domain.BookLevel
		asks []domain.BookLevel
	}{
		{"empty bids", nil, asks},
		{"empty asks", bids, nil},
		{"both empty", nil, nil},
		{"zero prices only", []domain.BookLevel{level("0", "5")}, asks},
		{"negative prices only", []domain.BookLevel{level("-1", "5")}, asks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.VolatilityFromBook(tt.bids, tt.asks); got != 0 {
				t.Errorf("VolatilityFromBook = %v, want 0", got)
			}
		})
	}
}

func TestVolatilityFromBook_UnsortedInput(t *testing.T) {
	m := NewOKX()
	// Same book with shuffled arrival order must match.
	bids := []domain.BookLevel{level("99", "3"), level("100", "2")}
	asks := []domain.BookLevel{level("102", "5"), level("101", "1")}

	sortedBids, sortedAsks := referenceBook()
	if got, want := m.VolatilityFromBook(bids, asks), m.VolatilityFromBook(sortedBids, sortedAsks); got != want {
		t.Errorf("unsorted book volatility = %v, sorted = %v", got, want)
	}
}

func TestFeeRate(t *testing.T) {
	m := NewOKX()

	tests := []struct {
		name    string
		tier    domain.FeeTier
		isTaker bool
		want    float64
	}{
		{"VIP 0 taker", domain.TierVIP0, true, 0.1000},
		{"VIP 0 maker", domain.TierVIP0, false, 0.0800},
		{"VIP 5 taker", domain.TierVIP5, true, 0.0600},
		{"VIP 9 maker", domain.TierVIP9, false, 0.0300},
		{"unknown tier falls back to VIP 0", domain.FeeTier(42), true, 0.1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.FeeRate(1000, tt.tier, tt.isTaker); got != tt.want {
				t.Errorf("FeeRate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVWAPCost(t *testing.T) {
	m := NewOKX()
	_, asks := referenceBook()

	tests := []struct {
		name     string
		quantity float64
		want     float64
	}{
		{"zero quantity", 0, 0},
		{"negative quantity", -1, 0},
		{"single level", 1, 101},
		{"spans levels", 2, (101 + 102) / 2.0},
		{"full book", 6, (101*1 + 102*5) / 6.0},
		{"exhausted book leaves remainder unaccounted", 12, (101*1 + 102*5) / 12.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.VWAPCost(tt.quantity, asks)
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("VWAPCost(%v) = %v, want %v", tt.quantity, got, tt.want)
			}
		})
	}
}

func TestVWAPCost_NonDecreasingInQuantity(t *testing.T) {
	m := NewOKX()
	_, asks := referenceBook()

	prev := 0.0
	for q := 0.5; q <= 8; q += 0.5 {
		got := m.VWAPCost(q, asks)
		if got < prev {
			t.Fatalf("VWAPCost(%v) = %v, decreased from %v", q, got, prev)
		}
		prev = got
	}
}

func TestVWAPCost_SkipsNonPositivePrices(t *testing.T) {
	m := NewOKX()
	asks := []domain.BookLevel{level("0", "100"), level("-5", "100"), level("101", "2")}

	if got := m.VWAPCost(1, asks); !almostEqual(got, 101, 1e-9) {
		t.Errorf("VWAPCost = %v, want 101", got)
	}
}

func TestSlippage(t *testing.T) {
	m := NewOKX()
	bids, asks := referenceBook()

	t.Run("buy market order", func(t *testing.T) {
		// VWAP for 6 units = 611/6, reference = best ask 101.
		got := m.Slippage(6, bids, asks, domain.OrderMarket, domain.SideBuy)
		want := (611.0/6.0 - 101.0) / 101.0 * 100.0
		if !almostEqual(got, want, 1e-9) {
			t.Errorf("Slippage = %v, want %v", got, want)
		}
	})

	t.Run("sell market order", func(t *testing.T) {
		// VWAP for 5 units = (100*2 + 99*3)/5, reference = best bid 100.
		got := m.Slippage(5, bids, asks, domain.OrderMarket, domain.SideSell)
		want := (100.0 - 497.0/5.0) / 100.0 * 100.0
		if !almostEqual(got, want, 1e-9) {
			t.Errorf("Slippage = %v, want %v", got, want)
		}
	})

	t.Run("non-market order types never slip", func(t *testing.T) {
		for _, ot := range []domain.OrderType{
			domain.OrderLimit, domain.OrderStopLoss, domain.OrderTakeProfit,
			domain.OrderTrailingStopMarket, domain.OrderTrailingStopLimit,
		} {
			if got := m.Slippage(6, bids, asks, ot, domain.SideBuy); got != 0 {
				t.Errorf("Slippage(%v) = %v, want 0", ot, got)
			}
		}
	})

	t.Run("never negative", func(t *testing.T) {
		// Quantity below the first level fills at the reference price.
		if got := m.Slippage(0.5, bids, asks, domain.OrderMarket, domain.SideBuy); got != 0 {
			t.Errorf("Slippage = %v, want 0", got)
		}
	})

	t.Run("empty side", func(t *testing.T) {
		if got := m.Slippage(1, bids, nil, domain.OrderMarket, domain.SideBuy); got != 0 {
			t.Errorf("Slippage = %v, want 0", got)
		}
	})

	t.Run("reference from unsorted side", func(t *testing.T) {
		// Best ask must come from sorting, not position 0.
		shuffled := []domain.BookLevel{level("102", "5"), level("101", "1")}
		got := m.Slippage(6, bids, shuffled, domain.OrderMarket, domain.SideBuy)
		want := (611.0/6.0 - 101.0) / 101.0 * 100.0
		if !almostEqual(got, want, 1e-9) {
			t.Errorf("Slippage = %v, want %v", got, want)
		}
	})
}

func TestMarketImpact(t *testing.T) {
	m := NewOKX()
	bids, asks := referenceBook()

	t.Run("reference values", func(t *testing.T) {
		// depth = 6, adv = 144, sigma = 0.1563.
		vol := 15.63
		got := m.MarketImpact(6, vol, bids, asks)
		want := 0.1 * (vol / 100.0) * math.Sqrt(6.0/6.0) * (6.0 / 144.0)
		if !almostEqual(got, want, 1e-12) {
			t.Errorf("MarketImpact = %v, want %v", got, want)
		}
	})

	t.Run("zero depth", func(t *testing.T) {
		if got := m.MarketImpact(6, 15.63, bids, nil); got != 0 {
			t.Errorf("MarketImpact = %v, want 0", got)
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		if got := m.MarketImpact(0, 15.63, bids, asks); got != 0 {
			t.Errorf("MarketImpact = %v, want 0", got)
		}
	})

	t.Run("scales with volatility", func(t *testing.T) {
		lo := m.MarketImpact(6, 10, bids, asks)
		hi := m.MarketImpact(6, 20, bids, asks)
		if !almostEqual(hi, 2*lo, 1e-12) {
			t.Errorf("impact not linear in volatility: %v vs %v", lo, hi)
		}
	})
}

func TestMakerRatio(t *testing.T) {
	m := NewOKX()
	bids, asks := referenceBook()

	got := m.MakerRatio(bids, asks)
	// x = 0.5 - 2*spread + 1.5*imbalance with whole-book depth sums.
	x := 0.5 - 2.0*(1.0/100.5) + 1.5*(1.0/11.0)
	want := 1.0 / (1.0 + math.Exp(-x))
	if !almostEqual(got, want, 1e-12) {
		t.Errorf("MakerRatio = %v, want %v", got, want)
	}
	if !almostEqual(got, 0.6494, 1e-3) {
		t.Errorf("MakerRatio = %v, want ~0.649", got)
	}
	if got <= 0 || got >= 1 {
		t.Errorf("MakerRatio = %v, want strictly within (0,1)", got)
	}
}

func TestMakerRatio_Degenerate(t *testing.T) {
	m := NewOKX()
	if got := m.MakerRatio(nil, nil); got != 0 {
		t.Errorf("MakerRatio = %v, want 0", got)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(NewOKX())

	if _, ok := r.Lookup(domain.ExchangeOKX); !ok {
		t.Error("OKX model should be registered")
	}
	if _, ok := r.Lookup(domain.ExchangeBinance); ok {
		t.Error("Binance should have no model")
	}
	if _, ok := r.Lookup(domain.ExchangeNone); ok {
		t.Error("unselected exchange should have no model")
	}
}
