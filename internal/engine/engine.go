package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"quantcost/internal/domain"
	"quantcost/internal/event"
	"quantcost/internal/infra"
	"quantcost/internal/model"
)

// recomputeTriggers is the trigger protocol as data: which input field
// changes fire a recompute. Book replacements and explicit calculate
// requests always fire. Flipping the volatility-override flag alone only
// updates state; the new flag is picked up by the next qualifying
// trigger. USD amount and order side likewise wait for the next trigger.
var recomputeTriggers = map[domain.InputField]bool{
	domain.FieldExchange:           true,
	domain.FieldAsset:              true,
	domain.FieldOrderType:          true,
	domain.FieldOrderSide:          false,
	domain.FieldFeeTier:            true,
	domain.FieldQuantity:           true,
	domain.FieldUSDAmount:          false,
	domain.FieldManualVolatility:   true,
	domain.FieldVolatilityOverride: false,
}

// Engine is the single-threaded recompute orchestrator. It owns the
// order-book store, the input state, and the results sink; everything
// reaches them through the inbox, so no write ever races another.
type Engine struct {
	inbox  chan event.Event
	store  *OrderbookStore
	sink   *ResultsSink
	models *model.Registry
	logger *slog.Logger

	input domain.InputState
	mu    sync.RWMutex // guards input for external reads (e.g. UI)
}

// NewEngine creates an engine wired to the given model registry.
func NewEngine(inboxSize int, models *model.Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		inbox:  make(chan event.Event, inboxSize),
		sink:   NewResultsSink(),
		models: models,
		logger: logger,
		input:  domain.DefaultInputState(),
	}
	e.store = NewOrderbookStore(e.recompute)
	return e
}

// Inbox returns the event channel. The ingestor and input owners send here.
func (e *Engine) Inbox() chan<- event.Event {
	return e.inbox
}

// Store returns the order-book store for external reads.
func (e *Engine) Store() *OrderbookStore {
	return e.store
}

// Results returns the results sink.
func (e *Engine) Results() *ResultsSink {
	return e.sink
}

// Input returns a copy of the current input state.
func (e *Engine) Input() domain.InputState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.input
}

// SeedInput replaces the input state wholesale. Call before Run, e.g.
// to restore persisted preferences.
func (e *Engine) SeedInput(state domain.InputState) {
	e.mu.Lock()
	e.input = state
	e.mu.Unlock()
}

// Run starts the main event loop. This MUST be run in a single goroutine.
func (e *Engine) Run(ctx context.Context) {
	e.logger.Info("calculation engine started")

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("calculation engine stopping")
			return
		case ev := <-e.inbox:
			e.processEvent(ev)
		}
	}
}

func (e *Engine) processEvent(ev event.Event) {
	defer func() {
		if r := recover(); r != nil {
			// Nothing in the pipeline is fatal; worst case is a stale
			// estimate plus this diagnostic.
			e.logger.Error("recovered from event panic",
				slog.String("event", ev.GetType()), slog.Any("panic", r))
			infra.GlobalMetrics.RecordError()
		}
	}()

	switch evt := ev.(type) {
	case *event.BookUpdateEvent:
		e.store.Replace(evt.Snapshot)
		infra.GlobalMetrics.RecordSnapshotApplied()
		event.ReleaseBookUpdateEvent(evt)
	case *event.InputChangeEvent:
		e.mu.Lock()
		changed := evt.Apply(&e.input)
		e.mu.Unlock()
		if changed && recomputeTriggers[evt.Field] {
			e.recompute()
		}
	case *event.CalcRequestEvent:
		e.recompute()
	case *event.FeedErrorEvent:
		e.logger.Warn("feed error", slog.Any("error", evt.Err))
		infra.GlobalMetrics.RecordError()
	default:
		e.logger.Warn("unknown event type", slog.String("type", ev.GetType()))
	}
}

// recompute runs the fixed estimation sequence against the state visible
// now and publishes the result. Missing wiring (no model for the
// selected exchange) is a diagnostic no-op; the prior estimate stays.
func (e *Engine) recompute() {
	if e.models == nil {
		e.logger.Warn("recompute skipped: no model registry wired")
		return
	}

	e.mu.RLock()
	in := e.input
	e.mu.RUnlock()

	m, ok := e.models.Lookup(in.Exchange)
	if !ok {
		e.logger.Warn("recompute skipped: no cost model for exchange",
			slog.String("exchange", in.Exchange.String()))
		return
	}

	start := time.Now()

	snapshot := e.store.Current()
	bids, asks := snapshot.Bids, snapshot.Asks

	// 1. Effective volatility.
	volatility := in.ManualVolatility
	if !in.VolatilityOverride {
		volatility = m.VolatilityFromBook(bids, asks)
	}

	// 2. Taker fee comes off the top of the USD budget.
	feePct := m.FeeRate(in.USDAmount, in.FeeTier, true)
	availableUSD := in.USDAmount / (1.0 + feePct/100.0)
	feeUSD := in.USDAmount - availableUSD

	// 3. Convert the post-fee budget into crypto by walking the book.
	walkSide := asks
	if in.OrderSide == domain.SideSell {
		walkSide = bids
	}
	estimatedCrypto := allocateUSD(availableUSD, walkSide)

	// 4. Slippage reduces the spendable budget.
	slippagePct := m.Slippage(estimatedCrypto, bids, asks, in.OrderType, in.OrderSide)
	slippageUSD := availableUSD * slippagePct / 100.0
	availableUSD -= slippageUSD

	// 5. So does market impact.
	impactPct := m.MarketImpact(estimatedCrypto, volatility, bids, asks)
	impactUSD := availableUSD * impactPct / 100.0
	availableUSD -= impactUSD

	// 6. Re-allocate what is left after all costs.
	finalCrypto := allocateUSD(availableUSD, walkSide)

	// 7. Maker/taker mix.
	makerRatio := m.MakerRatio(bids, asks)

	// 8. Net cost.
	netCostUSD := in.USDAmount - feeUSD - slippageUSD - impactUSD

	elapsed := time.Since(start)

	e.sink.Publish(domain.CostEstimate{
		VolatilityPct:    volatility,
		FeePct:           feePct,
		FeeUSD:           feeUSD,
		SlippagePct:      slippagePct,
		SlippageUSD:      slippageUSD,
		MarketImpactPct:  impactPct,
		MarketImpactUSD:  impactUSD,
		MakerRatio:       makerRatio,
		NetCostUSD:       netCostUSD,
		CryptoAmount:     finalCrypto,
		ProcessingTimeMS: float64(elapsed.Nanoseconds()) / 1e6,
	})
	infra.GlobalMetrics.RecordRecompute(elapsed.Nanoseconds())
}

// allocateUSD walks one side of the book in arrival order, spending
// min(remaining USD, price*amount) per level and accumulating the crypto
// acquired. The inverse of the VWAP cost walk. An exhausted book leaves
// the remaining budget unspent, silently.
func allocateUSD(usd float64, side []domain.BookLevel) float64 {
	remaining := usd
	total := 0.0

	for _, level := range side {
		if remaining <= 0 {
			break
		}
		price := level.PriceF()
		if price <= 0 {
			continue
		}
		maxSpendable := price * level.AmountF()
		spend := maxSpendable
		if remaining < spend {
			spend = remaining
		}
		total += spend / price
		remaining -= spend
	}
	return total
}
