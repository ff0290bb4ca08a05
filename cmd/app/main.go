package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quantcost/internal/app"
	"quantcost/internal/domain"
	"quantcost/internal/engine"
	"quantcost/internal/event"
	"quantcost/internal/infra"
	"quantcost/internal/ingest"
	"quantcost/internal/model"

	"github.com/shopspring/decimal"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize("configs/config.yaml"); err != nil {
		slog.Error("bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Warm the event pool before the feed starts
	event.Warmup()

	// 5. Model registry and calculation engine. Only OKX has a concrete
	// model today; other venues resolve to "no model" and the engine
	// skips recomputes for them.
	registry := model.NewRegistry(model.NewOKX())

	eng := engine.NewEngine(cfg.Feed.InboxSize, registry, slog.Default())
	eng.SeedInput(bootstrap.Inputs)

	eng.Results().Subscribe(func(est domain.CostEstimate) {
		slog.Info("estimate updated",
			slog.String("net_cost_usd", formatUSD(est.NetCostUSD)),
			slog.String("fee_usd", formatUSD(est.FeeUSD)),
			slog.String("slippage_usd", formatUSD(est.SlippageUSD)),
			slog.String("impact_usd", formatUSD(est.MarketImpactUSD)),
			slog.Float64("volatility_pct", est.VolatilityPct),
			slog.Float64("maker_ratio", est.MakerRatio),
			slog.Float64("crypto_amount", est.CryptoAmount),
			slog.Float64("processing_ms", est.ProcessingTimeMS),
		)
	})

	// Start Engine in its own goroutine (The Hotpath Loop)
	go eng.Run(ctx)
	slog.InfoContext(ctx, "calculation engine started")

	// 6. Feed ingestor with explicit reconnect. The ingestor itself never
	// reconnects; this loop is the external action that does.
	worker := ingest.New(eng.Inbox(), cfg.Feed.Depth)
	go connectionLoop(ctx, worker, cfg.Feed.WSURL)

	slog.InfoContext(ctx, "quantcost operational, press Ctrl+C to exit",
		slog.String("asset", bootstrap.Inputs.Asset.String()),
		slog.String("exchange", bootstrap.Inputs.Exchange.String()))

	// Wait for shutdown signal
	<-ctx.Done()

	worker.Disconnect()
	bootstrap.SavePreferences(eng.Input())

	slog.Info("shut down gracefully")
}

// connectionLoop keeps one feed connection alive with backoff between
// explicit reconnection attempts.
func connectionLoop(ctx context.Context, worker *ingest.Ingestor, url string) {
	retry := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := worker.Connect(ctx, url); err != nil {
			delay := infra.CalculateBackoff(retry)
			retry++
			slog.Warn("feed connection failed",
				slog.Any("error", err), slog.Duration("retry_in", delay))
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		}

		retry = 0
		select {
		case <-ctx.Done():
			return
		case <-worker.Done():
			slog.Warn("feed connection lost, reconnecting")
		}
	}
}

func formatUSD(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}
