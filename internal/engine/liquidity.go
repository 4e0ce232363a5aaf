package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"tradesim/internal/domain"
)

// Broadcaster consumes engine snapshots and pushes them to the connected
// client. Implemented by the transport layer.
type Broadcaster interface {
	BroadcastUpdate(Snapshot) error
}

// PricePolicy produces the price for the next synthetic order. The default
// policy is uniform over a fixed range, independent of the current book.
type PricePolicy func() int64

// UniformPricePolicy returns the placeholder noise-trader policy: a
// uniformly random price in [noisePriceMin, noisePriceMax].
func UniformPricePolicy(rng *rand.Rand) PricePolicy {
	return func() int64 {
		return noisePriceMin + rng.Int63n(noisePriceMax-noisePriceMin+1)
	}
}

// Generator injects synthetic counterparty liquidity into an engine on a
// fixed interval so the participant always has someone to trade against.
// One Generator run serves one session and stops when its context is
// cancelled.
type Generator struct {
	interval time.Duration
	engine   *Engine
	price    PricePolicy
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewGenerator creates a Generator. A nil price policy gets the uniform
// placeholder; a nil rng gets a time-seeded source; a nil logger gets the
// default slog logger.
func NewGenerator(interval time.Duration, e *Engine, price PricePolicy, rng *rand.Rand, logger *slog.Logger) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if price == nil {
		price = UniformPricePolicy(rng)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		interval: interval,
		engine:   e,
		price:    price,
		rng:      rng,
		logger:   logger,
	}
}

// Run ticks at the configured interval until ctx is cancelled: each tick
// places one system order on a uniformly random side, runs matching, and
// broadcasts the resulting snapshot. A broadcast failure stops the run
// and is returned to the caller.
func (g *Generator) Run(ctx context.Context, b Broadcaster) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := g.tick(b); err != nil {
				return err
			}
		}
	}
}

// tick places one synthetic order and broadcasts the new state.
func (g *Generator) tick(b Broadcaster) error {
	side := domain.OrderSideBid
	if g.rng.Intn(2) == 1 {
		side = domain.OrderSideAsk
	}
	price := g.price()

	o := g.engine.PlaceOrder(side, price, domain.OwnerSystem)
	g.logger.Debug("liquidity order placed",
		slog.String("order_id", o.ID),
		slog.String("side", string(side)),
		slog.Int64("price", price),
	)

	if err := b.BroadcastUpdate(g.engine.Snapshot()); err != nil {
		return fmt.Errorf("broadcast update: %w", err)
	}
	return nil
}
