package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"tradesim/internal/domain"
	"tradesim/internal/store"
)

// Bootstrap and noise-price parameters, mirroring the simulated market the
// sessions are seeded with. The noise range is a placeholder policy that
// ignores the current book state.
const (
	seedOrdersPerSide  = 10
	seedBidMin         = 9500
	seedBidMax         = 10000
	seedAskMin         = 10000
	seedAskMax         = 10500
	seedHistoryEntries = 10
	seedHistorySpacing = 10 * time.Second

	noisePriceMin = 9500
	noisePriceMax = 10500
)

// Config carries the parameters an Engine needs at construction time.
// Rand and Now default to a time-seeded source and time.Now when nil.
type Config struct {
	InitialCash     float64
	InitialShares   int64
	DefaultBidPrice int64 // passiveBid fallback when the bid side is empty
	DefaultAskPrice int64 // passiveAsk fallback when the ask side is empty
	Rand            *rand.Rand
	Now             func() time.Time
}

// Engine is the authoritative mutator of one session's order book, trade
// tape, and participant inventory. A single mutex serializes placement,
// cancellation, matching, and snapshot assembly against each other; the
// engine is safe for concurrent use by the liquidity generator and the
// transport.
type Engine struct {
	mu        sync.Mutex
	book      *OrderBook
	orders    *store.OrderStore
	tape      *store.TradeStore
	inventory domain.Inventory

	defaultBid int64
	defaultAsk int64
	rng        *rand.Rand
	now        func() time.Time
}

// NewEngine creates an engine with an empty book and tape. Call Seed to
// bootstrap the initial simulated market.
func NewEngine(cfg Config) *Engine {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		book:   NewOrderBook(),
		orders: store.NewOrderStore(),
		tape:   store.NewTradeStore(),
		inventory: domain.Inventory{
			Cash:   cfg.InitialCash,
			Shares: cfg.InitialShares,
		},
		defaultBid: cfg.DefaultBidPrice,
		defaultAsk: cfg.DefaultAskPrice,
		rng:        rng,
		now:        now,
	}
}

// Seed bootstraps the session's market: system bids and asks at random
// prices within the configured ranges, plus a synthetic trade history
// spaced backwards from now. The ranges meet at their shared boundary, so
// a seeded book may cross there; the first matching pass resolves it.
func (e *Engine) Seed() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < seedOrdersPerSide; i++ {
		e.place(domain.OrderSideBid, e.randPrice(seedBidMin, seedBidMax), domain.OwnerSystem)
	}
	for i := 0; i < seedOrdersPerSide; i++ {
		e.place(domain.OrderSideAsk, e.randPrice(seedAskMin, seedAskMax), domain.OwnerSystem)
	}

	now := e.now()
	for i := 0; i < seedHistoryEntries; i++ {
		e.tape.Append(domain.Trade{
			Price:      e.randPrice(noisePriceMin, noisePriceMax),
			ExecutedAt: now.Add(-time.Duration(seedHistoryEntries-1-i) * seedHistorySpacing),
		})
	}
}

// PlaceOrder creates a unit limit order, inserts it into the book, and
// runs the matching loop. Placement is never rejected; callers guarantee a
// well-formed price. The returned order reflects any fills that happened
// during the matching pass.
func (e *Engine) PlaceOrder(side domain.OrderSide, price int64, owner domain.Owner) *domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := e.place(side, price, owner)
	e.match()
	return o
}

// place creates and indexes a new active order. Caller must hold e.mu.
func (e *Engine) place(side domain.OrderSide, price int64, owner domain.Owner) *domain.Order {
	o := &domain.Order{
		ID:        uuid.New().String(),
		CreatedAt: e.now(),
		Side:      side,
		Price:     price,
		Quantity:  1,
		Status:    domain.OrderStatusActive,
		Owner:     owner,
	}
	e.orders.Create(o)
	e.book.Insert(o)
	return o
}

// Cancel marks an active order cancelled and removes it from the book.
// An unknown id returns domain.ErrOrderNotFound; cancelling an order that
// is already executed or cancelled is a silent no-op. Neither case leaves
// the engine unusable.
func (e *Engine) Cancel(orderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, err := e.orders.Get(orderID)
	if err != nil {
		return err
	}
	if !o.IsActive() {
		return nil
	}
	o.Status = domain.OrderStatusCancelled
	e.book.Remove(o.ID)
	return nil
}

// match runs the price-time-priority matching loop. Caller must hold e.mu.
//
// While the best bid and best ask cross, one unit trades at the price of
// whichever of the two orders was created earlier (the resting side keeps
// its quote). Each iteration consumes one unit from each side, so the loop
// terminates in at most min(active bid qty, active ask qty) iterations.
func (e *Engine) match() {
	for {
		bidEntry, okBid := e.book.BestBid()
		askEntry, okAsk := e.book.BestAsk()
		if !okBid || !okAsk {
			return
		}
		bid, ask := bidEntry.Order, askEntry.Order
		if bid.Price < ask.Price {
			return
		}

		var executionPrice int64
		if bid.CreatedAt.Before(ask.CreatedAt) {
			executionPrice = bid.Price
		} else {
			executionPrice = ask.Price
		}

		e.tape.Append(domain.Trade{
			Price:      executionPrice,
			ExecutedAt: e.now(),
		})

		if bid.Owner == domain.OwnerHuman {
			e.inventory.Shares++
			e.inventory.Cash -= float64(executionPrice)
		}
		if ask.Owner == domain.OwnerHuman {
			e.inventory.Shares--
			e.inventory.Cash += float64(executionPrice)
		}

		bid.Quantity--
		ask.Quantity--
		if bid.Quantity == 0 {
			bid.Status = domain.OrderStatusExecuted
			e.book.Remove(bid.ID)
		}
		if ask.Quantity == 0 {
			ask.Status = domain.OrderStatusExecuted
			e.book.Remove(ask.ID)
		}
	}
}

// Inventory returns the participant's current cash and share position.
func (e *Engine) Inventory() domain.Inventory {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inventory
}

// Order returns the order with the given id, active or historical.
func (e *Engine) Order(id string) (*domain.Order, error) {
	return e.orders.Get(id)
}

func (e *Engine) randPrice(min, max int64) int64 {
	return min + e.rng.Int63n(max-min+1)
}
