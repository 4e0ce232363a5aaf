package engine

import "tradesim/internal/domain"

// Snapshot is a point-in-time view of the engine, assembled entirely from
// the current order set and trade tape. It is the unit handed to the
// transport after every state-changing event.
type Snapshot struct {
	Bids         []PriceLevel
	Asks         []PriceLevel
	History      []domain.Trade
	Spread       *int64
	Inventory    domain.Inventory
	CurrentPrice *int64
	TraderOrders []domain.Order // participant's orders, active and historical
}

// Snapshot assembles a consistent view under the engine lock. Orders are
// copied by value so the caller can serialize them without racing the
// matching loop.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Bids:      e.book.BidLevels(),
		Asks:      e.book.AskLevels(),
		History:   e.tape.All(),
		Inventory: e.inventory,
	}

	if spread, ok := e.book.Spread(); ok {
		snap.Spread = &spread
	}
	if last, ok := e.tape.Last(); ok {
		price := last.Price
		snap.CurrentPrice = &price
	}

	own := e.orders.ListByOwner(domain.OwnerHuman)
	snap.TraderOrders = make([]domain.Order, len(own))
	for i, o := range own {
		snap.TraderOrders[i] = *o
	}

	return snap
}
