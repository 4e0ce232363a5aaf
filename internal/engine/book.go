package engine

import (
	"time"

	"github.com/google/btree"

	"tradesim/internal/domain"
)

// OrderBookEntry represents a single order resting on the book.
type OrderBookEntry struct {
	Price     int64
	CreatedAt time.Time
	OrderID   string
	Order     *domain.Order
}

// PriceLevel represents an aggregated price level in the order book.
type PriceLevel struct {
	Price         int64
	TotalQuantity int64
	OrderCount    int
}

// bidLess defines ordering for the bid side: price descending, then
// created_at ascending, then order id ascending. This means Min()
// returns the best bid (highest price, earliest time).
func bidLess(a, b OrderBookEntry) bool {
	if a.Price != b.Price {
		return a.Price > b.Price
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.OrderID < b.OrderID
}

// askLess defines ordering for the ask side: price ascending, then
// created_at ascending, then order id ascending. Min() returns the
// best ask (lowest price, earliest time).
func askLess(a, b OrderBookEntry) bool {
	if a.Price != b.Price {
		return a.Price < b.Price
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.OrderID < b.OrderID
}

// OrderBook maintains the active bid and ask sides for one session using
// B-trees with a secondary index for O(log n) removal by order id. Only
// active orders live here; the session's OrderStore keeps the full
// historical set.
type OrderBook struct {
	bids  *btree.BTreeG[OrderBookEntry]
	asks  *btree.BTreeG[OrderBookEntry]
	index map[string]OrderBookEntry // order id → entry
}

// NewOrderBook creates an empty order book.
func NewOrderBook() *OrderBook {
	const degree = 32
	return &OrderBook{
		bids:  btree.NewG[OrderBookEntry](degree, bidLess),
		asks:  btree.NewG[OrderBookEntry](degree, askLess),
		index: make(map[string]OrderBookEntry),
	}
}

// Insert adds an active order to its side of the book.
func (ob *OrderBook) Insert(o *domain.Order) {
	entry := OrderBookEntry{
		Price:     o.Price,
		CreatedAt: o.CreatedAt,
		OrderID:   o.ID,
		Order:     o,
	}
	if o.Side == domain.OrderSideBid {
		ob.bids.ReplaceOrInsert(entry)
	} else {
		ob.asks.ReplaceOrInsert(entry)
	}
	ob.index[o.ID] = entry
}

// Remove deletes an order from the book by order id using the secondary
// index. A no-op for ids that are not resting on the book.
func (ob *OrderBook) Remove(orderID string) {
	entry, ok := ob.index[orderID]
	if !ok {
		return
	}
	delete(ob.index, orderID)
	// Delete is a no-op on the side that doesn't hold the entry.
	ob.bids.Delete(entry)
	ob.asks.Delete(entry)
}

// BestBid returns the highest-priority bid (highest price, earliest time).
func (ob *OrderBook) BestBid() (OrderBookEntry, bool) {
	return ob.bids.Min()
}

// BestAsk returns the highest-priority ask (lowest price, earliest time).
func (ob *OrderBook) BestAsk() (OrderBookEntry, bool) {
	return ob.asks.Min()
}

// Spread returns best ask price minus best bid price, or (0, false)
// when either side is empty.
func (ob *OrderBook) Spread() (int64, bool) {
	bid, okBid := ob.BestBid()
	ask, okAsk := ob.BestAsk()
	if !okBid || !okAsk {
		return 0, false
	}
	return ask.Price - bid.Price, true
}

// BidLevels returns every aggregated bid price level, ordered by price
// descending.
func (ob *OrderBook) BidLevels() []PriceLevel {
	return levels(ob.bids)
}

// AskLevels returns every aggregated ask price level, ordered by price
// ascending.
func (ob *OrderBook) AskLevels() []PriceLevel {
	return levels(ob.asks)
}

// levels iterates the B-tree in order and aggregates entries into
// price levels.
func levels(tree *btree.BTreeG[OrderBookEntry]) []PriceLevel {
	out := make([]PriceLevel, 0)
	tree.Ascend(func(entry OrderBookEntry) bool {
		if len(out) > 0 && out[len(out)-1].Price == entry.Price {
			out[len(out)-1].TotalQuantity += entry.Order.Quantity
			out[len(out)-1].OrderCount++
			return true
		}
		out = append(out, PriceLevel{
			Price:         entry.Price,
			TotalQuantity: entry.Order.Quantity,
			OrderCount:    1,
		})
		return true
	})
	return out
}

// WalkBids iterates bids in priority order (highest price first). The
// callback returns true to continue, false to stop.
func (ob *OrderBook) WalkBids(fn func(OrderBookEntry) bool) {
	ob.bids.Ascend(fn)
}

// WalkAsks iterates asks in priority order (lowest price first). The
// callback returns true to continue, false to stop.
func (ob *OrderBook) WalkAsks(fn func(OrderBookEntry) bool) {
	ob.asks.Ascend(fn)
}

// BidCount returns the number of active bid orders on the book.
func (ob *OrderBook) BidCount() int {
	return ob.bids.Len()
}

// AskCount returns the number of active ask orders on the book.
func (ob *OrderBook) AskCount() int {
	return ob.asks.Len()
}
