package domain

import "time"

// OrderSide indicates whether an order is a bid (buy) or ask (sell).
type OrderSide string

const (
	OrderSideBid OrderSide = "bid"
	OrderSideAsk OrderSide = "ask"
)

// Opposite returns the other side of the book.
func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBid {
		return OrderSideAsk
	}
	return OrderSideBid
}

// OrderStatus represents the lifecycle state of an order. Transitions are
// one-way: active orders become executed or cancelled and never revert.
type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "active"
	OrderStatusExecuted  OrderStatus = "executed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Owner identifies who placed an order. System orders are synthetic
// liquidity; human orders belong to the session's participant.
type Owner string

const (
	OwnerSystem Owner = "system"
	OwnerHuman  Owner = "human"
)

// Order is a single unit of resting or filled trading intent. All orders
// are created with quantity 1; matching decrements quantity by exactly one
// unit per fill.
type Order struct {
	ID        string
	CreatedAt time.Time
	Side      OrderSide
	Price     int64
	Quantity  int64
	Status    OrderStatus
	Owner     Owner
}

// IsActive reports whether the order is still eligible for matching.
func (o *Order) IsActive() bool {
	return o.Status == OrderStatusActive
}
