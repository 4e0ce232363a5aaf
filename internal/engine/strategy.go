package engine

import "tradesim/internal/domain"

// Strategy names a participant order-placement intent. The wire values
// match the inbound action message types.
type Strategy string

const (
	StrategyAggressiveAsk Strategy = "aggressiveAsk"
	StrategyPassiveAsk    Strategy = "passiveAsk"
	StrategyAggressiveBid Strategy = "aggressiveBid"
	StrategyPassiveBid    Strategy = "passiveBid"
)

// ParseStrategy maps an action type string to a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategyAggressiveAsk, StrategyPassiveAsk, StrategyAggressiveBid, StrategyPassiveBid:
		return Strategy(s), true
	}
	return "", false
}

// PlaceStrategic translates participant intent into a concrete limit order
// priced off the current book, places it, and runs the matching loop.
//
//   - aggressiveAsk: ask at the best bid (crosses immediately); dropped when
//     there are no bids.
//   - passiveAsk: ask at the best ask (joins that level); falls back to the
//     configured default ask price on an empty ask side.
//   - aggressiveBid: bid at the best ask; dropped when there are no asks.
//   - passiveBid: bid at the best bid; falls back to the configured default
//     bid price on an empty bid side.
//
// Returns (nil, false) when the action is dropped. A dropped aggressive
// action is documented policy, not an error.
func (e *Engine) PlaceStrategic(s Strategy) (*domain.Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		side  domain.OrderSide
		price int64
	)

	switch s {
	case StrategyAggressiveAsk:
		side = domain.OrderSideAsk
		bid, ok := e.book.BestBid()
		if !ok {
			return nil, false
		}
		price = bid.Price
	case StrategyPassiveAsk:
		side = domain.OrderSideAsk
		if ask, ok := e.book.BestAsk(); ok {
			price = ask.Price
		} else {
			price = e.defaultAsk
		}
	case StrategyAggressiveBid:
		side = domain.OrderSideBid
		ask, ok := e.book.BestAsk()
		if !ok {
			return nil, false
		}
		price = ask.Price
	case StrategyPassiveBid:
		side = domain.OrderSideBid
		if bid, ok := e.book.BestBid(); ok {
			price = bid.Price
		} else {
			price = e.defaultBid
		}
	default:
		return nil, false
	}

	o := e.place(side, price, domain.OwnerHuman)
	e.match()
	return o, true
}
