package engine

import (
	"testing"

	"tradesim/internal/domain"
)

func TestParseStrategy(t *testing.T) {
	for _, valid := range []string{"aggressiveAsk", "passiveAsk", "aggressiveBid", "passiveBid"} {
		s, ok := ParseStrategy(valid)
		if !ok || string(s) != valid {
			t.Errorf("ParseStrategy(%q) = (%q, %v), expected the strategy back", valid, s, ok)
		}
	}
	for _, invalid := range []string{"", "cancel", "AggressiveAsk", "market"} {
		if _, ok := ParseStrategy(invalid); ok {
			t.Errorf("ParseStrategy(%q) accepted an unknown action", invalid)
		}
	}
}

func TestPlaceStrategic_AggressiveAsk(t *testing.T) {
	e := newTestEngine(1000, 0)
	e.PlaceOrder(domain.OrderSideBid, 9800, domain.OwnerSystem)

	o, ok := e.PlaceStrategic(StrategyAggressiveAsk)
	if !ok {
		t.Fatal("expected aggressive ask to be placed against a resting bid")
	}
	if o.Side != domain.OrderSideAsk || o.Price != 9800 {
		t.Errorf("expected ask at best bid 9800, got %s@%d", o.Side, o.Price)
	}
	if o.Status != domain.OrderStatusExecuted {
		t.Errorf("expected immediate fill, got %s", o.Status)
	}

	inv := e.Inventory()
	if inv.Shares != -1 || inv.Cash != 1000+9800 {
		t.Errorf("expected shares=-1 cash=10800, got shares=%d cash=%v", inv.Shares, inv.Cash)
	}
}

func TestPlaceStrategic_AggressiveAskDroppedOnEmptyBids(t *testing.T) {
	e := newTestEngine(1000, 0)

	if o, ok := e.PlaceStrategic(StrategyAggressiveAsk); ok {
		t.Errorf("expected aggressive ask dropped with no bids, got %+v", o)
	}
	if e.book.AskCount() != 0 {
		t.Error("dropped action must not place an order")
	}
}

func TestPlaceStrategic_AggressiveBid(t *testing.T) {
	e := newTestEngine(1000, 0)
	e.PlaceOrder(domain.OrderSideAsk, 10200, domain.OwnerSystem)

	o, ok := e.PlaceStrategic(StrategyAggressiveBid)
	if !ok {
		t.Fatal("expected aggressive bid to be placed against a resting ask")
	}
	if o.Side != domain.OrderSideBid || o.Price != 10200 {
		t.Errorf("expected bid at best ask 10200, got %s@%d", o.Side, o.Price)
	}
	if o.Status != domain.OrderStatusExecuted {
		t.Errorf("expected immediate fill, got %s", o.Status)
	}
}

func TestPlaceStrategic_AggressiveBidDroppedOnEmptyAsks(t *testing.T) {
	e := newTestEngine(1000, 0)

	if o, ok := e.PlaceStrategic(StrategyAggressiveBid); ok {
		t.Errorf("expected aggressive bid dropped with no asks, got %+v", o)
	}
}

func TestPlaceStrategic_PassiveAskJoinsBestLevel(t *testing.T) {
	e := newTestEngine(1000, 0)
	e.PlaceOrder(domain.OrderSideAsk, 10200, domain.OwnerSystem)
	e.PlaceOrder(domain.OrderSideAsk, 10400, domain.OwnerSystem)

	o, ok := e.PlaceStrategic(StrategyPassiveAsk)
	if !ok {
		t.Fatal("expected passive ask to be placed")
	}
	if o.Price != 10200 {
		t.Errorf("expected ask joining best level 10200, got %d", o.Price)
	}
	if o.Status != domain.OrderStatusActive {
		t.Errorf("expected passive ask to rest, got %s", o.Status)
	}

	levels := e.book.AskLevels()
	if levels[0].Price != 10200 || levels[0].OrderCount != 2 {
		t.Errorf("expected two orders at 10200, got %+v", levels[0])
	}
}

func TestPlaceStrategic_PassiveAskFallback(t *testing.T) {
	e := newTestEngine(1000, 0)

	o, ok := e.PlaceStrategic(StrategyPassiveAsk)
	if !ok {
		t.Fatal("expected passive ask with fallback price")
	}
	if o.Price != 10100 {
		t.Errorf("expected configured default ask 10100, got %d", o.Price)
	}
	if o.Status != domain.OrderStatusActive {
		t.Errorf("expected resting order, got %s", o.Status)
	}
}

func TestPlaceStrategic_PassiveBidJoinsBestLevel(t *testing.T) {
	e := newTestEngine(1000, 0)
	e.PlaceOrder(domain.OrderSideBid, 9700, domain.OwnerSystem)
	e.PlaceOrder(domain.OrderSideBid, 9900, domain.OwnerSystem)

	o, ok := e.PlaceStrategic(StrategyPassiveBid)
	if !ok {
		t.Fatal("expected passive bid to be placed")
	}
	if o.Price != 9900 {
		t.Errorf("expected bid joining best level 9900, got %d", o.Price)
	}
	if o.Status != domain.OrderStatusActive {
		t.Errorf("expected passive bid to rest, got %s", o.Status)
	}
}

func TestPlaceStrategic_PassiveBidFallback(t *testing.T) {
	e := newTestEngine(1000, 0)

	o, ok := e.PlaceStrategic(StrategyPassiveBid)
	if !ok {
		t.Fatal("expected passive bid with fallback price")
	}
	if o.Price != 9500 {
		t.Errorf("expected configured default bid 9500, got %d", o.Price)
	}
}

func TestPlaceStrategic_OrdersAreParticipantOwned(t *testing.T) {
	e := newTestEngine(1000, 0)

	o, ok := e.PlaceStrategic(StrategyPassiveBid)
	if !ok {
		t.Fatal("expected placement")
	}
	if o.Owner != domain.OwnerHuman {
		t.Errorf("expected participant ownership, got %s", o.Owner)
	}

	snap := e.Snapshot()
	if len(snap.TraderOrders) != 1 || snap.TraderOrders[0].ID != o.ID {
		t.Errorf("expected the order in trader orders, got %+v", snap.TraderOrders)
	}
}

func TestPlaceStrategic_UnknownStrategyDropped(t *testing.T) {
	e := newTestEngine(1000, 0)

	if _, ok := e.PlaceStrategic(Strategy("bogus")); ok {
		t.Error("expected unknown strategy to be dropped")
	}
}
