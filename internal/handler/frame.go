package handler

import (
	"time"

	"tradesim/internal/domain"
	"tradesim/internal/engine"
)

// Outbound WebSocket frame types.
const (
	frameUpdate  = "update"
	frameSuccess = "success"
	frameError   = "error"
)

// wsFrame is the outbound snapshot message. Every frame carries the full
// engine snapshot regardless of type; the field names and the x/y level
// keys are the session channel's wire format.
type wsFrame struct {
	Type         string           `json:"type"`
	Message      string           `json:"message,omitempty"`
	OrderBook    bookPayload      `json:"order_book"`
	History      []tradePayload   `json:"history"`
	Spread       *int64           `json:"spread"`
	Inventory    domain.Inventory `json:"inventory"`
	CurrentPrice *int64           `json:"current_price"`
	TraderOrders []orderPayload   `json:"trader_orders"`
	Data         any              `json:"data,omitempty"`
}

type bookPayload struct {
	Bids []levelPayload `json:"bids"`
	Asks []levelPayload `json:"asks"`
}

// levelPayload is one aggregated price level: x = price, y = total quantity.
type levelPayload struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

type tradePayload struct {
	Price     int64   `json:"price"`
	Timestamp float64 `json:"timestamp"`
}

type orderPayload struct {
	UUID      string  `json:"uuid"`
	Timestamp float64 `json:"timestamp"`
	Type      string  `json:"type"`
	Price     int64   `json:"price"`
	Quantity  int64   `json:"quantity"`
	Status    string  `json:"status"`
	Owner     string  `json:"owner"`
}

// unixSeconds renders a timestamp as Unix seconds with fractional part.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func levelsPayload(levels []engine.PriceLevel) []levelPayload {
	out := make([]levelPayload, len(levels))
	for i, l := range levels {
		out[i] = levelPayload{X: l.Price, Y: l.TotalQuantity}
	}
	return out
}

// snapshotFrame builds an outbound frame of the given type around a full
// engine snapshot.
func snapshotFrame(typ, message string, snap engine.Snapshot, data any) wsFrame {
	history := make([]tradePayload, len(snap.History))
	for i, t := range snap.History {
		history[i] = tradePayload{Price: t.Price, Timestamp: unixSeconds(t.ExecutedAt)}
	}

	orders := make([]orderPayload, len(snap.TraderOrders))
	for i, o := range snap.TraderOrders {
		orders[i] = orderPayload{
			UUID:      o.ID,
			Timestamp: unixSeconds(o.CreatedAt),
			Type:      string(o.Side),
			Price:     o.Price,
			Quantity:  o.Quantity,
			Status:    string(o.Status),
			Owner:     string(o.Owner),
		}
	}

	return wsFrame{
		Type:    typ,
		Message: message,
		OrderBook: bookPayload{
			Bids: levelsPayload(snap.Bids),
			Asks: levelsPayload(snap.Asks),
		},
		History:      history,
		Spread:       snap.Spread,
		Inventory:    snap.Inventory,
		CurrentPrice: snap.CurrentPrice,
		TraderOrders: orders,
		Data:         data,
	}
}
