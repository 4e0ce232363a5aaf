package domain

import "time"

// Trade is an anonymous tape entry: the clearing price and execution time
// of one matched unit. It deliberately does not record which two orders
// crossed.
type Trade struct {
	Price      int64
	ExecutedAt time.Time
}
