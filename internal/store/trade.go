package store

import (
	"sync"

	"tradesim/internal/domain"
)

// TradeStore is a thread-safe append-only tape of trades for one session,
// kept in execution order (most recent last). The tape is unbounded; a
// session's lifetime bounds its growth.
type TradeStore struct {
	mu     sync.RWMutex
	trades []domain.Trade
}

// NewTradeStore creates an empty TradeStore.
func NewTradeStore() *TradeStore {
	return &TradeStore{trades: make([]domain.Trade, 0)}
}

// Append adds a trade to the end of the tape.
func (s *TradeStore) Append(t domain.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = append(s.trades, t)
}

// All returns the tape in chronological order.
// The returned slice is a copy; callers may not mutate the tape through it.
func (s *TradeStore) All() []domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Trade, len(s.trades))
	copy(result, s.trades)
	return result
}

// Last returns the most recent trade, or (zero, false) on an empty tape.
func (s *TradeStore) Last() (domain.Trade, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.trades) == 0 {
		return domain.Trade{}, false
	}
	return s.trades[len(s.trades)-1], true
}

// Len returns the number of trades on the tape.
func (s *TradeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}
