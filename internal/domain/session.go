package domain

// SessionConfig carries the per-session parameters accepted at creation
// time. JSON field names match the creation request wire format.
//
// The matching core consumes InitialCash, InitialShares, and
// NoiseUpdateFreqSec; the remaining fields (short limits, trading-day
// duration, max active orders, step) are accepted and surfaced through the
// defaults endpoint but not enforced. Enforcement is an extension point.
type SessionConfig struct {
	MaxShortShares     int     `json:"max_short_shares"`
	MaxShortCash       float64 `json:"max_short_cash"`
	InitialCash        float64 `json:"initial_cash"`
	InitialShares      int64   `json:"initial_shares"`
	TradingDayDuration int     `json:"trading_day_duration"`
	MaxActiveOrders    int     `json:"max_active_orders"`
	NoiseUpdateFreqSec int     `json:"noise_trader_update_freq"`
	Step               int     `json:"step"`
}

// DefaultSessionConfig returns the canonical defaults for a new session.
// These mirror the defaults the creation endpoint advertises.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxShortShares:     100,
		MaxShortCash:       10000.0,
		InitialCash:        1000.0,
		InitialShares:      0,
		TradingDayDuration: 5,
		MaxActiveOrders:    5,
		NoiseUpdateFreqSec: 10,
		Step:               100,
	}
}
