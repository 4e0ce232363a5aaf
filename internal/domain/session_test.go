package domain

import (
	"encoding/json"
	"testing"
)

func TestDefaultSessionConfig(t *testing.T) {
	cfg := DefaultSessionConfig()

	if cfg.MaxShortShares != 100 {
		t.Errorf("MaxShortShares = %d, want 100", cfg.MaxShortShares)
	}
	if cfg.MaxShortCash != 10000.0 {
		t.Errorf("MaxShortCash = %v, want 10000", cfg.MaxShortCash)
	}
	if cfg.InitialCash != 1000.0 {
		t.Errorf("InitialCash = %v, want 1000", cfg.InitialCash)
	}
	if cfg.InitialShares != 0 {
		t.Errorf("InitialShares = %d, want 0", cfg.InitialShares)
	}
	if cfg.TradingDayDuration != 5 {
		t.Errorf("TradingDayDuration = %d, want 5", cfg.TradingDayDuration)
	}
	if cfg.MaxActiveOrders != 5 {
		t.Errorf("MaxActiveOrders = %d, want 5", cfg.MaxActiveOrders)
	}
	if cfg.NoiseUpdateFreqSec != 10 {
		t.Errorf("NoiseUpdateFreqSec = %d, want 10", cfg.NoiseUpdateFreqSec)
	}
	if cfg.Step != 100 {
		t.Errorf("Step = %d, want 100", cfg.Step)
	}
}

func TestSessionConfig_WireNames(t *testing.T) {
	raw, err := json.Marshal(DefaultSessionConfig())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, name := range []string{
		"max_short_shares",
		"max_short_cash",
		"initial_cash",
		"initial_shares",
		"trading_day_duration",
		"max_active_orders",
		"noise_trader_update_freq",
		"step",
	} {
		if _, ok := fields[name]; !ok {
			t.Errorf("missing wire field %q", name)
		}
	}
	if len(fields) != 8 {
		t.Errorf("expected 8 wire fields, got %d: %v", len(fields), fields)
	}
}

func TestSessionConfig_PartialOverride(t *testing.T) {
	cfg := DefaultSessionConfig()
	body := []byte(`{"initial_cash": 2500.5, "noise_trader_update_freq": 3}`)
	if err := json.Unmarshal(body, &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if cfg.InitialCash != 2500.5 {
		t.Errorf("InitialCash = %v, want 2500.5", cfg.InitialCash)
	}
	if cfg.NoiseUpdateFreqSec != 3 {
		t.Errorf("NoiseUpdateFreqSec = %d, want 3", cfg.NoiseUpdateFreqSec)
	}
	// Unmentioned fields keep their defaults.
	if cfg.MaxActiveOrders != 5 {
		t.Errorf("MaxActiveOrders = %d, want 5", cfg.MaxActiveOrders)
	}
}
