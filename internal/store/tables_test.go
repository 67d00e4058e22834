package store

import "testing"

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		live     bool
		resolve  func(Tables) string
		expected string
	}{
		{"dev trades", false, Tables.Trades, "duo.trades.dev"},
		{"live trades", true, Tables.Trades, "duo.live.trades"},
		{"dev status", false, Tables.Status, "duo.status.dev"},
		{"live events", true, Tables.Events, "duo.live.events"},
		{"dev ui events", false, Tables.UIEvents, "duo.uiEvents.dev"},
		{"dev minute prices", false, func(tb Tables) string { return tb.Prices(1) }, "duo.prices.1.dev"},
		{"live hourly prices", true, func(tb Tables) string { return tb.Prices(60) }, "duo.live.prices.60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resolve(NewTables("duo", tt.live)); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
