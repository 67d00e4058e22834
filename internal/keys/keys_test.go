package keys

import (
	"errors"
	"testing"
	"time"

	"github.com/duo-network/datastore/internal/model"
)

func TestPartitionKeyFormats(t *testing.T) {
	ts := time.Date(2018, 10, 6, 7, 8, 9, 0, time.UTC).UnixMilli()

	tests := []struct {
		name     string
		period   int
		expected string
	}{
		{"minute for period 0", 0, "gemini|2018-10-06-07-08"},
		{"hour for period 1", 1, "gemini|2018-10-06-07"},
		{"hour for period 10", 10, "gemini|2018-10-06-07"},
		{"day for period 60", 60, "gemini|2018-10-06"},
		{"month for period 360", 360, "gemini|2018-10"},
		{"month for period 1440", 1440, "gemini|2018-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := PartitionKey("gemini", tt.period, ts)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if key != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, key)
			}
		})
	}
}

func TestPartitionKeyInvalidPeriod(t *testing.T) {
	for _, period := range []int{-1, 2, 15, 61, 720, 10080} {
		if _, err := PartitionKey("gemini", period, 0); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("Period %d: expected ErrInvalidPeriod, got %v", period, err)
		}
	}
}

func TestPartitionAttr(t *testing.T) {
	tests := []struct {
		period   int
		expected string
	}{
		{0, AttrSourceDateHourMinute},
		{1, AttrSourceDateHour},
		{10, AttrSourceDateHour},
		{60, AttrSourceDate},
		{360, AttrSourceYearMonth},
		{1440, AttrSourceYearMonth},
	}
	for _, tt := range tests {
		attr, err := PartitionAttr(tt.period)
		if err != nil {
			t.Fatalf("Period %d: unexpected error: %v", tt.period, err)
		}
		if attr != tt.expected {
			t.Errorf("Period %d: expected %q, got %q", tt.period, tt.expected, attr)
		}
	}
	if _, err := PartitionAttr(7); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("Expected ErrInvalidPeriod, got %v", err)
	}
}

func TestSortKeys(t *testing.T) {
	if key := TradeSortKey("ETH", "USD", "t1"); key != "ETH|USD|t1" {
		t.Errorf("Unexpected trade sort key %q", key)
	}
	if key := PriceSortKey("ETH", "USD", 1538809689000); key != "ETH|USD|1538809689000" {
		t.Errorf("Unexpected price sort key %q", key)
	}
	if pair := Pair("ETH", "USD"); pair != "ETH|USD" {
		t.Errorf("Unexpected pair %q", pair)
	}
}

func TestEventDate(t *testing.T) {
	// 2018-10-06 07:08 UTC: the TotalSupply format keys by hour, not day.
	ts := time.Date(2018, 10, 6, 7, 8, 0, 0, time.UTC).UnixMilli()

	if date := EventDate(model.EventCreate, ts); date != "2018-10-06" {
		t.Errorf("Expected 2018-10-06, got %q", date)
	}
	if date := EventDate(model.EventTotalSupply, ts); date != "2018-10-07" {
		t.Errorf("Expected year-month-hour 2018-10-07, got %q", date)
	}
}

func TestEventKey(t *testing.T) {
	key := EventKey("0xabc", model.EventCreate, "2018-10-06", "0xsender")
	if key != "0xabc|Create|2018-10-06|0xsender" {
		t.Errorf("Unexpected event key %q", key)
	}
	key = EventKey("0xabc", model.EventAcceptPrice, "2018-10-06", "")
	if key != "0xabc|AcceptPrice|2018-10-06" {
		t.Errorf("Expected no trailing address component, got %q", key)
	}
}

func TestUIEventKey(t *testing.T) {
	if key := UIEventKey("0xabc", model.EventCreate, "0xaccount"); key != "0xabc|Create|0xaccount" {
		t.Errorf("Unexpected ui event key %q", key)
	}
}

func TestValidateComponents(t *testing.T) {
	if err := ValidateComponents("ETH", "USD", "gemini"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := ValidateComponents("ETH", "US|D"); err == nil {
		t.Error("Expected error for component containing delimiter")
	}
}
