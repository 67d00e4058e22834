package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/keys"
	"github.com/duo-network/datastore/internal/model"
	"github.com/duo-network/datastore/internal/store"
)

func samplePrice(period int, ts int64, close float64) model.Price {
	return model.Price{
		Source:    model.SourceGemini,
		Base:      "USD",
		Quote:     "ETH",
		Timestamp: ts,
		Period:    period,
		Open:      close,
		High:      close,
		Low:       close,
		Close:     close,
		Volume:    1,
	}
}

func priceItem(t *testing.T, price model.Price) store.Item {
	t.Helper()
	item, err := codec.EncodePrice(price, 0)
	if err != nil {
		t.Fatalf("EncodePrice: %v", err)
	}
	return item
}

func TestAddPriceTargetsPeriodTable(t *testing.T) {
	gw := &fakeGateway{}
	ds := newTestStore(gw, 1538812800000)

	price := samplePrice(60, time.Date(2018, 10, 1, 5, 0, 0, 0, time.UTC).UnixMilli(), 224.52)
	if err := ds.AddPrice(context.Background(), price); err != nil {
		t.Fatalf("AddPrice: %v", err)
	}

	if len(gw.puts) != 1 {
		t.Fatalf("Expected 1 put, got %d", len(gw.puts))
	}
	if gw.puts[0].table != "duo.prices.60.dev" {
		t.Errorf("Expected duo.prices.60.dev, got %q", gw.puts[0].table)
	}
}

func TestGetPricesQueriesEveryBucket(t *testing.T) {
	gw := &fakeGateway{}
	start := time.Date(2018, 10, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2018, 10, 3, 6, 0, 0, 0, time.UTC).UnixMilli()
	ds := newTestStore(gw, end)

	if _, err := ds.GetPrices(context.Background(), "gemini", 60, start, end, ""); err != nil {
		t.Fatalf("GetPrices: %v", err)
	}

	expected := []string{"gemini|2018-10-01", "gemini|2018-10-02", "gemini|2018-10-03"}
	if len(gw.queries) != len(expected) {
		t.Fatalf("Expected %d bucket queries, got %d", len(expected), len(gw.queries))
	}
	for i, req := range gw.queries {
		if req.PartitionKey != expected[i] {
			t.Errorf("Bucket %d: expected %q, got %q", i, expected[i], req.PartitionKey)
		}
		if req.Table != "duo.prices.60.dev" {
			t.Errorf("Bucket %d: unexpected table %q", i, req.Table)
		}
		if req.PartitionAttr != keys.AttrSourceDate {
			t.Errorf("Bucket %d: unexpected partition attribute %q", i, req.PartitionAttr)
		}
	}
}

func TestGetPricesFiltersToRequestedRange(t *testing.T) {
	start := time.Date(2018, 10, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2018, 10, 2, 0, 0, 0, 0, time.UTC).UnixMilli()

	inside := samplePrice(60, start+3600000, 225)
	tooEarly := samplePrice(60, start-3600000, 220)
	atEnd := samplePrice(60, end, 230)

	gw := &fakeGateway{results: map[string][]store.Item{}}
	items := []store.Item{}
	for _, p := range []model.Price{tooEarly, inside, atEnd} {
		items = append(items, nil)
		items[len(items)-1] = priceItem(t, p)
	}
	gw.results["gemini|2018-10-01"] = items

	ds := newTestStore(gw, end)
	prices, err := ds.GetPrices(context.Background(), "gemini", 60, start, end, "")
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("Expected only the in-range bar, got %+v", prices)
	}
	if prices[0].Timestamp != inside.Timestamp {
		t.Errorf("Expected timestamp %d, got %d", inside.Timestamp, prices[0].Timestamp)
	}
}

func TestGetPricesSortsDescendingPreservingTies(t *testing.T) {
	ts := time.Date(2018, 10, 1, 1, 1, 0, 0, time.UTC).UnixMilli()

	// Three raw trades at the same timestamp must keep store return order.
	tradePrices := []float64{224, 225, 226}
	var items []store.Item
	for i, id := range []string{"a", "b", "c"} {
		attrs, err := codec.EncodeTrade(model.Trade{
			Quote: "ETH", Base: "USD", Source: "gemini", ID: id,
			Price: tradePrices[i], Amount: 0.5, Timestamp: ts,
		}, 0)
		if err != nil {
			t.Fatalf("EncodeTrade: %v", err)
		}
		attrs[keys.AttrSourceDateHourMinute] = codec.S("gemini|2018-10-01-01-01")
		items = append(items, attrs)
	}
	gw := &fakeGateway{results: map[string][]store.Item{"gemini|2018-10-01-01-01": items}}
	ds := newTestStore(gw, ts+60000)

	prices, err := ds.GetPrices(context.Background(), "gemini", 0, ts, ts+1, "")
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(prices) != 3 {
		t.Fatalf("Expected 3 ticks, got %d", len(prices))
	}
	for i, p := range prices {
		if p.Timestamp != ts {
			t.Errorf("Expected timestamp %d, got %d", ts, p.Timestamp)
		}
		if p.Open != tradePrices[i] {
			t.Errorf("Tick %d: expected input order price %v, got %v", i, tradePrices[i], p.Open)
		}
	}
}

func TestGetPricesDescendingAcrossBuckets(t *testing.T) {
	start := time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2018, 10, 3, 0, 0, 0, 0, time.UTC).UnixMilli()

	day1 := samplePrice(60, start+3600000, 220)
	day2 := samplePrice(60, start+27*3600000, 230)

	gw := &fakeGateway{results: map[string][]store.Item{
		"gemini|2018-10-01": {priceItem(t, day1)},
		"gemini|2018-10-02": {priceItem(t, day2)},
	}}
	ds := newTestStore(gw, end)

	prices, err := ds.GetPrices(context.Background(), "gemini", 60, start, end, "")
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("Expected 2 bars, got %d", len(prices))
	}
	if prices[0].Timestamp != day2.Timestamp || prices[1].Timestamp != day1.Timestamp {
		t.Errorf("Expected descending order, got %+v", prices)
	}
}

func TestGetPricesEndDefaultsToNow(t *testing.T) {
	start := time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	now := start + 90*60000 // 90 minutes later

	gw := &fakeGateway{}
	ds := newTestStore(gw, now)

	if _, err := ds.GetPrices(context.Background(), "gemini", 1, start, 0, ""); err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	// Buckets: start plus the 01:00 boundary before now.
	if len(gw.queries) != 2 {
		t.Errorf("Expected 2 bucket queries up to now, got %d", len(gw.queries))
	}
}

func TestGetPricesPairRangeForAggregatedPeriods(t *testing.T) {
	start := time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	now := start + 3600000
	gw := &fakeGateway{}
	ds := newTestStore(gw, now)

	if _, err := ds.GetPrices(context.Background(), "gemini", 60, start, now, "ETH|USD"); err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	req := gw.queries[0]
	if req.SortAttr != codec.AttrQuoteBaseTimestamp {
		t.Fatalf("Expected sort on %q, got %q", codec.AttrQuoteBaseTimestamp, req.SortAttr)
	}
	if req.SortFrom != "ETH|USD|1538352000000" {
		t.Errorf("Unexpected sort lower bound %q", req.SortFrom)
	}
}
