package datastore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/model"
	"github.com/duo-network/datastore/internal/store"
)

const testContract = "0x0f80F055c7482b919183EcD06e0dd5FD7991D309"

func sampleEvent(eventType string, params map[string]string) model.ChainEvent {
	return model.ChainEvent{
		ContractAddress: testContract,
		Type:            eventType,
		ID:              "log-17",
		BlockHash:       "0xblockhash",
		BlockNumber:     6460000,
		TransactionHash: "0xtxhash",
		Parameters:      params,
		Timestamp:       time.Date(2018, 10, 6, 7, 30, 0, 0, time.UTC).UnixMilli(),
	}
}

func eventItem(t *testing.T, event model.ChainEvent, systime int64) store.Item {
	t.Helper()
	item, err := codec.EncodeEvent(event, systime)
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}
	return item
}

func TestInsertEventsWritesEachEvent(t *testing.T) {
	gw := &fakeGateway{}
	ds := newTestStore(gw, 1538809689000)

	events := []model.ChainEvent{
		sampleEvent(model.EventCreate, map[string]string{"sender": "0xsender"}),
		sampleEvent(model.EventRedeem, map[string]string{"sender": "0xsender"}),
	}
	if err := ds.InsertEvents(context.Background(), events); err != nil {
		t.Fatalf("InsertEvents: %v", err)
	}

	if len(gw.puts) != 2 {
		t.Fatalf("Expected 2 puts, got %d", len(gw.puts))
	}
	for _, put := range gw.puts {
		if put.table != "duo.events.dev" {
			t.Errorf("Expected events table, got %q", put.table)
		}
	}
	if key := stringAttr(t, gw.puts[0].item, codec.AttrEventKey); key != testContract+"|Create|2018-10-06|0xsender" {
		t.Errorf("Unexpected event key %q", key)
	}
}

func TestInsertEventsFirstFailureAborts(t *testing.T) {
	gw := &fakeGateway{putErr: errors.New("capacity exceeded")}
	ds := newTestStore(gw, 1538809689000)

	events := []model.ChainEvent{
		sampleEvent(model.EventCreate, map[string]string{"sender": "0xsender"}),
		sampleEvent(model.EventRedeem, map[string]string{"sender": "0xsender"}),
	}
	if err := ds.InsertEvents(context.Background(), events); err == nil {
		t.Error("Expected put error to surface")
	}
	if len(gw.puts) != 1 {
		t.Errorf("Expected insertion to stop after the failed put, got %d puts", len(gw.puts))
	}
}

func TestConversionsQueriesCreateAndRedeemPerDate(t *testing.T) {
	createKey := testContract + "|Create|2018-10-06|0xsender"
	event := sampleEvent(model.EventCreate, map[string]string{
		"sender":      "0xsender",
		"ethAmtInWei": "26160725000000000000",
		"tokenAInWei": "13000000000000000000",
		"tokenBInWei": "13000000000000000000",
		"feeInWei":    "100000000000000000",
	})
	gw := &fakeGateway{results: map[string][]store.Item{
		createKey: {eventItem(t, event, 1538809689000)},
	}}
	ds := newTestStore(gw, 1538809689000)

	conversions, err := ds.Conversions(context.Background(), testContract, "0xsender",
		[]string{"2018-10-06", "2018-10-07"})
	if err != nil {
		t.Fatalf("Conversions: %v", err)
	}

	expectedKeys := []string{
		createKey,
		testContract + "|Redeem|2018-10-06|0xsender",
		testContract + "|Create|2018-10-07|0xsender",
		testContract + "|Redeem|2018-10-07|0xsender",
	}
	if len(gw.queries) != len(expectedKeys) {
		t.Fatalf("Expected %d queries, got %d", len(expectedKeys), len(gw.queries))
	}
	for i, req := range gw.queries {
		if req.PartitionKey != expectedKeys[i] {
			t.Errorf("Query %d: expected key %q, got %q", i, expectedKeys[i], req.PartitionKey)
		}
		if req.PartitionAttr != codec.AttrEventKey {
			t.Errorf("Query %d: unexpected partition attribute %q", i, req.PartitionAttr)
		}
	}
	if len(conversions) != 1 || conversions[0].Type != model.EventCreate {
		t.Errorf("Expected one decoded Create conversion, got %+v", conversions)
	}
}

func TestStakesQueriesBothStakeTypes(t *testing.T) {
	gw := &fakeGateway{}
	ds := newTestStore(gw, 1538809689000)

	if _, err := ds.Stakes(context.Background(), testContract, []string{"2018-10-06"}); err != nil {
		t.Fatalf("Stakes: %v", err)
	}

	expectedKeys := []string{
		testContract + "|AddStake|2018-10-06",
		testContract + "|UnStake|2018-10-06",
	}
	if len(gw.queries) != len(expectedKeys) {
		t.Fatalf("Expected %d queries, got %d", len(expectedKeys), len(gw.queries))
	}
	for i, req := range gw.queries {
		if req.PartitionKey != expectedKeys[i] {
			t.Errorf("Query %d: expected key %q, got %q", i, expectedKeys[i], req.PartitionKey)
		}
	}
}

func TestAcceptedPricesDecodesPerDate(t *testing.T) {
	key := testContract + "|AcceptPrice|2018-10-06"
	event := sampleEvent(model.EventAcceptPrice, map[string]string{
		"priceInWei":   "224520000000000000000",
		"timeInSecond": "1538809689",
	})
	gw := &fakeGateway{results: map[string][]store.Item{
		key: {eventItem(t, event, 1538809689000)},
	}}
	ds := newTestStore(gw, 1538809689000)

	prices, err := ds.AcceptedPrices(context.Background(), testContract, []string{"2018-10-06"})
	if err != nil {
		t.Fatalf("AcceptedPrices: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("Expected 1 accepted price, got %d", len(prices))
	}
	if prices[0].Timestamp != 1538809200000 {
		t.Errorf("Expected hour-rounded timestamp, got %d", prices[0].Timestamp)
	}
}

func TestTotalSuppliesUsesHourDates(t *testing.T) {
	key := testContract + "|TotalSupply|2018-10-07"
	event := sampleEvent(model.EventTotalSupply, map[string]string{
		"totalSupplyA": "10000000000000000000000",
		"totalSupplyB": "10000000000000000000000",
	})
	gw := &fakeGateway{results: map[string][]store.Item{
		key: {eventItem(t, event, 1538809689000)},
	}}
	ds := newTestStore(gw, 1538809689000)

	supplies, err := ds.TotalSupplies(context.Background(), testContract, []string{"2018-10-07"})
	if err != nil {
		t.Fatalf("TotalSupplies: %v", err)
	}
	if len(supplies) != 1 {
		t.Fatalf("Expected 1 total supply, got %d", len(supplies))
	}
	if gw.queries[0].PartitionKey != key {
		t.Errorf("Unexpected partition key %q", gw.queries[0].PartitionKey)
	}
}
