package datastore

import (
	"context"
	"fmt"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/keys"
	"github.com/duo-network/datastore/internal/model"
)

// InsertEvents writes each event as an independent item; the first
// failure aborts. Re-inserting an event with the same computed key
// overwrites the stored row, which is how log-status corrections land.
func (ds *DataStore) InsertEvents(ctx context.Context, events []model.ChainEvent) error {
	systime := ds.now()
	for _, event := range events {
		item, err := codec.EncodeEvent(event, systime)
		if err != nil {
			return err
		}
		if err := ds.gw.PutItem(ctx, ds.tables.Events(), item); err != nil {
			return fmt.Errorf("insert event %s: %w", event.ID, err)
		}
	}
	return nil
}

// AcceptedPrices returns the AcceptPrice events of one contract for the
// given date buckets, concatenated in date order.
func (ds *DataStore) AcceptedPrices(ctx context.Context, contractAddress string, dates []string) ([]model.AcceptedPrice, error) {
	var all []model.AcceptedPrice
	for _, date := range dates {
		items, err := ds.queryEventKey(ctx, ds.tables.Events(),
			keys.EventKey(contractAddress, model.EventAcceptPrice, date, ""))
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			price, err := codec.DecodeAcceptedPrice(item)
			if err != nil {
				return nil, err
			}
			all = append(all, price)
		}
	}
	return all, nil
}

// TotalSupplies returns the TotalSupply events of one contract for the
// given date buckets. TotalSupply dates use the year-month-hour format.
func (ds *DataStore) TotalSupplies(ctx context.Context, contractAddress string, dates []string) ([]model.TotalSupply, error) {
	var all []model.TotalSupply
	for _, date := range dates {
		items, err := ds.queryEventKey(ctx, ds.tables.Events(),
			keys.EventKey(contractAddress, model.EventTotalSupply, date, ""))
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			supply, err := codec.DecodeTotalSupply(item)
			if err != nil {
				return nil, err
			}
			all = append(all, supply)
		}
	}
	return all, nil
}

// Conversions returns the Create and Redeem events of one contract and
// sender address for the given date buckets.
func (ds *DataStore) Conversions(ctx context.Context, contractAddress, address string, dates []string) ([]model.Conversion, error) {
	var eventKeys []string
	for _, date := range dates {
		for _, eventType := range []string{model.EventCreate, model.EventRedeem} {
			eventKeys = append(eventKeys, keys.EventKey(contractAddress, eventType, date, address))
		}
	}
	var all []model.Conversion
	for _, key := range eventKeys {
		items, err := ds.queryEventKey(ctx, ds.tables.Events(), key)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			conversion, err := codec.DecodeConversion(item)
			if err != nil {
				return nil, err
			}
			all = append(all, conversion)
		}
	}
	return all, nil
}

// Stakes returns the AddStake and UnStake events of one contract for the
// given date buckets.
func (ds *DataStore) Stakes(ctx context.Context, contractAddress string, dates []string) ([]model.Stake, error) {
	var eventKeys []string
	for _, date := range dates {
		for _, eventType := range []string{model.EventAddStake, model.EventUnStake} {
			eventKeys = append(eventKeys, keys.EventKey(contractAddress, eventType, date, ""))
		}
	}
	var all []model.Stake
	for _, key := range eventKeys {
		items, err := ds.queryEventKey(ctx, ds.tables.Events(), key)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			stake, err := codec.DecodeStake(item)
			if err != nil {
				return nil, err
			}
			all = append(all, stake)
		}
	}
	return all, nil
}
