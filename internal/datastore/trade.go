package datastore

import (
	"context"
	"fmt"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/keys"
	"github.com/duo-network/datastore/internal/model"
	"github.com/duo-network/datastore/internal/store"
)

// InsertTrade writes one trade keyed by source and minute bucket. With
// withStatus set, the same attributes are also written to the status
// table under this process label (best effort, never fails the call).
func (ds *DataStore) InsertTrade(ctx context.Context, trade model.Trade, withStatus bool) error {
	attrs, err := codec.EncodeTrade(trade, ds.now())
	if err != nil {
		return err
	}
	partition, err := keys.PartitionKey(trade.Source, 0, trade.Timestamp)
	if err != nil {
		return err
	}
	item := make(store.Item, len(attrs)+1)
	for k, v := range attrs {
		item[k] = v
	}
	item[keys.AttrSourceDateHourMinute] = codec.S(partition)
	if err := ds.gw.PutItem(ctx, ds.tables.Trades(), item); err != nil {
		return fmt.Errorf("insert trade %s: %w", trade.ID, err)
	}
	if withStatus {
		ds.InsertStatus(ctx, attrs)
	}
	return nil
}

// GetTrades returns the trades of one source in one minute bucket, given
// as `YYYY-MM-DD-HH-mm`. A non-empty pair `quote|base` narrows the read
// to sort keys in [pair|, pair|z]. Results come back in store order.
func (ds *DataStore) GetTrades(ctx context.Context, source, dateHourMinute, pair string) ([]model.Trade, error) {
	req := store.QueryRequest{
		Table:         ds.tables.Trades(),
		PartitionAttr: keys.AttrSourceDateHourMinute,
		PartitionKey:  source + keys.Delimiter + dateHourMinute,
	}
	if pair != "" {
		req.SortAttr = codec.AttrQuoteBaseID
		req.SortFrom = pair + keys.Delimiter
		req.SortTo = pair + keys.Delimiter + "z"
	}
	items, err := ds.gw.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	trades := make([]model.Trade, 0, len(items))
	for _, item := range items {
		trade, err := codec.DecodeTrade(item)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, nil
}
