package datastore

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/keys"
	"github.com/duo-network/datastore/internal/model"
	"github.com/duo-network/datastore/internal/store"
)

// AddPrice writes one OHLC bar into the prices table of its period.
func (ds *DataStore) AddPrice(ctx context.Context, price model.Price) error {
	item, err := codec.EncodePrice(price, ds.now())
	if err != nil {
		return err
	}
	if err := ds.gw.PutItem(ctx, ds.tables.Prices(price.Period), item); err != nil {
		return fmt.Errorf("add price %s %s: %w", price.Source, keys.Pair(price.Quote, price.Base), err)
	}
	return nil
}

// GetPrices returns the bars of one source and period over [start, end),
// descending by timestamp; ties keep store return order. end == 0 means
// now. The range is expanded into calendar-unit buckets, each queried
// sequentially; any bucket failure aborts the whole read.
func (ds *DataStore) GetPrices(ctx context.Context, source string, period int, start, end int64, pair string) ([]model.Price, error) {
	if end == 0 {
		end = ds.now()
	}
	buckets, err := keys.PlanBuckets(period, start, end)
	if err != nil {
		return nil, err
	}
	var prices []model.Price
	for _, bucket := range buckets {
		batch, err := ds.bucketPrices(ctx, source, period, bucket, pair)
		if err != nil {
			return nil, err
		}
		prices = append(prices, batch...)
	}
	filtered := prices[:0]
	for _, price := range prices {
		if price.Timestamp >= start && price.Timestamp < end {
			filtered = append(filtered, price)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp > filtered[j].Timestamp
	})
	return filtered, nil
}

// bucketPrices queries a single partition bucket. Period 0 reads raw
// trades and presents them as single-tick bars; other periods read the
// period's prices table.
func (ds *DataStore) bucketPrices(ctx context.Context, source string, period int, tsMillis int64, pair string) ([]model.Price, error) {
	partition, err := keys.PartitionKey(source, period, tsMillis)
	if err != nil {
		return nil, err
	}
	var req store.QueryRequest
	if period == 0 {
		req = store.QueryRequest{
			Table:         ds.tables.Trades(),
			PartitionAttr: keys.AttrSourceDateHourMinute,
			PartitionKey:  partition,
		}
		if pair != "" {
			req.SortAttr = codec.AttrQuoteBaseID
			req.SortFrom = pair + keys.Delimiter
			req.SortTo = pair + keys.Delimiter + "z"
		}
	} else {
		attr, err := keys.PartitionAttr(period)
		if err != nil {
			return nil, err
		}
		req = store.QueryRequest{
			Table:         ds.tables.Prices(period),
			PartitionAttr: attr,
			PartitionKey:  partition,
		}
		if pair != "" {
			req.SortAttr = codec.AttrQuoteBaseTimestamp
			req.SortFrom = pair + keys.Delimiter + strconv.FormatInt(tsMillis, 10)
			req.SortTo = pair + keys.Delimiter + strconv.FormatInt(ds.now(), 10)
		}
	}
	items, err := ds.gw.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	prices := make([]model.Price, 0, len(items))
	for _, item := range items {
		var price model.Price
		if period == 0 {
			price, err = codec.DecodeTradePrice(item)
		} else {
			price, err = codec.DecodePrice(item, period)
		}
		if err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}
	return prices, nil
}
