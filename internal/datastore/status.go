package datastore

import (
	"context"
	"sort"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/model"
	"github.com/duo-network/datastore/internal/store"
)

// InsertHeartbeat writes a heartbeat row for this process, merged with
// any extra attributes. Status reporting is best effort: store errors are
// logged and swallowed so a heartbeat can never crash the caller.
func (ds *DataStore) InsertHeartbeat(ctx context.Context, extra codec.Item) {
	item := store.Item{
		codec.AttrProcess:   codec.S(ds.process),
		codec.AttrTimestamp: codec.NInt(ds.now()),
	}
	for k, v := range extra {
		item[k] = v
	}
	if err := ds.gw.PutItem(ctx, ds.tables.Status(), item); err != nil {
		ds.logger.Error("insert heartbeat failed", "process", ds.process, "error", err)
	}
}

// InsertStatus writes the given attributes to the status table under this
// process label. Best effort, like InsertHeartbeat.
func (ds *DataStore) InsertStatus(ctx context.Context, attrs codec.Item) {
	item := store.Item{
		codec.AttrProcess: codec.S(ds.process),
	}
	for k, v := range attrs {
		item[k] = v
	}
	if err := ds.gw.PutItem(ctx, ds.tables.Status(), item); err != nil {
		ds.logger.Error("insert status failed", "process", ds.process, "error", err)
	}
}

// ScanStatus returns every heartbeat row, decoded by process naming
// convention and ordered by process ascending with newest first within a
// process. The two sorting passes run in this exact order: timestamp
// descending, then a stable sort by process.
func (ds *DataStore) ScanStatus(ctx context.Context) ([]model.Status, error) {
	items, err := ds.gw.Scan(ctx, ds.tables.Status())
	if err != nil {
		return nil, err
	}
	statuses := make([]model.Status, 0, len(items))
	for _, item := range items {
		status, err := codec.DecodeStatus(item)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Timestamp > statuses[j].Timestamp
	})
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Process < statuses[j].Process
	})
	return statuses, nil
}

// ReadLastBlock returns the last block number recorded by the public
// event watcher, or 0 when no such heartbeat exists.
func (ds *DataStore) ReadLastBlock(ctx context.Context) (int64, error) {
	items, err := ds.gw.Query(ctx, store.QueryRequest{
		Table:         ds.tables.Status(),
		PartitionAttr: codec.AttrProcess,
		PartitionKey:  model.StatusEventPublicOthers,
	})
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}
	status, err := codec.DecodeStatus(items[0])
	if err != nil {
		return 0, err
	}
	return status.Block, nil
}
