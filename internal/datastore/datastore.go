// Package datastore is the data-access layer over the DynamoDB tables:
// it translates domain records into store items and back, and answers
// time-range reads by expanding them into per-bucket partition queries.
package datastore

import (
	"context"
	"log/slog"
	"time"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/store"
)

// DataStore bundles the store gateway, the resolved table names and the
// process label stamped onto status writes. All public operations are
// independent units of work; there is no shared mutable state.
type DataStore struct {
	gw      store.Gateway
	tables  store.Tables
	process string
	logger  *slog.Logger
	now     func() int64
}

// New creates a DataStore writing status rows under the given process
// label. The live/dev table split is fixed inside tables.
func New(gw store.Gateway, tables store.Tables, process string, logger *slog.Logger) *DataStore {
	return &DataStore{
		gw:      gw,
		tables:  tables,
		process: process,
		logger:  logger,
		now:     utcNowMillis,
	}
}

func utcNowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

func (ds *DataStore) queryEventKey(ctx context.Context, table, eventKey string) ([]store.Item, error) {
	return ds.gw.Query(ctx, store.QueryRequest{
		Table:         table,
		PartitionAttr: codec.AttrEventKey,
		PartitionKey:  eventKey,
	})
}
