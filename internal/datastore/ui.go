package datastore

import (
	"context"
	"fmt"

	"github.com/duo-network/datastore/internal/codec"
	"github.com/duo-network/datastore/internal/keys"
	"github.com/duo-network/datastore/internal/model"
	"github.com/duo-network/datastore/internal/store"
)

// InsertUIConversion records a conversion submitted through the UI before
// it is mined. Amounts are plain decimals, not wei.
func (ds *DataStore) InsertUIConversion(ctx context.Context, contractAddress, account, txHash string, isCreate bool, eth, tokenA, tokenB, fee float64) error {
	if err := keys.ValidateComponents(contractAddress, account); err != nil {
		return err
	}
	eventType := model.EventRedeem
	if isCreate {
		eventType = model.EventCreate
	}
	item := store.Item{
		codec.AttrEventKey:        codec.S(keys.UIEventKey(contractAddress, eventType, account)),
		codec.AttrSystime:         codec.NInt(ds.now()),
		codec.AttrTransactionHash: codec.S(txHash),
		codec.AttrETH:             codec.NFloat(eth),
		codec.AttrTokenA:          codec.NFloat(tokenA),
		codec.AttrTokenB:          codec.NFloat(tokenB),
		codec.AttrFee:             codec.NFloat(fee),
	}
	if err := ds.gw.PutItem(ctx, ds.tables.UIEvents(), item); err != nil {
		return fmt.Errorf("insert ui conversion %s: %w", txHash, err)
	}
	return nil
}

// UIConversions returns the pending Create and Redeem conversions of one
// account on one contract.
func (ds *DataStore) UIConversions(ctx context.Context, contractAddress, account string) ([]model.Conversion, error) {
	var all []model.Conversion
	for _, eventType := range []string{model.EventCreate, model.EventRedeem} {
		items, err := ds.queryEventKey(ctx, ds.tables.UIEvents(),
			keys.UIEventKey(contractAddress, eventType, account))
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			conversion, err := codec.DecodeUIConversion(item)
			if err != nil {
				return nil, err
			}
			all = append(all, conversion)
		}
	}
	return all, nil
}

// DeleteUIConversion removes a pending conversion once its mined event
// has been persisted.
func (ds *DataStore) DeleteUIConversion(ctx context.Context, account string, conversion model.Conversion) error {
	key := store.Item{
		codec.AttrEventKey:        codec.S(keys.UIEventKey(conversion.ContractAddress, conversion.Type, account)),
		codec.AttrTransactionHash: codec.S(conversion.TransactionHash),
	}
	if err := ds.gw.DeleteItem(ctx, ds.tables.UIEvents(), key); err != nil {
		return fmt.Errorf("delete ui conversion %s: %w", conversion.TransactionHash, err)
	}
	return nil
}
