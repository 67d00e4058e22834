package codec

import (
	"strings"

	"github.com/duo-network/datastore/internal/keys"
	"github.com/duo-network/datastore/internal/model"
)

// EncodeTrade maps a trade to its item attributes, stamped with the system
// time of the write. The partition key is added by the caller since it
// depends on the table's resolution.
func EncodeTrade(trade model.Trade, systimeMillis int64) (Item, error) {
	if err := keys.ValidateComponents(trade.Quote, trade.Base, trade.Source, trade.ID); err != nil {
		return nil, err
	}
	return Item{
		AttrQuoteBaseID: S(keys.TradeSortKey(trade.Quote, trade.Base, trade.ID)),
		AttrPrice:       NFloat(trade.Price),
		AttrAmount:      NFloat(trade.Amount),
		AttrTimestamp:   NInt(trade.Timestamp),
		AttrSystime:     NInt(systimeMillis),
		AttrPair:        S(keys.Pair(trade.Quote, trade.Base)),
	}, nil
}

// DecodeTrade reconstructs a trade from a trades-table item.
func DecodeTrade(item Item) (model.Trade, error) {
	sortKey, err := getS(item, AttrQuoteBaseID)
	if err != nil {
		return model.Trade{}, err
	}
	sortParts := strings.Split(sortKey, keys.Delimiter)
	if len(sortParts) != 3 {
		return model.Trade{}, &DecodeError{Attr: AttrQuoteBaseID, Reason: "malformed sort key " + sortKey}
	}
	partition, err := getS(item, keys.AttrSourceDateHourMinute)
	if err != nil {
		return model.Trade{}, err
	}
	pair, err := getS(item, AttrPair)
	if err != nil {
		return model.Trade{}, err
	}
	pairParts := strings.Split(pair, keys.Delimiter)
	if len(pairParts) != 2 {
		return model.Trade{}, &DecodeError{Attr: AttrPair, Reason: "malformed pair " + pair}
	}
	price, err := getFloat(item, AttrPrice)
	if err != nil {
		return model.Trade{}, err
	}
	amount, err := getFloat(item, AttrAmount)
	if err != nil {
		return model.Trade{}, err
	}
	ts, err := getInt(item, AttrTimestamp)
	if err != nil {
		return model.Trade{}, err
	}
	return model.Trade{
		Quote:     pairParts[0],
		Base:      pairParts[1],
		Source:    strings.SplitN(partition, keys.Delimiter, 2)[0],
		ID:        sortParts[2],
		Price:     price,
		Amount:    amount,
		Timestamp: ts,
	}, nil
}
