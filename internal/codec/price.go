package codec

import (
	"strconv"
	"strings"

	"github.com/duo-network/datastore/internal/keys"
	"github.com/duo-network/datastore/internal/model"
)

// EncodePrice maps an OHLC bar to a prices-table item, including the
// partition key at the bar's period resolution.
func EncodePrice(price model.Price, nowMillis int64) (Item, error) {
	if err := keys.ValidateComponents(price.Quote, price.Base, price.Source); err != nil {
		return nil, err
	}
	attr, err := keys.PartitionAttr(price.Period)
	if err != nil {
		return nil, err
	}
	partition, err := keys.PartitionKey(price.Source, price.Period, price.Timestamp)
	if err != nil {
		return nil, err
	}
	return Item{
		attr:                   S(partition),
		AttrBase:               S(price.Base),
		AttrQuote:              S(price.Quote),
		AttrOpen:               NFloat(price.Open),
		AttrHigh:               NFloat(price.High),
		AttrLow:                NFloat(price.Low),
		AttrClose:              NFloat(price.Close),
		AttrVolume:             NFloat(price.Volume),
		AttrQuoteBaseTimestamp: S(keys.PriceSortKey(price.Quote, price.Base, price.Timestamp)),
		AttrUpdatedAt:          NInt(nowMillis),
	}, nil
}

// DecodePrice reconstructs an OHLC bar from a prices-table item at the
// given period.
func DecodePrice(item Item, period int) (model.Price, error) {
	attr, err := keys.PartitionAttr(period)
	if err != nil {
		return model.Price{}, err
	}
	partition, err := getS(item, attr)
	if err != nil {
		return model.Price{}, err
	}
	base, err := getS(item, AttrBase)
	if err != nil {
		return model.Price{}, err
	}
	quote, err := getS(item, AttrQuote)
	if err != nil {
		return model.Price{}, err
	}
	sortKey, err := getS(item, AttrQuoteBaseTimestamp)
	if err != nil {
		return model.Price{}, err
	}
	sortParts := strings.Split(sortKey, keys.Delimiter)
	if len(sortParts) != 3 {
		return model.Price{}, &DecodeError{Attr: AttrQuoteBaseTimestamp, Reason: "malformed sort key " + sortKey}
	}
	ts, err := strconv.ParseInt(sortParts[2], 10, 64)
	if err != nil {
		return model.Price{}, &DecodeError{Attr: AttrQuoteBaseTimestamp, Reason: "malformed timestamp " + sortParts[2]}
	}
	open, err := getFloat(item, AttrOpen)
	if err != nil {
		return model.Price{}, err
	}
	high, err := getFloat(item, AttrHigh)
	if err != nil {
		return model.Price{}, err
	}
	low, err := getFloat(item, AttrLow)
	if err != nil {
		return model.Price{}, err
	}
	closePx, err := getFloat(item, AttrClose)
	if err != nil {
		return model.Price{}, err
	}
	volume, err := getFloat(item, AttrVolume)
	if err != nil {
		return model.Price{}, err
	}
	return model.Price{
		Source:    strings.SplitN(partition, keys.Delimiter, 2)[0],
		Base:      base,
		Quote:     quote,
		Timestamp: ts,
		Period:    period,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePx,
		Volume:    volume,
	}, nil
}

// DecodeTradePrice reads a trades-table item as a period-0 bar: a single
// tick whose OHLC collapses to the trade price and whose volume is the
// trade amount.
func DecodeTradePrice(item Item) (model.Price, error) {
	trade, err := DecodeTrade(item)
	if err != nil {
		return model.Price{}, err
	}
	return model.Price{
		Source:    trade.Source,
		Base:      trade.Base,
		Quote:     trade.Quote,
		Timestamp: trade.Timestamp,
		Period:    0,
		Open:      trade.Price,
		High:      trade.Price,
		Low:       trade.Price,
		Close:     trade.Price,
		Volume:    trade.Amount,
	}, nil
}
