package codec

import (
	"github.com/duo-network/datastore/internal/model"
)

// DecodeStatus reconstructs one heartbeat row. The row's shape is an
// exhaustive function of the process naming convention, see
// model.KindOfProcess. Shape attributes are absent on idle heartbeats
// and decode to zero; a present but malformed value still fails.
func DecodeStatus(item Item) (model.Status, error) {
	process, err := getS(item, AttrProcess)
	if err != nil {
		return model.Status{}, err
	}
	ts, err := getInt(item, AttrTimestamp)
	if err != nil {
		return model.Status{}, err
	}
	status := model.Status{
		Kind:      model.KindOfProcess(process),
		Process:   process,
		Timestamp: ts,
	}
	switch status.Kind {
	case model.StatusTrade:
		if status.Price, err = getFloatOptional(item, AttrPrice); err != nil {
			return model.Status{}, err
		}
		if status.Volume, err = getFloatOptional(item, AttrAmount); err != nil {
			return model.Status{}, err
		}
	case model.StatusBlock:
		if status.Block, err = getIntOptional(item, AttrBlock); err != nil {
			return model.Status{}, err
		}
	}
	return status, nil
}

// DecodeUIConversion reconstructs a pending conversion submitted through
// the UI. Amounts on the UI table are plain decimal strings, not wei.
func DecodeUIConversion(item Item) (model.Conversion, error) {
	contract, eventType, err := eventKeyParts(item)
	if err != nil {
		return model.Conversion{}, err
	}
	txHash, err := getS(item, AttrTransactionHash)
	if err != nil {
		return model.Conversion{}, err
	}
	systime, err := getInt(item, AttrSystime)
	if err != nil {
		return model.Conversion{}, err
	}
	eth, err := getDecimal(item, AttrETH)
	if err != nil {
		return model.Conversion{}, err
	}
	tokenA, err := getDecimal(item, AttrTokenA)
	if err != nil {
		return model.Conversion{}, err
	}
	tokenB, err := getDecimal(item, AttrTokenB)
	if err != nil {
		return model.Conversion{}, err
	}
	fee, err := getDecimal(item, AttrFee)
	if err != nil {
		return model.Conversion{}, err
	}
	return model.Conversion{
		ContractAddress: contract,
		TransactionHash: txHash,
		BlockNumber:     0,
		Type:            eventType,
		Timestamp:       systime,
		ETH:             eth,
		TokenA:          tokenA,
		TokenB:          tokenB,
		Fee:             fee,
		Pending:         true,
	}, nil
}
