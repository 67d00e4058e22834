package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/duo-network/datastore/internal/keys"
	"github.com/duo-network/datastore/internal/model"
)

// eventAddress picks the address component of an event key out of the
// event parameters. Only conversion, transfer and approval events key by
// an address.
func eventAddress(event model.ChainEvent) string {
	switch event.Type {
	case model.EventCreate, model.EventRedeem:
		return event.Parameters[AttrSender]
	case model.EventTransfer:
		return event.Parameters[AttrFrom]
	case model.EventApproval:
		return event.Parameters[AttrTokenOwner]
	default:
		return ""
	}
}

// EncodeEvent maps a chain event to an events-table item. The event
// parameters are flattened into plain string attributes next to the fixed
// fields. An absent log status defaults to mined.
func EncodeEvent(event model.ChainEvent, systimeMillis int64) (Item, error) {
	addr := eventAddress(event)
	if err := keys.ValidateComponents(event.ContractAddress, event.Type, addr); err != nil {
		return nil, err
	}
	logStatus := event.LogStatus
	if logStatus == "" {
		logStatus = model.LogStatusMined
	}
	item := Item{
		AttrEventKey: S(keys.EventKey(
			event.ContractAddress,
			event.Type,
			keys.EventDate(event.Type, event.Timestamp),
			addr,
		)),
		AttrTimestampID:     S(strconv.FormatInt(event.Timestamp, 10) + keys.Delimiter + event.ID),
		AttrSystime:         NInt(systimeMillis),
		AttrBlockHash:       S(event.BlockHash),
		AttrBlockNumber:     NInt(event.BlockNumber),
		AttrTransactionHash: S(event.TransactionHash),
		AttrLogStatus:       S(logStatus),
	}
	for k, v := range event.Parameters {
		item[k] = S(v)
	}
	return item, nil
}

// eventKeyParts splits the composite event key into contract address and
// event type; the trailing date/address components stay encoded in the key.
func eventKeyParts(item Item) (contract, eventType string, err error) {
	key, err := getS(item, AttrEventKey)
	if err != nil {
		return "", "", err
	}
	parts := strings.Split(key, keys.Delimiter)
	if len(parts) < 3 {
		return "", "", &DecodeError{Attr: AttrEventKey, Reason: "malformed event key " + key}
	}
	return parts[0], parts[1], nil
}

func eventTimestamp(item Item) (int64, error) {
	timestampID, err := getS(item, AttrTimestampID)
	if err != nil {
		return 0, err
	}
	raw := strings.SplitN(timestampID, keys.Delimiter, 2)[0]
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &DecodeError{Attr: AttrTimestampID, Reason: "malformed timestamp " + raw}
	}
	return ts, nil
}

// DecodeConversion reconstructs a Create or Redeem event with its wei
// amounts converted to exact decimals.
func DecodeConversion(item Item) (model.Conversion, error) {
	contract, eventType, err := eventKeyParts(item)
	if err != nil {
		return model.Conversion{}, err
	}
	txHash, err := getS(item, AttrTransactionHash)
	if err != nil {
		return model.Conversion{}, err
	}
	blockNumber, err := getInt(item, AttrBlockNumber)
	if err != nil {
		return model.Conversion{}, err
	}
	ts, err := eventTimestamp(item)
	if err != nil {
		return model.Conversion{}, err
	}
	eth, err := getWei(item, AttrEthAmtInWei)
	if err != nil {
		return model.Conversion{}, err
	}
	tokenA, err := getWei(item, AttrTokenAInWei)
	if err != nil {
		return model.Conversion{}, err
	}
	tokenB, err := getWei(item, AttrTokenBInWei)
	if err != nil {
		return model.Conversion{}, err
	}
	fee, err := getWei(item, AttrFeeInWei)
	if err != nil {
		return model.Conversion{}, err
	}
	return model.Conversion{
		ContractAddress: contract,
		TransactionHash: txHash,
		BlockNumber:     blockNumber,
		Type:            eventType,
		Timestamp:       ts,
		ETH:             eth,
		TokenA:          tokenA,
		TokenB:          tokenB,
		Fee:             fee,
	}, nil
}

// DecodeStake reconstructs an AddStake or UnStake event.
func DecodeStake(item Item) (model.Stake, error) {
	contract, eventType, err := eventKeyParts(item)
	if err != nil {
		return model.Stake{}, err
	}
	txHash, err := getS(item, AttrTransactionHash)
	if err != nil {
		return model.Stake{}, err
	}
	blockNumber, err := getInt(item, AttrBlockNumber)
	if err != nil {
		return model.Stake{}, err
	}
	ts, err := eventTimestamp(item)
	if err != nil {
		return model.Stake{}, err
	}
	from, err := getS(item, AttrFrom)
	if err != nil {
		return model.Stake{}, err
	}
	oracle, err := getS(item, AttrOracle)
	if err != nil {
		return model.Stake{}, err
	}
	amount, err := getWei(item, AttrAmtInWei)
	if err != nil {
		return model.Stake{}, err
	}
	return model.Stake{
		ContractAddress: contract,
		TransactionHash: txHash,
		BlockNumber:     blockNumber,
		Type:            eventType,
		Timestamp:       ts,
		From:            from,
		Oracle:          oracle,
		Amount:          amount,
	}, nil
}

// DecodeAcceptedPrice reconstructs an AcceptPrice event. The contract
// reports its time in seconds; it decodes rounded to the nearest hour, in
// milliseconds. The nav amounts may be absent on older rows and default
// to zero.
func DecodeAcceptedPrice(item Item) (model.AcceptedPrice, error) {
	contract, _, err := eventKeyParts(item)
	if err != nil {
		return model.AcceptedPrice{}, err
	}
	txHash, err := getS(item, AttrTransactionHash)
	if err != nil {
		return model.AcceptedPrice{}, err
	}
	blockNumber, err := getInt(item, AttrBlockNumber)
	if err != nil {
		return model.AcceptedPrice{}, err
	}
	price, err := getWei(item, AttrPriceInWei)
	if err != nil {
		return model.AcceptedPrice{}, err
	}
	navA, err := getWeiOptional(item, AttrNavAInWei)
	if err != nil {
		return model.AcceptedPrice{}, err
	}
	navB, err := getWeiOptional(item, AttrNavBInWei)
	if err != nil {
		return model.AcceptedPrice{}, err
	}
	rawSeconds, err := getS(item, AttrTimeInSecond)
	if err != nil {
		return model.AcceptedPrice{}, err
	}
	seconds, err := strconv.ParseFloat(rawSeconds, 64)
	if err != nil {
		return model.AcceptedPrice{}, &DecodeError{Attr: AttrTimeInSecond, Reason: "malformed seconds " + rawSeconds}
	}
	return model.AcceptedPrice{
		ContractAddress: contract,
		TransactionHash: txHash,
		BlockNumber:     blockNumber,
		Timestamp:       int64(math.Round(seconds/3600)) * 3600000,
		Price:           price,
		NavA:            navA,
		NavB:            navB,
	}, nil
}

// DecodeTotalSupply reconstructs a TotalSupply event.
func DecodeTotalSupply(item Item) (model.TotalSupply, error) {
	contract, _, err := eventKeyParts(item)
	if err != nil {
		return model.TotalSupply{}, err
	}
	txHash, err := getS(item, AttrTransactionHash)
	if err != nil {
		return model.TotalSupply{}, err
	}
	blockNumber, err := getInt(item, AttrBlockNumber)
	if err != nil {
		return model.TotalSupply{}, err
	}
	ts, err := eventTimestamp(item)
	if err != nil {
		return model.TotalSupply{}, err
	}
	tokenA, err := getWei(item, AttrTotalSupplyA)
	if err != nil {
		return model.TotalSupply{}, err
	}
	tokenB, err := getWei(item, AttrTotalSupplyB)
	if err != nil {
		return model.TotalSupply{}, err
	}
	return model.TotalSupply{
		ContractAddress: contract,
		TransactionHash: txHash,
		BlockNumber:     blockNumber,
		Timestamp:       ts,
		TokenA:          tokenA,
		TokenB:          tokenB,
	}, nil
}
