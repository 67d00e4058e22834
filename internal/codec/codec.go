// Package codec maps domain records to DynamoDB attribute maps and back.
// Numeric fields travel as decimal strings in N attributes; wei amounts
// travel as 18-decimal fixed point strings in S attributes and decode to
// exact decimals. Malformed, missing or empty attributes fail decoding
// with a DecodeError instead of propagating NaN.
package codec

import (
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is one store row in DynamoDB attribute-value form.
type Item = map[string]types.AttributeValue

// Attribute names shared by the trade, price, status and event tables.
const (
	AttrQuote              = "quote"
	AttrBase               = "base"
	AttrQuoteBaseID        = "quoteBaseId"
	AttrPair               = "pair"
	AttrPrice              = "price"
	AttrAmount             = "amount"
	AttrTimestamp          = "timestamp"
	AttrSystime            = "systime"
	AttrUpdatedAt          = "updatedAt"
	AttrQuoteBaseTimestamp = "quoteBaseTimestamp"

	AttrOpen   = "open"
	AttrHigh   = "high"
	AttrLow    = "low"
	AttrClose  = "close"
	AttrVolume = "volume"

	AttrProcess = "process"
	AttrBlock   = "block"

	AttrEventKey        = "eventKey"
	AttrTimestampID     = "timestampId"
	AttrBlockHash       = "blockHash"
	AttrBlockNumber     = "blockNumber"
	AttrTransactionHash = "transactionHash"
	AttrLogStatus       = "logStatus"

	AttrPriceInWei   = "priceInWei"
	AttrTimeInSecond = "timeInSecond"
	AttrNavAInWei    = "navAInWei"
	AttrNavBInWei    = "navBInWei"
	AttrTokenAInWei  = "tokenAInWei"
	AttrTokenBInWei  = "tokenBInWei"
	AttrEthAmtInWei  = "ethAmtInWei"
	AttrFeeInWei     = "feeInWei"
	AttrAmtInWei     = "amtInWei"
	AttrTotalSupplyA = "totalSupplyA"
	AttrTotalSupplyB = "totalSupplyB"
	AttrFrom         = "from"
	AttrOracle       = "oracle"
	AttrSender       = "sender"
	AttrTokenOwner   = "tokenOwner"

	AttrETH    = "eth"
	AttrTokenA = "tokenA"
	AttrTokenB = "tokenB"
	AttrFee    = "fee"
)

// DecodeError reports a malformed, missing or empty attribute.
type DecodeError struct {
	Attr   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode attribute %q: %s", e.Attr, e.Reason)
}

// S wraps a string attribute value.
func S(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// N wraps a numeric attribute value, serialized as a decimal string.
func N(v string) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: v}
}

// NFloat wraps a float as a numeric attribute value.
func NFloat(v float64) types.AttributeValue {
	return N(strconv.FormatFloat(v, 'f', -1, 64))
}

// NInt wraps an integer as a numeric attribute value.
func NInt(v int64) types.AttributeValue {
	return N(strconv.FormatInt(v, 10))
}

func getS(item Item, attr string) (string, error) {
	av, ok := item[attr]
	if !ok {
		return "", &DecodeError{Attr: attr, Reason: "missing"}
	}
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return "", &DecodeError{Attr: attr, Reason: "not a string attribute"}
	}
	return s.Value, nil
}

func rawN(item Item, attr string) (string, error) {
	av, ok := item[attr]
	if !ok {
		return "", &DecodeError{Attr: attr, Reason: "missing"}
	}
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return "", &DecodeError{Attr: attr, Reason: "not a numeric attribute"}
	}
	if n.Value == "" {
		return "", &DecodeError{Attr: attr, Reason: "empty numeric value"}
	}
	return n.Value, nil
}

func getFloat(item Item, attr string) (float64, error) {
	raw, err := rawN(item, attr)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &DecodeError{Attr: attr, Reason: "malformed number " + strconv.Quote(raw)}
	}
	return f, nil
}

// getFloatOptional decodes a numeric attribute that may legitimately be
// absent, yielding zero when missing.
func getFloatOptional(item Item, attr string) (float64, error) {
	if _, ok := item[attr]; !ok {
		return 0, nil
	}
	return getFloat(item, attr)
}

func getIntOptional(item Item, attr string) (int64, error) {
	if _, ok := item[attr]; !ok {
		return 0, nil
	}
	return getInt(item, attr)
}

func getInt(item Item, attr string) (int64, error) {
	raw, err := rawN(item, attr)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &DecodeError{Attr: attr, Reason: "malformed integer " + strconv.Quote(raw)}
	}
	return i, nil
}
