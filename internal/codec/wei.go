package codec

import (
	"github.com/shopspring/decimal"
)

// weiDecimals is the fixed-point scale of on-chain amounts.
const weiDecimals = 18

// FromWei converts an 18-decimal fixed point integer string into an exact
// decimal amount. The division is performed on the big-integer coefficient,
// never through a float.
func FromWei(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.Shift(-weiDecimals), nil
}

func getWei(item Item, attr string) (decimal.Decimal, error) {
	raw, err := getS(item, attr)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if raw == "" {
		return decimal.Decimal{}, &DecodeError{Attr: attr, Reason: "empty wei value"}
	}
	d, err := FromWei(raw)
	if err != nil {
		return decimal.Decimal{}, &DecodeError{Attr: attr, Reason: "malformed wei value " + raw}
	}
	return d, nil
}

// getWeiOptional decodes a wei attribute that may legitimately be absent,
// yielding zero when missing.
func getWeiOptional(item Item, attr string) (decimal.Decimal, error) {
	if _, ok := item[attr]; !ok {
		return decimal.Zero, nil
	}
	return getWei(item, attr)
}

// getDecimal decodes a numeric attribute into an exact decimal.
func getDecimal(item Item, attr string) (decimal.Decimal, error) {
	raw, err := rawN(item, attr)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &DecodeError{Attr: attr, Reason: "malformed number " + raw}
	}
	return d, nil
}
