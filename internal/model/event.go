package model

import "github.com/shopspring/decimal"

// Chain event types emitted by the token contracts.
const (
	EventCreate      = "Create"
	EventRedeem      = "Redeem"
	EventTransfer    = "Transfer"
	EventApproval    = "Approval"
	EventTotalSupply = "TotalSupply"
	EventAcceptPrice = "AcceptPrice"
	EventAddStake    = "AddStake"
	EventUnStake     = "UnStake"
)

// LogStatusMined is the default log status for events persisted without one.
const LogStatusMined = "mined"

// ChainEvent is a raw contract event as delivered by the upstream chain
// client. Parameters carries the free-form per-type event arguments.
// Immutable once mined; LogStatus may be corrected by a replacing write
// under the same computed key.
type ChainEvent struct {
	ContractAddress string
	Type            string
	ID              string
	BlockHash       string
	BlockNumber     int64
	TransactionHash string
	LogStatus       string
	Parameters      map[string]string
	Timestamp       int64 // epoch milliseconds, UTC
}

// Conversion is a decoded Create or Redeem event. Wei-denominated amounts
// are converted to exact decimals. Pending is set for conversions read
// from the UI events table that have not been mined yet.
type Conversion struct {
	ContractAddress string
	TransactionHash string
	BlockNumber     int64
	Type            string
	Timestamp       int64
	ETH             decimal.Decimal
	TokenA          decimal.Decimal
	TokenB          decimal.Decimal
	Fee             decimal.Decimal
	Pending         bool
}

// Stake is a decoded AddStake or UnStake event.
type Stake struct {
	ContractAddress string
	TransactionHash string
	BlockNumber     int64
	Type            string
	Timestamp       int64
	From            string
	Oracle          string
	Amount          decimal.Decimal
}

// AcceptedPrice is a decoded AcceptPrice event. Timestamp is rounded to
// the nearest hour, in milliseconds.
type AcceptedPrice struct {
	ContractAddress string
	TransactionHash string
	BlockNumber     int64
	Timestamp       int64
	Price           decimal.Decimal
	NavA            decimal.Decimal
	NavB            decimal.Decimal
}

// TotalSupply is a decoded TotalSupply event.
type TotalSupply struct {
	ContractAddress string
	TransactionHash string
	BlockNumber     int64
	Timestamp       int64
	TokenA          decimal.Decimal
	TokenB          decimal.Decimal
}
