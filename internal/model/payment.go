package model

import "github.com/shopspring/decimal"

// Direction classifies money movement relative to the user.
type Direction string

const (
	DirectionExpense Direction = "expense"
	DirectionIncome  Direction = "income"
)

// Channel identifies the payment app or instrument a record came from.
type Channel string

const (
	ChannelWeChat   Channel = "wechat"
	ChannelAlipay   Channel = "alipay"
	ChannelBank     Channel = "bank"
	ChannelCloudPay Channel = "cloud_pay"
	ChannelUnknown  Channel = "unknown"
)

// PaymentInfo is a best-effort structured reading of payment-app screenshot
// text. It is a transient value owned by the caller; the extractor produces a
// fresh one per call and keeps no state.
type PaymentInfo struct {
	Amount       decimal.Decimal
	Direction    Direction
	Counterparty string // empty when not found, max 30 chars
	Timestamp    string // empty when not found, verbatim matched text
	Channel      Channel
	RawText      string

	// DirectionAmbiguous is set when both or neither direction keyword set
	// matched and the expense default (or a sign character) decided. Callers
	// wanting certainty should confirm with the user before trusting
	// Direction.
	DirectionAmbiguous bool
}
