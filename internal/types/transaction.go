package types

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradeforge/vela/pkg/errors"
)

// Result is the outcome of one closed buy/sell round trip.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultLose Result = "LOSE"
)

// Transaction records one buy-to-sell round trip. It is created when a buy
// order fills and closed when the matching sell order fills; once closed it
// never changes.
type Transaction struct {
	ID         string     `yaml:"id" json:"id" csv:"id"`
	Symbol     string     `yaml:"symbol" json:"symbol" csv:"symbol"`
	OpenTime   time.Time  `yaml:"open_time" json:"open_time" csv:"open_time"`
	CloseTime  time.Time  `yaml:"close_time" json:"close_time" csv:"close_time"`
	EntryPrice float64    `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	ExitPrice  float64    `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	Quantity   float64    `yaml:"quantity" json:"quantity" csv:"quantity"`
	ReasonBuy  ReasonBuy  `yaml:"reason_buy" json:"reason_buy" csv:"reason_buy"`
	ReasonSell ReasonSell `yaml:"reason_sell" json:"reason_sell" csv:"reason_sell"`
	// Result is empty while the transaction is open.
	Result Result `yaml:"result" json:"result" csv:"result"`
}

// OpenTransaction starts a new round trip from a filled buy order.
func OpenTransaction(id string, order Order, reason ReasonBuy) Transaction {
	return Transaction{
		ID:         id,
		Symbol:     order.Symbol,
		OpenTime:   order.Timestamp,
		EntryPrice: order.FillPrice,
		Quantity:   order.Quantity,
		ReasonBuy:  reason,
	}
}

// IsOpen reports whether the matching sell has not yet filled.
func (t *Transaction) IsOpen() bool {
	return t.CloseTime.IsZero()
}

// Close completes the round trip from a filled sell order. Closing an already
// closed transaction is an invariant violation.
func (t *Transaction) Close(order Order, reason ReasonSell) error {
	if !t.IsOpen() {
		return errors.Newf(errors.ErrCodeUnexpectedFill, "transaction %s is already closed", t.ID)
	}

	t.CloseTime = order.Timestamp
	t.ExitPrice = order.FillPrice
	t.ReasonSell = reason

	if t.ExitPrice > t.EntryPrice {
		t.Result = ResultWin
	} else {
		t.Result = ResultLose
	}

	return nil
}

// Amount returns the realized profit or loss in quote currency. Decimal
// arithmetic keeps repeated small differences from accumulating float noise.
func (t *Transaction) Amount() float64 {
	if t.IsOpen() {
		return 0
	}

	entry := decimal.NewFromFloat(t.EntryPrice).Mul(decimal.NewFromFloat(t.Quantity))
	exit := decimal.NewFromFloat(t.ExitPrice).Mul(decimal.NewFromFloat(t.Quantity))
	amount, _ := exit.Sub(entry).Float64()

	return amount
}

// Duration returns how long the position was held. Zero while open.
func (t *Transaction) Duration() time.Duration {
	if t.IsOpen() {
		return 0
	}

	return t.CloseTime.Sub(t.OpenTime)
}
