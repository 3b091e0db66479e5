// Package gateway abstracts the broker: placing limit orders, polling their
// status, and cancelling them. One gateway talks to Binance, one fills
// orders immediately in memory for paper trading.
package gateway

import (
	"context"

	"github.com/tradeforge/vela/internal/types"
)

// DefaultMaxVerifyAttempts is the default ceiling on status polls before a
// stuck order is cancelled.
const DefaultMaxVerifyAttempts = 20

// OrderGateway places and tracks orders with the broker.
type OrderGateway interface {
	// Place submits a limit order and returns it with the broker-assigned
	// order id and initial status.
	Place(ctx context.Context, order types.Order) (types.Order, error)
	// Status polls the broker for the order's current status.
	Status(ctx context.Context, symbol, orderID string) (types.OrderStatus, error)
	// Cancel withdraws an unfilled order.
	Cancel(ctx context.Context, symbol, orderID string) error
}

// Policy bounds how long an agent keeps polling an order before giving up
// and cancelling it. The ceiling lives here rather than in the agent state
// machine so different gateways can tolerate different settlement times.
type Policy struct {
	MaxVerifyAttempts int
}

// DefaultPolicy returns the stock polling policy.
func DefaultPolicy() Policy {
	return Policy{MaxVerifyAttempts: DefaultMaxVerifyAttempts}
}

// Exhausted reports whether attempts has reached the polling ceiling.
func (p Policy) Exhausted(attempts int) bool {
	return p.MaxVerifyAttempts > 0 && attempts >= p.MaxVerifyAttempts
}
