package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tradeforge/vela/pkg/errors"
)

type Side string

type OrderStatus string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

const (
	OrderStatusOpen      OrderStatus = "OPEN"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusDone      OrderStatus = "DONE"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRejected  OrderStatus = "REJECTED"
)

// IsFinal reports whether the status ends the order lifecycle. Done is
// reported by some gateways between fill confirmation and settlement, so the
// agent keeps polling through it.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusFilled || s == OrderStatusCancelled || s == OrderStatusRejected
}

// Order is a limit order as known to the order gateway.
type Order struct {
	OrderID   string      `yaml:"order_id" json:"order_id" csv:"order_id" validate:"required"`
	Symbol    string      `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Side      Side        `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL"`
	Quantity  float64     `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,gt=0"`
	Price     float64     `yaml:"price" json:"price" csv:"price" validate:"required,gt=0"`
	Timestamp time.Time   `yaml:"timestamp" json:"timestamp" csv:"timestamp" validate:"required"`
	Status    OrderStatus `yaml:"status" json:"status" csv:"status"`
	// FillPrice is the executed price once the order is filled. Zero until then.
	FillPrice float64 `yaml:"fill_price" json:"fill_price" csv:"fill_price"`
}

// Validate validates the Order struct.
func (o *Order) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order", err)
	}

	return nil
}
