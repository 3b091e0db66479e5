package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// PaperGateway fills orders in memory at their limit price. Orders rest for
// a configurable number of status polls before filling, which mimics the
// settlement delay of a real broker without any of its risk.
type PaperGateway struct {
	mu sync.Mutex

	fillAfterPolls int
	orders         map[string]*paperOrder
}

type paperOrder struct {
	order types.Order
	polls int
}

// NewPaperGateway creates a paper gateway whose orders fill on the first
// status poll.
func NewPaperGateway() *PaperGateway {
	return NewPaperGatewayWithDelay(1)
}

// NewPaperGatewayWithDelay creates a paper gateway whose orders report Open
// for fillAfterPolls-1 polls and fill on poll number fillAfterPolls.
func NewPaperGatewayWithDelay(fillAfterPolls int) *PaperGateway {
	if fillAfterPolls < 1 {
		fillAfterPolls = 1
	}

	return &PaperGateway{
		fillAfterPolls: fillAfterPolls,
		orders:         make(map[string]*paperOrder),
	}
}

// Place implements OrderGateway.
func (p *PaperGateway) Place(ctx context.Context, order types.Order) (types.Order, error) {
	if order.OrderID == "" {
		order.OrderID = uuid.NewString()
	}

	if err := order.Validate(); err != nil {
		return types.Order{}, err
	}

	order.Status = types.OrderStatusOpen
	order.FillPrice = order.Price

	p.mu.Lock()
	defer p.mu.Unlock()

	p.orders[order.OrderID] = &paperOrder{order: order}

	return order, nil
}

// Status implements OrderGateway.
func (p *PaperGateway) Status(ctx context.Context, symbol, orderID string) (types.OrderStatus, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.orders[orderID]
	if !ok {
		return "", errors.Newf(errors.ErrCodeOrderNotFound, "no such paper order %q", orderID)
	}

	if entry.order.Status == types.OrderStatusOpen {
		entry.polls++

		if entry.polls >= p.fillAfterPolls {
			entry.order.Status = types.OrderStatusFilled
		}
	}

	return entry.order.Status, nil
}

// Cancel implements OrderGateway. Filled orders can no longer be cancelled.
func (p *PaperGateway) Cancel(ctx context.Context, symbol, orderID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.orders[orderID]
	if !ok {
		return errors.Newf(errors.ErrCodeOrderNotFound, "no such paper order %q", orderID)
	}

	if entry.order.Status == types.OrderStatusFilled {
		return errors.Newf(errors.ErrCodeCancelFailed, "paper order %q already filled", orderID)
	}

	entry.order.Status = types.OrderStatusCancelled

	return nil
}
