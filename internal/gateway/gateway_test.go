package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/stretchr/testify/suite"

	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

type GatewayTestSuite struct {
	suite.Suite

	ctx context.Context
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

func (s *GatewayTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func testOrder() types.Order {
	return types.Order{
		Symbol:    "BTCUSDT",
		Side:      types.SideBuy,
		Quantity:  1,
		Price:     100,
		Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *GatewayTestSuite) TestPaperFillsAfterConfiguredPolls() {
	gw := NewPaperGatewayWithDelay(3)

	placed, err := gw.Place(s.ctx, testOrder())
	s.Require().NoError(err)
	s.NotEmpty(placed.OrderID)
	s.Equal(types.OrderStatusOpen, placed.Status)

	for poll := 1; poll <= 2; poll++ {
		status, err := gw.Status(s.ctx, placed.Symbol, placed.OrderID)
		s.Require().NoError(err)
		s.Equal(types.OrderStatusOpen, status)
	}

	status, err := gw.Status(s.ctx, placed.Symbol, placed.OrderID)
	s.Require().NoError(err)
	s.Equal(types.OrderStatusFilled, status)
}

func (s *GatewayTestSuite) TestPaperCancelBeforeFill() {
	gw := NewPaperGatewayWithDelay(2)

	placed, err := gw.Place(s.ctx, testOrder())
	s.Require().NoError(err)

	s.Require().NoError(gw.Cancel(s.ctx, placed.Symbol, placed.OrderID))

	status, err := gw.Status(s.ctx, placed.Symbol, placed.OrderID)
	s.Require().NoError(err)
	s.Equal(types.OrderStatusCancelled, status)
}

func (s *GatewayTestSuite) TestPaperCancelAfterFillFails() {
	gw := NewPaperGateway()

	placed, err := gw.Place(s.ctx, testOrder())
	s.Require().NoError(err)

	_, err = gw.Status(s.ctx, placed.Symbol, placed.OrderID)
	s.Require().NoError(err)

	err = gw.Cancel(s.ctx, placed.Symbol, placed.OrderID)
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeCancelFailed))
}

func (s *GatewayTestSuite) TestPaperUnknownOrder() {
	gw := NewPaperGateway()

	_, err := gw.Status(s.ctx, "BTCUSDT", "missing")
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeOrderNotFound))
}

func (s *GatewayTestSuite) TestPolicyExhaustion() {
	policy := Policy{MaxVerifyAttempts: 3}

	s.False(policy.Exhausted(2))
	s.True(policy.Exhausted(3))
	s.True(policy.Exhausted(4))

	unbounded := Policy{}
	s.False(unbounded.Exhausted(1000))
}

func (s *GatewayTestSuite) TestBinanceStatusMapping() {
	cases := map[binance.OrderStatusType]types.OrderStatus{
		binance.OrderStatusTypeNew:             types.OrderStatusOpen,
		binance.OrderStatusTypePartiallyFilled: types.OrderStatusPending,
		binance.OrderStatusTypeFilled:          types.OrderStatusFilled,
		binance.OrderStatusTypeCanceled:        types.OrderStatusCancelled,
		binance.OrderStatusTypeExpired:         types.OrderStatusCancelled,
		binance.OrderStatusTypeRejected:        types.OrderStatusRejected,
	}

	for in, want := range cases {
		s.Equal(want, orderStatusFromBinance(in))
	}
}
