package gateway

import (
	"context"
	"strconv"

	"github.com/adshao/go-binance/v2"
	"github.com/go-playground/validator/v10"

	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/internal/utils"
	"github.com/tradeforge/vela/pkg/errors"
)

// BinanceDecimalPrecision is the quantity precision used when formatting
// orders. 8 decimals covers satoshi-level quantities; symbol-specific
// precision from exchange info would be stricter.
const BinanceDecimalPrecision = 8

// Service interfaces wrap the Binance API for mocking.

// CreateOrderService creates orders.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side binance.SideType) CreateOrderService
	Type(orderType binance.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	Price(price string) CreateOrderService
	TimeInForce(tif binance.TimeInForceType) CreateOrderService
	Do(ctx context.Context) (*binance.CreateOrderResponse, error)
}

// GetOrderService fetches one order.
type GetOrderService interface {
	Symbol(symbol string) GetOrderService
	OrderID(orderID int64) GetOrderService
	Do(ctx context.Context) (*binance.Order, error)
}

// CancelOrderService cancels orders.
type CancelOrderService interface {
	Symbol(symbol string) CancelOrderService
	OrderID(orderID int64) CancelOrderService
	Do(ctx context.Context) (*binance.CancelOrderResponse, error)
}

// BinanceClient abstracts the Binance client for testing.
type BinanceClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetOrderService() GetOrderService
	NewCancelOrderService() CancelOrderService
}

type realBinanceClient struct {
	client *binance.Client
}

func (r *realBinanceClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: r.client.NewCreateOrderService()}
}

func (r *realBinanceClient) NewGetOrderService() GetOrderService {
	return &realGetOrderService{service: r.client.NewGetOrderService()}
}

func (r *realBinanceClient) NewCancelOrderService() CancelOrderService {
	return &realCancelOrderService{service: r.client.NewCancelOrderService()}
}

type realCreateOrderService struct {
	service *binance.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCreateOrderService) Side(side binance.SideType) CreateOrderService {
	s.service = s.service.Side(side)

	return s
}

func (s *realCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)

	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)

	return s
}

func (s *realCreateOrderService) Price(price string) CreateOrderService {
	s.service = s.service.Price(price)

	return s
}

func (s *realCreateOrderService) TimeInForce(tif binance.TimeInForceType) CreateOrderService {
	s.service = s.service.TimeInForce(tif)

	return s
}

func (s *realCreateOrderService) Do(ctx context.Context) (*binance.CreateOrderResponse, error) {
	return s.service.Do(ctx)
}

type realGetOrderService struct {
	service *binance.GetOrderService
}

func (s *realGetOrderService) Symbol(symbol string) GetOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realGetOrderService) OrderID(orderID int64) GetOrderService {
	s.service = s.service.OrderID(orderID)

	return s
}

func (s *realGetOrderService) Do(ctx context.Context) (*binance.Order, error) {
	return s.service.Do(ctx)
}

type realCancelOrderService struct {
	service *binance.CancelOrderService
}

func (s *realCancelOrderService) Symbol(symbol string) CancelOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCancelOrderService) OrderID(orderID int64) CancelOrderService {
	s.service = s.service.OrderID(orderID)

	return s
}

func (s *realCancelOrderService) Do(ctx context.Context) (*binance.CancelOrderResponse, error) {
	return s.service.Do(ctx)
}

// BinanceConfig holds Binance API credentials and endpoint overrides.
type BinanceConfig struct {
	APIKey    string `yaml:"api_key" validate:"required"`
	SecretKey string `yaml:"secret_key" validate:"required"`
	BaseURL   string `yaml:"base_url"`
}

// Validate checks that live-trading credentials are present.
func (c *BinanceConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid binance config", err)
	}

	return nil
}

// BinanceGateway implements OrderGateway against the Binance spot API. It is
// stateless: every call goes straight to the API.
type BinanceGateway struct {
	client           BinanceClient
	decimalPrecision int
}

// NewBinanceGateway creates a gateway against the live or testnet API.
// config.BaseURL takes precedence over useTestnet.
func NewBinanceGateway(config BinanceConfig, useTestnet bool) *BinanceGateway {
	if useTestnet {
		binance.UseTestnet = true
	}

	client := binance.NewClient(config.APIKey, config.SecretKey)

	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}

	return &BinanceGateway{
		client:           &realBinanceClient{client: client},
		decimalPrecision: BinanceDecimalPrecision,
	}
}

// newBinanceGatewayWithClient is used by tests to inject a mock client.
func newBinanceGatewayWithClient(client BinanceClient) *BinanceGateway {
	return &BinanceGateway{
		client:           client,
		decimalPrecision: BinanceDecimalPrecision,
	}
}

// Place implements OrderGateway with a GTC limit order.
func (b *BinanceGateway) Place(ctx context.Context, order types.Order) (types.Order, error) {
	if err := order.Validate(); err != nil {
		return types.Order{}, err
	}

	var side binance.SideType

	switch order.Side {
	case types.SideBuy:
		side = binance.SideTypeBuy
	case types.SideSell:
		side = binance.SideTypeSell
	default:
		return types.Order{}, errors.Newf(errors.ErrCodeInvalidOrder, "unsupported order side: %s", order.Side)
	}

	// Floor to the exchange precision so the submitted quantity never
	// exceeds the funds that sized it.
	order.Quantity = utils.RoundToDecimalPrecision(order.Quantity, b.decimalPrecision)

	resp, err := b.client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(side).
		Type(binance.OrderTypeLimit).
		Quantity(strconv.FormatFloat(order.Quantity, 'f', b.decimalPrecision, 64)).
		Price(strconv.FormatFloat(order.Price, 'f', -1, 64)).
		TimeInForce(binance.TimeInForceTypeGTC).
		Do(ctx)
	if err != nil {
		return types.Order{}, errors.Wrap(errors.ErrCodeOrderFailed, "failed to place order on binance", err)
	}

	order.OrderID = strconv.FormatInt(resp.OrderID, 10)
	order.Status = orderStatusFromBinance(resp.Status)

	return order, nil
}

// Status implements OrderGateway.
func (b *BinanceGateway) Status(ctx context.Context, symbol, orderID string) (types.OrderStatus, error) {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodePollFailed, err, "malformed binance order id %q", orderID)
	}

	resp, err := b.client.NewGetOrderService().
		Symbol(symbol).
		OrderID(id).
		Do(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodePollFailed, "failed to poll order status on binance", err)
	}

	return orderStatusFromBinance(resp.Status), nil
}

// Cancel implements OrderGateway.
func (b *BinanceGateway) Cancel(ctx context.Context, symbol, orderID string) error {
	id, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeCancelFailed, err, "malformed binance order id %q", orderID)
	}

	_, err = b.client.NewCancelOrderService().
		Symbol(symbol).
		OrderID(id).
		Do(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCancelFailed, "failed to cancel order on binance", err)
	}

	return nil
}

func orderStatusFromBinance(status binance.OrderStatusType) types.OrderStatus {
	switch status {
	case binance.OrderStatusTypeNew:
		return types.OrderStatusOpen
	case binance.OrderStatusTypePartiallyFilled, binance.OrderStatusTypePendingCancel:
		return types.OrderStatusPending
	case binance.OrderStatusTypeFilled:
		return types.OrderStatusFilled
	case binance.OrderStatusTypeCanceled, binance.OrderStatusTypeExpired:
		return types.OrderStatusCancelled
	case binance.OrderStatusTypeRejected:
		return types.OrderStatusRejected
	default:
		return types.OrderStatusDone
	}
}
