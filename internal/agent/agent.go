// Package agent drives one strategy's trading lifecycle: evaluating signals,
// placing orders, tracking them to fill or cancellation, and enforcing the
// hard stop and the stop-trading circuit breaker.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/tradeforge/vela/internal/gateway"
	"github.com/tradeforge/vela/internal/logger"
	"github.com/tradeforge/vela/internal/notify"
	"github.com/tradeforge/vela/internal/store"
	"github.com/tradeforge/vela/internal/strategy"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/internal/utils"
	"github.com/tradeforge/vela/internal/wallet"
	"github.com/tradeforge/vela/pkg/errors"
)

// Params configures one agent.
type Params struct {
	Symbol    string
	Strategy  strategy.Strategy
	RiskRatio float64
	Timeframe types.Timeframe
	Funds     float64
	// StopRatio is the fraction of starting funds below which the agent
	// stops trading for good.
	StopRatio float64
	Gateway   gateway.OrderGateway
	Policy    gateway.Policy
	Notifier  notify.Notifier
	Recorder  store.Recorder
	Logger    *logger.Logger
}

// Agent owns a simulated wallet and the lifecycle of at most one broker
// order at a time. It is not safe for concurrent use; the orchestrator
// updates its agents sequentially.
type Agent struct {
	id        string
	symbol    string
	strategy  strategy.Strategy
	riskRatio float64
	timeframe types.Timeframe
	stopRatio float64

	wallet   *wallet.Wallet
	gw       gateway.OrderGateway
	policy   gateway.Policy
	notifier notify.Notifier
	recorder store.Recorder
	logger   *logger.Logger

	// hardStop only ever tightens toward the price while holding.
	hardStop float64

	fundsMin float64
	fundsMax float64

	stopped bool

	pending     optional.Option[types.Order]
	pendingBuy  types.ReasonBuy
	pendingSell types.ReasonSell
	attempts    int

	openTx       optional.Option[types.Transaction]
	transactions []types.Transaction
}

// New creates an agent. Agents are created once at startup and live until
// process shutdown.
func New(p Params) (*Agent, error) {
	if p.RiskRatio <= 0 || p.RiskRatio >= 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidRiskRatio, "risk ratio %.4f outside (0,1)", p.RiskRatio)
	}

	if err := p.Timeframe.Validate(); err != nil {
		return nil, err
	}

	if p.Recorder == nil {
		p.Recorder = store.NopRecorder{}
	}

	if p.Logger == nil {
		p.Logger = logger.NewNopLogger()
	}

	if p.Notifier == nil {
		p.Notifier = notify.NopNotifier{}
	}

	id := uuid.NewString()

	return &Agent{
		id:        id,
		symbol:    p.Symbol,
		strategy:  p.Strategy,
		riskRatio: p.RiskRatio,
		timeframe: p.Timeframe,
		stopRatio: p.StopRatio,
		wallet:    wallet.New(p.Funds),
		gw:        p.Gateway,
		policy:    p.Policy,
		notifier:  p.Notifier,
		recorder:  p.Recorder,
		logger: p.Logger.Named("agent").With(
			zap.String("agent_id", id),
			zap.String("strategy", string(p.Strategy.Key())),
			zap.String("timeframe", string(p.Timeframe)),
		),
		fundsMin: p.Funds,
		fundsMax: p.Funds,
	}, nil
}

// ID returns the agent's identifier.
func (a *Agent) ID() string { return a.id }

// StrategyKey returns the key of the strategy the agent runs.
func (a *Agent) StrategyKey() types.StrategyKey { return a.strategy.Key() }

// RiskRatio returns the configured hard-stop width.
func (a *Agent) RiskRatio() float64 { return a.riskRatio }

// Timeframe returns the candle timeframe the agent trades on.
func (a *Agent) Timeframe() types.Timeframe { return a.timeframe }

// Stopped reports whether the stop-trading latch has fired.
func (a *Agent) Stopped() bool { return a.stopped }

// HardStop returns the current hard-stop price, zero while not holding.
func (a *Agent) HardStop() float64 { return a.hardStop }

// HasPendingOrder reports whether an order is awaiting fill.
func (a *Agent) HasPendingOrder() bool { return a.pending.IsSome() }

// Wallet exposes the agent's ledger.
func (a *Agent) Wallet() *wallet.Wallet { return a.wallet }

// TotalAssets values the agent at the given price.
func (a *Agent) TotalAssets(price float64) float64 {
	return a.wallet.TotalAssets(price)
}

// FundsWatermarks returns the lowest and highest total assets seen.
func (a *Agent) FundsWatermarks() (min, max float64) {
	return a.fundsMin, a.fundsMax
}

// Transactions returns the closed round trips, oldest first.
func (a *Agent) Transactions() []types.Transaction {
	return a.transactions
}

// Update runs one tick: refresh indicator state, check signals or poll the
// pending order, enforce risk, and evaluate the stop-trading latch.
// newPeriods is how many candles at the end of history are new since the
// previous tick.
func (a *Agent) Update(ctx context.Context, history []types.Candle, newPeriods int, currentPrice float64) error {
	a.updateWatermarks(currentPrice)

	if a.stopped {
		return nil
	}

	if err := a.strategy.Recompute(history, newPeriods); err != nil {
		return errors.Wrap(errors.ErrCodeIndicatorCalculation, "strategy recompute failed", err)
	}

	var err error
	if a.pending.IsSome() {
		err = a.pollPendingOrder(ctx)
	} else {
		a.attempts = 0
		err = a.checkSignals(ctx, history, currentPrice)
	}

	if err != nil {
		return err
	}

	a.evaluateStopLatch()

	return nil
}

func (a *Agent) updateWatermarks(currentPrice float64) {
	total := a.wallet.TotalAssets(currentPrice)

	if total < a.fundsMin {
		a.fundsMin = total
	}

	if total > a.fundsMax {
		a.fundsMax = total
	}
}

// checkSignals runs exactly one of the buy or sell checks: sell while
// holding, buy otherwise.
func (a *Agent) checkSignals(ctx context.Context, history []types.Candle, currentPrice float64) error {
	if a.wallet.HasPosition() {
		return a.checkSell(ctx, history, currentPrice)
	}

	return a.checkBuy(ctx, history, currentPrice)
}

func (a *Agent) checkBuy(ctx context.Context, history []types.Candle, currentPrice float64) error {
	decision := a.strategy.CheckBuy(history, currentPrice)
	if !decision.Signal {
		return nil
	}

	quantity := utils.MaxQuantity(a.wallet.Funds(), currentPrice)
	if quantity <= 0 {
		return nil
	}

	order := types.Order{
		OrderID:   uuid.NewString(),
		Symbol:    a.symbol,
		Side:      types.SideBuy,
		Quantity:  quantity,
		Price:     currentPrice,
		Timestamp: time.Now().UTC(),
	}

	placed, err := a.gw.Place(ctx, order)
	if err != nil {
		return err
	}

	a.pending = optional.Some(placed)
	a.pendingBuy = decision.Reason

	a.logger.Info("buy order placed",
		zap.String("order_id", placed.OrderID),
		zap.Float64("price", placed.Price),
		zap.Float64("quantity", placed.Quantity),
		zap.String("reason", string(decision.Reason)),
	)

	a.recordOrder(ctx, placed)

	return nil
}

func (a *Agent) checkSell(ctx context.Context, history []types.Candle, currentPrice float64) error {
	decision := a.strategy.CheckSell(history, currentPrice)

	if decision.TightenStop {
		a.tightenHardStop(currentPrice)
	}

	reason := decision.Reason
	sell := decision.Signal

	// The hard stop overrides the strategy in both directions: crossing it
	// forces a sell even on no signal.
	if currentPrice <= a.hardStop {
		sell = true
		reason = types.ReasonSellHardStop
	}

	if !sell {
		return nil
	}

	order := types.Order{
		OrderID:   uuid.NewString(),
		Symbol:    a.symbol,
		Side:      types.SideSell,
		Quantity:  a.wallet.Quantity(),
		Price:     currentPrice,
		Timestamp: time.Now().UTC(),
	}

	placed, err := a.gw.Place(ctx, order)
	if err != nil {
		return err
	}

	a.pending = optional.Some(placed)
	a.pendingSell = reason

	a.logger.Info("sell order placed",
		zap.String("order_id", placed.OrderID),
		zap.Float64("price", placed.Price),
		zap.Float64("quantity", placed.Quantity),
		zap.String("reason", string(reason)),
	)

	a.recordOrder(ctx, placed)

	return nil
}

// tightenHardStop recomputes the stop from the live price and only ever
// raises the stored value.
func (a *Agent) tightenHardStop(currentPrice float64) {
	proposed := currentPrice + 0.5*a.wallet.PurchasePrice()*a.riskRatio

	if proposed > a.hardStop {
		a.logger.Info("hard stop tightened",
			zap.Float64("from", a.hardStop),
			zap.Float64("to", proposed),
		)
		a.hardStop = proposed
	}
}

func (a *Agent) pollPendingOrder(ctx context.Context) error {
	order := a.pending.Unwrap()

	status, err := a.gw.Status(ctx, order.Symbol, order.OrderID)
	if err != nil {
		return err
	}

	switch status {
	case types.OrderStatusFilled:
		return a.applyFill(ctx, order)

	case types.OrderStatusRejected, types.OrderStatusCancelled:
		a.logger.Info("order discarded",
			zap.String("order_id", order.OrderID),
			zap.String("status", string(status)),
		)
		a.clearPending()

		return nil

	case types.OrderStatusOpen, types.OrderStatusPending, types.OrderStatusDone:
		a.attempts++

		if a.policy.Exhausted(a.attempts) {
			a.logger.Warn("order stuck, cancelling",
				zap.String("order_id", order.OrderID),
				zap.Int("attempts", a.attempts),
			)

			if err := a.gw.Cancel(ctx, order.Symbol, order.OrderID); err != nil {
				a.logger.Error("cancel failed", zap.Error(err))
			}
		}

		return nil

	default:
		return errors.Newf(errors.ErrCodePollFailed, "unknown order status %q for order %s", status, order.OrderID)
	}
}

func (a *Agent) applyFill(ctx context.Context, order types.Order) error {
	if order.FillPrice == 0 {
		order.FillPrice = order.Price
	}

	switch order.Side {
	case types.SideBuy:
		return a.applyBuyFill(ctx, order)
	case types.SideSell:
		return a.applySellFill(ctx, order)
	default:
		return errors.Newf(errors.ErrCodeInvalidOrder, "pending order %s has side %q", order.OrderID, order.Side)
	}
}

func (a *Agent) applyBuyFill(ctx context.Context, order types.Order) error {
	if a.openTx.IsSome() {
		err := errors.Newf(errors.ErrCodeUnexpectedFill,
			"buy fill for order %s but a transaction is already open", order.OrderID)
		a.logger.Error("unexpected buy fill", zap.Error(err))

		return err
	}

	if err := a.wallet.ApplyBuyFill(order.FillPrice, order.Quantity); err != nil {
		return err
	}

	a.hardStop = order.FillPrice * (1 - a.riskRatio)
	a.openTx = optional.Some(types.OpenTransaction(uuid.NewString(), order, a.pendingBuy))
	a.clearPending()

	a.logger.Info("buy filled",
		zap.String("order_id", order.OrderID),
		zap.Float64("fill_price", order.FillPrice),
		zap.Float64("hard_stop", a.hardStop),
	)

	return nil
}

func (a *Agent) applySellFill(ctx context.Context, order types.Order) error {
	if a.openTx.IsNone() {
		err := errors.Newf(errors.ErrCodeUnexpectedFill,
			"sell fill for order %s with no open transaction", order.OrderID)
		a.logger.Error("unexpected sell fill", zap.Error(err))

		return err
	}

	if err := a.wallet.ApplySellFill(order.FillPrice, order.Quantity); err != nil {
		return err
	}

	tx := a.openTx.Unwrap()
	if err := tx.Close(order, a.pendingSell); err != nil {
		return err
	}

	a.transactions = append(a.transactions, tx)
	a.openTx = optional.None[types.Transaction]()
	a.hardStop = 0
	a.clearPending()

	a.wallet.RatchetStartingFunds()

	a.logger.Info("sell filled",
		zap.String("order_id", order.OrderID),
		zap.Float64("fill_price", order.FillPrice),
		zap.String("result", string(tx.Result)),
		zap.Float64("amount", tx.Amount()),
	)

	if err := a.recorder.RecordTransaction(ctx, a.id, tx); err != nil {
		a.logger.Warn("transaction record failed", zap.Error(err))
	}

	return nil
}

func (a *Agent) clearPending() {
	a.pending = optional.None[types.Order]()
	a.pendingBuy = ""
	a.pendingSell = ""
	a.attempts = 0
}

// evaluateStopLatch stops the agent for good once funds have fallen below
// the configured fraction of starting funds with no position left to
// recover through. The latch fires at most once and emits one summary
// notification.
func (a *Agent) evaluateStopLatch() {
	if a.stopped || a.wallet.HasPosition() || a.pending.IsSome() {
		return
	}

	if a.stopRatio <= 0 {
		return
	}

	if a.wallet.Funds() < a.stopRatio*a.wallet.StartingFunds() {
		a.stopped = true

		summary := a.Summary()
		subject := fmt.Sprintf("agent %s stopped trading", a.strategy.Key())
		a.notifier.Notify(subject, summary.String())

		a.logger.Warn("stop-trading latch fired",
			zap.Float64("funds", a.wallet.Funds()),
			zap.Float64("starting_funds", a.wallet.StartingFunds()),
		)

		if err := a.recorder.RecordEvent(context.Background(), a.id, "stopped", summary.String()); err != nil {
			a.logger.Warn("event record failed", zap.Error(err))
		}
	}
}

func (a *Agent) recordOrder(ctx context.Context, order types.Order) {
	if err := a.recorder.RecordOrder(ctx, a.id, order); err != nil {
		a.logger.Warn("order record failed", zap.Error(err))
	}
}
