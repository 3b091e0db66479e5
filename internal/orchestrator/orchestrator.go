// Package orchestrator fans one market tick out to every agent trading an
// instrument and ranks the agents by what their wallets are worth.
package orchestrator

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/tradeforge/vela/internal/agent"
	"github.com/tradeforge/vela/internal/gateway"
	"github.com/tradeforge/vela/internal/logger"
	"github.com/tradeforge/vela/internal/market"
	"github.com/tradeforge/vela/internal/marketdata"
	"github.com/tradeforge/vela/internal/notify"
	"github.com/tradeforge/vela/internal/store"
	"github.com/tradeforge/vela/internal/strategy"
	"github.com/tradeforge/vela/internal/types"
	"github.com/tradeforge/vela/pkg/errors"
)

// DefaultHistoryLimit is how many candles are fetched and retained per
// timeframe.
const DefaultHistoryLimit = 300

// Observer is notified about tick outcomes, for metrics.
type Observer interface {
	TickProcessed()
	TickDropped()
}

type nopObserver struct{}

func (nopObserver) TickProcessed() {}
func (nopObserver) TickDropped()   {}

// Params configures an orchestrator for one instrument.
type Params struct {
	Symbol         string
	StrategyKeys   []types.StrategyKey
	RiskRatios     []float64
	Timeframes     []types.Timeframe
	StrategyConfig strategy.Config
	FundsPerAgent  float64
	StopRatio      float64
	HistoryLimit   int

	Fetcher  marketdata.Fetcher
	Gateway  gateway.OrderGateway
	Policy   gateway.Policy
	Notifier notify.Notifier
	Recorder store.Recorder
	Observer Observer
	Logger   *logger.Logger
}

// Orchestrator owns one agent per strategy × risk ratio × timeframe
// combination and one candle series per timeframe. Agents update strictly
// sequentially within a tick; overlapping ticks are dropped. Readers such
// as the leaderboard run concurrently with ticks and take the read lock.
type Orchestrator struct {
	symbol       string
	historyLimit int

	fetcher  marketdata.Fetcher
	observer Observer
	logger   *logger.Logger

	timeframes []types.Timeframe
	series     map[types.Timeframe]*market.CandleSeries

	// agents in creation order, the leaderboard tie-break
	agents []*agent.Agent

	// mu guards series and agent state: the tick holds the write lock
	// while mutating, readers valuing agents hold the read lock.
	mu sync.RWMutex

	inProgress atomic.Bool
	lastPrice  atomic.Value // float64
}

// New creates the orchestrator and its full cross-product of agents.
func New(p Params) (*Orchestrator, error) {
	if len(p.StrategyKeys) == 0 || len(p.RiskRatios) == 0 || len(p.Timeframes) == 0 {
		return nil, errors.New(errors.ErrCodeNoAgents, "orchestrator needs at least one strategy, risk ratio, and timeframe")
	}

	if p.HistoryLimit <= 0 {
		p.HistoryLimit = DefaultHistoryLimit
	}

	if p.Observer == nil {
		p.Observer = nopObserver{}
	}

	if p.Logger == nil {
		p.Logger = logger.NewNopLogger()
	}

	o := &Orchestrator{
		symbol:       p.Symbol,
		historyLimit: p.HistoryLimit,
		fetcher:      p.Fetcher,
		observer:     p.Observer,
		logger:       p.Logger.Named("orchestrator").With(zap.String("symbol", p.Symbol)),
		timeframes:   p.Timeframes,
		series:       make(map[types.Timeframe]*market.CandleSeries, len(p.Timeframes)),
	}

	for _, timeframe := range p.Timeframes {
		if err := timeframe.Validate(); err != nil {
			return nil, err
		}

		o.series[timeframe] = market.NewCandleSeries(p.Symbol, timeframe, p.HistoryLimit)
	}

	for _, timeframe := range p.Timeframes {
		for _, key := range p.StrategyKeys {
			for _, ratio := range p.RiskRatios {
				st, err := strategy.New(key, p.StrategyConfig)
				if err != nil {
					return nil, err
				}

				a, err := agent.New(agent.Params{
					Symbol:    p.Symbol,
					Strategy:  st,
					RiskRatio: ratio,
					Timeframe: timeframe,
					Funds:     p.FundsPerAgent,
					StopRatio: p.StopRatio,
					Gateway:   p.Gateway,
					Policy:    p.Policy,
					Notifier:  p.Notifier,
					Recorder:  p.Recorder,
					Logger:    p.Logger,
				})
				if err != nil {
					return nil, err
				}

				o.agents = append(o.agents, a)
			}
		}
	}

	o.lastPrice.Store(0.0)

	return o, nil
}

// Symbol returns the instrument this orchestrator trades.
func (o *Orchestrator) Symbol() string { return o.symbol }

// Agents returns the agents in creation order.
func (o *Orchestrator) Agents() []*agent.Agent { return o.agents }

// Tick runs one full update cycle. A tick that arrives while another is
// still running is dropped, never queued. Any fetch failure abandons the
// tick before agent state is touched.
func (o *Orchestrator) Tick(ctx context.Context) error {
	if !o.inProgress.CompareAndSwap(false, true) {
		o.observer.TickDropped()
		o.logger.Warn("tick dropped, previous tick still running")

		return nil
	}
	defer o.inProgress.Store(false)

	// Fetch everything before mutating anything.
	batches := make(map[types.Timeframe][]types.Candle, len(o.timeframes))

	for _, timeframe := range o.timeframes {
		candles, err := o.fetcher.Candles(ctx, o.symbol, timeframe, o.historyLimit)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeFetchFailed, err, "candle fetch for %s %s failed", o.symbol, timeframe)
		}

		batches[timeframe] = candles
	}

	price, err := o.fetcher.Price(ctx, o.symbol)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeFetchFailed, err, "price fetch for %s failed", o.symbol)
	}

	// Check every batch before syncing any, so a bad batch for one
	// timeframe cannot leave another timeframe's series already advanced.
	for _, timeframe := range o.timeframes {
		if err := o.series[timeframe].CheckBatch(batches[timeframe]); err != nil {
			return err
		}
	}

	o.lastPrice.Store(price)

	o.mu.Lock()
	defer o.mu.Unlock()

	newCounts := make(map[types.Timeframe]int, len(o.timeframes))

	for _, timeframe := range o.timeframes {
		appended, err := o.series[timeframe].Sync(batches[timeframe])
		if err != nil {
			return err
		}

		newCounts[timeframe] = appended
	}

	for _, a := range o.agents {
		timeframe := a.Timeframe()
		history := o.series[timeframe].Candles()

		if err := a.Update(ctx, history, newCounts[timeframe], price); err != nil {
			// One agent's failure never blocks the others; invariant
			// violations have already been logged loudly by the agent.
			o.logger.Error("agent update failed",
				zap.String("agent_id", a.ID()),
				zap.String("strategy", string(a.StrategyKey())),
				zap.Error(err),
			)
		}
	}

	o.observer.TickProcessed()

	return nil
}

// LastPrice returns the most recent fetched price, zero before the first
// successful tick.
func (o *Orchestrator) LastPrice() float64 {
	price, _ := o.lastPrice.Load().(float64)

	return price
}

// TotalAssets values every agent at the last fetched price.
func (o *Orchestrator) TotalAssets() float64 {
	price := o.LastPrice()

	o.mu.RLock()
	defer o.mu.RUnlock()

	total := 0.0
	for _, a := range o.agents {
		total += a.TotalAssets(price)
	}

	return total
}

// AllStopped reports whether every agent has hit its stop-trading latch.
func (o *Orchestrator) AllStopped() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	for _, a := range o.agents {
		if !a.Stopped() {
			return false
		}
	}

	return true
}

// Standing is one leaderboard row.
type Standing struct {
	AgentID     string            `json:"agent_id"`
	StrategyKey types.StrategyKey `json:"strategy"`
	Timeframe   types.Timeframe   `json:"timeframe"`
	RiskRatio   float64           `json:"risk_ratio"`
	Assets      float64           `json:"assets"`
	Wins        int               `json:"wins"`
	Losses      int               `json:"losses"`
	Stopped     bool              `json:"stopped"`
}

// Leaderboard ranks agents by assets, descending. Ties keep creation
// order.
func (o *Orchestrator) Leaderboard() []Standing {
	price := o.LastPrice()

	o.mu.RLock()
	defer o.mu.RUnlock()

	standings := make([]Standing, 0, len(o.agents))

	for _, a := range o.agents {
		summary := a.Summary()

		standings = append(standings, Standing{
			AgentID:     a.ID(),
			StrategyKey: a.StrategyKey(),
			Timeframe:   a.Timeframe(),
			RiskRatio:   a.RiskRatio(),
			Assets:      a.TotalAssets(price),
			Wins:        summary.Wins,
			Losses:      summary.Losses,
			Stopped:     a.Stopped(),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Assets > standings[j].Assets
	})

	return standings
}

// TransactionsClosed counts closed round trips across all agents.
func (o *Orchestrator) TransactionsClosed() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	total := 0
	for _, a := range o.agents {
		total += len(a.Transactions())
	}

	return total
}

// StoppedAgents counts agents whose stop-trading latch has fired.
func (o *Orchestrator) StoppedAgents() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	total := 0
	for _, a := range o.agents {
		if a.Stopped() {
			total++
		}
	}

	return total
}
