package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/tradeforge/vela/internal/types"
)

// Summary aggregates an agent's closed transactions for reporting.
type Summary struct {
	Funds         float64
	FundsMin      float64
	FundsMax      float64
	Wins          int
	Losses        int
	AmountWon     float64
	AmountLost    float64
	SellReasons   map[types.ReasonSell]int
	AvgHoldPeriod time.Duration
}

// Summary computes the agent's current transaction summary.
func (a *Agent) Summary() Summary {
	s := Summary{
		Funds:       a.wallet.Funds(),
		FundsMin:    a.fundsMin,
		FundsMax:    a.fundsMax,
		SellReasons: make(map[types.ReasonSell]int),
	}

	var held time.Duration

	for i := range a.transactions {
		tx := &a.transactions[i]

		if tx.Result == types.ResultWin {
			s.Wins++
			s.AmountWon += tx.Amount()
		} else {
			s.Losses++
			s.AmountLost -= tx.Amount()
		}

		s.SellReasons[tx.ReasonSell]++
		held += tx.Duration()
	}

	if n := len(a.transactions); n > 0 {
		s.AvgHoldPeriod = held / time.Duration(n)
	}

	return s
}

// String renders the summary for notifications.
func (s Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "funds %.2f (min %.2f, max %.2f)\n", s.Funds, s.FundsMin, s.FundsMax)
	fmt.Fprintf(&b, "wins %d (+%.2f), losses %d (-%.2f)\n", s.Wins, s.AmountWon, s.Losses, s.AmountLost)
	fmt.Fprintf(&b, "avg hold %s\n", s.AvgHoldPeriod)

	for _, reason := range types.AllReasonsSell() {
		if count := s.SellReasons[reason]; count > 0 {
			fmt.Fprintf(&b, "%s: %d\n", reason, count)
		}
	}

	return b.String()
}
