package indicator

import "github.com/tradeforge/vela/internal/types"

// pviSeed is the conventional base value of the positive volume index.
const pviSeed = 1000

// PVI is the positive volume index. The index starts at a fixed seed and
// adds the percent price change only on candles where volume rose against
// the previous period; quiet-volume candles carry the prior value forward.
// An EMA of the index acts as its signal line.
type PVI struct {
	emaPeriod int

	values []float64
	signal []float64
	seen   int
}

// NewPVI creates a positive volume index whose signal line is an EMA over
// emaPeriod index values.
func NewPVI(emaPeriod int) *PVI {
	return &PVI{emaPeriod: emaPeriod}
}

// Values returns the cumulative index, oldest first. One value per candle;
// the first is the seed.
func (p *PVI) Values() []float64 {
	return p.values
}

// Signal returns the EMA of the index, oldest first.
func (p *PVI) Signal() []float64 {
	return p.signal
}

// Calculate implements SeriesIndicator. A call covering only the newest
// candles extends the running index; anything else recomputes from scratch.
func (p *PVI) Calculate(history []types.Candle, newPeriods int) {
	if len(p.values) == 0 || newPeriods >= len(history) || p.seen+newPeriods != len(history) {
		p.values = p.values[:0]

		for i, c := range history {
			if i == 0 {
				p.values = append(p.values, pviSeed)
				continue
			}

			p.values = append(p.values, nextPVI(p.values[i-1], history[i-1], c))
		}
	} else {
		for i := len(history) - newPeriods; i < len(history); i++ {
			p.values = append(p.values, nextPVI(p.values[len(p.values)-1], history[i-1], history[i]))
		}
	}

	p.seen = len(history)
	p.signal = EMASeries(p.values, p.emaPeriod)
}

func nextPVI(prev float64, before, cur types.Candle) float64 {
	if cur.Volume <= before.Volume || before.Close == 0 {
		return prev
	}

	return prev + (cur.Close-before.Close)/before.Close*100
}
