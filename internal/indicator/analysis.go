package indicator

// HasCrossover reports whether the fast series crossed the slow series over
// the last confirm+1 points. For a bullish read the fast line must sit at or
// below the slow line at the oldest checked point, hold at or above it across
// the confirmation window, and be strictly above it at the newest point; a
// bearish read mirrors the comparisons. The strict check at the newest point
// keeps the two directions from both reporting true on touching lines.
func HasCrossover(bullish bool, confirm int, fast, slow []float64) bool {
	if confirm < 1 || len(fast) < confirm+1 || len(slow) < confirm+1 {
		return false
	}

	oldF, oldFOK := Recent(fast, confirm+1)
	oldS, oldSOK := Recent(slow, confirm+1)

	if !oldFOK || !oldSOK {
		return false
	}

	if bullish {
		if oldF > oldS {
			return false
		}
	} else if oldF < oldS {
		return false
	}

	for back := confirm; back >= 1; back-- {
		f, _ := Recent(fast, back)
		s, _ := Recent(slow, back)

		if bullish {
			if f < s {
				return false
			}
		} else if f > s {
			return false
		}
	}

	curF, _ := Recent(fast, 1)
	curS, _ := Recent(slow, 1)

	if bullish {
		return curF > curS
	}

	return curF < curS
}

// HasTrendCrossover is HasCrossover with the extra demand that both lines
// moved monotonically in the signal direction across the confirmation
// window. It filters out crossings produced by one line whipsawing while the
// other drifts sideways.
func HasTrendCrossover(bullish bool, confirm int, fast, slow []float64) bool {
	if !HasCrossover(bullish, confirm, fast, slow) {
		return false
	}

	return trending(bullish, confirm, fast) && trending(bullish, confirm, slow)
}

func trending(up bool, confirm int, values []float64) bool {
	for back := confirm + 1; back > 1; back-- {
		older, okOlder := Recent(values, back)
		newer, okNewer := Recent(values, back-1)

		if !okOlder || !okNewer {
			return false
		}

		if up {
			if newer < older {
				return false
			}
		} else if newer > older {
			return false
		}
	}

	return true
}

// HasDivergence reports whether price and a paired series disagree over the
// last periods points. For a bullish read the newest price must be the
// extreme (lowest) of the window while the paired series refuses to make the
// matching extreme; bearish mirrors with highs. Both series must cover the
// window.
func HasDivergence(bullish bool, periods int, price, paired []float64) bool {
	if periods < 2 || len(price) < periods || len(paired) < periods {
		return false
	}

	curPrice, _ := Recent(price, 1)
	curPaired, _ := Recent(paired, 1)

	priceBest, pairedBest := true, true

	for back := 2; back <= periods; back++ {
		p, _ := Recent(price, back)
		q, _ := Recent(paired, back)

		if bullish {
			if p < curPrice {
				priceBest = false
			}

			if q < curPaired {
				pairedBest = false
			}
		} else {
			if p > curPrice {
				priceBest = false
			}

			if q > curPaired {
				pairedBest = false
			}
		}
	}

	return priceBest && !pairedBest
}
