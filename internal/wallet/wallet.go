// Package wallet tracks the simulated funds and holdings of one agent.
package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/tradeforge/vela/pkg/errors"
)

// Wallet is the agent's ledger: available funds, held quantity, the price
// the holding was bought at, and the starting funds the stop-trading ratio
// is measured against. StartingFunds only ever moves up.
type Wallet struct {
	funds         decimal.Decimal
	quantity      decimal.Decimal
	purchasePrice float64
	startingFunds decimal.Decimal
}

// New creates a wallet holding funds and nothing else.
func New(funds float64) *Wallet {
	d := decimal.NewFromFloat(funds)

	return &Wallet{
		funds:         d,
		startingFunds: d,
	}
}

// Funds returns the available funds.
func (w *Wallet) Funds() float64 {
	return w.funds.InexactFloat64()
}

// Quantity returns the held quantity.
func (w *Wallet) Quantity() float64 {
	return w.quantity.InexactFloat64()
}

// HasPosition reports whether any quantity is held.
func (w *Wallet) HasPosition() bool {
	return w.quantity.IsPositive()
}

// PurchasePrice returns the fill price of the current holding. Meaningful
// only while HasPosition.
func (w *Wallet) PurchasePrice() float64 {
	return w.purchasePrice
}

// StartingFunds returns the high-water funds mark.
func (w *Wallet) StartingFunds() float64 {
	return w.startingFunds.InexactFloat64()
}

// TotalAssets values the wallet at the given price.
func (w *Wallet) TotalAssets(price float64) float64 {
	return w.funds.Add(w.quantity.Mul(decimal.NewFromFloat(price))).InexactFloat64()
}

// ApplyBuyFill debits funds for a filled buy and records the position.
func (w *Wallet) ApplyBuyFill(price, quantity float64) error {
	cost := decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(quantity))

	if cost.GreaterThan(w.funds) {
		return errors.Newf(errors.ErrCodeInsufficientFunds,
			"buy fill costs %s but only %s available", cost, w.funds)
	}

	w.funds = w.funds.Sub(cost)
	w.quantity = w.quantity.Add(decimal.NewFromFloat(quantity))
	w.purchasePrice = price

	return nil
}

// ApplySellFill credits funds for a filled sell and releases the position.
func (w *Wallet) ApplySellFill(price, quantity float64) error {
	q := decimal.NewFromFloat(quantity)

	if q.GreaterThan(w.quantity) {
		return errors.Newf(errors.ErrCodeInsufficientShares,
			"sell fill of %s exceeds held quantity %s", q, w.quantity)
	}

	w.funds = w.funds.Add(decimal.NewFromFloat(price).Mul(q))
	w.quantity = w.quantity.Sub(q)

	if w.quantity.IsZero() {
		w.purchasePrice = 0
	}

	return nil
}

// RatchetStartingFunds raises the starting-funds mark to the current funds
// when trading has grown the wallet. It never lowers the mark, so the
// stop-trading ratio is always measured against the best funds level seen.
func (w *Wallet) RatchetStartingFunds() {
	if w.funds.GreaterThan(w.startingFunds) {
		w.startingFunds = w.funds
	}
}
