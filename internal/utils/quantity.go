// Package utils holds small order-sizing helpers shared by the agent and
// the exchange gateways.
package utils

import "math"

// QuantityDecimalPrecision is the precision quantities are floored to
// before an order is sized or submitted. 8 decimals covers satoshi-level
// quantities.
const QuantityDecimalPrecision = 8

// MaxQuantity returns the largest quantity purchasable with balance at
// price, floored to QuantityDecimalPrecision. Flooring at sizing time
// keeps quantity*price at or below balance despite float rounding; the
// raw quotient can land a hair above it and make the fill unpayable.
// Zero when either input is non-positive.
func MaxQuantity(balance, price float64) float64 {
	if price <= 0 || balance <= 0 {
		return 0
	}

	return RoundToDecimalPrecision(balance/price, QuantityDecimalPrecision)
}

// RoundToDecimalPrecision floors the quantity to the given number of
// decimals. Flooring, not rounding: a quantity trimmed for the exchange
// must never exceed the balance that sized it.
func RoundToDecimalPrecision(quantity float64, decimalPrecision int) float64 {
	multiplier := math.Pow10(decimalPrecision)

	return math.Floor(quantity*multiplier) / multiplier
}
