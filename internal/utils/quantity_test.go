package utils

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilsTestSuite struct {
	suite.Suite
}

func TestUtilsTestSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestMaxQuantity() {
	tests := []struct {
		name     string
		balance  float64
		price    float64
		expected float64
	}{
		{
			name:     "Simple case",
			balance:  1000.0,
			price:    100.0,
			expected: 10,
		},
		{
			name:     "Fractional quantity",
			balance:  1000.0,
			price:    40000.0,
			expected: 0.025,
		},
		{
			// 1000/7 in float64 lands above the payable quantity; the
			// floor keeps quantity*price within the balance.
			name:     "Non-terminating quotient floored",
			balance:  1000.0,
			price:    7.0,
			expected: 142.85714285,
		},
		{
			name:     "Zero price",
			balance:  1000.0,
			price:    0,
			expected: 0,
		},
		{
			name:     "Negative balance",
			balance:  -1.0,
			price:    100.0,
			expected: 0,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.InDelta(tc.expected, MaxQuantity(tc.balance, tc.price), 1e-9)
		})
	}
}

func (suite *UtilsTestSuite) TestRoundToDecimalPrecision() {
	tests := []struct {
		name      string
		quantity  float64
		precision int
		expected  float64
	}{
		{
			name:      "Already exact",
			quantity:  0.025,
			precision: 8,
			expected:  0.025,
		},
		{
			name:      "Floors instead of rounding",
			quantity:  0.123456789,
			precision: 8,
			expected:  0.12345678,
		},
		{
			name:      "Zero precision",
			quantity:  9.99,
			precision: 0,
			expected:  9,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.InDelta(tc.expected, RoundToDecimalPrecision(tc.quantity, tc.precision), 1e-12)
		})
	}
}
