package wallet

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tradeforge/vela/pkg/errors"
)

type WalletTestSuite struct {
	suite.Suite
}

func TestWalletSuite(t *testing.T) {
	suite.Run(t, new(WalletTestSuite))
}

func (s *WalletTestSuite) TestBuySellRoundTrip() {
	w := New(1000)

	s.Require().NoError(w.ApplyBuyFill(50, 10))
	s.InDelta(500, w.Funds(), 1e-9)
	s.InDelta(10, w.Quantity(), 1e-9)
	s.InDelta(50, w.PurchasePrice(), 1e-9)
	s.True(w.HasPosition())

	s.Require().NoError(w.ApplySellFill(60, 10))
	s.InDelta(1100, w.Funds(), 1e-9)
	s.False(w.HasPosition())
	s.Zero(w.PurchasePrice())
}

func (s *WalletTestSuite) TestBuyRejectsOverspend() {
	w := New(100)

	err := w.ApplyBuyFill(50, 3)

	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInsufficientFunds))
	s.InDelta(100, w.Funds(), 1e-9)
}

func (s *WalletTestSuite) TestSellRejectsOversell() {
	w := New(1000)
	s.Require().NoError(w.ApplyBuyFill(50, 2))

	err := w.ApplySellFill(50, 3)

	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInsufficientShares))
	s.InDelta(2, w.Quantity(), 1e-9)
}

func (s *WalletTestSuite) TestTotalAssets() {
	w := New(1000)
	s.Require().NoError(w.ApplyBuyFill(100, 5))

	s.InDelta(500+5*120, w.TotalAssets(120), 1e-9)
}

func (s *WalletTestSuite) TestStartingFundsRatchetsUpOnly() {
	w := New(1000)

	s.Require().NoError(w.ApplyBuyFill(100, 5))
	w.RatchetStartingFunds()
	s.InDelta(1000, w.StartingFunds(), 1e-9)

	s.Require().NoError(w.ApplySellFill(150, 5))
	w.RatchetStartingFunds()
	s.InDelta(1250, w.StartingFunds(), 1e-9)

	// A losing round trip leaves the mark where it was.
	s.Require().NoError(w.ApplyBuyFill(100, 5))
	s.Require().NoError(w.ApplySellFill(50, 5))
	w.RatchetStartingFunds()
	s.InDelta(1250, w.StartingFunds(), 1e-9)
}
