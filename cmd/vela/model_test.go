package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func sampleBoards() []board {
	return []board{
		{
			Symbol:      "BTCUSDT",
			LastPrice:   42000,
			TotalAssets: 3100,
			Standings: []standing{
				{AgentID: "a", StrategyKey: "ema_crossover", Timeframe: "1h", RiskRatio: 0.05, Assets: 1100, Wins: 2},
				{AgentID: "b", StrategyKey: "rsi_adx", Timeframe: "1h", RiskRatio: 0.05, Assets: 1000},
				{AgentID: "c", StrategyKey: "stochastic", Timeframe: "1d", RiskRatio: 0.1, Assets: 1000, Stopped: true},
			},
		},
		{
			Symbol:      "ETHUSDT",
			LastPrice:   2500,
			TotalAssets: 2000,
			AllStopped:  true,
		},
	}
}

func TestBoardsMsgPopulatesRows(t *testing.T) {
	m := newDashboardModel(nil, time.Second)

	updated, _ := m.Update(boardsMsg(sampleBoards()))
	model := updated.(dashboardModel)

	assert.Len(t, model.boards, 2)
	assert.Len(t, model.table.Rows(), 3)
	assert.Equal(t, "ema_crossover", model.table.Rows()[0][1])
	assert.Equal(t, "stopped", model.table.Rows()[2][7])
	assert.NoError(t, model.err)
}

func TestPollErrKeepsLastBoards(t *testing.T) {
	m := newDashboardModel(nil, time.Second)

	updated, _ := m.Update(boardsMsg(sampleBoards()))
	updated, _ = updated.(dashboardModel).Update(pollErrMsg{err: assert.AnError})
	model := updated.(dashboardModel)

	assert.Error(t, model.err)
	assert.Len(t, model.boards, 2)
	assert.Len(t, model.table.Rows(), 3)
}

func TestTabCyclesInstruments(t *testing.T) {
	m := newDashboardModel(nil, time.Second)

	updated, _ := m.Update(boardsMsg(sampleBoards()))
	updated, _ = updated.(dashboardModel).Update(tea.KeyMsg{Type: tea.KeyTab})
	model := updated.(dashboardModel)

	assert.Equal(t, 1, model.selected)
	assert.Empty(t, model.table.Rows())

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(dashboardModel)
	assert.Equal(t, 0, model.selected)
}

func TestViewShowsAllStoppedBanner(t *testing.T) {
	m := newDashboardModel(nil, time.Second)

	updated, _ := m.Update(boardsMsg(sampleBoards()))
	updated, _ = updated.(dashboardModel).Update(tea.KeyMsg{Type: tea.KeyTab})
	model := updated.(dashboardModel)

	assert.Contains(t, model.View(), "ALL AGENTS STOPPED")
}

func TestViewBeforeFirstPoll(t *testing.T) {
	m := newDashboardModel(nil, time.Second)

	assert.Contains(t, m.View(), "waiting for first leaderboard poll")
}
