package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/tradeforge/vela/pkg/errors"
)

func dashboardAction(_ context.Context, cmd *cli.Command) error {
	client := &leaderboardClient{
		baseURL: cmd.String("server"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}

	model := newDashboardModel(client, cmd.Duration("refresh"))

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()

	return err
}

// board mirrors the status server's leaderboard response.
type board struct {
	Symbol      string     `json:"symbol"`
	LastPrice   float64    `json:"last_price"`
	TotalAssets float64    `json:"total_assets"`
	AllStopped  bool       `json:"all_stopped"`
	Standings   []standing `json:"standings"`
}

type standing struct {
	AgentID     string  `json:"agent_id"`
	StrategyKey string  `json:"strategy"`
	Timeframe   string  `json:"timeframe"`
	RiskRatio   float64 `json:"risk_ratio"`
	Assets      float64 `json:"assets"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Stopped     bool    `json:"stopped"`
}

type leaderboardClient struct {
	baseURL string
	client  *http.Client
}

func (c *leaderboardClient) fetch() ([]board, error) {
	resp, err := c.client.Get(c.baseURL + "/leaderboard")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, "failed to reach status server", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf(errors.ErrCodeFetchFailed, "status server returned %s", resp.Status)
	}

	var boards []board
	if err := json.NewDecoder(resp.Body).Decode(&boards); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailed, "failed to decode leaderboard", err)
	}

	return boards, nil
}

func formatAssets(assets float64) string {
	return fmt.Sprintf("%.2f", assets)
}
