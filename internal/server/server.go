// Package server exposes the leaderboard and runtime metrics over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tradeforge/vela/internal/logger"
	"github.com/tradeforge/vela/internal/orchestrator"
)

// Server serves the read-only status API for a set of orchestrators.
type Server struct {
	httpServer    *http.Server
	orchestrators []*orchestrator.Orchestrator
	metrics       *Metrics
	logger        *logger.Logger
}

// New builds the server. It does not start listening.
func New(addr string, orchestrators []*orchestrator.Orchestrator, metrics *Metrics, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Server{
		orchestrators: orchestrators,
		metrics:       metrics,
		logger:        log.Named("server"),
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	router.HandleFunc("/leaderboard", s.handleLeaderboard).Methods("GET")
	router.HandleFunc("/leaderboard/{symbol}", s.handleSymbolLeaderboard).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})).Methods("GET")

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start listens in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server failed", zap.Error(err))
		}
	}()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// symbolBoard is one instrument's slice of the leaderboard response.
type symbolBoard struct {
	Symbol      string                  `json:"symbol"`
	LastPrice   float64                 `json:"last_price"`
	TotalAssets float64                 `json:"total_assets"`
	AllStopped  bool                    `json:"all_stopped"`
	Standings   []orchestrator.Standing `json:"standings"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, _ *http.Request) {
	boards := make([]symbolBoard, 0, len(s.orchestrators))

	for _, orch := range s.orchestrators {
		boards = append(boards, symbolBoard{
			Symbol:      orch.Symbol(),
			LastPrice:   orch.LastPrice(),
			TotalAssets: orch.TotalAssets(),
			AllStopped:  orch.AllStopped(),
			Standings:   orch.Leaderboard(),
		})
	}

	s.writeJSON(w, boards)
}

func (s *Server) handleSymbolLeaderboard(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	for _, orch := range s.orchestrators {
		if orch.Symbol() != symbol {
			continue
		}

		s.writeJSON(w, symbolBoard{
			Symbol:      orch.Symbol(),
			LastPrice:   orch.LastPrice(),
			TotalAssets: orch.TotalAssets(),
			AllStopped:  orch.AllStopped(),
			Standings:   orch.Leaderboard(),
		})

		return
	}

	http.Error(w, "unknown symbol", http.StatusNotFound)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}
