package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	activationservice "dttracker/contexts/creator-marketing/activation-service"
	walletservice "dttracker/contexts/finance-core/wallet-service"
	scrapemonitorservice "dttracker/contexts/scrape-ops/scrape-monitor-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "dttracker/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	activation activationservice.Module
	wallet     walletservice.Module
	scrapeops  scrapemonitorservice.Module
}

func New(
	activation activationservice.Module,
	wallet walletservice.Module,
	scrapeops scrapemonitorservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		activation: activation,
		wallet:     wallet,
		scrapeops:  scrapeops,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/activations/v1", s.handleCreateActivation)
	s.mux.HandleFunc("GET /api/activations/v1", s.handleListActivations)
	s.mux.HandleFunc("GET /api/activations/v1/{activation_id}", s.handleGetActivation)
	s.mux.HandleFunc("POST /api/activations/v1/{activation_id}/status", s.handleChangeActivationStatus)
	s.mux.HandleFunc("POST /api/activations/v1/{activation_id}/invitations", s.handleCreateInvitations)
	s.mux.HandleFunc("GET /api/activations/v1/{activation_id}/invitations", s.handleListInvitations)
	s.mux.HandleFunc("GET /api/activations/v1/{activation_id}/budget-summary", s.handleBudgetSummary)
	s.mux.HandleFunc("GET /api/invitations/v1/mine", s.handleListMyInvitations)
	s.mux.HandleFunc("GET /api/notifications/v1/mine", s.handleListMyNotifications)
	s.mux.HandleFunc("POST /api/invitations/v1/{invitation_id}/accept", s.handleAcceptInvitation)
	s.mux.HandleFunc("POST /api/invitations/v1/{invitation_id}/decline", s.handleDeclineInvitation)
	s.mux.HandleFunc("POST /api/invitations/v1/{invitation_id}/release", s.handleReleasePayment)
	s.mux.HandleFunc("POST /api/invitations/v1/{invitation_id}/cancel", s.handleCancelInvitation)

	s.mux.HandleFunc("GET /api/wallets/v1/me", s.handleGetWallet)
	s.mux.HandleFunc("POST /api/wallets/v1/me/deposit", s.handleDeposit)
	s.mux.HandleFunc("GET /api/wallets/v1/me/ledger", s.handleListLedger)

	s.mux.HandleFunc("POST /api/scrape/v1/jobs", s.handleRegisterJob)
	s.mux.HandleFunc("GET /api/scrape/v1/jobs", s.handleListJobs)
	s.mux.HandleFunc("POST /api/scrape/v1/jobs/retry", s.handleRetryJobs)
	s.mux.HandleFunc("POST /api/scrape/v1/runs", s.handleStartRun)
	s.mux.HandleFunc("POST /api/scrape/v1/runs/{run_id}/finish", s.handleFinishRun)
	s.mux.HandleFunc("GET /api/scrape/v1/runs", s.handleListRuns)
	s.mux.HandleFunc("GET /api/scrape/v1/runs/summary", s.handleRunSummary)
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, target any, onError func(http.ResponseWriter, int, string, string)) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		onError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func requireUserID(r *http.Request) string {
	return r.Header.Get("X-User-Id")
}
