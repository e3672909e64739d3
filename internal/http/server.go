// Package http exposes the ledger operations as a JSON API: the surface the
// front-end consumes in place of the old desktop windows.
package http

import (
	"net/http"

	"ponto/internal/ledger"
)

type Server struct {
	http.Server
	ledger *ledger.Ledger
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, led *ledger.Ledger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{Addr: addr},
		ledger: led,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/registros", s.handleRegister)
	mux.HandleFunc("POST /api/registros/manual", s.handleRegisterManual)
	mux.HandleFunc("POST /api/registros/minutos", s.handleRegisterMinutes)

	mux.HandleFunc("GET /api/usuarios/{nome}/registros", s.handleUserEntries)

	mux.HandleFunc("GET /api/relatorios/mensal", s.handleMonthlyReport)
	mux.HandleFunc("GET /api/relatorios/mensal/ranking", s.handleMonthlyRanking)
	mux.HandleFunc("GET /api/relatorios/anual", s.handleAnnualReport)

	s.Handler = withRequestLog(mux)
	return s
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
