package http

import (
	"encoding/json"
	"net/http"
)

type registerRequest struct {
	Nome    string `json:"nome"`
	Entrada string `json:"entrada"`
	Saida   string `json:"saida"`
}

type manualRequest struct {
	Nome      string `json:"nome"`
	Data      string `json:"data"`
	Entrada   string `json:"entrada"`
	Saida     string `json:"saida"`
	Descricao string `json:"descricao"`
}

type minutesRequest struct {
	Nome      string `json:"nome"`
	Data      string `json:"data"`
	Minutos   int    `json:"minutos"`
	Descricao string `json:"descricao"`
}

// handleRegister is the punch clock: entry/exit times, date is always today.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("corpo da requisição inválido"))
		return
	}

	entry, err := s.ledger.RegisterByTimes(r.Context(), req.Nome, req.Entrada, req.Saida)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleRegisterManual(w http.ResponseWriter, r *http.Request) {
	var req manualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("corpo da requisição inválido"))
		return
	}

	entry, err := s.ledger.RecordManual(r.Context(), req.Nome, req.Data, req.Entrada, req.Saida, req.Descricao)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleRegisterMinutes(w http.ResponseWriter, r *http.Request) {
	var req minutesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("corpo da requisição inválido"))
		return
	}

	entry, err := s.ledger.RecordMinutes(r.Context(), req.Nome, req.Data, req.Minutos, req.Descricao)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleUserEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.EntriesForUser(r.PathValue("nome"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"registros": entries})
}

// handleMonthlyReport defaults mes/ano to the current month and year.
func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month := parseIntQuery(r, "mes")
	year := parseIntQuery(r, "ano")
	respondJSON(w, http.StatusOK, s.ledger.MonthlyReport(month, year))
}

func (s *Server) handleMonthlyRanking(w http.ResponseWriter, r *http.Request) {
	month := parseIntQuery(r, "mes")
	year := parseIntQuery(r, "ano")
	report := s.ledger.MonthlyReport(month, year)
	respondJSON(w, http.StatusOK, map[string]any{
		"mes":     report.Month,
		"ano":     report.Year,
		"ranking": report.Ranking(),
	})
}

func (s *Server) handleAnnualReport(w http.ResponseWriter, r *http.Request) {
	year := parseIntQuery(r, "ano")
	respondJSON(w, http.StatusOK, s.ledger.AnnualReport(year))
}
