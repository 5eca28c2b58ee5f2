// Package server exposes the ledger over a small JSON HTTP API for the
// UI collaborator. It owns no ledger semantics: handlers decode input,
// call the service layer, and map its error taxonomy onto status codes.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/dividircuenta/backend/internal/exchange"
	"github.com/dividircuenta/backend/internal/models"
	"github.com/dividircuenta/backend/internal/service"
)

// Server wires the ledger service and the rate provider into HTTP handlers.
type Server struct {
	ledger       *service.Ledger
	rates        exchange.Provider
	fallbackRate decimal.Decimal
}

// New creates a Server. rates may be nil, in which case the rate endpoint
// always answers with the fallback.
func New(ledger *service.Ledger, rates exchange.Provider, fallbackRate decimal.Decimal) *Server {
	return &Server{
		ledger:       ledger,
		rates:        rates,
		fallbackRate: fallbackRate,
	}
}

// Handler returns the root HTTP handler, middleware included.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/groups", s.handleListGroups)
	mux.HandleFunc("POST /api/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/groups/{id}", s.handleGetGroup)
	mux.HandleFunc("DELETE /api/groups/{id}", s.handleDeleteGroup)
	mux.HandleFunc("GET /api/groups/{id}/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/groups/{id}/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/groups/{id}/balances", s.handleBalances)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("POST /api/expenses/{id}/settle", s.handleSettleExpense)
	mux.HandleFunc("GET /api/rate", s.handleRate)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return loggingMiddleware(corsMiddleware(mux))
}

type participantJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type groupJSON struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Participants []participantJSON `json:"participants"`
	CreatedAt    int64             `json:"createdAt"`
}

type expenseJSON struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"groupId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paidBy"`
	Settled     bool    `json:"settled"`
	CreatedAt   int64   `json:"createdAt"`
}

type balanceJSON struct {
	ParticipantName string  `json:"participantName"`
	Owes            float64 `json:"owes"`
}

type createGroupRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

type createExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paidBy"`
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.ledger.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]groupJSON, len(groups))
	for i, g := range groups {
		out[i] = toGroupJSON(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := s.ledger.CreateGroup(r.Context(), req.Name, req.Participants)
	observeMutation("create_group", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupJSON(group))
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.ledger.GetGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupJSON(group))
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.DeleteGroup(r.Context(), r.PathValue("id"))
	observeMutation("delete_group", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ExpensesForGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]expenseJSON, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseJSON(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expense, err := s.ledger.CreateExpense(r.Context(), r.PathValue("id"), req.Description, req.Amount, req.PaidBy)
	observeMutation("create_expense", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.DeleteExpense(r.Context(), r.PathValue("id"))
	observeMutation("delete_expense", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSettleExpense(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.SettleExpense(r.Context(), r.PathValue("id"))
	observeMutation("settle_expense", err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.ledger.CalculateBalances(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	balanceComputationsTotal.Inc()

	out := make([]balanceJSON, len(balances))
	for i, b := range balances {
		out[i] = balanceJSON{ParticipantName: b.ParticipantName, Owes: b.Owes}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	rate, live := exchange.Resolve(r.Context(), s.rates, s.fallbackRate)
	if !live {
		rateFallbacksTotal.Inc()
	}

	source := "live"
	if !live {
		source = "fallback"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rate":   rate.Value.String(),
		"date":   rate.Date.Format(time.DateOnly),
		"source": source,
	})
}

func toGroupJSON(g *models.Group) groupJSON {
	participants := make([]participantJSON, len(g.Participants))
	for i, p := range g.Participants {
		participants[i] = participantJSON{ID: p.ID, Name: p.Name}
	}
	return groupJSON{
		ID:           g.ID,
		Name:         g.Name,
		Participants: participants,
		CreatedAt:    g.CreatedAt,
	}
}

func toExpenseJSON(e *models.Expense) expenseJSON {
	return expenseJSON{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Settled:     e.Settled,
		CreatedAt:   e.CreatedAt,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "bad_request",
			"message": "invalid JSON body",
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the service error taxonomy onto HTTP status codes:
// validation failures are 422 with the field list, stale references 404.
func writeError(w http.ResponseWriter, err error) {
	var valErr *service.ValidationError
	if errors.As(err, &valErr) {
		fields := make([]map[string]string, len(valErr.Fields))
		for i, f := range valErr.Fields {
			fields[i] = map[string]string{"field": f.Field, "message": f.Message}
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation_failed",
			"fields": fields,
		})
		return
	}

	var nfErr *service.NotFoundError
	if errors.As(err, &nfErr) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "not_found",
			"message": nfErr.Error(),
		})
		return
	}

	slog.Error("Request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error": "internal",
	})
}
