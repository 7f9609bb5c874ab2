package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"outgo/internal/notify"
)

type budgetPayload struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	amount, err := s.budget.Get(r.Context())
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budgetPayload{Amount: amount})
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetPayload
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount.IsNegative() {
		writeError(w, http.StatusUnprocessableEntity, "budget cannot be negative")
		return
	}

	if err := s.budget.Set(r.Context(), req.Amount); err != nil {
		writeStorageError(w, r, err)
		return
	}
	s.invalidate(r.Context(), notify.EntityBudget)
	writeJSON(w, http.StatusOK, budgetPayload{Amount: req.Amount})
}
