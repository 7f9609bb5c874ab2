package http

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"outgo/internal/core"
	"outgo/internal/notify"
)

type expenseRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
}

// params validates the payload and converts it to domain params.
func (req expenseRequest) params() (core.ExpenseParams, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.ExpenseParams{}, err
	}
	p := core.ExpenseParams{
		Date:        date,
		Description: sanitizeInput(req.Description),
		CategoryID:  strings.TrimSpace(req.CategoryID),
		Amount:      req.Amount,
	}
	if err := p.Validate(); err != nil {
		return core.ExpenseParams{}, err
	}
	return p, nil
}

// handleListExpenses returns all expenses, or one month's worth when a
// ?month=YYYY-MM filter is present.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		items, err := s.expenses.List(r.Context())
		if err != nil {
			writeStorageError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
		return
	}

	// First of the month works as the reference date for the filter.
	ref, err := core.ParseDate(month + "-01")
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	items, err := s.expenses.ListMonth(r.Context(), ref)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	exp, err := s.expenses.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	if exp == nil {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.params()
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	created, err := s.expenses.Create(r.Context(), p)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	s.invalidate(r.Context(), notify.EntityExpenses)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.params()
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	id := r.PathValue("id")
	found, err := s.expenses.Update(r.Context(), id, p)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	s.invalidate(r.Context(), notify.EntityExpenses)

	updated, err := s.expenses.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	found, err := s.expenses.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	s.invalidate(r.Context(), notify.EntityExpenses)
	w.WriteHeader(http.StatusNoContent)
}

// handleSeedSamples replaces the stored expenses with the demo fixture set.
func (s *Server) handleSeedSamples(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.SeedSamples(r.Context()); err != nil {
		writeStorageError(w, r, err)
		return
	}
	s.invalidate(r.Context(), notify.EntityExpenses)

	items, err := s.expenses.List(r.Context())
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, items)
}
