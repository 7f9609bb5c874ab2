package repo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"outgo/internal/core"
	"outgo/internal/kv"
)

const expensesSlot = "expenses"

// ExpenseRepo persists the expense collection.
type ExpenseRepo struct {
	store kv.Store
}

func NewExpenseRepo(store kv.Store) *ExpenseRepo {
	return &ExpenseRepo{store: store}
}

// List returns every stored expense in insertion order.
func (r *ExpenseRepo) List(ctx context.Context) ([]core.Expense, error) {
	return readSlot[core.Expense](ctx, r.store, expensesSlot)
}

// ListMonth returns the expenses whose date falls in the same calendar
// month and year as ref.
func (r *ExpenseRepo) ListMonth(ctx context.Context, ref core.Date) ([]core.Expense, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if e.Date.SameMonth(ref) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// ListByCategory returns the expenses referencing the given category.
func (r *ExpenseRepo) ListByCategory(ctx context.Context, categoryID string) ([]core.Expense, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if e.CategoryID == categoryID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// GetByID returns the expense with the given id, or nil when absent.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*core.Expense, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Create assigns a fresh id, appends the expense and rewrites the slot.
func (r *ExpenseRepo) Create(ctx context.Context, p core.ExpenseParams) (core.Expense, error) {
	items, err := r.List(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	exp := core.Expense{
		ID:          uuid.NewString(),
		Date:        p.Date,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Amount:      p.Amount,
	}
	if err := writeSlot(ctx, r.store, expensesSlot, append(items, exp)); err != nil {
		return core.Expense{}, err
	}

	slog.InfoContext(ctx, "Expense created",
		"id", exp.ID,
		"description", exp.Description,
		"amount", exp.Amount,
		"date", exp.Date.String())
	return exp, nil
}

// Update replaces the stored fields of the expense with the given id.
// It reports whether a record was found; updating a missing id changes
// nothing and is not an error.
func (r *ExpenseRepo) Update(ctx context.Context, id string, p core.ExpenseParams) (bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Date = p.Date
		items[i].Description = p.Description
		items[i].CategoryID = p.CategoryID
		items[i].Amount = p.Amount
		if err := writeSlot(ctx, r.store, expensesSlot, items); err != nil {
			return false, err
		}
		slog.InfoContext(ctx, "Expense updated", "id", id)
		return true, nil
	}
	return false, nil
}

// Delete removes the expense with the given id and reports whether it
// existed. Deleting twice leaves the slot exactly as deleting once.
func (r *ExpenseRepo) Delete(ctx context.Context, id string) (bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	kept := items[:0]
	found := false
	for _, e := range items {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return false, nil
	}
	if err := writeSlot(ctx, r.store, expensesSlot, kept); err != nil {
		return false, err
	}
	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return true, nil
}

// SeedSamples replaces the expense slot with the canonical fixture set
// used to demo the dashboard.
func (r *ExpenseRepo) SeedSamples(ctx context.Context) error {
	if err := writeSlot(ctx, r.store, expensesSlot, sampleExpenses()); err != nil {
		return fmt.Errorf("seed sample expenses: %w", err)
	}
	slog.InfoContext(ctx, "Sample expenses seeded", "count", len(sampleExpenses()))
	return nil
}
