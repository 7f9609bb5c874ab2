package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"outgo/internal/kv"
)

const budgetSlot = "budget"

// BudgetRepo persists the single monthly budget scalar. There is exactly
// one stored value; setting a new budget overwrites it regardless of
// which month is current when it is later read.
type BudgetRepo struct {
	store kv.Store
}

func NewBudgetRepo(store kv.Store) *BudgetRepo {
	return &BudgetRepo{store: store}
}

// Get returns the stored budget, or zero when none has ever been set.
func (r *BudgetRepo) Get(ctx context.Context) (decimal.Decimal, error) {
	raw, ok, err := r.store.Get(ctx, budgetSlot)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, nil
	}
	var amount decimal.Decimal
	if err := json.Unmarshal([]byte(raw), &amount); err != nil {
		return decimal.Zero, fmt.Errorf("decode slot %q: %w", budgetSlot, err)
	}
	return amount, nil
}

func (r *BudgetRepo) Set(ctx context.Context, amount decimal.Decimal) error {
	raw, err := json.Marshal(amount)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", budgetSlot, err)
	}
	if err := r.store.Put(ctx, budgetSlot, string(raw)); err != nil {
		return fmt.Errorf("persist slot %q: %w", budgetSlot, err)
	}
	slog.InfoContext(ctx, "Budget set", "amount", amount)
	return nil
}
