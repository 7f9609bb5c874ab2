package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

const recentExpenseCount = 5

type (
	// CategoryExpense is one row of the per-category monthly breakdown.
	CategoryExpense struct {
		CategoryID        string          `json:"id"`
		Name              string          `json:"name"`
		Expense           decimal.Decimal `json:"expense"`
		PercentageExpense decimal.Decimal `json:"percentageExpense"`
		Color             string          `json:"color"`
	}

	// Snapshot is the derived analytics bundle behind the dashboard.
	// It is recomputed from storage on every request and never persisted.
	//
	// CurrentDayExpensePercent is nil when the pacing limit is exactly
	// zero; the percentage is undefined there and the presentation layer
	// must render it as "n/a" rather than a number.
	Snapshot struct {
		CurrentMonthBudget            decimal.Decimal            `json:"currentMonthBudget"`
		CurrentMonthExpense           decimal.Decimal            `json:"currentMonthExpense"`
		CurrentMonthExpenseByCategory map[string]decimal.Decimal `json:"currentMonthExpenseByCategory"`
		CurrentDayExpense             decimal.Decimal            `json:"currentDayExpense"`
		CurrentDayExpenseLimit        decimal.Decimal            `json:"currentDayExpenseLimit"`
		CurrentDayExpensePercent      *decimal.Decimal           `json:"currentDayExpensePercent"`
		RecentExpenses                []Expense                  `json:"recentExpenses"`
		CategoryExpenseData           []CategoryExpense          `json:"categoryExpenseData"`
	}
)

var hundred = decimal.NewFromInt(100)

// ComputeSnapshot derives the full analytics snapshot in a single pass
// over the expenses. It is a pure function of its inputs: no I/O, no
// hidden state, no clock access — the reference date is explicit.
//
// Expenses whose category no longer exists still count toward the
// monthly totals under their raw category id, but are left out of the
// per-category breakdown since there is nothing to join them against.
func ComputeSnapshot(expenses []Expense, categories []Category, budget decimal.Decimal, ref Date) Snapshot {
	snap := Snapshot{
		CurrentMonthBudget:            budget,
		CurrentMonthExpenseByCategory: map[string]decimal.Decimal{},
		RecentExpenses:                []Expense{},
		CategoryExpenseData:           []CategoryExpense{},
	}
	if len(expenses) == 0 {
		return snap
	}

	for _, e := range expenses {
		if e.Date.SameMonth(ref) {
			snap.CurrentMonthExpenseByCategory[e.CategoryID] = snap.CurrentMonthExpenseByCategory[e.CategoryID].Add(e.Amount)
			snap.CurrentMonthExpense = snap.CurrentMonthExpense.Add(e.Amount)
		}
		if e.Date.SameDay(ref) {
			snap.CurrentDayExpense = snap.CurrentDayExpense.Add(e.Amount)
		}
	}

	if snap.CurrentMonthExpense.IsPositive() {
		for _, c := range categories {
			total, ok := snap.CurrentMonthExpenseByCategory[c.ID]
			if !ok || !total.IsPositive() {
				continue
			}
			snap.CategoryExpenseData = append(snap.CategoryExpenseData, CategoryExpense{
				CategoryID:        c.ID,
				Name:              c.Name,
				Expense:           total,
				PercentageExpense: total.Div(snap.CurrentMonthExpense).Mul(hundred),
				Color:             ColorFor(c.ID),
			})
		}
		// Stable: ties keep the original category order.
		sort.SliceStable(snap.CategoryExpenseData, func(i, j int) bool {
			return snap.CategoryExpenseData[i].Expense.GreaterThan(snap.CategoryExpenseData[j].Expense)
		})
	}

	remainingBudget := budget.Sub(snap.CurrentMonthExpense)
	remainingDays := ref.DaysInMonth() - ref.Day() + 1
	if remainingDays < 1 {
		remainingDays = 1
	}
	// Signed on purpose: a negative limit means the month's budget is
	// already exhausted for the days that remain.
	snap.CurrentDayExpenseLimit = remainingBudget.Div(decimal.NewFromInt(int64(remainingDays)))
	if !snap.CurrentDayExpenseLimit.IsZero() {
		percent := snap.CurrentDayExpense.Div(snap.CurrentDayExpenseLimit).Mul(hundred)
		snap.CurrentDayExpensePercent = &percent
	}

	recent := make([]Expense, len(expenses))
	copy(recent, expenses)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date.Time)
	})
	if len(recent) > recentExpenseCount {
		recent = recent[:recentExpenseCount]
	}
	snap.RecentExpenses = recent

	return snap
}
