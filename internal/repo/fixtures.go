package repo

import (
	"github.com/shopspring/decimal"

	"outgo/internal/core"
)

// Stable ids keep seeding idempotent across runs and let the fixtures be
// referenced from tests.
var defaultCategories = []core.Category{
	{ID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", Name: "Food", IsDefault: true},
	{ID: "a3bb189e-8bf9-3888-9912-ace4e6543002", Name: "Transportation", IsDefault: true},
	{ID: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", Name: "Shopping", IsDefault: true},
	{ID: "6ba7b811-9dad-11d1-80b4-00c04fd430c8", Name: "Bills & Utilities", IsDefault: true},
	{ID: "6ba7b812-9dad-11d1-80b4-00c04fd430c8", Name: "Entertainment", IsDefault: true},
	{ID: "6ba7b813-9dad-11d1-80b4-00c04fd430c8", Name: "Travel", IsDefault: true},
	{ID: "550e8400-e29b-41d4-a716-446655440000", Name: "Miscellaneous", IsDefault: true},
}

func sampleExpenses() []core.Expense {
	rows := []struct {
		id, date, description, categoryID, amount string
	}{
		{"6ba7b814-9dad-11d1-80b4-00c04fd430c8", "2025-08-18", "Morning Coffee & Pastry", "f47ac10b-58cc-4372-a567-0e02b2c3d479", "8.75"},
		{"6ba7b815-9dad-11d1-80b4-00c04fd430c8", "2025-08-18", "Metro Card Refill", "a3bb189e-8bf9-3888-9912-ace4e6543002", "25.00"},
		{"6ba7b816-9dad-11d1-80b4-00c04fd430c8", "2025-08-15", "New Bluetooth Headphones", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "89.99"},
		{"6ba7b817-9dad-11d1-80b4-00c04fd430c8", "2025-08-15", "Internet Service Bill", "6ba7b811-9dad-11d1-80b4-00c04fd430c8", "65.99"},
		{"6ba7b818-9dad-11d1-80b4-00c04fd430c8", "2025-08-14", "Movie Theater Tickets", "6ba7b812-9dad-11d1-80b4-00c04fd430c8", "24.50"},
		{"6ba7b819-9dad-11d1-80b4-00c04fd430c8", "2025-08-14", "Hotel Booking Deposit", "6ba7b813-9dad-11d1-80b4-00c04fd430c8", "150.00"},
		{"6ba7b81a-9dad-11d1-80b4-00c04fd430c8", "2025-08-13", "Lunch at Italian Restaurant", "f47ac10b-58cc-4372-a567-0e02b2c3d479", "32.40"},
		{"6ba7b81b-9dad-11d1-80b4-00c04fd430c8", "2025-08-12", "Taxi to Airport", "a3bb189e-8bf9-3888-9912-ace4e6543002", "18.75"},
		{"6ba7b81c-9dad-11d1-80b4-00c04fd430c8", "2025-08-11", "New Winter Jacket", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "125.00"},
		{"6ba7b81d-9dad-11d1-80b4-00c04fd430c8", "2025-08-10", "Office Supplies", "550e8400-e29b-41d4-a716-446655440000", "45.00"},
	}

	expenses := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		date, err := core.ParseDate(row.date)
		if err != nil {
			panic("sample expense fixture: " + err.Error())
		}
		expenses = append(expenses, core.Expense{
			ID:          row.id,
			Date:        date,
			Description: row.description,
			CategoryID:  row.categoryID,
			Amount:      decimal.RequireFromString(row.amount),
		})
	}
	return expenses
}
