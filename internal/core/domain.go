package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are persisted and served as plain JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const maxTextLength = 50

type (
	// Date is a calendar date with no time-of-day component. It marshals
	// to and from the ISO form YYYY-MM-DD and compares in UTC.
	Date struct {
		time.Time
	}

	Expense struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Description string          `json:"description"`
		CategoryID  string          `json:"categoryId"`
		Amount      decimal.Decimal `json:"amount"`
	}

	Category struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		IsDefault bool   `json:"isDefault"`
	}

	// ExpenseParams carries the caller-supplied fields of an expense.
	// The repository assigns the id.
	ExpenseParams struct {
		Date        Date
		Description string
		CategoryID  string
		Amount      decimal.Decimal
	}

	CategoryParams struct {
		Name      string
		IsDefault bool
	}
)

var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 50 characters)")
	ErrEmptyCategory      = errors.New("empty category")
	ErrEmptyName          = errors.New("empty name")
	ErrNameTooLong        = errors.New("name too long (max 50 characters)")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses an ISO calendar date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SameMonth reports whether both dates fall in the same calendar month and year.
func (d Date) SameMonth(o Date) bool {
	return d.Year() == o.Year() && d.Time.Month() == o.Time.Month()
}

// SameDay reports whether both dates are the same calendar day.
func (d Date) SameDay(o Date) bool {
	return d.SameMonth(o) && d.Day() == o.Day()
}

// DaysInMonth returns the number of calendar days in the date's month.
func (d Date) DaysInMonth() int {
	return time.Date(d.Year(), d.Time.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (p ExpenseParams) Validate() error {
	if p.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	if len(p.Description) > maxTextLength {
		return ErrDescriptionTooLong
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		return ErrEmptyCategory
	}
	if p.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (p CategoryParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > maxTextLength {
		return ErrNameTooLong
	}
	return nil
}
