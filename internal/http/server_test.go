package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outgo/internal/core"
	"outgo/internal/kv"
	"outgo/internal/notify"
	"outgo/internal/repo"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := kv.NewMemoryStore()
	s := NewServer(
		":0",
		repo.NewExpenseRepo(store),
		repo.NewCategoryRepo(store),
		repo.NewBudgetRepo(store),
		notify.Noop{},
		16,
		time.Minute,
	)
	t.Cleanup(func() {
		s.sweeper.Stop()
		s.rateLimiter.stop()
	})
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExpenseLifecycle(t *testing.T) {
	s := newTestServer(t)

	payload := map[string]any{
		"date":        "2025-08-15",
		"description": "Groceries",
		"categoryId":  "cat-1",
		"amount":      42.5,
	}
	rec := doJSON(t, s, http.MethodPost, "/api/expenses", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created core.Expense
	decodeInto(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Groceries", created.Description)

	rec = doJSON(t, s, http.MethodGet, "/api/expenses/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	payload["description"] = "Weekly groceries"
	rec = doJSON(t, s, http.MethodPut, "/api/expenses/"+created.ID, payload)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated core.Expense
	decodeInto(t, rec, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Weekly groceries", updated.Description)

	rec = doJSON(t, s, http.MethodDelete, "/api/expenses/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/expenses/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/expenses/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpenseValidation(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"bad date", map[string]any{"date": "15/08/2025", "description": "x", "categoryId": "c", "amount": 1}, http.StatusUnprocessableEntity},
		{"empty description", map[string]any{"date": "2025-08-15", "description": "  ", "categoryId": "c", "amount": 1}, http.StatusUnprocessableEntity},
		{"negative amount", map[string]any{"date": "2025-08-15", "description": "x", "categoryId": "c", "amount": -1}, http.StatusUnprocessableEntity},
		{"missing category", map[string]any{"date": "2025-08-15", "description": "x", "categoryId": "", "amount": 1}, http.StatusUnprocessableEntity},
		{"unknown field", map[string]any{"date": "2025-08-15", "description": "x", "categoryId": "c", "amount": 1, "extra": true}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, "/api/expenses", tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestExpenseMonthFilter(t *testing.T) {
	s := newTestServer(t)

	for _, d := range []string{"2025-07-31", "2025-08-01", "2025-08-31", "2025-09-01"} {
		rec := doJSON(t, s, http.MethodPost, "/api/expenses", map[string]any{
			"date": d, "description": "e " + d, "categoryId": "c", "amount": 10,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/expenses?month=2025-08", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered []core.Expense
	decodeInto(t, rec, &filtered)
	assert.Len(t, filtered, 2)

	rec = doJSON(t, s, http.MethodGet, "/api/expenses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []core.Expense
	decodeInto(t, rec, &all)
	assert.Len(t, all, 4)

	rec = doJSON(t, s, http.MethodGet, "/api/expenses?month=August", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/categories", map[string]any{"name": "Pets"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created categoryView
	decodeInto(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Color, "every category carries an assigned color")
	assert.False(t, created.IsDefault)

	rec = doJSON(t, s, http.MethodPut, "/api/categories/"+created.ID, map[string]any{"name": "Animals"})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated categoryView
	decodeInto(t, rec, &updated)
	assert.Equal(t, "Animals", updated.Name)
	assert.Equal(t, created.Color, updated.Color, "color sticks to the id, not the name")

	rec = doJSON(t, s, http.MethodDelete, "/api/categories/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/categories/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDefaultCategoryDeleteRejected(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.categories.SeedDefaults(context.Background()))

	rec := doJSON(t, s, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []categoryView
	decodeInto(t, rec, &cats)
	require.NotEmpty(t, cats)
	require.True(t, cats[0].IsDefault)

	rec = doJSON(t, s, http.MethodDelete, "/api/categories/"+cats[0].ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Renaming a default is fine and keeps the flag.
	rec = doJSON(t, s, http.MethodPut, "/api/categories/"+cats[0].ID, map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	var renamed categoryView
	decodeInto(t, rec, &renamed)
	assert.True(t, renamed.IsDefault)
}

func TestBudgetEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/budget", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got budgetPayload
	decodeInto(t, rec, &got)
	assert.True(t, got.Amount.IsZero())

	rec = doJSON(t, s, http.MethodPut, "/api/budget", map[string]any{"amount": 450})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPut, "/api/budget", map[string]any{"amount": -1})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/budget", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &got)
	assert.Equal(t, "450", got.Amount.String(), "rejected update leaves the budget untouched")
}

func TestDashboardReflectsMutations(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPut, "/api/budget", map[string]any{"amount": 300})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var snap core.Snapshot
	decodeInto(t, rec, &snap)
	assert.Equal(t, "300", snap.CurrentMonthBudget.String())
	assert.True(t, snap.CurrentMonthExpense.IsZero())

	rec = doJSON(t, s, http.MethodPost, "/api/expenses", map[string]any{
		"date":        core.Today().String(),
		"description": "Lunch",
		"categoryId":  "cat-1",
		"amount":      30,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// The mutation purges the snapshot cache, so the next read recomputes.
	rec = doJSON(t, s, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeInto(t, rec, &snap)
	assert.Equal(t, "30", snap.CurrentMonthExpense.String())
	assert.Equal(t, "30", snap.CurrentDayExpense.String())
	require.Len(t, snap.RecentExpenses, 1)
	assert.Equal(t, "Lunch", snap.RecentExpenses[0].Description)
}

func TestSeedSamplesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/expenses/samples", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var items []core.Expense
	decodeInto(t, rec, &items)
	assert.Len(t, items, 10)
}

func TestRateLimiterAllows(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		assert.True(t, rl.allow("1.2.3.4"))
	}
	assert.False(t, rl.allow("1.2.3.4"), "61st request within a minute is rejected")
	assert.True(t, rl.allow("5.6.7.8"), "limits are per client")
}
