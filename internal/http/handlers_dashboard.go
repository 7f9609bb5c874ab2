package http

import (
	"context"
	"log/slog"
	"net/http"

	"outgo/internal/core"
)

// handleDashboard serves the analytics snapshot for today. Snapshots
// are cached per date; concurrent cold-cache requests share a single
// recomputation through the singleflight group.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.getSnapshot(r.Context(), core.Today())
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) getSnapshot(ctx context.Context, ref core.Date) (core.Snapshot, error) {
	key := ref.String()
	if snap, found := s.snapshots.Get(key); found {
		slog.DebugContext(ctx, "Snapshot cache hit", "date", key)
		return snap, nil
	}

	v, err, shared := s.flights.Do(key, func() (any, error) {
		return s.computeSnapshot(ctx, ref)
	})
	if err != nil {
		return core.Snapshot{}, err
	}
	snap := v.(core.Snapshot)
	s.snapshots.Set(key, snap)
	slog.DebugContext(ctx, "Snapshot computed", "date", key, "shared", shared)
	return snap, nil
}

func (s *Server) computeSnapshot(ctx context.Context, ref core.Date) (core.Snapshot, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return core.Snapshot{}, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return core.Snapshot{}, err
	}
	budget, err := s.budget.Get(ctx)
	if err != nil {
		return core.Snapshot{}, err
	}
	return core.ComputeSnapshot(expenses, categories, budget, ref), nil
}
