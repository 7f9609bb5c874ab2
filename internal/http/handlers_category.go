package http

import (
	"net/http"

	"outgo/internal/core"
	"outgo/internal/notify"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func (req categoryRequest) params() (core.CategoryParams, error) {
	p := core.CategoryParams{Name: sanitizeInput(req.Name)}
	if err := p.Validate(); err != nil {
		return core.CategoryParams{}, err
	}
	return p, nil
}

// categoryView adds the assigned chart color to the stored category.
type categoryView struct {
	core.Category
	Color string `json:"color"`
}

func viewOf(c core.Category) categoryView {
	return categoryView{Category: c, Color: core.ColorFor(c.ID)}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := s.categories.List(r.Context())
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	views := make([]categoryView, 0, len(items))
	for _, c := range items {
		views = append(views, viewOf(c))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	cat, err := s.categories.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	if cat == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(*cat))
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.params()
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	created, err := s.categories.Create(r.Context(), p)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	s.invalidate(r.Context(), notify.EntityCategories)
	writeJSON(w, http.StatusCreated, viewOf(created))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.params()
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	id := r.PathValue("id")
	existing, err := s.categories.GetByID(r.Context(), id)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	// Renaming never changes the default flag.
	p.IsDefault = existing.IsDefault
	if _, err := s.categories.Update(r.Context(), id, p); err != nil {
		writeStorageError(w, r, err)
		return
	}
	s.invalidate(r.Context(), notify.EntityCategories)

	updated, err := s.categories.GetByID(r.Context(), id)
	if err != nil || updated == nil {
		writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(*updated))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := s.categories.GetByID(r.Context(), id)
	if err != nil {
		writeStorageError(w, r, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if existing.IsDefault {
		writeError(w, http.StatusConflict, "default categories cannot be deleted")
		return
	}

	if _, err := s.categories.Delete(r.Context(), id); err != nil {
		writeStorageError(w, r, err)
		return
	}
	s.invalidate(r.Context(), notify.EntityCategories)
	w.WriteHeader(http.StatusNoContent)
}
