package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/db"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

type ThemesHandler struct {
	database *db.Database
}

func NewThemesHandler(database *db.Database) *ThemesHandler {
	return &ThemesHandler{database: database}
}

// List returns the built-in themes and all saved custom themes
func (h *ThemesHandler) List(w http.ResponseWriter, r *http.Request) {
	custom, err := h.database.ListCustomThemes()
	if err != nil {
		jsonError(w, "failed to list custom themes", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"builtin": theme.Builtin(),
		"custom":  custom,
	}, http.StatusOK)
}

// Get resolves one theme by name, built-in or custom
func (h *ThemesHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if t, err := theme.Get(name); err == nil {
		jsonResponse(w, t, http.StatusOK)
		return
	}

	row, err := h.database.GetCustomTheme(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			domainError(w, fmt.Errorf("%w: %q", theme.ErrUnknownTheme, name))
			return
		}
		jsonError(w, "failed to load theme", http.StatusInternalServerError)
		return
	}

	t, err := theme.NewCustom(row.Primary, row.Secondary)
	if err != nil {
		jsonError(w, "stored theme is invalid: "+err.Error(), http.StatusInternalServerError)
		return
	}
	t.Name = name
	jsonResponse(w, t, http.StatusOK)
}

type saveThemeRequest struct {
	Primary   string `json:"primary_color"`
	Secondary string `json:"secondary_color"`
}

// Save creates or updates a custom theme. Built-in names are reserved.
func (h *ThemesHandler) Save(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		jsonError(w, "theme name is required", http.StatusBadRequest)
		return
	}
	if _, err := theme.Get(name); err == nil || name == theme.Custom {
		jsonError(w, "theme name is reserved", http.StatusBadRequest)
		return
	}

	var req saveThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Validates the colors before anything is stored.
	t, err := theme.NewCustom(req.Primary, req.Secondary)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.database.SaveCustomTheme(name, req.Primary, req.Secondary); err != nil {
		jsonError(w, "failed to save theme", http.StatusInternalServerError)
		return
	}

	t.Name = name
	jsonResponse(w, t, http.StatusOK)
}

// Delete removes a custom theme
func (h *ThemesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if _, err := theme.Get(name); err == nil {
		jsonError(w, "built-in themes cannot be deleted", http.StatusBadRequest)
		return
	}

	if _, err := h.database.GetCustomTheme(name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			domainError(w, fmt.Errorf("%w: %q", theme.ErrUnknownTheme, name))
			return
		}
		jsonError(w, "failed to load theme", http.StatusInternalServerError)
		return
	}

	if err := h.database.DeleteCustomTheme(name); err != nil {
		jsonError(w, "failed to delete theme", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
