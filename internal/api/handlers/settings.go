package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
)

type SettingsHandler struct {
	store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// GetSettings returns the live settings document with secrets masked
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, h.store.Current().Masked(), http.StatusOK)
}

// UpdateSettings merges the request body over the current document,
// validates, and persists. Masked secret values are kept from the previous
// document, so a PUT of a GET response never wipes a key.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	next, err := h.store.Clone()
	if err != nil {
		jsonError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(next); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	next.RestoreSecrets(h.store.Current())

	if err := h.store.Update(next); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	jsonResponse(w, h.store.Current().Masked(), http.StatusOK)
}
