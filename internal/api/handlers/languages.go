package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

type LanguagesHandler struct {
	store     *settings.Store
	workspace *storage.Workspace
}

func NewLanguagesHandler(store *settings.Store, workspace *storage.Workspace) *LanguagesHandler {
	return &LanguagesHandler{store: store, workspace: workspace}
}

// List returns the configured language profiles
func (h *LanguagesHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := h.store.Current()
	jsonResponse(w, map[string]interface{}{
		"default":   cfg.Language.DefaultLanguage,
		"threshold": cfg.Language.Detection.Threshold,
		"profiles":  cfg.Profiles(),
	}, http.StatusOK)
}

// Detect identifies the language of subtitle text. A result below the
// configured confidence threshold is a client error carrying the scores.
func (h *LanguagesHandler) Detect(w http.ResponseWriter, r *http.Request) {
	var req subtitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	text := req.Content
	if req.Path != "" {
		data, err := h.workspace.Read(req.Path)
		if err != nil {
			domainError(w, err)
			return
		}
		cues, err := subtitle.Parse(req.Path, data)
		if err != nil {
			domainError(w, err)
			return
		}
		text = ""
		for _, cue := range cues {
			text += cue.Text + "\n"
		}
	}
	if text == "" {
		jsonError(w, "either path or content is required", http.StatusBadRequest)
		return
	}

	cfg := h.store.Current()
	detector, err := cfg.NewDetector()
	if err != nil {
		jsonError(w, fmt.Sprintf("detector unavailable: %v", err), http.StatusInternalServerError)
		return
	}

	res, err := detector.Detect(text)
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, res, http.StatusOK)
}
