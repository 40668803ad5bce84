package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/job"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/language"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
)

type TranslateHandler struct {
	queue     *job.Queue
	store     *settings.Store
	workspace *storage.Workspace
}

func NewTranslateHandler(queue *job.Queue, store *settings.Store, workspace *storage.Workspace) *TranslateHandler {
	return &TranslateHandler{queue: queue, store: store, workspace: workspace}
}

type translateRequest struct {
	Path string `json:"path"`
	job.TranslateParams
}

// Submit checks the translation gate and language pair, then queues the job
func (h *TranslateHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	cfg := h.store.Current()
	if err := cfg.CheckFeature("translation"); err != nil {
		domainError(w, err)
		return
	}

	target := language.Normalize(req.TargetLang)
	profile, ok := cfg.Language.Languages[target]
	if !ok || !profile.Translation {
		domainError(w, fmt.Errorf("%w: no translation support for %q", language.ErrUnsupportedLanguage, target))
		return
	}

	// Fail before queueing when the source file is not readable.
	if _, err := h.workspace.Read(req.Path); err != nil {
		domainError(w, err)
		return
	}

	j, err := h.queue.Enqueue(job.TypeTranslate, req.Path, req.TranslateParams)
	if err != nil {
		jsonError(w, "failed to queue translation: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, j, http.StatusAccepted)
}
