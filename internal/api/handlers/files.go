package handlers

import (
	"net/http"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
)

type FilesHandler struct {
	workspace *storage.Workspace
}

func NewFilesHandler(workspace *storage.Workspace) *FilesHandler {
	return &FilesHandler{workspace: workspace}
}

// GetTree lists one directory level of the workspace
func (h *FilesHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	path := extractPath(r)

	entries, err := h.workspace.List(path)
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"path":    path,
		"entries": entries,
	}, http.StatusOK)
}

// GetContent serves a workspace file as plain text
func (h *FilesHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	path := extractPath(r)
	if path == "" {
		jsonError(w, "file path is required", http.StatusBadRequest)
		return
	}

	data, err := h.workspace.Read(path)
	if err != nil {
		domainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(data)
}

// Delete removes a workspace file
func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	path := extractPath(r)
	if path == "" {
		jsonError(w, "file path is required", http.StatusBadRequest)
		return
	}

	if err := h.workspace.Delete(path); err != nil {
		domainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Search finds workspace files by name fragment
func (h *FilesHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		jsonError(w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	results, err := h.workspace.Search(q, 50)
	if err != nil {
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"query":   q,
		"results": results,
	}, http.StatusOK)
}
