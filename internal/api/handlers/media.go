package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/media"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
)

// MediaHandler probes video files and pulls embedded subtitle streams into
// the subtitle workspace. The media library itself is read-only.
type MediaHandler struct {
	library   *storage.Workspace // media files, probed and read
	workspace *storage.Workspace // subtitle workspace, extraction target
}

func NewMediaHandler(library, workspace *storage.Workspace) *MediaHandler {
	return &MediaHandler{library: library, workspace: workspace}
}

// resolveMedia maps a request path to an absolute media file path
func (h *MediaHandler) resolveMedia(w http.ResponseWriter, r *http.Request) (string, bool) {
	rel := extractPath(r)
	if rel == "" {
		jsonError(w, "media path is required", http.StatusBadRequest)
		return "", false
	}

	full, err := h.library.Resolve(rel)
	if err != nil {
		domainError(w, err)
		return "", false
	}
	if _, err := os.Stat(full); err != nil {
		domainError(w, err)
		return "", false
	}
	return full, true
}

// Probe returns container info and streams, with text subtitle streams
// broken out for convenience.
func (h *MediaHandler) Probe(w http.ResponseWriter, r *http.Request) {
	full, ok := h.resolveMedia(w, r)
	if !ok {
		return
	}

	info, err := media.Probe(r.Context(), full)
	if err != nil {
		jsonError(w, "probe failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"info":             info,
		"subtitle_streams": info.SubtitleStreams(),
	}, http.StatusOK)
}

type extractRequest struct {
	StreamIndex int `json:"stream_index"`
}

// Extract converts one embedded text subtitle stream to SRT and stores it
// in the workspace.
func (h *MediaHandler) Extract(w http.ResponseWriter, r *http.Request) {
	full, ok := h.resolveMedia(w, r)
	if !ok {
		return
	}

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	info, err := media.Probe(r.Context(), full)
	if err != nil {
		jsonError(w, "probe failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var stream *media.Stream
	for _, s := range info.SubtitleStreams() {
		if s.Index == req.StreamIndex {
			stream = &s
			break
		}
	}
	if stream == nil {
		jsonError(w, fmt.Sprintf("stream %d is not a text subtitle stream", req.StreamIndex), http.StatusBadRequest)
		return
	}

	data, err := media.ExtractSubtitle(r.Context(), full, req.StreamIndex)
	if err != nil {
		jsonError(w, "extraction failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stem := strings.TrimSuffix(filepath.Base(full), filepath.Ext(full))
	tag := stream.Language
	if tag == "" {
		tag = fmt.Sprintf("stream%d", req.StreamIndex)
	}

	path, err := h.workspace.StoreUpload(fmt.Sprintf("%s.%s.srt", stem, tag), data)
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"path":   path,
		"stream": stream,
	}, http.StatusCreated)
}
