package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

// maxUploadBytes caps subtitle uploads; subtitle files are small text
const maxUploadBytes = 10 << 20

type SubtitleHandler struct {
	workspace *storage.Workspace
}

func NewSubtitleHandler(workspace *storage.Workspace) *SubtitleHandler {
	return &SubtitleHandler{workspace: workspace}
}

// Upload stores a subtitle file in the workspace. The content must parse
// before anything is written.
func (h *SubtitleHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		jsonError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "form field 'file' is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "failed to read upload", http.StatusInternalServerError)
		return
	}

	cues, err := subtitle.Parse(header.Filename, data)
	if err != nil {
		domainError(w, err)
		return
	}

	path, err := h.workspace.StoreUpload(header.Filename, data)
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"path":   path,
		"format": subtitle.DetectFormat(header.Filename, string(data)),
		"cues":   len(cues),
	}, http.StatusCreated)
}

type subtitleRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// resolve returns the subtitle bytes and a name for format detection,
// reading from the workspace when a path is given.
func (h *SubtitleHandler) resolve(req subtitleRequest) (string, []byte, error) {
	if req.Path != "" {
		data, err := h.workspace.Read(req.Path)
		return req.Path, data, err
	}
	if req.Content == "" {
		return "", nil, fmt.Errorf("either path or content is required")
	}
	return req.Name, []byte(req.Content), nil
}

func (h *SubtitleHandler) parseRequest(w http.ResponseWriter, r *http.Request) ([]subtitle.Cue, string, bool) {
	var req subtitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return nil, "", false
	}

	name, data, err := h.resolve(req)
	if err != nil {
		domainError(w, err)
		return nil, "", false
	}

	cues, err := subtitle.Parse(name, data)
	if err != nil {
		domainError(w, err)
		return nil, "", false
	}
	return cues, name, true
}

// Parse decodes a subtitle document and returns its cues
func (h *SubtitleHandler) Parse(w http.ResponseWriter, r *http.Request) {
	cues, name, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	jsonResponse(w, map[string]interface{}{
		"name": name,
		"cues": cues,
	}, http.StatusOK)
}

// Inspect reports timing and content problems found in a subtitle
func (h *SubtitleHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	cues, name, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	issues := subtitle.Inspect(cues)
	if issues == nil {
		issues = []subtitle.Issue{}
	}
	jsonResponse(w, map[string]interface{}{
		"name":   name,
		"cues":   len(cues),
		"issues": issues,
	}, http.StatusOK)
}

type optimizeRequest struct {
	subtitleRequest
	Write bool `json:"write"` // write the result back to the source path
}

// Optimize repairs cue timing and returns the adjusted cues
func (h *SubtitleHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name, data, err := h.resolve(req.subtitleRequest)
	if err != nil {
		domainError(w, err)
		return
	}
	cues, err := subtitle.Parse(name, data)
	if err != nil {
		domainError(w, err)
		return
	}

	optimized := subtitle.OptimizeTiming(cues)
	remaining := subtitle.Inspect(optimized)

	if req.Write {
		if req.Path == "" {
			jsonError(w, "write requires a path", http.StatusBadRequest)
			return
		}
		out, err := renderAs(optimized, subtitle.DetectFormat(name, string(data)))
		if err != nil {
			domainError(w, err)
			return
		}
		if err := h.workspace.Save(req.Path, out); err != nil {
			domainError(w, err)
			return
		}
	}

	jsonResponse(w, map[string]interface{}{
		"name":             name,
		"cues":             optimized,
		"remaining_issues": len(remaining),
	}, http.StatusOK)
}

// Stats summarizes a subtitle document
func (h *SubtitleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		jsonError(w, "query parameter 'path' is required", http.StatusBadRequest)
		return
	}

	data, err := h.workspace.Read(path)
	if err != nil {
		domainError(w, err)
		return
	}
	cues, err := subtitle.Parse(path, data)
	if err != nil {
		domainError(w, err)
		return
	}

	words := subtitle.Words(cues)
	var chars int
	for _, cue := range cues {
		chars += len(strings.ReplaceAll(cue.Text, "\n", ""))
	}
	duration := cues[len(cues)-1].End - cues[0].Start

	cps := 0.0
	if duration > 0 {
		cps = float64(chars) / duration
	}

	jsonResponse(w, map[string]interface{}{
		"path":                  path,
		"format":                subtitle.DetectFormat(path, string(data)),
		"cues":                  len(cues),
		"words":                 len(words),
		"characters":            chars,
		"duration":              duration,
		"characters_per_second": cps,
	}, http.StatusOK)
}

type convertRequest struct {
	subtitleRequest
	Format string `json:"format"` // "srt", "vtt", or "json"
}

// Convert re-encodes a subtitle document into another format and serves it
// as a download.
func (h *SubtitleHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name, data, err := h.resolve(req.subtitleRequest)
	if err != nil {
		domainError(w, err)
		return
	}
	cues, err := subtitle.Parse(name, data)
	if err != nil {
		domainError(w, err)
		return
	}

	out, err := renderAs(cues, req.Format)
	if err != nil {
		domainError(w, err)
		return
	}

	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if stem == "" {
		stem = "subtitle"
	}
	filename := stem + "." + req.Format

	w.Header().Set("Content-Type", subtitleContentType(req.Format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(out)
}

// renderAs encodes cues in the requested subtitle format
func renderAs(cues []subtitle.Cue, format string) ([]byte, error) {
	switch format {
	case subtitle.FormatSRT:
		return []byte(subtitle.WriteSRT(cues)), nil
	case subtitle.FormatVTT:
		return []byte(subtitle.WriteVTT(cues)), nil
	case subtitle.FormatJSON:
		return json.MarshalIndent(cues, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", subtitle.ErrUnsupportedFormat, format)
	}
}

func subtitleContentType(format string) string {
	switch format {
	case subtitle.FormatVTT:
		return "text/vtt; charset=utf-8"
	case subtitle.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}
