package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/cache"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/db"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/export"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

type AnalysisHandler struct {
	store     *settings.Store
	cache     *cache.Cache // nil when caching is disabled
	workspace *storage.Workspace
	database  *db.Database
}

func NewAnalysisHandler(store *settings.Store, c *cache.Cache, workspace *storage.Workspace, database *db.Database) *AnalysisHandler {
	return &AnalysisHandler{store: store, cache: c, workspace: workspace, database: database}
}

func (h *AnalysisHandler) resolve(req subtitleRequest) (string, []byte, error) {
	if req.Path != "" {
		data, err := h.workspace.Read(req.Path)
		return req.Path, data, err
	}
	if req.Content == "" {
		return "", nil, fmt.Errorf("either path or content is required")
	}
	return req.Name, []byte(req.Content), nil
}

// analyze runs the full pipeline over raw subtitle data, using the shared
// result cache when available.
func (h *AnalysisHandler) analyze(name string, data []byte) (*analysis.Result, error) {
	key := cache.Key(string(data))
	if h.cache != nil {
		if res, ok := h.cache.Lookup(key); ok {
			return res, nil
		}
	}

	cues, err := subtitle.Parse(name, data)
	if err != nil {
		return nil, err
	}

	cfg := h.store.Current()
	detector, err := cfg.NewDetector()
	if err != nil {
		return nil, err
	}
	analyzer, err := analysis.New(detector, cfg.AnalysisOptions())
	if err != nil {
		return nil, err
	}

	res, err := analyzer.Analyze(cues)
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		h.cache.Store(key, res)
	}
	return res, nil
}

// Analyze returns word importance, sentiment, and context windows for a
// subtitle document.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req subtitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	name, data, err := h.resolve(req)
	if err != nil {
		domainError(w, err)
		return
	}

	res, err := h.analyze(name, data)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, res, http.StatusOK)
}

type exportRequest struct {
	subtitleRequest
	Format string `json:"format"` // "" uses the configured default
	Theme  string `json:"theme"`  // "" uses the configured theme
}

// Export renders an analysis artifact and serves it as a download
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg := h.store.Current()
	format := req.Format
	if format == "" {
		format = cfg.Export.DefaultFormat
	}
	if !export.Supported(format) {
		domainError(w, fmt.Errorf("%w: %q", export.ErrExportFormatUnavailable, format))
		return
	}

	name, data, err := h.resolve(req.subtitleRequest)
	if err != nil {
		domainError(w, err)
		return
	}

	res, err := h.analyze(name, data)
	if err != nil {
		domainError(w, err)
		return
	}

	t, err := h.resolveTheme(req.Theme)
	if err != nil {
		domainError(w, err)
		return
	}

	opts, ok := cfg.Export.Profiles[format]
	if !ok {
		opts = export.DefaultProfiles()[format]
	}

	artifact, err := export.Render(format, export.Request{
		Result:   res,
		Resolver: theme.NewResolver(t, cfg.ResolverOptions()),
		Options:  opts,
	})
	if err != nil {
		domainError(w, err)
		return
	}

	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if stem == "" {
		stem = "analysis"
	}
	filename := stem + export.Extension(format)

	w.Header().Set("Content-Type", artifactContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(artifact)
}

// resolveTheme looks up a theme by name: built-ins first, then saved custom
// themes, then the configured theme when no name is given.
func (h *AnalysisHandler) resolveTheme(name string) (theme.Theme, error) {
	if name == "" {
		return h.store.Current().Theme()
	}
	t, err := theme.Get(name)
	if err == nil {
		return t, nil
	}
	row, dbErr := h.database.GetCustomTheme(name)
	if dbErr != nil {
		if errors.Is(dbErr, sql.ErrNoRows) {
			return theme.Theme{}, fmt.Errorf("%w: %q", theme.ErrUnknownTheme, name)
		}
		return theme.Theme{}, dbErr
	}
	return theme.NewCustom(row.Primary, row.Secondary)
}

func artifactContentType(format string) string {
	switch format {
	case export.FormatHTML:
		return "text/html; charset=utf-8"
	case export.FormatVTT:
		return "text/vtt; charset=utf-8"
	case export.FormatEnhancedSRT, export.FormatStandardSRT, export.FormatASS:
		return "text/plain; charset=utf-8"
	case export.FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case export.FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
