package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/batch"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/export"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/language"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// domainError writes err with the status its sentinel maps to
func domainError(w http.ResponseWriter, err error) {
	jsonError(w, err.Error(), errStatus(err))
}

// errStatus maps domain sentinels to client errors; anything unrecognized
// is a server error.
func errStatus(err error) int {
	switch {
	case errors.Is(err, sql.ErrNoRows),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, theme.ErrUnknownTheme):
		return http.StatusNotFound
	case errors.Is(err, settings.ErrCollaboratorDisabled),
		errors.Is(err, fs.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, subtitle.ErrEmptySubtitle),
		errors.Is(err, subtitle.ErrBadTimestamp),
		errors.Is(err, subtitle.ErrUnsupportedFormat),
		errors.Is(err, export.ErrExportFormatUnavailable),
		errors.Is(err, language.ErrUnsupportedLanguage),
		errors.Is(err, language.ErrThresholdNotMet),
		errors.Is(err, batch.ErrTooManyFiles):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// extractPath extracts and URL-decodes the wildcard path from chi router
func extractPath(r *http.Request) string {
	path := chi.URLParam(r, "*")
	decoded, err := url.PathUnescape(path)
	if err != nil {
		return path
	}
	// Clean any double slashes or trailing slashes
	decoded = strings.TrimPrefix(decoded, "/")
	decoded = strings.TrimSuffix(decoded, "/")
	return decoded
}
