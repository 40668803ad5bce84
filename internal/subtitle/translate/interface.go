package translate

import (
	"context"
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

// Options selects the language pair for a translation run
type Options struct {
	SourceLang string `json:"source_lang"` // empty or "auto" lets the provider detect
	TargetLang string `json:"target_lang"`
}

// Provider is the common interface for all translation backends
type Provider interface {
	// Translate translates subtitle cues, preserving index and timing
	Translate(ctx context.Context, cues []subtitle.Cue, opts Options, updateProgress func(float64)) ([]subtitle.Cue, error)
	// Name returns the provider name
	Name() string
}

const (
	// batchSize is the number of cues sent per provider request
	batchSize = 50
	// concurrency caps in-flight requests for providers that batch concurrently
	concurrency = 3
)

// isTransientError reports whether a provider error is worth one retry
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{
		"status 429",
		"status 500",
		"status 502",
		"status 503",
		"timeout",
		"connection reset",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
