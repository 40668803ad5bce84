package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/job"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/language"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/settings"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/storage"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

// Service runs translation jobs against the provider configured in settings
type Service struct {
	store       *settings.Store
	workspace   *storage.Workspace
	newProvider func(name, apiKey string) (Provider, error)
}

func NewService(store *settings.Store, workspace *storage.Workspace) *Service {
	return &Service{store: store, workspace: workspace, newProvider: NewProvider}
}

// NewProvider returns the provider implementation for a configured name
func NewProvider(name, apiKey string) (Provider, error) {
	switch name {
	case "deepl":
		return NewDeepL(apiKey), nil
	case "openai":
		return NewOpenAI(apiKey), nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", name)
	}
}

// HandleJob processes a translation job. The language pair is validated
// against the configured profiles before any provider call.
func (s *Service) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	started := time.Now()

	var params job.TranslateParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	cfg := s.store.Current()
	if err := cfg.CheckFeature("translation"); err != nil {
		return err
	}

	name := params.Provider
	if name == "" {
		name = cfg.Advanced.Translation.Provider
	}
	provider, err := s.newProvider(name, cfg.Advanced.Translation.APIKey)
	if err != nil {
		return err
	}

	target := language.Normalize(params.TargetLang)
	if err := checkTranslatable(cfg, target); err != nil {
		return err
	}
	source := strings.TrimSpace(params.SourceLang)
	if source != "" && source != "auto" {
		source = language.Normalize(source)
		if err := checkTranslatable(cfg, source); err != nil {
			return err
		}
	}

	data, err := s.workspace.Read(j.FilePath)
	if err != nil {
		return fmt.Errorf("read subtitle: %w", err)
	}
	cues, err := subtitle.Parse(j.FilePath, data)
	if err != nil {
		return err
	}

	log.Printf("[translate] %s: %d cues to %s via %s", j.FilePath, len(cues), target, provider.Name())

	translated, err := provider.Translate(ctx, cues, Options{
		SourceLang: source,
		TargetLang: target,
	}, updateProgress)
	if err != nil {
		return fmt.Errorf("translate: %w", err)
	}

	outPath := outputName(j.FilePath, target)
	if err := s.workspace.Save(outPath, []byte(subtitle.WriteSRT(translated))); err != nil {
		return fmt.Errorf("save translated subtitle: %w", err)
	}

	log.Printf("[translate] translation complete: %s", outPath)

	resultJSON, _ := json.Marshal(job.OutputResult{
		OutputPath: outPath,
		Duration:   time.Since(started).Seconds(),
	})
	j.Result = resultJSON

	updateProgress(1.0)
	return nil
}

func checkTranslatable(cfg *settings.Settings, code string) error {
	profile, ok := cfg.Language.Languages[code]
	if !ok || !profile.Translation {
		return fmt.Errorf("%w: no translation support for %q", language.ErrUnsupportedLanguage, code)
	}
	return nil
}

// outputName derives the translated sibling path: movie.srt -> movie.de.srt
func outputName(input, targetLang string) string {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return stem + "." + targetLang + ".srt"
}
