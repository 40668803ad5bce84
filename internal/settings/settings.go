package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/export"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/language"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/theme"
)

// ErrCollaboratorDisabled is returned when a flag-gated advanced feature is
// invoked while disabled or unconfigured.
var ErrCollaboratorDisabled = errors.New("advanced feature disabled or unconfigured")

const secretMask = "••••••••"

// Settings is the six-section pipeline configuration document.
type Settings struct {
	Language      LanguageSettings      `yaml:"language_settings" json:"language_settings"`
	Analysis      AnalysisSettings      `yaml:"analysis_settings" json:"analysis_settings"`
	Visualization VisualizationSettings `yaml:"visualization_settings" json:"visualization_settings"`
	Export        ExportSettings        `yaml:"export_settings" json:"export_settings"`
	Advanced      AdvancedFeatures      `yaml:"advanced_features" json:"advanced_features"`
	Performance   PerformanceSettings   `yaml:"performance_settings" json:"performance_settings"`
}

type LanguageSettings struct {
	DefaultLanguage string                      `yaml:"default_language" json:"default_language"`
	Detection       DetectionSettings           `yaml:"detection" json:"detection"`
	Languages       map[string]language.Profile `yaml:"languages" json:"languages"`
}

type DetectionSettings struct {
	Enabled    bool    `yaml:"enabled" json:"enabled"`
	Threshold  float64 `yaml:"threshold" json:"threshold"`
	SampleSize int     `yaml:"sample_size" json:"sample_size"`
}

type AnalysisSettings struct {
	SentimentBackend    string             `yaml:"sentiment_backend" json:"sentiment_backend"`
	ImportanceAlgorithm string             `yaml:"importance_algorithm" json:"importance_algorithm"`
	ImportanceThreshold float64            `yaml:"importance_threshold" json:"importance_threshold"`
	POSWeights          map[string]float64 `yaml:"pos_weights" json:"pos_weights"`
	Context             ContextSettings    `yaml:"context" json:"context"`
}

type ContextSettings struct {
	WindowSize          int  `yaml:"window_size" json:"window_size"`
	SentenceBoundaries  bool `yaml:"sentence_boundaries" json:"sentence_boundaries"`
	ParagraphBoundaries bool `yaml:"paragraph_boundaries" json:"paragraph_boundaries"`
}

type VisualizationSettings struct {
	Theme           string       `yaml:"theme" json:"theme"`
	CustomColors    CustomColors `yaml:"custom_colors" json:"custom_colors"`
	UseIcons        bool         `yaml:"use_icons" json:"use_icons"`
	SentimentColors bool         `yaml:"sentiment_colors" json:"sentiment_colors"`
	Animations      bool         `yaml:"animations" json:"animations"`
}

type CustomColors struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

type ExportSettings struct {
	DefaultFormat string                    `yaml:"default_format" json:"default_format"`
	Profiles      map[string]export.Options `yaml:"profiles" json:"profiles"`
}

type AdvancedFeatures struct {
	Translation   TranslationFeature `yaml:"translation" json:"translation"`
	OCR           OCRFeature         `yaml:"ocr" json:"ocr"`
	AudioAnalysis ToggleFeature      `yaml:"audio_analysis" json:"audio_analysis"`
	SpellCheck    ToggleFeature      `yaml:"spell_check" json:"spell_check"`
}

type TranslationFeature struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Provider string `yaml:"provider" json:"provider"`
	APIKey   string `yaml:"api_key" json:"api_key"`
}

type OCRFeature struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Engine  string `yaml:"engine" json:"engine"`
}

type ToggleFeature struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type PerformanceSettings struct {
	Cache CacheSettings `yaml:"cache" json:"cache"`
	Batch BatchSettings `yaml:"batch" json:"batch"`
}

type CacheSettings struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	MaxEntries int    `yaml:"max_entries" json:"max_entries"`
	TTL        string `yaml:"ttl" json:"ttl"` // time.ParseDuration format
}

type BatchSettings struct {
	MaxFiles   int  `yaml:"max_files" json:"max_files"`
	MaxWorkers int  `yaml:"max_workers" json:"max_workers"`
	Parallel   bool `yaml:"parallel" json:"parallel"`
}

// Defaults returns a fully populated settings document
func Defaults() *Settings {
	langs := make(map[string]language.Profile)
	for _, p := range language.Defaults() {
		langs[p.Code] = p
	}
	return &Settings{
		Language: LanguageSettings{
			DefaultLanguage: "en",
			Detection:       DetectionSettings{Enabled: true, Threshold: 0.6, SampleSize: 50},
			Languages:       langs,
		},
		Analysis: AnalysisSettings{
			SentimentBackend:    analysis.SentimentLexicon,
			ImportanceAlgorithm: analysis.AlgorithmHeuristic,
			ImportanceThreshold: 0.5,
			POSWeights:          analysis.DefaultPOSWeights(),
			Context:             ContextSettings{WindowSize: 5, SentenceBoundaries: true},
		},
		Visualization: VisualizationSettings{
			Theme:      theme.Modern,
			UseIcons:   true,
			Animations: true,
		},
		Export: ExportSettings{
			DefaultFormat: export.FormatHTML,
			Profiles:      export.DefaultProfiles(),
		},
		Advanced: AdvancedFeatures{
			Translation: TranslationFeature{Provider: "deepl"},
		},
		Performance: PerformanceSettings{
			Cache: CacheSettings{Enabled: true, MaxEntries: 100, TTL: "1h"},
			Batch: BatchSettings{MaxFiles: 10, MaxWorkers: 4, Parallel: true},
		},
	}
}

// Load reads and validates a settings file. Absent keys keep their defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s := Defaults()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadOrDefaults falls back to the default document when the path is unset
// or the file does not exist.
func LoadOrDefaults(path string) (*Settings, error) {
	if path == "" {
		return Defaults(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return Load(path)
}

// Save writes the document back out as YAML
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// normalize lowercases codes and keys and fills profile codes from map keys
func (s *Settings) normalize() {
	s.Language.DefaultLanguage = language.Normalize(s.Language.DefaultLanguage)

	langs := make(map[string]language.Profile, len(s.Language.Languages))
	for code, p := range s.Language.Languages {
		code = language.Normalize(code)
		p.Code = code
		langs[code] = p
	}
	s.Language.Languages = langs

	s.Visualization.Theme = strings.ToLower(strings.TrimSpace(s.Visualization.Theme))
	s.Export.DefaultFormat = strings.ToLower(strings.TrimSpace(s.Export.DefaultFormat))
	s.Advanced.Translation.Provider = strings.ToLower(strings.TrimSpace(s.Advanced.Translation.Provider))
}

// Validate checks the configuration contract and fills zero values with
// their defaults.
func (s *Settings) Validate() error {
	if s.Language.DefaultLanguage == "" {
		return fmt.Errorf("language_settings.default_language is required")
	}
	if len(s.Language.Languages) == 0 {
		return fmt.Errorf("language_settings.languages is required")
	}
	if _, ok := s.Language.Languages[s.Language.DefaultLanguage]; !ok {
		return fmt.Errorf("language_settings.default_language %q has no profile", s.Language.DefaultLanguage)
	}
	if t := s.Language.Detection.Threshold; t < 0 || t > 1 {
		return fmt.Errorf("language_settings.detection.threshold %v outside [0,1]", t)
	}
	if s.Language.Detection.SampleSize == 0 {
		s.Language.Detection.SampleSize = 50
	}
	if s.Language.Detection.SampleSize < 0 {
		return fmt.Errorf("language_settings.detection.sample_size must be positive")
	}
	for code, p := range s.Language.Languages {
		if len(p.Models) == 0 {
			return fmt.Errorf("language_settings.languages.%s: models is required", code)
		}
	}

	if err := s.AnalysisOptions().Validate(); err != nil {
		return fmt.Errorf("analysis_settings: %w", err)
	}

	if _, err := s.Theme(); err != nil {
		return fmt.Errorf("visualization_settings: %w", err)
	}

	if len(s.Export.Profiles) == 0 {
		return fmt.Errorf("export_settings.profiles is required")
	}
	if !export.Supported(s.Export.DefaultFormat) {
		return fmt.Errorf("export_settings.default_format %q is not a supported format", s.Export.DefaultFormat)
	}
	for name := range s.Export.Profiles {
		if !export.Supported(name) {
			return fmt.Errorf("export_settings.profiles.%s is not a supported format", name)
		}
	}

	if s.Advanced.Translation.Enabled {
		switch s.Advanced.Translation.Provider {
		case "deepl", "openai":
		default:
			return fmt.Errorf("advanced_features.translation.provider %q unknown", s.Advanced.Translation.Provider)
		}
	}

	if s.Performance.Cache.MaxEntries == 0 {
		s.Performance.Cache.MaxEntries = 100
	}
	if s.Performance.Cache.MaxEntries < 0 {
		return fmt.Errorf("performance_settings.cache.max_entries must be positive")
	}
	if s.Performance.Cache.TTL != "" {
		if _, err := time.ParseDuration(s.Performance.Cache.TTL); err != nil {
			return fmt.Errorf("performance_settings.cache.ttl: %w", err)
		}
	}
	if s.Performance.Batch.MaxFiles == 0 {
		s.Performance.Batch.MaxFiles = 10
	}
	if s.Performance.Batch.MaxFiles < 1 {
		return fmt.Errorf("performance_settings.batch.max_files must be at least 1")
	}
	if s.Performance.Batch.MaxWorkers == 0 {
		s.Performance.Batch.MaxWorkers = 4
	}
	if s.Performance.Batch.MaxWorkers < 1 {
		return fmt.Errorf("performance_settings.batch.max_workers must be at least 1")
	}
	return nil
}

// AnalysisOptions converts the analysis section to pipeline options
func (s *Settings) AnalysisOptions() analysis.Options {
	return analysis.Options{
		SentimentBackend:    s.Analysis.SentimentBackend,
		ImportanceAlgorithm: s.Analysis.ImportanceAlgorithm,
		ImportanceThreshold: s.Analysis.ImportanceThreshold,
		POSWeights:          s.Analysis.POSWeights,
		DefaultLanguage:     s.Language.DefaultLanguage,
		Context: analysis.ContextOptions{
			WindowSize:          s.Analysis.Context.WindowSize,
			SentenceBoundaries:  s.Analysis.Context.SentenceBoundaries,
			ParagraphBoundaries: s.Analysis.Context.ParagraphBoundaries,
		},
	}
}

// Profiles returns the configured language profiles sorted by code
func (s *Settings) Profiles() []language.Profile {
	codes := make([]string, 0, len(s.Language.Languages))
	for code := range s.Language.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	out := make([]language.Profile, 0, len(codes))
	for _, code := range codes {
		out = append(out, s.Language.Languages[code])
	}
	return out
}

// NewDetector builds the detector the language section describes
func (s *Settings) NewDetector() (*language.Detector, error) {
	return language.NewDetector(s.Profiles(), s.Language.Detection.Threshold, s.Language.Detection.SampleSize)
}

// ResolverOptions converts the visualization section to resolver options
func (s *Settings) ResolverOptions() theme.Options {
	return theme.Options{
		UseIcons:        s.Visualization.UseIcons,
		SentimentColors: s.Visualization.SentimentColors,
		Animations:      s.Visualization.Animations,
	}
}

// Theme resolves the configured theme, building a custom one from the user
// colors when selected.
func (s *Settings) Theme() (theme.Theme, error) {
	if s.Visualization.Theme == theme.Custom {
		return theme.NewCustom(s.Visualization.CustomColors.Primary, s.Visualization.CustomColors.Secondary)
	}
	return theme.Get(s.Visualization.Theme)
}

// CacheTTL parses the cache TTL, defaulting to one hour
func (s *Settings) CacheTTL() time.Duration {
	if s.Performance.Cache.TTL == "" {
		return time.Hour
	}
	d, err := time.ParseDuration(s.Performance.Cache.TTL)
	if err != nil {
		return time.Hour
	}
	return d
}

// CheckFeature gates the advanced-feature collaborators. Disabled or
// unconfigured features report ErrCollaboratorDisabled.
func (s *Settings) CheckFeature(name string) error {
	switch name {
	case "translation":
		if s.Advanced.Translation.Enabled && s.Advanced.Translation.Provider != "" {
			return nil
		}
	case "ocr":
		if s.Advanced.OCR.Enabled && s.Advanced.OCR.Engine != "" {
			return nil
		}
	case "audio_analysis":
		if s.Advanced.AudioAnalysis.Enabled {
			return nil
		}
	case "spell_check":
		if s.Advanced.SpellCheck.Enabled {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCollaboratorDisabled, name)
}

// Masked returns a copy safe to serve over the API: secret values keep only
// their last four characters.
func (s *Settings) Masked() *Settings {
	out := *s
	out.Advanced.Translation.APIKey = maskSecret(s.Advanced.Translation.APIKey)
	return &out
}

func maskSecret(v string) string {
	if v == "" {
		return ""
	}
	if len(v) > 4 {
		return secretMask + v[len(v)-4:]
	}
	return secretMask
}

// RestoreSecrets carries unchanged secrets over from the previous document,
// so a PUT of a masked GET response does not wipe them.
func (s *Settings) RestoreSecrets(prev *Settings) {
	if prev == nil {
		return
	}
	if strings.HasPrefix(s.Advanced.Translation.APIKey, secretMask) {
		s.Advanced.Translation.APIKey = prev.Advanced.Translation.APIKey
	}
}
