package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/language"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

// Backend and algorithm names accepted by Options.
const (
	SentimentLexicon = "lexicon"

	AlgorithmHeuristic = "heuristic"
	AlgorithmFrequency = "frequency"
	AlgorithmGraph     = "graph"
)

// Sentiment labels.
const (
	Positive = "POSITIVE"
	Negative = "NEGATIVE"
	Neutral  = "NEUTRAL"
)

// Options configures the analysis pipeline
type Options struct {
	SentimentBackend    string             `json:"sentiment_backend"`
	ImportanceAlgorithm string             `json:"importance_algorithm"`
	ImportanceThreshold float64            `json:"importance_threshold"`
	POSWeights          map[string]float64 `json:"pos_weights"`
	DefaultLanguage     string             `json:"default_language"`
	Context             ContextOptions     `json:"context"`
}

// ContextOptions bounds the sliding context window
type ContextOptions struct {
	WindowSize          int  `json:"window_size"`
	SentenceBoundaries  bool `json:"sentence_boundaries"`
	ParagraphBoundaries bool `json:"paragraph_boundaries"`
}

// DefaultOptions returns the pipeline defaults
func DefaultOptions() Options {
	return Options{
		SentimentBackend:    SentimentLexicon,
		ImportanceAlgorithm: AlgorithmHeuristic,
		ImportanceThreshold: 0.5,
		POSWeights:          DefaultPOSWeights(),
		DefaultLanguage:     "en",
		Context: ContextOptions{
			WindowSize:         5,
			SentenceBoundaries: true,
		},
	}
}

// Validate rejects options outside the configuration contract
func (o Options) Validate() error {
	if o.SentimentBackend != SentimentLexicon {
		return fmt.Errorf("unknown sentiment backend %q", o.SentimentBackend)
	}
	switch o.ImportanceAlgorithm {
	case AlgorithmHeuristic, AlgorithmFrequency, AlgorithmGraph:
	default:
		return fmt.Errorf("unknown importance algorithm %q", o.ImportanceAlgorithm)
	}
	if o.ImportanceThreshold < 0 || o.ImportanceThreshold > 1 {
		return fmt.Errorf("importance threshold %v outside [0,1]", o.ImportanceThreshold)
	}
	for pos, w := range o.POSWeights {
		if w < 0 || w > 1 {
			return fmt.Errorf("pos weight %q = %v outside [0,1]", pos, w)
		}
	}
	if o.Context.WindowSize <= 0 {
		return fmt.Errorf("context window size must be positive, got %d", o.Context.WindowSize)
	}
	return nil
}

// WordInfo is a word with its analysis annotations
type WordInfo struct {
	subtitle.Word
	POS            string  `json:"pos"`
	Category       string  `json:"category,omitempty"`
	Importance     float64 `json:"importance"`
	Important      bool    `json:"important"`
	Sentiment      string  `json:"sentiment"`
	SentimentScore float64 `json:"sentiment_score"`
	Context        string  `json:"context,omitempty"`
}

// CueSentiment is the aggregate sentiment of one cue
type CueSentiment struct {
	Cue   int     `json:"cue"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Window is the per-cue aggregation of word analysis: mean importance and
// text similarity to the preceding window.
type Window struct {
	Index      int     `json:"index"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Importance float64 `json:"importance"`
	Similarity float64 `json:"similarity"`
}

// Result is a fully annotated subtitle timeline
type Result struct {
	Language      string         `json:"language"`
	Confidence    float64        `json:"confidence"`
	FellBack      bool           `json:"fell_back"`
	Cues          []subtitle.Cue `json:"cues"`
	Words         []WordInfo     `json:"words"`
	CueSentiments []CueSentiment `json:"cue_sentiments"`
	Windows       []Window       `json:"windows"`
}

// Analyzer runs language detection, sentiment and word-importance scoring,
// and context aggregation over a cue timeline.
type Analyzer struct {
	detector *language.Detector
	opts     Options
}

// New builds an analyzer. Options are validated up front so a bad weight
// table fails at startup, not mid-file.
func New(detector *language.Detector, opts Options) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if detector == nil {
		return nil, fmt.Errorf("analyzer needs a language detector")
	}
	return &Analyzer{detector: detector, opts: opts}, nil
}

// Options returns the active pipeline options
func (a *Analyzer) Options() Options { return a.opts }

// Analyze annotates the cue timeline. Detection below the confidence
// threshold falls back to the configured default language and is flagged on
// the result; a confident detection outside the supported set fails.
func (a *Analyzer) Analyze(cues []subtitle.Cue) (*Result, error) {
	if len(cues) == 0 {
		return nil, subtitle.ErrEmptySubtitle
	}

	res := &Result{Cues: cues}
	det, err := a.detector.Detect(joinCueText(cues))
	switch {
	case err == nil:
		res.Language = det.Language
		res.Confidence = det.Confidence
	case errors.Is(err, language.ErrThresholdNotMet):
		res.Language = a.opts.DefaultLanguage
		res.Confidence = det.Confidence
		res.FellBack = true
	default:
		return nil, err
	}

	profile, err := a.detector.Resolve(res.Language)
	if err != nil {
		return nil, fmt.Errorf("resolving analysis language: %w", err)
	}

	words := subtitle.Words(cues)
	res.Words = make([]WordInfo, len(words))
	tags := tagWords(words)
	for i, w := range words {
		res.Words[i] = WordInfo{
			Word:      w,
			POS:       tags[i],
			Category:  categoryOf(w.Text),
			Sentiment: Neutral,
		}
	}

	stop := stopwordsFor(res.Language)
	raw := a.scoreImportance(words, tags, cues, stop)
	for i := range res.Words {
		score := clip01(raw[i] * a.posWeight(tags[i]))
		res.Words[i].Importance = score
		res.Words[i].Important = score >= a.opts.ImportanceThreshold
	}

	if profile.Sentiment {
		a.scoreSentiment(res)
	}
	buildContexts(res.Words, a.opts.Context)
	res.Windows = buildWindows(cues, res.Words)
	return res, nil
}

func (a *Analyzer) scoreImportance(words []subtitle.Word, tags []string, cues []subtitle.Cue, stop map[string]bool) []float64 {
	switch a.opts.ImportanceAlgorithm {
	case AlgorithmFrequency:
		return scoreFrequency(words, cues, stop)
	case AlgorithmGraph:
		return scoreGraph(words, stop)
	default:
		return scoreHeuristic(words, tags, stop)
	}
}

func (a *Analyzer) posWeight(pos string) float64 {
	if w, ok := a.opts.POSWeights[pos]; ok {
		return w
	}
	if w, ok := DefaultPOSWeights()[pos]; ok {
		return w
	}
	return 0.3
}

func joinCueText(cues []subtitle.Cue) string {
	var sb strings.Builder
	for i, cue := range cues {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(cue.Text)
	}
	return sb.String()
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
