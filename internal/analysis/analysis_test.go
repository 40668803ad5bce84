package analysis

import (
	"errors"
	"testing"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/language"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

func newTestAnalyzer(t *testing.T, opts Options) *Analyzer {
	t.Helper()
	det, err := language.NewDetector(language.Defaults(), 0.6, 50)
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(det, opts)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAnalyze(t *testing.T) {
	cues := []subtitle.Cue{
		{Index: 1, Start: 0, End: 3, Text: "She loves Alexandria and the beautiful garden."},
		{Index: 2, Start: 3.5, End: 6, Text: "The garden is quiet at night."},
	}
	a := newTestAnalyzer(t, DefaultOptions())

	res, err := a.Analyze(cues)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Language != "en" {
		t.Errorf("language = %q, want en", res.Language)
	}
	if res.FellBack {
		t.Error("unexpected language fallback")
	}
	if len(res.Words) == 0 {
		t.Fatal("no words annotated")
	}

	var alexandria, the *WordInfo
	for i := range res.Words {
		switch res.Words[i].Text {
		case "Alexandria":
			alexandria = &res.Words[i]
		case "the":
			if the == nil {
				the = &res.Words[i]
			}
		}
	}
	if alexandria == nil || the == nil {
		t.Fatal("expected words missing from result")
	}
	if !alexandria.Important {
		t.Errorf("proper noun not highlighted: importance %.3f", alexandria.Importance)
	}
	if alexandria.POS != POSProper {
		t.Errorf("Alexandria POS = %q, want propn", alexandria.POS)
	}
	if the.Importance != 0 {
		t.Errorf("stopword importance = %.3f, want 0", the.Importance)
	}

	for _, w := range res.Words {
		if w.Importance < 0 || w.Importance > 1 {
			t.Errorf("word %q importance %v outside [0,1]", w.Text, w.Importance)
		}
	}
	if len(res.Windows) != len(cues) {
		t.Errorf("windows = %d, want %d", len(res.Windows), len(cues))
	}
	if len(res.CueSentiments) != len(cues) {
		t.Errorf("cue sentiments = %d, want %d", len(res.CueSentiments), len(cues))
	}
}

func TestAnalyzeFallsBackBelowThreshold(t *testing.T) {
	cues := []subtitle.Cue{{Index: 1, Start: 0, End: 2, Text: "zzz qqq vvv blorp"}}
	a := newTestAnalyzer(t, DefaultOptions())

	res, err := a.Analyze(cues)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.FellBack {
		t.Error("expected fallback for undetectable text")
	}
	if res.Language != "en" {
		t.Errorf("fallback language = %q, want default en", res.Language)
	}
}

func TestAnalyzeUnsupportedLanguage(t *testing.T) {
	profiles := []language.Profile{
		{Code: "en", Name: "English", Models: []string{"en_core_web_sm"}, Sentiment: true},
	}
	det, err := language.NewDetector(profiles, 0.6, 50)
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(det, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	cues := []subtitle.Cue{{Index: 1, Start: 0, End: 2, Text: "これは日本語のテキストですから"}}
	if _, err := a.Analyze(cues); !errors.Is(err, language.ErrUnsupportedLanguage) {
		t.Errorf("err = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a := newTestAnalyzer(t, DefaultOptions())
	if _, err := a.Analyze(nil); !errors.Is(err, subtitle.ErrEmptySubtitle) {
		t.Errorf("err = %v, want ErrEmptySubtitle", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(o *Options) {}, false},
		{"bad backend", func(o *Options) { o.SentimentBackend = "transformer" }, true},
		{"bad algorithm", func(o *Options) { o.ImportanceAlgorithm = "magic" }, true},
		{"threshold too high", func(o *Options) { o.ImportanceThreshold = 1.1 }, true},
		{"negative threshold", func(o *Options) { o.ImportanceThreshold = -0.1 }, true},
		{"weight out of range", func(o *Options) { o.POSWeights = map[string]float64{"noun": 1.2} }, true},
		{"negative weight", func(o *Options) { o.POSWeights = map[string]float64{"verb": -0.2} }, true},
		{"zero window", func(o *Options) { o.Context.WindowSize = 0 }, true},
		{"frequency algorithm", func(o *Options) { o.ImportanceAlgorithm = AlgorithmFrequency }, false},
		{"graph algorithm", func(o *Options) { o.ImportanceAlgorithm = AlgorithmGraph }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPOSWeightsInRange(t *testing.T) {
	for pos, w := range DefaultPOSWeights() {
		if w < 0 || w > 1 {
			t.Errorf("default weight %q = %v outside [0,1]", pos, w)
		}
	}
}

func TestTagWords(t *testing.T) {
	cues := []subtitle.Cue{{Index: 1, Start: 0, End: 7, Text: "The Paris information quickly running beautiful."}}
	words := subtitle.Words(cues)
	tags := tagWords(words)

	want := []string{POSOther, POSProper, POSNoun, POSAdverb, POSVerb, POSAdjective, POSPunct}
	if len(tags) != len(want) {
		t.Fatalf("got %d tags for %d words", len(tags), len(want))
	}
	for i, tag := range tags {
		if tag != want[i] {
			t.Errorf("tag[%d] (%q) = %q, want %q", i, words[i].Text, tag, want[i])
		}
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"mother", CategoryPerson},
		{"Happy", CategoryEmotion},
		{"run", CategoryAction},
		{"tomorrow", CategoryTime},
		{"school", CategoryPlace},
		{"laptop", CategoryObject},
		{"xylophone", ""},
	}
	for _, tt := range tests {
		if got := categoryOf(tt.word); got != tt.want {
			t.Errorf("categoryOf(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}
