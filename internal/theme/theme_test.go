package theme

import (
	"errors"
	"testing"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

func word(text string, opts ...func(*analysis.WordInfo)) analysis.WordInfo {
	w := analysis.WordInfo{
		Word:      subtitle.Word{Text: text},
		POS:       analysis.POSNoun,
		Sentiment: analysis.Neutral,
	}
	for _, opt := range opts {
		opt(&w)
	}
	return w
}

func important(w *analysis.WordInfo) { w.Important = true }

func categorized(c string) func(*analysis.WordInfo) {
	return func(w *analysis.WordInfo) { w.Category = c }
}

func TestGet(t *testing.T) {
	for _, name := range []string{Modern, Classic, Minimal} {
		th, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if th.Name != name {
			t.Errorf("Get(%q).Name = %q", name, th.Name)
		}
		if err := th.Validate(); err != nil {
			t.Errorf("built-in %q invalid: %v", name, err)
		}
	}
	if _, err := Get("neon"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("Get(neon) err = %v, want ErrUnknownTheme", err)
	}
}

func TestNewCustom(t *testing.T) {
	th, err := NewCustom("#AA00BB", "#112233")
	if err != nil {
		t.Fatalf("NewCustom: %v", err)
	}
	if th.Name != Custom || th.Highlight != "#AA00BB" || th.Accent != "#112233" {
		t.Errorf("custom theme = %+v", th)
	}

	if _, err := NewCustom("red", "#112233"); err == nil {
		t.Error("accepted non-hex primary color")
	}
	if _, err := NewCustom("#AA00BB", "#12"); err == nil {
		t.Error("accepted short secondary color")
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color string
		ok    bool
	}{
		{"#FF9900", true},
		{"#abcdef", true},
		{"#ABC", false},
		{"FF9900", false},
		{"#GGHHII", false},
		{"", false},
	}
	for _, tt := range tests {
		err := ValidateColor(tt.color)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateColor(%q) err = %v, want ok=%v", tt.color, err, tt.ok)
		}
	}
}

func TestThemeValidate(t *testing.T) {
	good := Theme{Name: "night", Background: "#000000", Text: "#FFFFFF", Highlight: "#FF9900", Accent: "#2196F3"}
	if err := good.Validate(); err != nil {
		t.Errorf("valid theme rejected: %v", err)
	}

	bad := good
	bad.Highlight = "orange"
	if err := bad.Validate(); err == nil {
		t.Error("accepted non-hex highlight")
	}

	bad = good
	bad.Name = ""
	if err := bad.Validate(); err == nil {
		t.Error("accepted empty name")
	}

	bad = good
	bad.Animations = []string{"teleport"}
	if err := bad.Validate(); err == nil {
		t.Error("accepted unknown animation")
	}
}

func TestResolve(t *testing.T) {
	modern, _ := Get(Modern)
	r := NewResolver(modern, DefaultOptions())

	// Important word in a category keeps the category color and gets the
	// word-specific context icon.
	got := r.Resolve(word("mother", important, categorized("person")))
	if got.Color != "#FF5733" || !got.Bold {
		t.Errorf("categorized important word style = %+v", got)
	}
	if got.Icon != "👩" {
		t.Errorf("context icon = %q, want 👩", got.Icon)
	}
	if got.Animation != AnimationScale {
		t.Errorf("animation = %q, want scale", got.Animation)
	}

	// Category word without a context icon falls back to the category icon.
	got = r.Resolve(word("aunt", important, categorized("person")))
	if got.Icon != "👥" {
		t.Errorf("category icon = %q, want 👥", got.Icon)
	}

	// Important without category takes the theme highlight and the star.
	got = r.Resolve(word("Bartholomew", important))
	if got.Color != modern.Highlight || !got.Bold || got.Icon != "⭐" {
		t.Errorf("important word style = %+v", got)
	}
	if got.Animation != AnimationGlow {
		t.Errorf("animation = %q, want glow", got.Animation)
	}

	// Plain words stay in the base text color with no icon.
	got = r.Resolve(word("table"))
	if got.Color != modern.Text || got.Icon != "" || got.Animation != "" {
		t.Errorf("plain word style = %+v", got)
	}

	// Punctuation is never styled.
	punct := word(".")
	punct.POS = analysis.POSPunct
	punct.Important = true
	if got := r.Resolve(punct); got.Color != modern.Text || got.Icon != "" {
		t.Errorf("punctuation style = %+v", got)
	}
}

func TestResolveSentimentColors(t *testing.T) {
	modern, _ := Get(Modern)
	opts := DefaultOptions()
	opts.SentimentColors = true
	r := NewResolver(modern, opts)

	w := word("great")
	w.Sentiment = analysis.Positive
	if got := r.Resolve(w); got.Color != "#4CAF50" {
		t.Errorf("positive word color = %q, want #4CAF50", got.Color)
	}

	w.Sentiment = analysis.Negative
	if got := r.Resolve(w); got.Color != "#F44336" {
		t.Errorf("negative word color = %q, want #F44336", got.Color)
	}

	// Importance wins over sentiment tinting.
	w.Important = true
	if got := r.Resolve(w); got.Color != modern.Highlight {
		t.Errorf("important word color = %q, want highlight", got.Color)
	}
}

func TestResolveCustomTheme(t *testing.T) {
	th, err := NewCustom("#101010", "#202020")
	if err != nil {
		t.Fatal(err)
	}
	r := NewResolver(th, DefaultOptions())

	if got := r.Resolve(word("run", important, categorized("action"))); got.Color != "#202020" {
		t.Errorf("custom category color = %q, want secondary", got.Color)
	}
	if got := r.Resolve(word("Bartholomew", important)); got.Color != "#101010" {
		t.Errorf("custom important color = %q, want primary", got.Color)
	}
}

func TestResolveMinimalTheme(t *testing.T) {
	minimal, _ := Get(Minimal)
	r := NewResolver(minimal, DefaultOptions())

	got := r.Resolve(word("mother", important, categorized("person")))
	if got.Icon != "" {
		t.Errorf("minimal theme shows icon %q", got.Icon)
	}
	if got.Animation != "" {
		t.Errorf("minimal theme animates with %q", got.Animation)
	}
}

func TestClasses(t *testing.T) {
	modern, _ := Get(Modern)
	r := NewResolver(modern, DefaultOptions())

	w := word("mother", important, categorized("person"))
	w.Sentiment = analysis.Positive
	got := r.Classes(w)
	want := []string{"important", "category-person", "sentiment-positive"}
	if len(got) != len(want) {
		t.Fatalf("classes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("classes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if cs := r.Classes(word("table")); len(cs) != 0 {
		t.Errorf("plain word classes = %v", cs)
	}
}

func TestIconSize(t *testing.T) {
	tests := []struct {
		importance float64
		want       string
	}{
		{0.1, IconSmall},
		{0.3, IconMedium},
		{0.5, IconMedium},
		{0.7, IconMedium},
		{0.9, IconLarge},
	}
	for _, tt := range tests {
		if got := IconSize(tt.importance); got != tt.want {
			t.Errorf("IconSize(%v) = %q, want %q", tt.importance, got, tt.want)
		}
	}
}

func TestAnimationKeyframes(t *testing.T) {
	// scale is a pure transform with no keyframes; pulse repeated must not
	// duplicate.
	got := AnimationKeyframes([]string{AnimationPulse, AnimationScale, AnimationPulse})
	if len(got) != 1 {
		t.Fatalf("got %d keyframe blocks, want 1", len(got))
	}
	if got[0] != animationKeyframes[AnimationPulse] {
		t.Errorf("keyframes = %q", got[0])
	}
}

func TestSentimentColor(t *testing.T) {
	if got := SentimentColor("positive"); got != "#4CAF50" {
		t.Errorf("SentimentColor(positive) = %q", got)
	}
	if got := SentimentColor("confused"); got != "#2196F3" {
		t.Errorf("unknown label color = %q, want neutral", got)
	}
}

func TestEmphasis(t *testing.T) {
	if got := Emphasis("strong"); got.Color != "#FF0000" || !got.Bold || !got.Underline {
		t.Errorf("strong = %+v", got)
	}
	if got := Emphasis("unknown"); got.Color != "#000000" {
		t.Errorf("fallback = %+v", got)
	}
}
